package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/reducer"
)

// FileName is the name Find looks for.
const FileName = "ski.toml"

// Base registries a config can start from.
const (
	BaseSKI      = "ski"
	BaseExtended = "extended"
	BaseNone     = "none"
)

var ErrUnknownBase = errors.New("unknown base registry")

// Config is the contents of a ski.toml file.
type Config struct {
	// Base selects the built-in combinators: "ski" (default), "extended"
	// or "none".
	Base string `toml:"base"`

	// MaxSteps bounds reduction. Zero means unbounded.
	MaxSteps int `toml:"max_steps"`

	// Timeout bounds reduction wall-clock time, e.g. "2s".
	Timeout Duration `toml:"timeout"`

	// Trace prints every intermediate term.
	Trace bool `toml:"trace"`

	// Combinators adds rules on top of Base. Templates use digit notation,
	// e.g. "0(12)".
	Combinators map[string]Combinator `toml:"combinators"`
}

type Combinator struct {
	Arity    int    `toml:"arity"`
	Template string `toml:"template"`
}

// Duration is a time.Duration read from a string like "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default is the configuration used when no file is found.
func Default() *Config {
	return &Config{Base: BaseSKI}
}

// Load reads a config file.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("parsing %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Find searches for ski.toml starting from dir and walking up to parent
// directories, stopping at a .git boundary. It returns ("", nil, nil) if
// there is none.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// Registry builds the combinator registry described by the config.
// Extra combinators are registered in name order.
func (c *Config) Registry() (*reducer.Registry, error) {
	var reg *reducer.Registry
	switch c.Base {
	case "", BaseSKI:
		reg = reducer.SKI()
	case BaseExtended:
		reg = reducer.Extended()
	case BaseNone:
		reg = reducer.NewRegistry()
	default:
		return nil, errors.Wrapf(ErrUnknownBase, "%q", c.Base)
	}

	names := make([]string, 0, len(c.Combinators))
	for name := range c.Combinators {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := c.Combinators[name]
		tmpl, err := reducer.ParseTemplate(def.Template)
		if err != nil {
			return nil, errors.Wrapf(err, "combinator %q", name)
		}
		if err := reg.Register(name, def.Arity, tmpl...); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// MachineOptions returns the reduction bounds of the config.
func (c *Config) MachineOptions() []reducer.Option {
	var opts []reducer.Option
	if c.MaxSteps > 0 {
		opts = append(opts, reducer.WithMaxSteps(c.MaxSteps))
	}
	if c.Timeout.Duration > 0 {
		opts = append(opts, reducer.WithTimeout(c.Timeout.Duration))
	}
	return opts
}
