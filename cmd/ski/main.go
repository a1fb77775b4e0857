package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/vic/goski/pkg/config"
	"github.com/vic/goski/pkg/reducer"
)

// Options holds the flags shared by every command.
type Options struct {
	Debug      bool
	ConfigFile string
	Extended   bool
}

func main() {
	ctx := context.Background()
	if err := fang.Execute(ctx, newRootCmd(),
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts Options

	rootCmd := &cobra.Command{
		Use:   "ski",
		Short: "SKI combinator calculus reducer",
		Long: `ski reduces combinatory logic terms to weak normal form.

Terms are written in juxtaposition notation: every character is an atom,
application is left-associative and parentheses group, so SKKx is
((S K) K) x. Combinators other than S, K and I can be declared in a
ski.toml file next to your terms.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.Debug)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "Path to ski.toml (searched upwards from the working directory if not given)")
	rootCmd.PersistentFlags().BoolVar(&opts.Extended, "extended", false, "Add the B, C and W combinators")

	rootCmd.AddCommand(
		reduceCmd(&opts),
		fmtCmd(),
		combinatorsCmd(&opts),
		compileCmd(&opts),
		abstractCmd(&opts),
	)
	return rootCmd
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig reads --config, or the nearest ski.toml, or the defaults.
func loadConfig(opts *Options) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path, found, err := config.Find(cwd)
		if err != nil {
			return nil, err
		}
		if found != nil {
			slog.Debug("using config", "path", path)
			cfg = found
		} else {
			cfg = config.Default()
		}
	}
	if opts.Extended && (cfg.Base == "" || cfg.Base == config.BaseSKI) {
		cfg.Base = config.BaseExtended
	}
	return cfg, nil
}

func loadRegistry(opts *Options) (*config.Config, *reducer.Registry, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}
