package gentests

import _ "embed"
import "testing"
import "github.com/vic/goski/cmd/gentests/helper"

//go:embed input.ski
var input string

//go:embed output.ski
var output string

func Test_005_excess_Reduction(t *testing.T) {
	gentests.CheckReduction(t, "005_excess", input, output)
}
