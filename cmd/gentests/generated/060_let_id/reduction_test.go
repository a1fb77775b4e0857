package gentests

import _ "embed"
import "testing"
import "github.com/vic/goski/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_060_let_id_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "060_let_id", input, output)
}
