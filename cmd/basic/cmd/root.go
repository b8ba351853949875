package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// traceFlag backs --trace: when set, the run loop prints "[line N] STMT"
// to stderr before executing each statement.
var traceFlag bool

var rootCmd = &cobra.Command{
	Use:   "basic",
	Short: "A Microsoft BASIC 1.1-compatible interpreter",
	Long: `basic is a Go implementation of Microsoft BASIC 1.1: a tokenizing
line editor, expression evaluator, and statement dispatcher faithful to
the original 8-bit dialect (PRINT zones, DATA/READ, FOR/NEXT, GOSUB/
RETURN, string and array heaps, CONT, and the rest).

Run it with no arguments for an interactive READY. prompt, or point it
at a .bas file to load and RUN immediately.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "print \"[line N] STMT\" to stderr before executing each statement")
}
