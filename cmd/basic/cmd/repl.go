package cmd

import (
	"fmt"
	"strings"

	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/runner"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/ioterm"
	"github.com/spf13/cobra"
)

const banner = "MICROSOFT BASIC\nREADY.\n"

var exitWords = map[string]bool{
	"QUIT": true, "EXIT": true, "BYE": true, "SYSTEM": true,
}

func init() {
	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return loadAndRun(args[0])
		}
		return repl()
	}
}

// repl implements the interactive protocol: banner, then loop reading
// lines, exiting on QUIT/EXIT/BYE/SYSTEM, otherwise dispatching to
// ExecuteLine and reporting errors via their formatted long form.
func repl() error {
	term := ioterm.New()
	defer term.Close()

	fmt.Print(banner)

	rn := runner.NewWithOptions(runtime.Options{Terminal: term, Trace: traceFlag})
	for {
		line, ok := term.ReadLine("")
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimLeft(line, " ")
		word := trimmed
		if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
			word = trimmed[:i]
		}
		if exitWords[strings.ToUpper(word)] {
			return nil
		}

		if err := rn.ExecuteLine(line); err != nil {
			if be, ok := err.(*errors.BasicError); ok {
				fmt.Println(be.Error())
			} else {
				fmt.Println(err)
			}
		}
		if rn.State.Mode != runtime.Running {
			fmt.Println("READY.")
		}
	}
}
