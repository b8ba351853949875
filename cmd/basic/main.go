// Command basic is the interactive Microsoft BASIC 1.1-compatible
// interpreter: a REPL by default, or a one-shot file runner when given a
// program path.
package main

import (
	"fmt"
	"os"

	"github.com/nkanaev/msbasic/cmd/basic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
