package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/runner"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/ioterm"
)

// loadAndRun implements `basic file`: load numbered lines from file,
// skipping blanks and lines beginning '#', then execute RUN.
func loadAndRun(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defer f.Close()

	term := ioterm.New()
	defer term.Close()
	rn := runner.NewWithOptions(runtime.Options{Terminal: term, Trace: traceFlag})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if err := rn.ExecuteLine(line); err != nil {
			return reportErr(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if err := rn.ExecuteLine("RUN"); err != nil {
		return reportErr(err)
	}
	return nil
}

// reportErr prints a BasicError in its formatted long form and turns it
// into a plain exit-status failure for cobra, so batch mode exits 1.
func reportErr(err error) error {
	if be, ok := err.(*errors.BasicError); ok {
		fmt.Println(be.Error())
		return fmt.Errorf("execution failed")
	}
	return err
}
