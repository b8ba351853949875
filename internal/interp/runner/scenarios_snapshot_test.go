package runner

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestRunTranscriptSnapshots captures the full terminal transcript of
// running a handful of representative programs end to end. The programs
// run in slice order so snapshot identity stays stable across runs.
func TestRunTranscriptSnapshots(t *testing.T) {
	programs := []struct {
		name  string
		lines []string
	}{
		{"print_zones", []string{
			`10 PRINT "A";"B",1,2`,
			`20 PRINT TAB(10);"X"`,
		}},
		{"for_next_nested", []string{
			`10 FOR I=1 TO 2`,
			`20 FOR J=1 TO 2`,
			`30 PRINT I;J`,
			`40 NEXT J`,
			`50 NEXT I`,
		}},
		{"string_functions", []string{
			`10 A$="MICROSOFT"`,
			`20 PRINT LEFT$(A$,5);MID$(A$,6,4);RIGHT$(A$,2)`,
			`30 PRINT LEN(A$);VAL("42")`,
		}},
		{"error_reports_line", []string{
			`10 PRINT 1/0`,
		}},
	}

	for _, tc := range programs {
		name, lines := tc.name, tc.lines
		rn, term := newRunner()
		var runErr error
		for _, line := range lines {
			if err := rn.ExecuteLine(line); err != nil {
				runErr = err
				break
			}
		}
		if runErr == nil {
			runErr = rn.ExecuteLine("RUN")
		}
		out := term.Output()
		if runErr != nil {
			out += runErr.Error() + "\n"
		}
		snaps.MatchSnapshot(t, name, out)
	}
}
