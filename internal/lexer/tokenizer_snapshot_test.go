package lexer

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestTokenizeDetokenizeRoundTrip snapshots the crunch-then-detokenize
// round trip for a representative spread of statement forms, covering
// the tokenizer's longest-match and quoted-string handling.
func TestTokenizeDetokenizeRoundTrip(t *testing.T) {
	lines := []string{
		`10 PRINT "HELLO, WORLD!"`,
		`20 FOR I=1 TO 10 STEP 2: PRINT I: NEXT I`,
		`30 DATA 1,2,"A:B",3`,
		`40 IF A<=B AND NOT C THEN GOTO 100`,
		`50 DEF FN SQ(X)=X*X`,
		`60 LET A$=LEFT$(B$,3)+RIGHT$(C$,2)`,
		`70 REM this comment : has a colon`,
		`? "SHORTHAND PRINT"`,
	}
	for i, line := range lines {
		tokenized := Tokenize(line)
		roundTrip := Detokenize(tokenized)
		snaps.MatchSnapshot(t, fmt.Sprintf("line_%d", i), fmt.Sprintf("in:  %s\nhex: % x\nout: %s", line, tokenized, roundTrip))
	}
}
