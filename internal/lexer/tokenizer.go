// Package lexer crunches raw BASIC source lines into tokenized byte
// sequences and expands them back to text. The cruncher is a small
// mode-driven scanner: reserved words collapse to single token bytes in
// normal mode, while string literals, REM comments, and DATA payloads
// pass through verbatim.
package lexer

import (
	"strings"

	"github.com/nkanaev/msbasic/internal/token"
)

// mode is the tokenizer's scan state. String mode is re-entrant from
// Normal and Data; Rem absorbs the rest of the line.
type mode int

const (
	modeNormal mode = iota
	modeString
	modeData
	modeRem
)

// MaxLineLength is the maximum accepted length of a raw source line,
// matching BASIC_LINE_MAX in the original 6502 port.
const MaxLineLength = 255

// Tokenize crunches a raw source line into its tokenized byte form. Bytes
// below 0x80 are literal source characters; reserved words collapse to a
// single token byte per internal/token's table. Strings, REM comments, and
// DATA payloads are copied verbatim, case preserved.
func Tokenize(line string) []byte {
	src := []byte(line)
	out := make([]byte, 0, len(src)+8)
	m := modeNormal
	i := 0

	for i < len(src) {
		c := src[i]

		switch m {
		case modeString:
			out = append(out, c)
			i++
			if c == '"' {
				m = modeNormal
			}
			continue

		case modeRem:
			out = append(out, src[i:]...)
			i = len(src)
			continue

		case modeData:
			if c == '"' {
				// Quoted strings inside DATA are honored verbatim and do
				// not trigger the ':' exit.
				out = append(out, c)
				i++
				for i < len(src) {
					out = append(out, src[i])
					q := src[i]
					i++
					if q == '"' {
						break
					}
				}
				continue
			}
			if c == ':' {
				out = append(out, c)
				i++
				m = modeNormal
				continue
			}
			out = append(out, c)
			i++
			continue
		}

		// modeNormal
		if c == '"' {
			out = append(out, c)
			i++
			m = modeString
			continue
		}

		if c == '?' {
			// '?' is PRINT's classic shorthand: it crunches to the same
			// token byte, so LIST always shows the canonical "PRINT"
			// spelling regardless of which spelling the user typed.
			out = append(out, byte(token.PRINT))
			i++
			continue
		}

		if tok, n, ok := matchWord(src, i); ok {
			out = append(out, byte(tok))
			i += n
			switch tok {
			case token.REM:
				m = modeRem
			case token.DATA:
				m = modeData
			}
			continue
		}

		out = append(out, token.ToUpper(c))
		i++
	}

	return out
}

// Detokenize expands a tokenized byte sequence back to source text: every
// byte below 0x80 is copied verbatim, every token byte expands to its
// canonical reserved-word spelling. The round trip is lossless for
// everything that matters for LIST:
// quoted string contents, REM text, and DATA payloads are untouched
// because the tokenizer never touched them either.
func Detokenize(text []byte) string {
	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, c := range text {
		if token.IsReserved(c) {
			b.WriteString(token.Name(token.Token(c)))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// matchWord attempts the longest case-insensitive reserved-word match at
// position i in src. A match must end at a word boundary (next byte is
// neither letter nor digit) unless the word is self-delimiting because it
// ends in '(' or is FN, which is emitted on contact so FNA(1) crunches.
func matchWord(src []byte, i int) (token.Token, int, bool) {
	for _, w := range token.Words {
		n := len(w.Text)
		if i+n > len(src) {
			continue
		}
		if !strings.EqualFold(string(src[i:i+n]), w.Text) {
			continue
		}
		selfDelimiting := w.Text[len(w.Text)-1] == '(' || w.Token == token.FN
		if !selfDelimiting && i+n < len(src) {
			next := src[i+n]
			if token.IsLetter(next) || token.IsDigit(next) {
				continue
			}
		}
		return w.Token, n, true
	}
	return 0, 0, false
}
