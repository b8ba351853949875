package evaluator

import "github.com/nkanaev/msbasic/internal/values"

// parseStringLiteral reads a quoted string literal. An unmatched quote at
// end of line is accepted and terminates the literal. The opening quote
// has already been confirmed present by the caller but not yet consumed.
func parseStringLiteral(r *Reader) values.Value {
	r.Advance() // opening quote
	start := r.Pos
	for {
		b, ok := r.Cur()
		if !ok {
			break // unmatched quote at EOL: accepted
		}
		if b == '"' {
			text := string(r.Text[start:r.Pos])
			r.Advance() // closing quote
			return values.String(text)
		}
		r.Advance()
	}
	return values.String(string(r.Text[start:r.Pos]))
}
