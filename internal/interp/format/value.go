package format

import (
	"github.com/nkanaev/msbasic/internal/numfmt"
	"github.com/nkanaev/msbasic/internal/values"
)

// Number writes a numeric PRINT item: numfmt's signed text plus the
// trailing space that always follows a printed number.
func (p *Printer) Number(n float64) {
	p.WriteString(numfmt.Format(n))
	p.putByte(' ')
}

// String writes a string PRINT item verbatim; strings carry no sign or
// trailing space.
func (p *Printer) String(s string) {
	p.WriteString(s)
}

// Value writes v using whichever of Number/String its kind calls for.
func (p *Printer) Value(v values.Value) {
	if v.IsString() {
		p.String(v.Str)
		return
	}
	p.Number(v.AsNumber())
}
