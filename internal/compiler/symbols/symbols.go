package symbols

import (
	"fmt"

	"github.com/arnavsurve/gluegen/internal/compiler/ast"
)

// Entry is one row of the unified glue table (a GlueVariable literal).
type Entry struct {
	Direction string // IN, OUT, MEM
	Size      string // BIT, BYTE, WORD, DOUBLEWORD, LONGWORD
	Major     uint16 // most significant index
	Minor     uint16 // least significant index, only meaningful for bits
	Type      string // value type tag, copied verbatim from the declaration
	Name      string // access pointer
}

func FromVariable(v ast.Variable) Entry {
	return Entry{
		Direction: v.Direction().Enum(),
		Size:      v.Size().Enum(),
		Major:     v.Major,
		Minor:     v.Minor,
		Type:      v.Type,
		Name:      v.Name,
	}
}

// Literal renders the row as it appears inside oplc_glue_vars[].
func (e Entry) Literal() string {
	return fmt.Sprintf("{ IECLDT_%s, IECLST_%s, %d, %d, IECVT_%s,  %s }",
		e.Direction, e.Size, e.Major, e.Minor, e.Type, e.Name)
}
