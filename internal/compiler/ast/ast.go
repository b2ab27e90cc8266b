package ast

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/gluegen/internal/compiler/token"
)

// GroupSize is the number of bits packed into one bool group.
const GroupSize = 8

// Declaration is one parsed line of the located variables file.
type Declaration struct {
	Line int    // 1-indexed line number in the input
	Raw  string // the line as read, without its '\n'
	Type string
	Name string
}

func (d *Declaration) String() string {
	return fmt.Sprintf("%d: %s %s", d.Line, d.Type, d.Name)
}

// Variable is a located variable with its decoded address.
type Variable struct {
	Name  string
	Type  string
	Major uint16
	Minor uint16
}

func (v Variable) Direction() token.Direction {
	dir, _, _ := token.Classify(v.Name)
	return dir
}

func (v Variable) Size() token.Size {
	_, size, _ := token.Classify(v.Name)
	return size
}

func (v Variable) ValueType() token.ValueType {
	return token.ValueType(v.Type)
}

func (v Variable) String() string {
	if v.Size() == token.SizeBit {
		return fmt.Sprintf("%s %s (%d.%d)", v.Type, v.Name, v.Major, v.Minor)
	}
	return fmt.Sprintf("%s %s (%d)", v.Type, v.Name, v.Major)
}

// BoolGroup collects the bit variables that share a direction and major
// index. A slot is empty when that bit was never declared.
type BoolGroup struct {
	Major     uint16
	Direction token.Direction
	Slots     [GroupSize]string
}

// GroupName is the name a merged group is known by, e.g. "IG0".
func GroupName(dir token.Direction, major uint16) string {
	return fmt.Sprintf("%cG%d", dir, major)
}

func (g *BoolGroup) Name() string {
	return GroupName(g.Direction, g.Major)
}

// Populated returns the number of declared bits in the group.
func (g *BoolGroup) Populated() int {
	n := 0
	for _, s := range g.Slots {
		if s != "" {
			n++
		}
	}
	return n
}

func (g *BoolGroup) String() string {
	var out strings.Builder
	out.WriteString(g.Name())
	out.WriteString("{")
	for i, s := range g.Slots {
		if i > 0 {
			out.WriteString(", ")
		}
		if s == "" {
			out.WriteString("-")
		} else {
			out.WriteString(s)
		}
	}
	out.WriteString("}")
	return out.String()
}

// Module is everything one generation run knows about its input: the
// merged variables in emission order, the bool groups in emission order and
// the checksum of the raw lines.
type Module struct {
	Variables []Variable
	Groups    []*BoolGroup
	Digest    [16]byte
	Lines     int
}
