package scope

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/arnavsurve/gluegen/internal/compiler/ast"
	"github.com/arnavsurve/gluegen/internal/compiler/token"
)

// Table holds the bool groups of one direction, keyed by major index.
type Table struct {
	Groups    map[uint16]*ast.BoolGroup
	Direction token.Direction
}

func NewTable(dir token.Direction) *Table {
	return &Table{
		Groups:    make(map[uint16]*ast.BoolGroup),
		Direction: dir,
	}
}

// Define creates the group for major. It returns an error if the group
// already exists.
func (t *Table) Define(major uint16) (*ast.BoolGroup, error) {
	if _, exists := t.Groups[major]; exists {
		return nil, fmt.Errorf("group %s already defined", ast.GroupName(t.Direction, major))
	}
	g := &ast.BoolGroup{Major: major, Direction: t.Direction}
	t.Groups[major] = g
	return g, nil
}

func (t *Table) Lookup(major uint16) (*ast.BoolGroup, bool) {
	g, ok := t.Groups[major]
	return g, ok
}

// Sorted returns the groups in ascending major index order.
func (t *Table) Sorted() []*ast.BoolGroup {
	keys := lo.Keys(t.Groups)
	slices.Sort(keys)
	return lo.Map(keys, func(k uint16, _ int) *ast.BoolGroup {
		return t.Groups[k]
	})
}

func (t *Table) Len() int {
	return len(t.Groups)
}

// Tables is the set of per-direction group tables of one run.
type Tables struct {
	byDir map[token.Direction]*Table
}

func NewTables() *Tables {
	ts := &Tables{byDir: make(map[token.Direction]*Table)}
	for _, dir := range token.Directions {
		ts.byDir[dir] = NewTable(dir)
	}
	return ts
}

// For returns the table for dir. Unknown directions share the memory table.
func (ts *Tables) For(dir token.Direction) *Table {
	if t, ok := ts.byDir[dir]; ok {
		return t
	}
	return ts.byDir[token.DirMemory]
}

// Sorted returns every group, inputs first, then outputs, then memory, each
// in ascending major index order.
func (ts *Tables) Sorted() []*ast.BoolGroup {
	var all []*ast.BoolGroup
	for _, dir := range token.Directions {
		all = append(all, ts.byDir[dir].Sorted()...)
	}
	return all
}
