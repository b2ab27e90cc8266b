package parser

import (
	"fmt"

	"github.com/arnavsurve/gluegen/internal/compiler/ast"
	"github.com/arnavsurve/gluegen/internal/compiler/scope"
	"github.com/arnavsurve/gluegen/internal/compiler/token"
)

// Merge folds the bit variables that share a direction and major index into
// one bool group each. It builds a new sequence and leaves vars untouched.
//
// The first bit variable of a group survives under the group's name
// ("__IG0") with minor index 0 and stands for the whole group; the other
// members only live in the group's slots. Non-bit variables pass through in
// order. A bit with a minor index of 8 or more cannot be stored in a group:
// it is reported and kept as an ungrouped entry.
//
// Groups are returned inputs first, then outputs, then memory, each in
// ascending major index order.
func Merge(vars []ast.Variable) (merged []ast.Variable, groups []*ast.BoolGroup, warnings []string) {
	tables := scope.NewTables()
	merged = make([]ast.Variable, 0, len(vars))

	for _, v := range vars {
		if v.Size() != token.SizeBit {
			merged = append(merged, v)
			continue
		}

		if v.Minor >= ast.GroupSize {
			warnings = append(warnings, fmt.Sprintf("***Invalid addressing on located variable %s***", v.Name))
			merged = append(merged, v)
			continue
		}

		table := tables.For(v.Direction())
		group, exists := table.Lookup(v.Major)
		if !exists {
			// Define cannot fail, the lookup just missed.
			group, _ = table.Define(v.Major)

			survivor := v
			survivor.Name = "__" + group.Name()
			survivor.Minor = 0
			merged = append(merged, survivor)
		}

		if group.Slots[v.Minor] != "" && group.Slots[v.Minor] != v.Name {
			warnings = append(warnings, fmt.Sprintf("%s and %s share bit %d of group %s", group.Slots[v.Minor], v.Name, v.Minor, group.Name()))
		}
		group.Slots[v.Minor] = v.Name
	}

	return merged, tables.Sorted(), warnings
}
