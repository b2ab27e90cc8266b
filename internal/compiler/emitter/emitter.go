package emitter

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/gluegen/internal/compiler/ast"
	"github.com/arnavsurve/gluegen/internal/compiler/diag"
	"github.com/arnavsurve/gluegen/internal/compiler/lib"
	"github.com/arnavsurve/gluegen/internal/compiler/symbols"
	"github.com/arnavsurve/gluegen/internal/compiler/token"
)

const (
	bufferSize = 1024 // BUFFER_SIZE in the preamble

	// Long-word memory locations from here on are the runtime's special
	// function registers, not lint_memory.
	specialFunctionsBase = 1024
)

type location struct {
	dir  token.Direction
	size token.Size
}

type buffer struct {
	name string
	cast string // pointer cast in front of the variable, if any
	bits bool   // indexed [major][minor]
}

// classicalBuffers maps a location to the flat buffer that receives it.
// Locations missing here get no classical entry.
var classicalBuffers = map[location]buffer{
	{token.DirInput, token.SizeBit}:         {name: "bool_input", bits: true},
	{token.DirInput, token.SizeByte}:        {name: "byte_input"},
	{token.DirInput, token.SizeWord}:        {name: "int_input"},
	{token.DirOutput, token.SizeBit}:        {name: "bool_output", bits: true},
	{token.DirOutput, token.SizeByte}:       {name: "byte_output"},
	{token.DirOutput, token.SizeWord}:       {name: "int_output"},
	{token.DirMemory, token.SizeWord}:       {name: "int_memory"},
	{token.DirMemory, token.SizeDoubleWord}: {name: "dint_memory", cast: "(IEC_DINT *)"},
	{token.DirMemory, token.SizeLongWord}:   {name: "lint_memory", cast: "(IEC_LINT *)"},
}

var specialFunctions = buffer{name: "special_functions", cast: "(IEC_LINT *)"}

type Options struct {
	// Strict reports locations that have no classical buffer.
	Strict bool
	// LegacyBitBuffers also writes every grouped bit into bool_input and
	// bool_output.
	LegacyBitBuffers bool
}

type Emitter struct {
	builder  strings.Builder
	errors   []string
	warnings []string
	opts     Options
	reporter diag.Reporter
}

func NewEmitter(opts Options, reporter diag.Reporter) *Emitter {
	if reporter == nil {
		reporter = diag.Discard()
	}
	return &Emitter{
		errors:   []string{},
		warnings: []string{},
		opts:     opts,
		reporter: reporter,
	}
}

func (e *Emitter) addError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.errors = append(e.errors, msg)
	e.reporter.Errorf("%s", msg)
}

func (e *Emitter) addWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.warnings = append(e.warnings, msg)
	e.reporter.Warnf("%s", msg)
}

func (e *Emitter) Errors() []string {
	return e.errors
}

func (e *Emitter) Warnings() []string {
	return e.warnings
}

func (e *Emitter) emitLine(format string, args ...any) {
	fmt.Fprintf(&e.builder, format, args...)
	e.builder.WriteString("\n")
}

// Emit renders the whole glue translation unit for m.
func (e *Emitter) Emit(m *ast.Module) string {
	e.builder.Reset()
	if m == nil {
		e.addError("Emitter received a nil module")
		return ""
	}

	e.emitHeader()
	e.emitGlueVars(m)
	e.emitBoolGroups(m.Groups)
	e.emitIntegratedGlue(m.Variables)
	e.emitChecksum(m.Digest)
	e.emitFooter()

	return e.builder.String()
}

func (e *Emitter) emitHeader() {
	e.builder.WriteString(preamble)
}

func (e *Emitter) emitFooter() {
	e.builder.WriteString(postamble)
}

// --- Classical glue ---

func (e *Emitter) emitGlueVars(m *ast.Module) {
	groups := make(map[string]*ast.BoolGroup, len(m.Groups))
	for _, g := range m.Groups {
		groups["__"+g.Name()] = g
	}

	e.emitLine("void glueVars()")
	e.emitLine("{")
	for _, v := range m.Variables {
		if v.Size() != token.SizeGroup {
			e.glueVar(v)
			continue
		}
		if !e.opts.LegacyBitBuffers {
			continue
		}
		g, ok := groups[v.Name]
		if !ok {
			e.addError("%s has no bool group", v.Name)
			continue
		}
		for minor, name := range g.Slots {
			if name == "" {
				continue
			}
			e.glueVar(ast.Variable{Name: name, Type: v.Type, Major: g.Major, Minor: uint16(minor)})
		}
	}
	e.emitLine("}")
	e.emitLine("")
}

// glueVar writes the classical buffer assignment for v, if its location has
// a buffer and its index fits in it.
func (e *Emitter) glueVar(v ast.Variable) {
	loc := location{v.Direction(), v.Size()}
	buf, ok := classicalBuffers[loc]
	if !ok {
		if e.opts.Strict {
			e.addWarning("%s: no classical buffer for %c%c locations, only the glue table refers to it", v.Name, loc.dir, loc.size)
		}
		return
	}

	index := int(v.Major)
	if loc.dir == token.DirMemory && loc.size == token.SizeLongWord && index >= specialFunctionsBase {
		buf = specialFunctions
		index -= specialFunctionsBase
	}

	if index >= bufferSize {
		e.addWarning("***Invalid addressing on located variable %s***: %s holds %d entries", v.Name, buf.name, bufferSize)
		return
	}

	if buf.bits {
		if v.Minor >= ast.GroupSize {
			e.addWarning("***Invalid addressing on located variable %s***: %s holds %d bits per entry", v.Name, buf.name, ast.GroupSize)
			return
		}
		e.emitLine("\t%s[%d][%d] = %s;", buf.name, index, v.Minor, v.Name)
		return
	}
	e.emitLine("\t%s[%d] = %s%s;", buf.name, index, buf.cast, v.Name)
}

// --- Unified glue ---

func (e *Emitter) emitBoolGroups(groups []*ast.BoolGroup) {
	for _, g := range groups {
		name := g.Name()
		var values strings.Builder
		for _, slot := range g.Slots {
			if slot == "" {
				values.WriteString("nullptr, ")
			} else {
				values.WriteString(slot + ", ")
			}
		}
		e.emitLine("GlueBoolGroup ___%s { .index=%d, .values={ %s} };", name, g.Major, values.String())
		e.emitLine("GlueBoolGroup* __%s(&___%s);", name, name)
	}
}

func (e *Emitter) emitIntegratedGlue(vars []ast.Variable) {
	e.emitLine("/// The size of the array of glue variables.")
	e.emitLine("extern std::size_t const OPLCGLUE_GLUE_SIZE(%d);", len(vars))

	e.emitLine("/// The packed glue variables.")
	e.emitLine("extern const GlueVariable oplc_glue_vars[] = {")
	for _, v := range vars {
		e.emitLine("    %s,", symbols.FromVariable(v).Literal())
	}
	e.emitLine("};")
	e.emitLine("")
}

// Table returns the rows of the unified glue table in emission order.
func Table(m *ast.Module) []symbols.Entry {
	entries := make([]symbols.Entry, 0, len(m.Variables))
	for _, v := range m.Variables {
		entries = append(entries, symbols.FromVariable(v))
	}
	return entries
}

// --- Checksum ---

func (e *Emitter) emitChecksum(digest [16]byte) {
	e.emitLine("/// MD5 checksum of the located variables.")
	e.emitLine("/// WARNING: this must not be used to trust file contents.")
	e.builder.WriteString("extern const char OPLCGLUE_MD5_DIGEST[] = {")
	for _, c := range lib.HexChars(digest[:]) {
		fmt.Fprintf(&e.builder, "'%c', ", c)
	}
	e.emitLine("};")
	e.emitLine("")
	e.emitLine("")
}
