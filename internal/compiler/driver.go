package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arnavsurve/gluegen/internal/compiler/ast"
	"github.com/arnavsurve/gluegen/internal/compiler/diag"
	"github.com/arnavsurve/gluegen/internal/compiler/emitter"
	"github.com/arnavsurve/gluegen/internal/compiler/parser"
	"github.com/arnavsurve/gluegen/internal/compiler/symbols"
)

const (
	DefaultInput  = "LOCATED_VARIABLES.h"
	DefaultOutput = "glueVars.cpp"
)

// Exit statuses of the gluegen binary.
const (
	ExitOK           = 0
	ExitInputOpen    = 1
	ExitOutputOpen   = 2
	ExitStrict       = 3
	ExitOtherFailure = 4
)

// ErrStrict is returned in strict mode when the input had lines that could
// not be read as declarations.
var ErrStrict = errors.New("strict mode: input has malformed declarations")

// ExitCoder is implemented by errors that carry their own exit status.
type ExitCoder interface {
	ExitCode() int
}

type Side string

const (
	SideInput  Side = "located variables"
	SideOutput Side = "glue variables"
)

// OpenError reports that the input or output file could not be opened.
type OpenError struct {
	Side Side
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("Error opening %s file at %s: %v", e.Side, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

func (e *OpenError) ExitCode() int {
	if e.Side == SideOutput {
		return ExitOutputOpen
	}
	return ExitInputOpen
}

type strictError struct {
	malformed int
}

func (e *strictError) Error() string {
	return fmt.Sprintf("%v (%d lines)", ErrStrict, e.malformed)
}

func (e *strictError) Unwrap() error {
	return ErrStrict
}

func (e *strictError) ExitCode() int {
	return ExitStrict
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitOtherFailure
}

type Options struct {
	// Strict fails the run when any line is malformed and reports locations
	// that have no classical buffer.
	Strict bool
	// LegacyBitBuffers also writes grouped bits into bool_input/bool_output.
	LegacyBitBuffers bool
}

// Result summarises one generation run.
type Result struct {
	Module    *ast.Module
	Malformed int
	Warnings  []string
}

// Generate reads located variable declarations from r and writes the glue
// translation unit to w.
func Generate(ctx context.Context, r io.Reader, w io.Writer, opts Options, reporter diag.Reporter) (*Result, error) {
	if reporter == nil {
		reporter = diag.Discard()
	}

	p := parser.NewParser(r, reporter)
	m, err := p.ParseModule()
	if err != nil {
		return nil, err
	}
	res := &Result{
		Module:    m,
		Malformed: len(p.Malformed()),
		Warnings:  p.Warnings(),
	}

	if opts.Strict && res.Malformed > 0 {
		return res, &strictError{malformed: res.Malformed}
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	em := emitter.NewEmitter(emitter.Options{
		Strict:           opts.Strict,
		LegacyBitBuffers: opts.LegacyBitBuffers,
	}, reporter)
	out := em.Emit(m)
	if errs := em.Errors(); len(errs) > 0 {
		return res, fmt.Errorf("emitter errors: %v", errs)
	}
	res.Warnings = append(res.Warnings, em.Warnings()...)

	if _, err := io.WriteString(w, out); err != nil {
		return res, fmt.Errorf("writing glue variables: %w", err)
	}
	return res, nil
}

// GenerateFiles opens the input, then creates (truncating) the output and
// runs Generate. A missing input never creates the output file. In strict
// mode nothing is written when the input is rejected.
func GenerateFiles(ctx context.Context, inPath, outPath string, opts Options, reporter diag.Reporter) (*Result, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, &OpenError{Side: SideInput, Path: inPath, Err: err}
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, &OpenError{Side: SideOutput, Path: outPath, Err: err}
	}

	var buf bytes.Buffer
	res, genErr := Generate(ctx, in, &buf, opts, reporter)
	if genErr == nil {
		_, genErr = buf.WriteTo(out)
		if genErr != nil {
			genErr = fmt.Errorf("writing %s: %w", outPath, genErr)
		}
	}
	if err := out.Close(); err != nil && genErr == nil {
		genErr = fmt.Errorf("closing %s: %w", outPath, err)
	}
	return res, genErr
}

// Inspect parses and merges the declarations in path and returns the rows
// the unified glue table would get.
func Inspect(ctx context.Context, path string, reporter diag.Reporter) ([]symbols.Entry, *ast.Module, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, nil, &OpenError{Side: SideInput, Path: path, Err: err}
	}
	defer in.Close()

	m, err := parser.NewParser(in, reporter).ParseModule()
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return emitter.Table(m), m, nil
}
