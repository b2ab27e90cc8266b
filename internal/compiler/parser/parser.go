package parser

import (
	"bufio"
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/arnavsurve/gluegen/internal/compiler/ast"
	"github.com/arnavsurve/gluegen/internal/compiler/diag"
	"github.com/arnavsurve/gluegen/internal/compiler/lexer"
	"github.com/arnavsurve/gluegen/internal/compiler/token"
)

// MalformedDeclarationError reports a line that is not a declaration. The
// line is skipped; the lines after it are read normally.
type MalformedDeclarationError struct {
	Line int
	Raw  string
	Err  error
}

func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("%d: malformed declaration %q: %v", e.Line, e.Raw, e.Err)
}

func (e *MalformedDeclarationError) Unwrap() error {
	return e.Err
}

type Parser struct {
	r        *bufio.Reader
	reporter diag.Reporter
	lineNo   int
	digest   hash.Hash
	sum      *[16]byte

	errors    []string
	warnings  []string
	malformed []*MalformedDeclarationError
}

func NewParser(r io.Reader, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.Discard()
	}
	return &Parser{
		r:        bufio.NewReader(r),
		reporter: reporter,
		digest:   md5.New(),
		errors:   []string{},
		warnings: []string{},
	}
}

func (p *Parser) addError(err *MalformedDeclarationError) {
	p.malformed = append(p.malformed, err)
	p.errors = append(p.errors, err.Error())
	p.reporter.Errorf("%s", err.Error())
}

func (p *Parser) addWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.warnings = append(p.warnings, msg)
	p.reporter.Warnf("%s", msg)
}

// Errors returns one message per skipped line.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) Warnings() []string {
	return p.warnings
}

// Malformed returns the skipped lines.
func (p *Parser) Malformed() []*MalformedDeclarationError {
	return p.malformed
}

// readLine returns the next line without its '\n' and feeds it to the
// checksum. A '\r' before the '\n' is kept, the line is hashed as it was
// written.
func (p *Parser) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line == "" && errors.Is(err, io.EOF) {
		return "", io.EOF
	}
	line = strings.TrimSuffix(line, "\n")
	p.lineNo++
	p.digest.Write([]byte(line))
	return line, nil
}

// Next returns the next declaration. It returns io.EOF once the input is
// exhausted and a *MalformedDeclarationError for a line that could not be
// read as a declaration; the caller may keep calling Next after either
// kind of line error. Blank lines are skipped.
func (p *Parser) Next() (*ast.Declaration, error) {
	for {
		raw, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}

		typ, name, err := lexer.ScanDeclaration(raw)
		if err != nil {
			return nil, &MalformedDeclarationError{Line: p.lineNo, Raw: raw, Err: err}
		}
		return &ast.Declaration{Line: p.lineNo, Raw: raw, Type: typ, Name: name}, nil
	}
}

// ParseVariables reads the whole input and decodes every declaration.
// Malformed lines are recorded and skipped. Only read failures are returned.
func (p *Parser) ParseVariables() ([]ast.Variable, error) {
	var vars []ast.Variable
	for {
		decl, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var malformed *MalformedDeclarationError
		if errors.As(err, &malformed) {
			p.addError(malformed)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", p.lineNo+1, err)
		}

		p.reporter.Infof("varName: %s\tvarType: %s", decl.Name, decl.Type)

		v, err := p.decode(decl)
		if err != nil {
			p.addError(&MalformedDeclarationError{Line: decl.Line, Raw: decl.Raw, Err: err})
			continue
		}
		if !v.ValueType().Known() {
			p.addWarning("%d: %s has type %s which has no IECVT_ tag", decl.Line, decl.Name, decl.Type)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func (p *Parser) decode(decl *ast.Declaration) (ast.Variable, error) {
	if _, _, ok := token.Classify(decl.Name); !ok {
		return ast.Variable{}, fmt.Errorf("name %q is too short to be a location", decl.Name)
	}
	major, minor, err := token.DecodeAddress(decl.Name)
	if err != nil {
		return ast.Variable{}, err
	}
	return ast.Variable{Name: decl.Name, Type: decl.Type, Major: major, Minor: minor}, nil
}

// Digest finalizes the checksum of every line read so far. The first call
// fixes the value; call it after the input is exhausted.
func (p *Parser) Digest() [16]byte {
	if p.sum == nil {
		var sum [16]byte
		copy(sum[:], p.digest.Sum(nil))
		p.sum = &sum
	}
	return *p.sum
}

// Lines returns the number of lines read, blank and malformed ones included.
func (p *Parser) Lines() int {
	return p.lineNo
}

// ParseModule reads the whole input, merges the bit groups and finalizes
// the checksum.
func (p *Parser) ParseModule() (*ast.Module, error) {
	vars, err := p.ParseVariables()
	if err != nil {
		return nil, err
	}

	merged, groups, warnings := Merge(vars)
	for _, w := range warnings {
		p.addWarning("%s", w)
	}

	p.reporter.Infof("%d located variables, %d glue entries, %d bool groups", len(vars), len(merged), len(groups))

	return &ast.Module{
		Variables: merged,
		Groups:    groups,
		Digest:    p.Digest(),
		Lines:     p.Lines(),
	}, nil
}
