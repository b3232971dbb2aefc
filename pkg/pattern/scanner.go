package pattern

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/VKCOM/php-parser/pkg/ast"
	"github.com/VKCOM/php-parser/pkg/conf"
	phperrors "github.com/VKCOM/php-parser/pkg/errors"
	"github.com/VKCOM/php-parser/pkg/parser"
	"github.com/VKCOM/php-parser/pkg/position"
	"github.com/VKCOM/php-parser/pkg/version"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
)

// phpVersion is the grammar pattern sources are parsed with.
var phpVersion = &version.Version{Major: 8, Minor: 0}

// ClassSource is a class declaration found in a PHP source unit.
type ClassSource struct {
	Name    string
	Uses    []string // use imports in scope of the class
	Methods []MethodSource
}

// Method returns the method declared as name.
func (c *ClassSource) Method(name string) (MethodSource, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodSource{}, false
}

// MethodSource is one method declaration with the lines bounding its body.
// Line numbers are 1-based.
type MethodSource struct {
	Name  string
	Doc   string // raw /** */ comment preceding the declaration
	Start int    // first line of the declaration
	Open  int    // line holding the opening brace
	Close int    // line holding the closing brace

	openCol  int
	closeCol int

	decl *ast.StmtClassMethod
	unit *unit
}

// unit is a parsed source file and the offsets its lines start at.
type unit struct {
	src        []byte
	lineStarts []int
}

func newUnit(src []byte) *unit {
	u := &unit{src: src, lineStarts: []int{0}}
	for i, c := range src {
		if c == '\n' {
			u.lineStarts = append(u.lineStarts, i+1)
		}
	}
	return u
}

// text is the source text spanned by n, or "" for an absent node.
func (u *unit) text(n ast.Vertex) string {
	pos := positionOf(n)
	if pos == nil || pos.StartPos < 0 || pos.EndPos > len(u.src) || pos.StartPos > pos.EndPos {
		return ""
	}
	return string(u.src[pos.StartPos:pos.EndPos])
}

// column is the 0-based byte column of offset on the 1-based line.
func (u *unit) column(line, offset int) int {
	return offset - u.lineStarts[line-1]
}

func positionOf(n ast.Vertex) *position.Position {
	if n == nil {
		return nil
	}
	if v := reflect.ValueOf(n); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	return n.GetPosition()
}

// scanClass parses src and collects the methods declared directly on class.
func scanClass(src []byte, class string) (*ClassSource, error) {
	var syntax []*phperrors.Error
	root, err := parser.Parse(src, conf.Config{
		Version: phpVersion,
		ErrorHandlerFunc: func(e *phperrors.Error) {
			syntax = append(syntax, e)
		},
	})
	if err != nil {
		return nil, errors.WrapReflection(err, "parsing pattern source")
	}
	if len(syntax) > 0 {
		e := syntax[0]
		if e.Pos != nil {
			return nil, errors.Reflection("syntax error at line %d: %s", e.Pos.StartLine, e.Msg)
		}
		return nil, errors.Reflection("syntax error: %s", e.Msg)
	}

	r, ok := root.(*ast.Root)
	if !ok {
		return nil, errors.Reflection("unexpected syntax tree root %T", root)
	}
	u := newUnit(src)
	cls, err := u.findClass(r.Stmts, class, nil)
	if err != nil {
		return nil, err
	}
	if cls == nil {
		return nil, errors.Reflection("class %s not found", class)
	}
	return cls, nil
}

// findClass searches stmts for class, tracking the use imports in scope. A
// braced namespace opens a fresh import scope.
func (u *unit) findClass(stmts []ast.Vertex, class string, uses []string) (*ClassSource, error) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.StmtNamespace:
			if n.Stmts == nil {
				uses = nil
				continue
			}
			cls, err := u.findClass(n.Stmts, class, nil)
			if cls != nil || err != nil {
				return cls, err
			}
		case *ast.StmtClass:
			if u.text(n.Name) == class {
				return u.classSource(class, uses, n.OpenCurlyBracketTkn.Position.EndPos, n.Stmts)
			}
		case *ast.StmtTrait:
			if u.text(n.Name) == class {
				return u.classSource(class, uses, n.OpenCurlyBracketTkn.Position.EndPos, n.Stmts)
			}
		default:
			uses = append(uses, useNames(u.text(stmt))...)
		}
	}
	return nil, nil
}

// classSource collects the methods among members. bodyStart is the offset
// just past the class's opening brace.
func (u *unit) classSource(class string, uses []string, bodyStart int, members []ast.Vertex) (*ClassSource, error) {
	cls := &ClassSource{Name: class, Uses: uses}
	prevEnd := bodyStart
	for _, member := range members {
		pos := positionOf(member)
		if pos == nil {
			continue
		}
		gap := u.src[prevEnd:pos.StartPos]
		prevEnd = pos.EndPos

		decl, ok := member.(*ast.StmtClassMethod)
		if !ok {
			continue
		}
		name := u.text(decl.Name)
		body, ok := decl.Stmt.(*ast.StmtStmtList)
		if !ok {
			return nil, errors.Reflection("method %s::%s has no body", class, name)
		}
		open := body.OpenCurlyBracketTkn.Position
		closing := body.CloseCurlyBracketTkn.Position
		cls.Methods = append(cls.Methods, MethodSource{
			Name:     name,
			Doc:      docBefore(gap),
			Start:    pos.StartLine,
			Open:     open.StartLine,
			Close:    closing.StartLine,
			openCol:  u.column(open.StartLine, open.StartPos),
			closeCol: u.column(closing.StartLine, closing.StartPos),
			decl:     decl,
			unit:     u,
		})
	}
	return cls, nil
}

// docBefore returns the /** */ comment ending gap, if nothing but
// whitespace follows it.
func docBefore(gap []byte) string {
	end := bytes.LastIndex(gap, []byte("*/"))
	if end < 0 || len(bytes.TrimSpace(gap[end+2:])) > 0 {
		return ""
	}
	start := bytes.LastIndex(gap[:end], []byte("/**"))
	if start < 0 {
		return ""
	}
	return string(gap[start : end+2])
}

// useNames lists the classes imported by a use statement. Function and
// constant imports are skipped; group imports are expanded.
func useNames(stmt string) []string {
	stmt = strings.TrimSpace(stmt)
	rest, ok := strings.CutPrefix(stmt, "use")
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' && rest[0] != '\\') {
		return nil
	}
	rest = strings.TrimSpace(strings.TrimSuffix(rest, ";"))
	if strings.HasPrefix(rest, "function ") || strings.HasPrefix(rest, "const ") {
		return nil
	}

	prefix := ""
	if i := strings.IndexByte(rest, '{'); i >= 0 {
		prefix = strings.TrimSpace(rest[:i])
		rest = strings.TrimSuffix(strings.TrimSpace(rest[i+1:]), "}")
	}
	var names []string
	for _, part := range strings.Split(rest, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, strings.TrimPrefix(prefix+part, `\`))
		}
	}
	return names
}

// checkBoundaries verifies that a method body starts and ends on lines of
// its own, so the line range can be transplanted.
func checkBoundaries(lines []string, m MethodSource) error {
	if m.Open >= m.Close {
		return errors.Reflection("method %s: body must not share a line with its braces", m.Name)
	}
	open := lines[m.Open-1]
	if rest := strings.TrimSpace(open[m.openCol+1:]); rest != "" && !strings.HasPrefix(rest, "//") {
		return errors.Reflection("method %s: code after opening brace on line %d", m.Name, m.Open)
	}
	closing := lines[m.Close-1]
	if strings.TrimSpace(closing[:m.closeCol]) != "" {
		return errors.Reflection("method %s: code before closing brace on line %d", m.Name, m.Close)
	}
	return nil
}
