package pattern

import (
	"strings"

	"github.com/VKCOM/php-parser/pkg/ast"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// signature reads the declaration of ms into a PatternMethod without doc
// comment and body.
func (ms MethodSource) signature() (model.PatternMethod, error) {
	m := model.PatternMethod{Name: ms.Name}
	decl := ms.decl
	if decl == nil {
		return m, errors.Reflection("method %s has no declaration", ms.Name)
	}
	if decl.AmpersandTkn != nil {
		return m, errors.Reflection("method %s returns by reference", m.Name)
	}

	for _, mod := range decl.Modifiers {
		word := ms.unit.text(mod)
		if v, ok := model.ParseVisibility(word); ok {
			if m.Visibility == model.VisibilityInvalid {
				m.Visibility = v
			}
			continue
		}
		switch strings.ToLower(word) {
		case "static":
			m.Static = true
		case "abstract":
			return m, errors.Reflection("method %s is abstract", m.Name)
		}
	}
	if m.Visibility == model.VisibilityInvalid {
		return m, errors.Reflection("method %s has no explicit visibility", m.Name)
	}

	for _, v := range decl.Params {
		param, ok := v.(*ast.Parameter)
		if !ok {
			return m, errors.Reflection("method %s: unexpected parameter node %T", m.Name, v)
		}
		p, err := ms.unit.parameter(param)
		if err != nil {
			return m, errors.Wrapf(err, "method %s", m.Name)
		}
		m.Parameters = append(m.Parameters, p)
	}

	m.ReturnType, m.ReturnNullable = splitNullable(ms.unit.text(decl.ReturnType))
	return m, nil
}

func (u *unit) parameter(param *ast.Parameter) (model.Parameter, error) {
	name := u.text(param.Var)
	if param.AmpersandTkn != nil || param.VariadicTkn != nil {
		return model.Parameter{}, errors.Reflection("parameter %s: by-reference and variadic parameters are not supported", name)
	}
	if !strings.HasPrefix(name, "$") || len(name) < 2 {
		return model.Parameter{}, errors.Reflection("parameter %q has no name", name)
	}

	p := model.Parameter{Name: name[1:]}
	p.Type, p.Nullable = splitNullable(u.text(param.Type))
	if param.DefaultValue != nil {
		p.HasDefault = true
		p.Default = strings.TrimSpace(u.text(param.DefaultValue))
		// PHP treats a typed parameter defaulting to null as nullable.
		if p.Type != "" && strings.EqualFold(p.Default, "null") {
			p.Nullable = true
		}
	}
	return p, nil
}

// splitNullable strips "?T" and "T|null" into the type name and a nullable flag.
func splitNullable(t string) (string, bool) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", false
	}
	if strings.HasPrefix(t, "?") {
		return strings.TrimSpace(t[1:]), true
	}
	if !strings.Contains(t, "|") {
		return t, false
	}
	var (
		parts    []string
		nullable bool
	)
	for _, part := range strings.Split(t, "|") {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, "null") {
			nullable = true
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "|"), nullable
}

// docText strips the comment delimiters and leading asterisks from raw.
func docText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")

	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "*")
		if strings.HasPrefix(l, " ") {
			l = l[1:]
		}
		lines = append(lines, strings.TrimRight(l, " \t\r"))
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
