// Package printer serializes generated artifacts to PHP source text.
package printer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/internal/typemap"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// Printer is deterministic: identical artifacts print identical text.
type Printer struct {
	Indent      string
	StrictTypes bool
}

// New returns a Printer using four-space indentation and strict types.
func New() *Printer {
	return &Printer{Indent: "    ", StrictTypes: true}
}

// Print renders a as a complete PHP file.
func (p *Printer) Print(a *model.GeneratedArtifact) ([]byte, error) {
	if a.TypeName == "" {
		return nil, errors.New("artifact has no type name")
	}

	var sb strings.Builder
	sb.WriteString("<?php\n\n")
	if a.Comment != "" {
		p.writeDoc(&sb, "", a.Comment)
		sb.WriteString("\n")
	}
	if p.StrictTypes {
		sb.WriteString("declare(strict_types=1);\n\n")
	}
	ns := strings.Trim(a.Namespace, `\`)
	if ns != "" {
		fmt.Fprintf(&sb, "namespace %s;\n\n", ns)
	}

	uses := sortedUnique(a.Uses)
	for _, u := range uses {
		fmt.Fprintf(&sb, "use %s;\n", strings.TrimPrefix(u, `\`))
	}
	if len(uses) > 0 {
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%s %s\n{\n", a.Kind, a.TypeName)

	var blocks []string
	if len(a.Traits) > 0 {
		var tb strings.Builder
		for _, t := range a.Traits {
			fmt.Fprintf(&tb, "%suse %s;\n", p.Indent, t)
		}
		blocks = append(blocks, tb.String())
	}
	r := resolver{namespace: ns, uses: uses}
	for i, m := range a.Members {
		var (
			block string
			err   error
		)
		switch {
		case m.Property != nil && m.Method == nil:
			block = p.property(m.Property, r)
		case m.Method != nil && m.Property == nil:
			block, err = p.method(m.Method)
		default:
			err = errors.Newf("member %d of %s must be either a property or a method", i, a.TypeName)
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	sb.WriteString(strings.Join(blocks, "\n"))
	sb.WriteString("}\n")

	return []byte(sb.String()), nil
}

func (p *Printer) property(prop *model.Property, r resolver) string {
	var (
		sb  strings.Builder
		doc []string
	)
	if prop.Comment != "" {
		doc = append(doc, prop.Comment)
	}
	if prop.Binding.DocType != "" {
		doc = append(doc, "@var "+prop.Binding.DocType)
	}
	if len(doc) > 0 {
		p.writeDoc(&sb, p.Indent, strings.Join(doc, "\n"))
	}

	sb.WriteString(p.Indent + "public ")
	if declared := prop.Binding.Declared(); declared != "" {
		sb.WriteString(r.typeExpr(declared) + " ")
	}
	sb.WriteString("$" + prop.Name + ";\n")
	return sb.String()
}

func (p *Printer) method(m *model.PatternMethod) (string, error) {
	if m.Visibility == model.VisibilityInvalid {
		return "", errors.Newf("method %s has no visibility", m.Name)
	}

	var sb strings.Builder
	if m.DocComment != "" {
		p.writeDoc(&sb, p.Indent, m.DocComment)
	}

	sb.WriteString(p.Indent + m.Visibility.String())
	if m.Static {
		sb.WriteString(" static")
	}
	sb.WriteString(" function " + m.Name + "(")
	for i, param := range m.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		if param.Type != "" {
			sb.WriteString(nullableType(param.Type, param.Nullable) + " ")
		}
		sb.WriteString("$" + param.Name)
		if param.HasDefault {
			sb.WriteString(" = " + param.Default)
		}
	}
	sb.WriteString(")")
	if m.ReturnType != "" {
		sb.WriteString(": " + nullableType(m.ReturnType, m.ReturnNullable))
	}
	sb.WriteString("\n" + p.Indent + "{\n")

	if m.Body != "" {
		for _, line := range strings.Split(strings.TrimSuffix(m.Body, "\n"), "\n") {
			if strings.TrimSpace(line) == "" {
				sb.WriteString("\n")
				continue
			}
			sb.WriteString(p.Indent + p.Indent + line + "\n")
		}
	}
	sb.WriteString(p.Indent + "}\n")
	return sb.String(), nil
}

// writeDoc writes text as a doc comment; a single line stays on one line.
func (p *Printer) writeDoc(sb *strings.Builder, indent, text string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		fmt.Fprintf(sb, "%s/** %s */\n", indent, text)
		return
	}
	sb.WriteString(indent + "/**\n")
	for _, l := range lines {
		if l == "" {
			sb.WriteString(indent + " *\n")
			continue
		}
		sb.WriteString(indent + " * " + l + "\n")
	}
	sb.WriteString(indent + " */\n")
}

func nullableType(t string, nullable bool) string {
	if !nullable || strings.EqualFold(t, "mixed") || strings.EqualFold(t, "null") {
		return t
	}
	if strings.Contains(t, "|") {
		return t + "|null"
	}
	return "?" + t
}

// resolver shortens fully qualified names relative to the file's namespace
// and imports.
type resolver struct {
	namespace string
	uses      []string
}

func (r resolver) typeExpr(t string) string {
	if strings.HasPrefix(t, "?") {
		return "?" + r.name(t[1:])
	}
	if strings.Contains(t, "|") {
		parts := strings.Split(t, "|")
		for i, part := range parts {
			parts[i] = r.name(part)
		}
		return strings.Join(parts, "|")
	}
	return r.name(t)
}

func (r resolver) name(n string) string {
	if typemap.IsBuiltin(strings.ToLower(n)) {
		return n
	}
	n = strings.TrimPrefix(n, `\`)
	for _, u := range r.uses {
		if strings.TrimPrefix(u, `\`) == n {
			return n[strings.LastIndex(n, `\`)+1:]
		}
	}
	if r.namespace != "" && strings.HasPrefix(n, r.namespace+`\`) {
		if rest := strings.TrimPrefix(n, r.namespace+`\`); !strings.Contains(rest, `\`) {
			return rest
		}
	}
	if r.namespace == "" {
		return n
	}
	return `\` + n
}

func sortedUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
