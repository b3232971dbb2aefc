package pattern

import (
	"log/slog"
	"strings"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// DefaultIndentWidth is the indentation of a method body relative to its
// declaration line.
const DefaultIndentWidth = 4

// Reflector reconstructs the methods of a pattern class from its source.
type Reflector struct {
	Locator Locator
	Class   string

	// IndentWidth is stripped from body lines on top of the declaration's
	// own indentation.
	IndentWidth int
	// DetectIndent strips the indentation of the first non-blank body line
	// instead of IndentWidth.
	DetectIndent bool

	Logger *slog.Logger
}

// ReflectorOption configures a Reflector.
type ReflectorOption func(*Reflector)

func WithIndentWidth(w int) ReflectorOption     { return func(r *Reflector) { r.IndentWidth = w } }
func WithDetectIndent() ReflectorOption         { return func(r *Reflector) { r.DetectIndent = true } }
func WithLogger(l *slog.Logger) ReflectorOption { return func(r *Reflector) { r.Logger = l } }

// NewReflector returns a Reflector for class located through loc.
func NewReflector(loc Locator, class string, opts ...ReflectorOption) *Reflector {
	r := &Reflector{
		Locator:     loc,
		Class:       class,
		IndentWidth: DefaultIndentWidth,
		Logger:      slog.Default(),
	}
	for _, fn := range opts {
		fn(r)
	}
	return r
}

// Reflect enumerates the methods declared on the pattern class, in
// declaration order, and transplants their bodies.
func (r *Reflector) Reflect() (*model.Pattern, error) {
	if r.Locator == nil {
		return nil, errors.Reflection("no locator for pattern %s", r.Class)
	}
	cls, err := r.Locator.Class(r.Class)
	if err != nil {
		return nil, err
	}

	p := &model.Pattern{
		Name:    cls.Name,
		Uses:    append([]string(nil), cls.Uses...),
		Methods: make([]model.PatternMethod, 0, len(cls.Methods)),
	}
	for _, ms := range cls.Methods {
		m, err := ms.signature()
		if err != nil {
			return nil, errors.WrapReflection(err, r.Class+"::"+ms.Name)
		}
		m.DocComment = docText(ms.Doc)

		loc, err := r.Locator.Locate(r.Class, ms.Name)
		if err != nil {
			return nil, err
		}
		m.Body = r.body(loc)

		r.logger().Debug("reflected pattern method",
			"class", r.Class,
			"method", m.Name,
			"visibility", m.Visibility.String(),
			"static", m.Static,
			"parameters", len(m.Parameters))
		p.Methods = append(p.Methods, m)
	}
	return p, nil
}

func (r *Reflector) body(loc Location) string {
	width := indentColumns(loc.Lines[loc.Start-1]) + r.IndentWidth
	if r.DetectIndent {
		width = 0
		for i := loc.Open; i < loc.Close-1; i++ {
			if strings.TrimSpace(loc.Lines[i]) != "" {
				width = indentColumns(loc.Lines[i])
				break
			}
		}
	}
	return Transplant(loc.Lines, loc.Open, loc.Close, width)
}

func (r *Reflector) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Transplant extracts the lines strictly between the 1-based lines open and
// close, strips up to width columns of leading whitespace from each, and
// joins them with newlines. A line left blank becomes a bare newline.
func Transplant(lines []string, open, close, width int) string {
	var sb strings.Builder
	for i := open; i < close-1 && i < len(lines); i++ {
		sb.WriteString(stripIndent(lines[i], width))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripIndent removes up to width columns of leading whitespace. Tabs count
// as four columns. Only whitespace is ever removed.
func stripIndent(line string, width int) string {
	line = strings.TrimRight(line, "\r")
	i, col := 0, 0
	for i < len(line) && col < width {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			if col+4 > width {
				return blankToEmpty(line[i:])
			}
			col += 4
		default:
			return blankToEmpty(line[i:])
		}
		i++
	}
	return blankToEmpty(line[i:])
}

func blankToEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func indentColumns(line string) int {
	col := 0
	for _, c := range line {
		switch c {
		case ' ':
			col++
		case '\t':
			col += 4
		default:
			return col
		}
	}
	return col
}
