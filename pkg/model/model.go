package model

import "strings"

// SchemaElement is one typed field derived from a schema unit.
type SchemaElement struct {
	Name      string `json:"name" yaml:"name" toml:"name" mapstructure:"name"`
	Kind      string `json:"kind" yaml:"kind" toml:"kind" mapstructure:"kind"` // primitive tag or a generated type name
	Nullable  bool   `json:"nullable,omitempty" yaml:"nullable,omitempty" toml:"nullable,omitempty" mapstructure:"nullable,omitempty"`
	Arrayable bool   `json:"arrayable,omitempty" yaml:"arrayable,omitempty" toml:"arrayable,omitempty" mapstructure:"arrayable,omitempty"`
}

// NormalizedType is the resolved PHP type expression of a SchemaElement.
type NormalizedType struct {
	Base       string // builtin, global class or reference, after kind substitution
	IsArray    bool
	IsNullable bool
	DocOnly    bool // cannot be expressed as one native annotation
	Global     bool // Base is a builtin or a global class, never namespace-qualified
}

// Expression renders the documentation form: Base, "[]" when array, "|null" when nullable.
func (n NormalizedType) Expression() string {
	var sb strings.Builder
	sb.WriteString(n.Base)
	if n.IsArray {
		sb.WriteString("[]")
	}
	if n.IsNullable {
		sb.WriteString("|null")
	}
	return sb.String()
}

// PropertyBinding is the outcome of binding a SchemaElement for one target profile.
// Empty strings mean "absent".
type PropertyBinding struct {
	NativeType  string // concrete native type, fully qualified without leading backslash
	DocType     string // @var annotation
	StorageType string // erased container used in place of NativeType
}

// Declared returns the type written in the property declaration, if any.
func (b PropertyBinding) Declared() string {
	if b.NativeType != "" {
		return b.NativeType
	}
	return b.StorageType
}

// Visibility of a reconstructed method. The zero value is invalid.
type Visibility int

const (
	VisibilityInvalid Visibility = iota
	Public
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "invalid"
	}
}

// ParseVisibility maps a PHP modifier keyword to a Visibility.
func ParseVisibility(s string) (Visibility, bool) {
	switch strings.ToLower(s) {
	case "public":
		return Public, true
	case "protected":
		return Protected, true
	case "private":
		return Private, true
	}
	return VisibilityInvalid, false
}

// Parameter of a PatternMethod.
type Parameter struct {
	Name       string // without the leading $
	Type       string // empty when untyped
	Nullable   bool
	HasDefault bool
	Default    string // verbatim constant expression
}

// PatternMethod is one method reconstructed from the canonical pattern.
type PatternMethod struct {
	Name           string
	Visibility     Visibility
	Static         bool
	ReturnType     string // empty when undeclared
	ReturnNullable bool
	Parameters     []Parameter
	DocComment     string // comment text without the /** */ delimiters
	Body           string
}

// Pattern is a reflected pattern class.
type Pattern struct {
	Name    string
	Uses    []string // imports declared by the pattern source
	Methods []PatternMethod
}

// Property of a generated class.
type Property struct {
	Name    string
	Binding PropertyBinding
	Comment string // extra doc line, e.g. the base64 note
}

// Member is either a property or a method; exactly one is set.
type Member struct {
	Property *Property
	Method   *PatternMethod
}

// ArtifactKind is the construct a GeneratedArtifact declares.
type ArtifactKind int

const (
	KindClass ArtifactKind = iota
	KindTrait
)

func (k ArtifactKind) String() string {
	if k == KindTrait {
		return "trait"
	}
	return "class"
}

// GeneratedArtifact is one output file containing one class or trait.
type GeneratedArtifact struct {
	Namespace string // PHP namespace, backslash delimited
	TypeName  string
	Kind      ArtifactKind
	Comment   string   // file header comment
	Uses      []string // fully qualified imports
	Traits    []string // traits used by a class
	Members   []Member
}

// AddProperty appends a property member.
func (a *GeneratedArtifact) AddProperty(p Property) {
	a.Members = append(a.Members, Member{Property: &p})
}

// AddMethod appends a method member.
func (a *GeneratedArtifact) AddMethod(m PatternMethod) {
	a.Members = append(a.Members, Member{Method: &m})
}
