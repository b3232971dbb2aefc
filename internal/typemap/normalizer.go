package typemap

import (
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// Base64Kind is the schema kind carrying base64-encoded data.
const Base64Kind = "base64Binary"

// Base64Comment annotates properties whose schema kind is Base64Kind.
const Base64Comment = "Contains base64Binary string"

// KindMapping maps schema primitive kinds to PHP base types.
// Kinds not listed pass through unchanged and are treated as references to
// other generated types.
var KindMapping = map[string]string{
	"dateTime":         "DateTime",
	"date":             "DateTime",
	"base64Binary":     "string",
	"boolean":          "bool",
	"integer":          "int",
	"int":              "int",
	"long":             "int",
	"short":            "int",
	"byte":             "int",
	"unsignedInt":      "int",
	"unsignedLong":     "int",
	"unsignedShort":    "int",
	"double":           "float",
	"decimal":          "float",
	"float":            "float",
	"string":           "string",
	"anyURI":           "string",
	"token":            "string",
	"normalizedString": "string",
}

// builtins are PHP type keywords; they are never qualified by a namespace.
var builtins = map[string]bool{
	"int":      true,
	"float":    true,
	"string":   true,
	"bool":     true,
	"array":    true,
	"mixed":    true,
	"object":   true,
	"iterable": true,
	"callable": true,
	"self":     true,
	"static":   true,
	"void":     true,
	"null":     true,
}

// globalClasses live in the root namespace.
var globalClasses = map[string]bool{
	"DateTime":          true,
	"DateTimeImmutable": true,
	"DateTimeInterface": true,
	"ReflectionClass":   true,
	"JsonSerializable":  true,
	"stdClass":          true,
}

// IsBuiltin reports whether name is a PHP type keyword.
func IsBuiltin(name string) bool {
	return builtins[name]
}

// IsGlobal reports whether name must not be qualified by the artifact namespace.
func IsGlobal(name string) bool {
	return builtins[name] || globalClasses[name]
}

// Normalize resolves the type expression of el. Rules apply in order: kind
// substitution, then the array marker, then the nullable marker.
func Normalize(el model.SchemaElement) model.NormalizedType {
	base := el.Kind
	if mapped, ok := KindMapping[base]; ok {
		base = mapped
	}

	nt := model.NormalizedType{
		Base:   base,
		Global: IsGlobal(base),
	}
	if el.Arrayable {
		nt.IsArray = true
		nt.DocOnly = true
	}
	if el.Nullable {
		nt.IsNullable = true
	}
	return nt
}

// DocComment returns the extra annotation for el, or "" when there is none.
// It looks at the kind before substitution.
func DocComment(el model.SchemaElement) string {
	if el.Kind == Base64Kind {
		return Base64Comment
	}
	return ""
}
