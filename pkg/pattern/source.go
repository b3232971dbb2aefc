package pattern

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// DefaultClass is the class name of the built-in pattern.
const DefaultClass = "BaseTypePattern"

// DefaultPath is the path of the built-in pattern inside Embedded.
const DefaultPath = "patterns/BaseTypePattern.php"

// Embedded holds the built-in pattern sources.
//
//go:embed patterns/*.php
var Embedded embed.FS

// Source yields a reflected pattern.
type Source interface {
	Reflect() (*model.Pattern, error)
}

// Default reflects the built-in BaseTypePattern.
func Default(opts ...ReflectorOption) *Reflector {
	return NewReflector(NewFSLocator(Embedded, DefaultPath), DefaultClass, opts...)
}

// FromFile reflects class from the PHP file at path.
func FromFile(path, class string, opts ...ReflectorOption) *Reflector {
	return NewReflector(NewFSLocator(os.DirFS(filepath.Dir(path)), filepath.Base(path)), class, opts...)
}

// FromFS reflects class from the PHP file at path inside fsys.
func FromFS(fsys fs.FS, path, class string, opts ...ReflectorOption) *Reflector {
	return NewReflector(NewFSLocator(fsys, path), class, opts...)
}

// Static serves a statically declared pattern table.
type Static struct {
	Pattern *model.Pattern
}

// Reflect returns a copy of the table.
func (s Static) Reflect() (*model.Pattern, error) {
	if s.Pattern == nil {
		return &model.Pattern{}, nil
	}
	out := &model.Pattern{
		Name:    s.Pattern.Name,
		Uses:    append([]string(nil), s.Pattern.Uses...),
		Methods: make([]model.PatternMethod, len(s.Pattern.Methods)),
	}
	for i, m := range s.Pattern.Methods {
		m.Parameters = append([]model.Parameter(nil), m.Parameters...)
		out.Methods[i] = m
	}
	return out, nil
}
