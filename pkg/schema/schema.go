// Package schema loads schema documents: the list of types and their
// elements that drive generation.
package schema

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/internal/typemap"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// Format of a schema document.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	TOML Format = "toml"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Type is one schema type and its elements in declaration order.
type Type struct {
	Name     string                `json:"name" yaml:"name" toml:"name"`
	Elements []model.SchemaElement `json:"elements" yaml:"elements" toml:"elements"`
}

// Document is a parsed schema document. Namespace and PhpVersion are
// optional and override the configured values when set.
type Document struct {
	Namespace  string `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	PhpVersion string `json:"php_version,omitempty" yaml:"php_version,omitempty" toml:"php_version,omitempty"`
	Types      []Type `json:"types" yaml:"types" toml:"types"`
}

// FormatOf infers the document format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	}
	return "", errors.WithHint(
		errors.InvalidSchema("unsupported schema document %s", path),
		"use a .yaml, .yml, .json or .toml file")
}

// Load reads, parses and validates the schema document at path.
func Load(fsys afero.Fs, path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read schema %s", path), errors.ErrInvalidSchema)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "schema %s", path)
	}
	return doc, nil
}

// Parse decodes data and validates the result. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.InvalidSchema("decode yaml: %v", err)
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.InvalidSchema("decode json: %v", err)
		}
	case TOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.InvalidSchema("decode toml: %v", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.InvalidSchema("decode toml: unknown key %s", undecoded[0])
		}
	default:
		return nil, errors.InvalidSchema("unknown format %q", format)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks names and kinds. Type names must be unique, element names
// unique within their type, and every element needs a kind.
func (d *Document) Validate() error {
	if len(d.Types) == 0 {
		return errors.InvalidSchema("no types declared")
	}
	seen := make(map[string]bool, len(d.Types))
	for i, t := range d.Types {
		if !identRe.MatchString(t.Name) {
			return errors.InvalidSchema("type %d: invalid name %q", i, t.Name)
		}
		if seen[t.Name] {
			return errors.InvalidSchema("type %s declared twice", t.Name)
		}
		seen[t.Name] = true

		fields := make(map[string]bool, len(t.Elements))
		for j, el := range t.Elements {
			if !identRe.MatchString(el.Name) {
				return errors.InvalidSchema("%s: element %d has invalid name %q", t.Name, j, el.Name)
			}
			if fields[el.Name] {
				return errors.InvalidSchema("%s.%s declared twice", t.Name, el.Name)
			}
			fields[el.Name] = true
			if strings.TrimSpace(el.Kind) == "" {
				return errors.InvalidSchema("%s.%s has no kind", t.Name, el.Name)
			}
		}
	}
	return nil
}

// Type returns the type declared as name.
func (d *Document) Type(name string) (Type, bool) {
	for _, t := range d.Types {
		if t.Name == name {
			return t, true
		}
	}
	return Type{}, false
}

// Unresolved lists the kinds that are neither primitive nor declared in d,
// sorted. They are emitted as references and must exist elsewhere.
func (d *Document) Unresolved() []string {
	declared := make(map[string]bool, len(d.Types))
	for _, t := range d.Types {
		declared[t.Name] = true
	}
	missing := map[string]bool{}
	for _, t := range d.Types {
		for _, el := range t.Elements {
			base := typemap.Normalize(el).Base
			if typemap.IsGlobal(base) || declared[base] {
				continue
			}
			if _, primitive := typemap.KindMapping[el.Kind]; primitive {
				continue
			}
			missing[base] = true
		}
	}
	out := make([]string, 0, len(missing))
	for k := range missing {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
