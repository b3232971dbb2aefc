package generator

import (
	"fmt"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	"github.com/cmmoran/wsdlphpgen/internal/emitter"
	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/internal/printer"
	"github.com/cmmoran/wsdlphpgen/internal/target"
	"github.com/cmmoran/wsdlphpgen/internal/typemap"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
	"github.com/cmmoran/wsdlphpgen/pkg/pattern"
)

// Generator builds artifacts and writes them below Opts.OutDir. It holds no
// state between invocations besides its configuration.
type Generator struct {
	Opts Options

	profile target.Profile
	emitter *emitter.Emitter
	log     *slog.Logger
}

// New creates a Generator from functional options applied over NewOptions.
func New(opts ...Option) (*Generator, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Generator, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	profile, err := target.Resolve(opts.PhpVersion)
	if err != nil {
		return nil, err
	}

	return &Generator{
		Opts:    *opts,
		profile: profile,
		emitter: emitter.New(opts.Fs, printer.New(), opts.Logger),
		log:     opts.Logger,
	}, nil
}

// Profile is the resolved target profile.
func (g *Generator) Profile() target.Profile {
	return g.profile
}

// PatternSource returns the configured pattern: a custom file when
// Opts.PatternFile is set, the built-in pattern otherwise.
func (g *Generator) PatternSource() pattern.Source {
	ropts := []pattern.ReflectorOption{
		pattern.WithIndentWidth(g.Opts.IndentWidth),
		pattern.WithLogger(g.log),
	}
	if g.Opts.DetectIndent {
		ropts = append(ropts, pattern.WithDetectIndent())
	}
	if g.Opts.PatternFile != "" {
		return pattern.FromFile(g.Opts.PatternFile, g.Opts.PatternClass, ropts...)
	}
	return pattern.Default(ropts...)
}

// TypeArtifact builds the class artifact for one schema type. Properties
// follow element order; adders, when enabled, follow the properties.
func (g *Generator) TypeArtifact(name string, elements []model.SchemaElement, namespace string) (*model.GeneratedArtifact, error) {
	ns := PhpNamespace(namespace)
	a := &model.GeneratedArtifact{
		Namespace: ns,
		TypeName:  name,
		Kind:      model.KindClass,
		Comment:   g.Opts.FileComment,
	}
	if g.Opts.BaseTrait {
		a.Traits = []string{g.Opts.TraitName}
	}

	for _, el := range elements {
		if el.Kind == "" {
			return nil, errors.InvalidSchema("%s.%s has no kind", name, el.Name)
		}
		binding := typemap.Bind(el, ns, g.profile.NativeTypedProperties)
		a.AddProperty(model.Property{
			Name:    el.Name,
			Binding: binding,
			Comment: typemap.DocComment(el),
		})
		g.log.Debug("bound property",
			"type", name,
			"property", el.Name,
			"native", binding.NativeType,
			"storage", binding.StorageType,
			"doc", binding.DocType)
	}

	if g.Opts.ArrayAdders {
		for _, el := range elements {
			if el.Arrayable {
				a.AddMethod(g.adder(el))
			}
		}
	}
	return a, nil
}

// SharedBehaviorArtifact reflects src into the shared trait artifact.
func (g *Generator) SharedBehaviorArtifact(src pattern.Source, namespace string) (*model.GeneratedArtifact, error) {
	p, err := src.Reflect()
	if err != nil {
		return nil, err
	}
	a := &model.GeneratedArtifact{
		Namespace: PhpNamespace(namespace),
		TypeName:  g.Opts.TraitName,
		Kind:      model.KindTrait,
		Comment:   g.Opts.FileComment,
		Uses:      p.Uses,
	}
	for _, m := range p.Methods {
		a.AddMethod(m)
	}
	return a, nil
}

// GenerateTypeArtifact writes the class for one schema type and returns the
// written path.
func (g *Generator) GenerateTypeArtifact(name string, elements []model.SchemaElement, namespace string) (string, error) {
	a, err := g.TypeArtifact(name, elements, namespace)
	if err != nil {
		return "", err
	}
	return g.emit(a, namespace)
}

// GenerateSharedBehaviorArtifact writes the trait reflected from src. A
// reflection failure writes nothing.
func (g *Generator) GenerateSharedBehaviorArtifact(src pattern.Source, namespace string) (string, error) {
	a, err := g.SharedBehaviorArtifact(src, namespace)
	if err != nil {
		return "", err
	}
	return g.emit(a, namespace)
}

func (g *Generator) emit(a *model.GeneratedArtifact, namespace string) (string, error) {
	file, err := g.emitter.Emit(a, PathFromNamespace(g.Opts.OutDir, namespace))
	if err != nil {
		return "", err
	}
	g.log.Info("generated",
		"kind", a.Kind.String(),
		"name", a.TypeName,
		"namespace", a.Namespace,
		"profile", g.profile.String(),
		"file", file)
	return file, nil
}

// GenerateTypeArtifact is a one-shot GenerateTypeArtifact.
func GenerateTypeArtifact(name string, elements []model.SchemaElement, namespace string, opts ...Option) (string, error) {
	g, err := New(opts...)
	if err != nil {
		return "", err
	}
	return g.GenerateTypeArtifact(name, elements, namespace)
}

// GenerateSharedBehaviorArtifact is a one-shot GenerateSharedBehaviorArtifact.
func GenerateSharedBehaviorArtifact(src pattern.Source, namespace string, opts ...Option) (string, error) {
	g, err := New(opts...)
	if err != nil {
		return "", err
	}
	return g.GenerateSharedBehaviorArtifact(src, namespace)
}

// adder builds add<Item>() for an array element.
func (g *Generator) adder(el model.SchemaElement) model.PatternMethod {
	item := inflection.Singular(el.Name)
	if item == el.Name {
		item = el.Name + "Item"
	}
	nt := typemap.Normalize(el)

	m := model.PatternMethod{
		Name:       "add" + upperFirst(item),
		Visibility: model.Public,
		ReturnType: "self",
		Body: fmt.Sprintf("$this->%[1]s = array_merge($this->%[1]s ?? [], [$%[2]s]);\n\nreturn $this;\n",
			el.Name, item),
	}
	param := model.Parameter{Name: item}
	if g.profile.NativeTypedProperties {
		param.Type = localType(nt.Base)
	} else {
		m.DocComment = "@param " + nt.Base + " $" + item
	}
	m.Parameters = []model.Parameter{param}
	return m
}

// localType is how base is written inside the generated namespace.
func localType(base string) string {
	if typemap.IsGlobal(base) && !typemap.IsBuiltin(base) {
		return `\` + base
	}
	return base
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
