package generate

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/generator"
	"github.com/cmmoran/wsdlphpgen/pkg/manifest"
	"github.com/cmmoran/wsdlphpgen/pkg/schema"
)

// Result describes one generation run.
type Result struct {
	Namespace  string
	Files      []string
	Updated    []string // files whose content differs from the previous run
	Manifest   string
	Unresolved []string
}

// Generate loads the schema document at schemaPath from the OS filesystem and
// writes the trait and one class per type.
func Generate(opts *generator.Options, schemaPath string) (*Result, error) {
	doc, err := schema.Load(afero.NewOsFs(), schemaPath)
	if err != nil {
		return nil, err
	}
	return FromDocument(opts, doc, schemaPath)
}

// FromDocument generates doc into opts.Fs and records the written files in
// the manifest below opts.OutDir. Values set in the document apply only where
// opts leaves them empty.
func FromDocument(opts *generator.Options, doc *schema.Document, schemaName string) (*Result, error) {
	o := *opts
	if o.RootNamespace == "" {
		o.RootNamespace = doc.Namespace
	}
	if o.PhpVersion == "" {
		o.PhpVersion = doc.PhpVersion
	}

	g, err := generator.NewWithOpts(&o)
	if err != nil {
		return nil, err
	}
	log := g.Opts.Logger

	if _, clash := doc.Type(g.Opts.TraitName); clash && g.Opts.BaseTrait {
		return nil, errors.WithHint(
			errors.InvalidSchema("type %s has the name of the shared trait", g.Opts.TraitName),
			"rename the type or choose another --trait name")
	}

	res := &Result{
		Namespace:  generator.TypesNamespace(g.Opts.RootNamespace, g.Opts.TypesNamespace),
		Manifest:   filepath.Join(g.Opts.OutDir, manifest.FileName),
		Unresolved: doc.Unresolved(),
	}
	for _, name := range res.Unresolved {
		log.Warn("referenced type is not declared in the schema", "type", name)
	}

	prev, err := manifest.Load(g.Opts.Fs, res.Manifest)
	if err != nil {
		return nil, err
	}
	m := manifest.New(g.Profile().Version.String(), filepath.Base(schemaName))
	record := func(file, name, kind string) error {
		res.Files = append(res.Files, file)
		a, err := m.RecordFile(g.Opts.Fs, g.Opts.OutDir, file, name, kind)
		if err != nil {
			return err
		}
		if old, ok := prev.Artifact(a.File); !ok || old.SHA256 != a.SHA256 {
			res.Updated = append(res.Updated, file)
		}
		return nil
	}

	if g.Opts.BaseTrait {
		file, err := g.GenerateSharedBehaviorArtifact(g.PatternSource(), res.Namespace)
		if err != nil {
			return nil, err
		}
		if err = record(file, g.Opts.TraitName, "trait"); err != nil {
			return nil, err
		}
	}

	for _, t := range doc.Types {
		file, err := g.GenerateTypeArtifact(t.Name, t.Elements, res.Namespace)
		if err != nil {
			return nil, err
		}
		if err = record(file, t.Name, "class"); err != nil {
			return nil, err
		}
	}

	if err = m.Save(g.Opts.Fs, res.Manifest); err != nil {
		return nil, err
	}
	log.Info("generation complete",
		"run", m.RunID,
		"files", len(res.Files),
		"updated", len(res.Updated),
		"manifest", res.Manifest)
	return res, nil
}
