package check

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/action/generate"
	"github.com/cmmoran/wsdlphpgen/pkg/generator"
	"github.com/cmmoran/wsdlphpgen/pkg/manifest"
	"github.com/cmmoran/wsdlphpgen/pkg/schema"
)

// State of a drifted file.
type State string

const (
	Changed  State = "changed"
	Missing  State = "missing"
	Orphaned State = "orphaned"
)

// Drift is one file whose content on disk differs from a fresh generation.
type Drift struct {
	File  string // relative to the output directory
	State State
	Diff  string // -disk +generated, only for Changed
	// Edited is set when the file on disk no longer matches the checksum
	// recorded by the last generation, i.e. it was changed by hand.
	Edited bool
}

// Check regenerates the schema at schemaPath into memory and compares the
// result with the files below opts.OutDir on opts.Fs. Files listed in the
// output directory's manifest that are no longer generated are Orphaned.
func Check(opts *generator.Options, schemaPath string) ([]Drift, error) {
	doc, err := schema.Load(afero.NewOsFs(), schemaPath)
	if err != nil {
		return nil, err
	}
	return Document(opts, doc, schemaPath)
}

// Document is Check for an already loaded schema document.
func Document(opts *generator.Options, doc *schema.Document, schemaName string) ([]Drift, error) {
	disk := opts.Fs
	if disk == nil {
		disk = afero.NewOsFs()
	}

	mem := afero.NewMemMapFs()
	o := *opts
	o.Fs = mem
	res, err := generate.FromDocument(&o, doc, schemaName)
	if err != nil {
		return nil, err
	}
	outDir := filepath.Dir(res.Manifest)

	m, err := manifest.Load(disk, res.Manifest)
	if err != nil {
		return nil, err
	}
	stale, err := m.Stale(disk, outDir)
	if err != nil {
		return nil, err
	}
	edited := make(map[string]bool, len(stale))
	for _, file := range stale {
		edited[file] = true
	}

	var drifts []Drift
	generated := make(map[string]bool, len(res.Files))
	for _, file := range res.Files {
		rel, err := filepath.Rel(outDir, file)
		if err != nil {
			return nil, errors.Wrapf(err, "relative path of %s", file)
		}
		rel = filepath.ToSlash(rel)
		generated[rel] = true

		want, err := afero.ReadFile(mem, file)
		if err != nil {
			return nil, errors.Wrapf(err, "read generated %s", file)
		}
		got, err := afero.ReadFile(disk, file)
		if errors.Is(err, os.ErrNotExist) {
			drifts = append(drifts, Drift{File: rel, State: Missing})
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", file)
		}
		if diff := cmp.Diff(string(got), string(want)); diff != "" {
			drifts = append(drifts, Drift{File: rel, State: Changed, Diff: diff, Edited: edited[rel]})
		}
	}

	for _, a := range m.Artifacts {
		if generated[a.File] {
			continue
		}
		if ok, _ := afero.Exists(disk, filepath.Join(outDir, filepath.FromSlash(a.File))); ok {
			drifts = append(drifts, Drift{File: a.File, State: Orphaned, Edited: edited[a.File]})
		}
	}

	sort.Slice(drifts, func(i, j int) bool { return drifts[i].File < drifts[j].File })
	return drifts, nil
}
