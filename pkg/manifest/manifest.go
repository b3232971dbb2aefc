package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
)

// FileName is the manifest written into the output directory.
const FileName = ".wsdlphpgen.yaml"

// Artifact represents a generated file entry in the manifest.
type Artifact struct {
	Name   string `yaml:"name" json:"name"`
	Kind   string `yaml:"kind" json:"kind"`
	File   string `yaml:"file" json:"file"` // relative to the manifest directory
	SHA256 string `yaml:"sha256" json:"sha256"`
}

// Manifest tracks the files written by the last generation run.
type Manifest struct {
	RunID      string     `yaml:"run_id" json:"run_id"`
	PhpVersion string     `yaml:"php_version" json:"php_version"`
	Schema     string     `yaml:"schema,omitempty" json:"schema,omitempty"`
	Artifacts  []Artifact `yaml:"artifacts" json:"artifacts"`
}

// New returns an empty manifest for a fresh run.
func New(phpVersion, schema string) *Manifest {
	return &Manifest{
		RunID:      uuid.NewString(),
		PhpVersion: phpVersion,
		Schema:     schema,
	}
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest")
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(fsys afero.Fs, path string) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.DirectoryCreation(err, filepath.Dir(path))
	}

	sort.Slice(m.Artifacts, func(i, j int) bool { return m.Artifacts[i].File < m.Artifacts[j].File })
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return errors.Write(err, path)
	}

	return nil
}

// Record adds an artifact, replacing an existing entry for the same file.
func (m *Manifest) Record(a Artifact) {
	for i := range m.Artifacts {
		if m.Artifacts[i].File == a.File {
			m.Artifacts[i] = a
			return
		}
	}

	m.Artifacts = append(m.Artifacts, a)
}

// RecordFile reads file from fsys and records it relative to dir.
func (m *Manifest) RecordFile(fsys afero.Fs, dir, file, name, kind string) (Artifact, error) {
	data, err := afero.ReadFile(fsys, file)
	if err != nil {
		return Artifact{}, errors.Wrapf(err, "read %s", file)
	}
	rel, err := filepath.Rel(dir, file)
	if err != nil {
		return Artifact{}, errors.Wrapf(err, "relative path of %s", file)
	}
	a := Artifact{Name: name, Kind: kind, File: filepath.ToSlash(rel), SHA256: Checksum(data)}
	m.Record(a)
	return a, nil
}

// Artifact returns the entry for file, if present.
func (m *Manifest) Artifact(file string) (Artifact, bool) {
	for _, a := range m.Artifacts {
		if a.File == file {
			return a, true
		}
	}
	return Artifact{}, false
}

// Stale lists recorded files below dir that are missing or whose content no
// longer matches the recorded checksum.
func (m *Manifest) Stale(fsys afero.Fs, dir string) ([]string, error) {
	var stale []string
	for _, a := range m.Artifacts {
		data, err := afero.ReadFile(fsys, filepath.Join(dir, filepath.FromSlash(a.File)))
		if errors.Is(err, os.ErrNotExist) {
			stale = append(stale, a.File)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", a.File)
		}
		if Checksum(data) != a.SHA256 {
			stale = append(stale, a.File)
		}
	}
	return stale, nil
}

// Checksum is the hex encoded SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
