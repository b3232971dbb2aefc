// Package emitter writes printed artifacts to a filesystem.
package emitter

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/internal/printer"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// Extension of generated files.
const Extension = ".php"

// Emitter prints artifacts and writes them as <dir>/<TypeName>.php.
type Emitter struct {
	Fs       afero.Fs
	Printer  *printer.Printer
	DirMode  os.FileMode
	FileMode os.FileMode
	Logger   *slog.Logger
}

// New returns an Emitter writing through fs.
func New(fs afero.Fs, p *printer.Printer, logger *slog.Logger) *Emitter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if p == nil {
		p = printer.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		Fs:       fs,
		Printer:  p,
		DirMode:  0o755,
		FileMode: 0o644,
		Logger:   logger,
	}
}

// FileName returns the file an artifact is written to inside dir.
func FileName(dir string, a *model.GeneratedArtifact) string {
	return filepath.Join(dir, a.TypeName+Extension)
}

// Emit creates dir (with parents), prints a and writes it, replacing any
// existing file. It returns the written path. A failure to create dir is
// ErrDirectoryCreation and nothing is written; a failure afterwards is ErrWrite.
func (e *Emitter) Emit(a *model.GeneratedArtifact, dir string) (string, error) {
	if err := e.Fs.MkdirAll(dir, e.DirMode); err != nil {
		return "", errors.WithHint(errors.DirectoryCreation(err, dir), "check that the output directory is writable")
	}

	content, err := e.Printer.Print(a)
	if err != nil {
		return "", errors.Wrapf(err, "printing %s", a.TypeName)
	}

	file := FileName(dir, a)
	if err = afero.WriteFile(e.Fs, file, content, e.FileMode); err != nil {
		return "", errors.Write(err, file)
	}

	e.Logger.Debug("emitted artifact",
		"type", a.TypeName,
		"kind", a.Kind.String(),
		"file", file,
		"bytes", len(content))
	return file, nil
}
