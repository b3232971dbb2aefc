package emitter

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/internal/printer"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

// recordingFs counts writes and can fail directory creation or file opens.
type recordingFs struct {
	afero.Fs
	failMkdir bool
	failOpen  bool
	opens     int
}

func (r *recordingFs) MkdirAll(path string, perm os.FileMode) error {
	if r.failMkdir {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrPermission}
	}
	return r.Fs.MkdirAll(path, perm)
}

func (r *recordingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	r.opens++
	if r.failOpen {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return r.Fs.OpenFile(name, flag, perm)
}

func artifact(name, prop string) *model.GeneratedArtifact {
	a := &model.GeneratedArtifact{Namespace: "Acme", TypeName: name}
	a.AddProperty(model.Property{Name: prop, Binding: model.PropertyBinding{DocType: "int"}})
	return a
}

func TestEmitCreatesDirectories(t *testing.T) {
	mem := afero.NewMemMapFs()
	e := New(mem, printer.New(), nil)

	dir := filepath.Join("out", "Acme", "Types")
	file, err := e.Emit(artifact("Order", "id"), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Order.php"), file)

	ok, err := afero.DirExists(mem, dir)
	require.NoError(t, err)
	assert.True(t, ok)

	content, err := afero.ReadFile(mem, file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "public $id;")
}

func TestEmitLastWriteWins(t *testing.T) {
	mem := afero.NewMemMapFs()
	e := New(mem, nil, nil)

	_, err := e.Emit(artifact("Order", "firstProperty"), "out")
	require.NoError(t, err)
	file, err := e.Emit(artifact("Order", "second"), "out")
	require.NoError(t, err)

	content, err := afero.ReadFile(mem, file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "$second;")
	assert.NotContains(t, string(content), "firstProperty")
}

func TestEmitDirectoryCreationFailure(t *testing.T) {
	rfs := &recordingFs{Fs: afero.NewMemMapFs(), failMkdir: true}
	e := New(rfs, nil, nil)

	_, err := e.Emit(artifact("Order", "id"), "out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDirectoryCreation))
	assert.False(t, errors.Is(err, errors.ErrWrite))
	assert.Zero(t, rfs.opens, "no write after a directory failure")
}

func TestEmitWriteFailure(t *testing.T) {
	rfs := &recordingFs{Fs: afero.NewMemMapFs(), failOpen: true}
	e := New(rfs, nil, nil)

	_, err := e.Emit(artifact("Order", "id"), "out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrWrite))
	assert.False(t, errors.Is(err, errors.ErrDirectoryCreation))
}

func TestEmitReadOnlyFs(t *testing.T) {
	ro := afero.NewReadOnlyFs(afero.NewMemMapFs())
	e := New(ro, nil, nil)

	_, err := e.Emit(artifact("Order", "id"), "out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDirectoryCreation))
}
