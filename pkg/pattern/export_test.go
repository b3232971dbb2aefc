package pattern

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
	"github.com/cmmoran/wsdlphpgen/pkg/model"
)

func TestExport(t *testing.T) {
	p, err := Default().Reflect()
	require.NoError(t, err)

	f, err := Export(p, "example.com/app/patterns", "patterns", "BaseType")
	require.NoError(t, err)
	buf := new(bytes.Buffer)
	require.NoError(t, f.Render(buf))

	out := buf.String()
	assert.Contains(t, out, "// Code generated by wsdlphpgen pattern export. DO NOT EDIT.")
	assert.Contains(t, out, "package patterns")
	assert.Contains(t, out, `"github.com/cmmoran/wsdlphpgen/pkg/model"`)
	assert.Contains(t, out, "var BaseType = &model.Pattern{")
	assert.Contains(t, out, `"BaseTypePattern"`)
	assert.Contains(t, out, "model.Protected")
	assert.Contains(t, out, "model.Private")
	assert.Contains(t, out, `"DateTime::ATOM"`)
	for _, m := range p.Methods {
		assert.Contains(t, out, `"`+m.Name+`"`)
	}
}

func TestExportRejectsInvalidVisibility(t *testing.T) {
	p := &model.Pattern{
		Name: "T",
		Methods: []model.PatternMethod{
			{Name: "ok", Visibility: model.Private},
			{Name: "broken"},
		},
	}
	f, err := Export(p, "", "patterns", "T")
	require.Error(t, err)
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, errors.ErrReflection))
	assert.Contains(t, err.Error(), "T::broken")
}

func TestPackagePath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.24\n"), 0o644))
	sub := filepath.Join(root, "internal", "patterns")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	got, err := PackagePath(sub)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app/internal/patterns", got)

	got, err = PackagePath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", got)
}

func TestPackagePathWithoutModule(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.24\n"), 0o644))

	_, err := PackagePath(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
