package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryCreation(t *testing.T) {
	err := DirectoryCreation(fs.ErrPermission, "/out/Acme")

	require.Error(t, err)
	assert.True(t, Is(err, ErrDirectoryCreation))
	assert.False(t, Is(err, ErrWrite))
	assert.True(t, Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "/out/Acme")
}

func TestWrite(t *testing.T) {
	err := Write(fs.ErrPermission, "/out/Acme/Order.php")

	assert.True(t, Is(err, ErrWrite))
	assert.False(t, Is(err, ErrDirectoryCreation))
	assert.Contains(t, err.Error(), "Order.php")
}

func TestReflection(t *testing.T) {
	err := Reflection("method %s has no body", "toArray")

	assert.True(t, Is(err, ErrReflection))
	assert.Equal(t, "method toArray has no body", err.Error())

	wrapped := WrapReflection(fs.ErrNotExist, "open pattern")
	assert.True(t, Is(wrapped, ErrReflection))
	assert.True(t, Is(wrapped, fs.ErrNotExist))
}

func TestInvalidKindsAreDistinct(t *testing.T) {
	schemaErr := InvalidSchema("element %q has no kind", "id")
	configErr := InvalidConfig(New("bad version"), "php version")

	assert.True(t, Is(schemaErr, ErrInvalidSchema))
	assert.False(t, Is(schemaErr, ErrInvalidConfig))
	assert.True(t, Is(configErr, ErrInvalidConfig))
	assert.False(t, IsAny(configErr, ErrWrite, ErrReflection))
}

func TestWithHint(t *testing.T) {
	err := WithHint(Reflection("class not found"), "check the pattern path")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "check the pattern path", hints[0])
	assert.True(t, Is(err, ErrReflection))
}
