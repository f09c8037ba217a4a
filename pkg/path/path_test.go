package path_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghaniswara/workmatch/pkg/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("X=1"), 0o644))

	found, err := path.FindRoot(nested, ".env", false)
	require.NoError(t, err)
	assert.Equal(t, root, found)

	_, err = path.FindRoot(nested, ".env", true)
	assert.True(t, errors.Is(err, path.ErrNotFound))
}
