package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draycall/fbxbatch/internal/scene"
)

func TestGLTFSaver_Save(t *testing.T) {
	s := NewMemScene()
	s.AddObject("Merged_Wood", scene.KindMesh, "")
	s.AddObject("Merged_Metal", scene.KindMesh, "")

	path := filepath.Join(t.TempDir(), "out.gltf")
	require.NoError(t, NewGLTFSaver().Save(s, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Merged_Wood")
	assert.Contains(t, string(data), "Merged_Metal")
}

func TestGLTFSaver_BadPath(t *testing.T) {
	s := NewMemScene()
	err := NewGLTFSaver().Save(s, filepath.Join(t.TempDir(), "missing", "dir", "out.gltf"))
	assert.Error(t, err)
}
