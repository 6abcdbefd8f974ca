package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/phoenix/engine/core"
)

const testVertexShader = "#version 450 core\nvoid main() { gl_Position = vec4(0.0); }\n"

func newTestManager(t *testing.T) (*AssetManager, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "quad.vert"), []byte(testVertexShader), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644))

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	t.Cleanup(func() { am.Shutdown() })
	return am, dir
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, AssetTypeShader, determineAssetType("shaders/quad.vert"))
	assert.Equal(t, AssetTypeShader, determineAssetType("shaders/quad.frag"))
	assert.Equal(t, AssetTypeShader, determineAssetType("shaders/common.glsl"))
	assert.Equal(t, AssetTypeImage, determineAssetType("textures/wall.png"))
	assert.Equal(t, AssetTypeImage, determineAssetType("textures/wall.webp"))
	assert.Equal(t, AssetTypeNone, determineAssetType("models/cube.obj"))
}

func TestInitializeIndexesKnownFiles(t *testing.T) {
	am, _ := newTestManager(t)

	assert.Equal(t, 1, am.Len())
	info, ok := am.Info("shaders/quad.vert")
	require.True(t, ok)
	assert.Equal(t, AssetTypeShader, info.Type)
	assert.True(t, info.LastLoaded.IsZero())
}

func TestLoadShader(t *testing.T) {
	am, _ := newTestManager(t)

	src, err := am.LoadShader("shaders/quad.vert")
	require.NoError(t, err)
	assert.Equal(t, testVertexShader, src)

	info, _ := am.Info("shaders/quad.vert")
	assert.False(t, info.LastLoaded.IsZero())

	_, err = am.LoadShader("shaders/missing.frag")
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestChangesReportsRewrittenShader(t *testing.T) {
	am, dir := newTestManager(t)

	path := filepath.Join(dir, "shaders", "quad.frag")
	require.NoError(t, os.WriteFile(path, []byte("#version 450 core\nvoid main() {}\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case name := <-am.Changes():
			if name == "shaders/quad.frag" {
				_, ok := am.Info(name)
				assert.True(t, ok)
				return
			}
		case <-deadline:
			t.Fatal("no change reported for shaders/quad.frag")
		}
	}
}

func TestShutdownClosesChanges(t *testing.T) {
	am, _ := newTestManager(t)
	require.NoError(t, am.Shutdown())

	_, ok := <-am.Changes()
	assert.False(t, ok)

	_, err := am.LoadAsset("shaders/quad.vert")
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, am.Shutdown())
}
