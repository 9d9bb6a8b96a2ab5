package assets

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

const (
	vertexSource   = "#version 410 core\nlayout(location = 0) in vec3 position;\nvoid main() { gl_Position = vec4(position, 1.0); }\n"
	fragmentSource = "#version 410 core\nout vec4 colour;\nvoid main() { colour = vec4(1.0); }\n"
)

func writeShader(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".vert"), []byte(vertexSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".frag"), []byte(fragmentSource), 0o644))
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, AssetTypeShader, determineAssetType("lit.vert"))
	assert.Equal(t, AssetTypeShader, determineAssetType("post/blur.frag"))
	assert.Equal(t, AssetTypeImage, determineAssetType("crate.png"))
	assert.Equal(t, AssetTypeNone, determineAssetType("notes.txt"))
	assert.Equal(t, "post/blur", shaderName("post/blur.frag"))
}

func TestNewAssetManagerIndexes(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "flat")
	writeShader(t, dir, "post/blur")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("ignored"), 0o644))

	am, err := NewAssetManager(dir)
	require.NoError(t, err)
	defer am.Close()

	var paths []string
	for _, info := range am.Assets() {
		paths = append(paths, info.Path)
		assert.Equal(t, AssetTypeShader, info.Type)
		assert.True(t, info.LastLoaded.IsZero())
	}
	assert.Equal(t, []string{"flat.frag", "flat.vert", "post/blur.frag", "post/blur.vert"}, paths)
}

func TestNewAssetManagerRejectsFiles(t *testing.T) {
	_, err := NewAssetManager(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	file := filepath.Join(t.TempDir(), "file.vert")
	require.NoError(t, os.WriteFile(file, []byte(vertexSource), 0o644))
	_, err = NewAssetManager(file)
	assert.ErrorContains(t, err, "not a directory")
}

func TestLoadShader(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "post/blur")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lonely.vert"), []byte(vertexSource), 0o644))

	am, err := NewAssetManager(dir)
	require.NoError(t, err)
	defer am.Close()

	src, err := am.LoadShader("post/blur")
	require.NoError(t, err)
	assert.Equal(t, vertexSource, src.Vertex)
	assert.Equal(t, fragmentSource, src.Fragment)
	for _, info := range am.Assets() {
		loaded := info.Path == "post/blur.vert" || info.Path == "post/blur.frag"
		assert.Equal(t, loaded, !info.LastLoaded.IsZero(), info.Path)
	}

	_, err = am.LoadShader("lonely")
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
	_, err = am.LoadImage("missing.png")
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case name, ok := <-ch:
		require.True(t, ok, "reloads closed")
		return name
	case <-time.After(5 * time.Second):
		require.FailNow(t, "no reload notification")
	}
	return ""
}

func TestWatchReportsShaderChanges(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "flat")

	am, err := NewAssetManager(dir)
	require.NoError(t, err)
	require.NoError(t, am.Watch())
	require.NoError(t, am.Watch(), "second watch is a no-op")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat.frag"), []byte(fragmentSource+"\n"), 0o644))
	assert.Equal(t, "flat", receive(t, am.Reloads()))

	// new directories are picked up
	sub := filepath.Join(dir, "post")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool {
		for {
			select {
			case <-am.Reloads():
				continue
			default:
			}
			break
		}
		if err := os.WriteFile(filepath.Join(sub, "blur.vert"), []byte(vertexSource), 0o644); err != nil {
			return false
		}
		select {
		case name := <-am.Reloads():
			return name == "post/blur"
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, am.Close())
	// ranging only ends once Close has closed the channel
	for range am.Reloads() {
	}
	assert.Error(t, am.Watch())
}

func TestWatchForgetsRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	writeShader(t, dir, "flat")

	am, err := NewAssetManager(dir)
	require.NoError(t, err)
	defer am.Close()
	require.NoError(t, am.Watch())

	require.NoError(t, os.Remove(filepath.Join(dir, "flat.vert")))
	require.Eventually(t, func() bool {
		return len(am.Assets()) == 1
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "flat.frag", am.Assets()[0].Path)

	_, err = am.LoadShader("flat")
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}
