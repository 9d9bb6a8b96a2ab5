package testbed

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/opengl"
	"github.com/spaghettifunk/prism/engine/renderer/opengl/gltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestContext(t *testing.T) (*renderer.Context, *gltest.Recorder) {
	t.Helper()
	rec := gltest.New()
	ctx, err := renderer.New(renderer.OpenGL, nil,
		renderer.WithBackend(opengl.New(rec)),
		renderer.WithSize(640, 480),
	)
	require.NoError(t, err)
	ctx.CreateDefaults()
	return ctx, rec
}

func TestFrame(t *testing.T) {
	ctx, _ := newTestContext(t)
	g, err := NewTestGame(nil)
	require.NoError(t, err)
	require.NoError(t, g.FnInitialize(ctx, nil))

	before := g.state().cube.Local()
	require.NoError(t, g.FnUpdate(0.016))
	assert.NotEqual(t, before, g.state().cube.Local(), "the cube spins")

	ctx.BeginFrame()
	require.NoError(t, g.FnRender(ctx, 0.016))
	ctx.EndFrame()

	stats := ctx.Stats()
	assert.Equal(t, 2, stats.CommandBuffers)
	assert.Equal(t, 1, stats.DrawCalls)
	assert.Zero(t, stats.SkippedDraws)

	require.NoError(t, g.FnShutdown())
	require.NoError(t, ctx.Shutdown())
}

func TestInitializeFailsWithoutShader(t *testing.T) {
	ctx, rec := newTestContext(t)
	rec.FailCompile = "#version"
	g, err := NewTestGame(nil)
	require.NoError(t, err)
	assert.Error(t, g.FnInitialize(ctx, nil))
}

func TestInitializeNeedsDefaults(t *testing.T) {
	rec := gltest.New()
	ctx, err := renderer.New(renderer.OpenGL, nil, renderer.WithBackend(opengl.New(rec)))
	require.NoError(t, err)
	g, err := NewTestGame(nil)
	require.NoError(t, err)
	assert.Error(t, g.FnInitialize(ctx, nil))
}

func TestResizeUpdatesProjection(t *testing.T) {
	ctx, _ := newTestContext(t)
	g, err := NewTestGame(nil)
	require.NoError(t, err)
	require.NoError(t, g.FnInitialize(ctx, nil))
	assert.Equal(t, uint32(640), g.state().width)

	before := g.state().projection
	require.NoError(t, g.FnOnResize(1000, 500))
	assert.Equal(t, uint32(1000), g.state().width)
	assert.NotEqual(t, before, g.state().projection)
}

func TestShaderReload(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	write("cube.vert", cubeVertexSource)
	write("cube.frag", cubeFragmentSource)
	am, err := assets.NewAssetManager(dir)
	require.NoError(t, err)
	defer am.Close()

	ctx, rec := newTestContext(t)
	g, err := NewTestGame(nil)
	require.NoError(t, err)
	require.NoError(t, g.FnInitialize(ctx, am))
	first := g.state().shader

	require.NoError(t, g.FnShaderReload("cube"))
	second := g.state().shader
	assert.True(t, second.Valid())
	assert.NotEqual(t, first.ID, second.ID)

	write("cube.frag", cubeFragmentSource+"\n// broken\n")
	rec.FailCompile = "broken"
	assert.Error(t, g.FnShaderReload("cube"))
	assert.Equal(t, second.ID, g.state().shader.ID, "a failed reload keeps the program")

	assert.NoError(t, g.FnShaderReload("other"))
}

func TestBarColour(t *testing.T) {
	assert.Equal(t, metadata.Colour{R: 0.2, G: 0.9, B: 0.3, A: 1}, barColour(0.010))
	assert.Equal(t, metadata.Colour{R: 0.9, G: 0.2, B: 0.2, A: 1}, barColour(0.040))
}

func TestCheckerboard(t *testing.T) {
	img := checkerboard(16, 8)
	assert.Equal(t, img.At(0, 0), img.At(8, 8))
	assert.NotEqual(t, img.At(0, 0), img.At(8, 0))
}
