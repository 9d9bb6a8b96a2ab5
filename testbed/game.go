package testbed

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/prism/engine"
	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const cubeShader = "cube"

// TestGame spins a textured cube and draws a frame time bar in a second command
// buffer, which relies on the scissor state being reset between buffers.
type TestGame struct {
	*engine.Game
}

type gameState struct {
	ctx    *renderer.Context
	assets *assets.AssetManager

	shader  renderer.Shader
	checker renderer.Texture2D
	scene   renderer.CommandBuffer
	overlay renderer.CommandBuffer

	cube       *math.Transform
	camera     *components.Camera
	projection mgl32.Mat4
	lightDir   mgl32.Vec3

	clearColour metadata.Colour
	width       uint32
	height      uint32
}

func NewTestGame(cfg *core.Config) (*TestGame, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	c := cfg.Renderer.ClearColour
	tg := &TestGame{
		Game: &engine.Game{
			Config: cfg,
			State: &gameState{
				cube:        math.TransformCreate(),
				camera:      newCamera(),
				lightDir:    mgl32.Vec3{-0.4, -1, -0.6},
				clearColour: metadata.Colour{R: c[0], G: c[1], B: c[2], A: c[3]},
				width:       cfg.Application.StartWidth,
				height:      cfg.Application.StartHeight,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShaderReload = tg.ShaderReload
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

// newCamera looks down at the origin from slightly above it.
func newCamera() *components.Camera {
	c := components.NewCamera()
	c.SetPosition(mgl32.Vec3{0, 1.5, 3})
	c.Pitch(-0.46)
	return c
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(ctx *renderer.Context, am *assets.AssetManager) error {
	core.LogInfo("initializing testbed...")
	s := g.state()
	s.ctx = ctx
	s.assets = am

	w, h := ctx.Size()
	s.width, s.height = uint32(w), uint32(h)
	s.updateProjection()

	vertex, fragment := s.shaderSources()
	s.shader = ctx.CreateShader(vertex, fragment)
	if !s.shader.Valid() {
		return fmt.Errorf("failed to create the %s shader", cubeShader)
	}

	s.checker = ctx.CreateTexture2DFromImage("checker", checkerboard(64, 8), true)
	if !s.checker.Valid() {
		return fmt.Errorf("failed to create the checker texture")
	}

	// created once and re-recorded every frame
	s.scene = ctx.CreateCommandBuffer()
	s.overlay = ctx.CreateCommandBuffer()

	if d := ctx.Defaults(); d == nil || !d.Cube.Valid() {
		return fmt.Errorf("default cube geometry is unavailable")
	}
	return nil
}

// shaderSources prefers the files on disk so they can be hot reloaded.
func (s *gameState) shaderSources() (string, string) {
	if s.assets != nil {
		src, err := s.assets.LoadShader(cubeShader)
		if err == nil {
			return src.Vertex, src.Fragment
		}
		core.LogWarn("using built in %s shader: %s", cubeShader, err)
	}
	return cubeVertexSource, cubeFragmentSource
}

func (s *gameState) updateProjection() {
	aspect := float32(1)
	if s.height > 0 {
		aspect = float32(s.width) / float32(s.height)
	}
	s.projection = mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
}

func (g *TestGame) Update(deltaTime float64) error {
	s := g.state()
	rotation := mgl32.QuatRotate(float32(0.5*deltaTime), mgl32.Vec3{0, 1, 0})
	s.cube.Rotate(rotation)
	return nil
}

func (g *TestGame) Render(ctx *renderer.Context, deltaTime float64) error {
	s := g.state()
	d := ctx.Defaults()

	cmd := s.scene
	cmd.Begin()
	cmd.SetViewport(0, 0, int32(s.width), int32(s.height))
	cmd.SetDepthTest(true)
	cmd.SetDepthMask(true)
	cmd.Clear(metadata.ClearColourBuffer|metadata.ClearDepthBuffer, s.clearColour, 1)
	cmd.SetCullFace(true, metadata.FaceCullModeBack)
	cmd.BindShader(s.shader)
	s.shader.SetMat4(cmd, "u_view_projection", s.projection.Mul4(s.camera.View()))
	s.shader.SetMat4(cmd, "u_model", s.cube.World())
	s.shader.SetVec3(cmd, "u_light_dir", s.lightDir)
	cmd.BindTexture(s.checker, 0, "u_texture")
	cmd.BindVertexArray(d.Cube)
	cmd.DrawIndexBuffer(d.CubeIndices, metadata.PrimitiveTriangles)
	cmd.End()
	cmd.Submit()

	// frame time bar, 4 pixels per millisecond
	bar := int32(deltaTime*1000) * 4
	cmd = s.overlay
	cmd.Begin()
	cmd.SetScissorTest(true)
	cmd.SetScissorRect(8, 8, math.Clamp(bar, 1, int32(s.width)-16), 6)
	cmd.Clear(metadata.ClearColourBuffer, barColour(deltaTime), 1)
	cmd.End()
	cmd.Submit()

	return nil
}

// barColour is green under 60 fps worth of frame time and red above it.
func barColour(deltaTime float64) metadata.Colour {
	if deltaTime > 1.0/60.0 {
		return metadata.Colour{R: 0.9, G: 0.2, B: 0.2, A: 1}
	}
	return metadata.Colour{R: 0.2, G: 0.9, B: 0.3, A: 1}
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	s := g.state()
	s.width, s.height = width, height
	s.updateProjection()
	return nil
}

// ShaderReload rebuilds the cube program. A broken edit keeps the previous program.
func (g *TestGame) ShaderReload(name string) error {
	s := g.state()
	if name != cubeShader || s.assets == nil {
		return nil
	}
	src, err := s.assets.LoadShader(name)
	if err != nil {
		return err
	}
	shader := s.ctx.CreateShader(src.Vertex, src.Fragment)
	if !shader.Valid() {
		return fmt.Errorf("%s shader does not compile, keeping the previous program", name)
	}
	s.shader.Release()
	s.shader = shader
	return nil
}

func (g *TestGame) Shutdown() error {
	s := g.state()
	s.overlay.Release()
	s.scene.Release()
	s.checker.Release()
	s.shader.Release()
	return nil
}

func checkerboard(size, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dark := color.RGBA{R: 60, G: 70, B: 90, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, light)
			} else {
				img.Set(x, y, dark)
			}
		}
	}
	return img
}
