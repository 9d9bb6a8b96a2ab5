package engine

import (
	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
)

// Game is the application side of the engine loop. Every hook runs on the render
// thread; Render records and submits command buffers between BeginFrame and EndFrame.
type Game struct {
	Config         *core.Config
	State          interface{}
	FnInitialize   Initialize
	FnUpdate       Update
	FnRender       Render
	FnOnResize     OnResize
	FnShaderReload ShaderReload
	FnShutdown     Shutdown
}

// Initialize receives a nil asset manager when the asset directory is missing.
type Initialize func(ctx *renderer.Context, am *assets.AssetManager) error
type Update func(deltaTime float64) error
type Render func(ctx *renderer.Context, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type ShaderReload func(name string) error
type Shutdown func() error
