package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/platform"
	"github.com/spaghettifunk/prism/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *core.Config
	isRunning    atomic.Bool
	isSuspended  bool
	bus          *core.EventBus
	platform     *platform.Platform
	assetManager *assets.AssetManager
	context      *renderer.Context
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     time.Duration
}

func New(g *Game) (*Engine, error) {
	cfg := g.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	bus := core.NewEventBus()
	p, err := platform.New(bus)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       cfg,
		bus:          bus,
		clock:        core.NewClock(),
		platform:     p,
		width:        cfg.Application.StartWidth,
		height:       cfg.Application.StartHeight,
	}, nil
}

// rendererAPI maps the config name onto a renderer API.
func rendererAPI(cfg *core.Config) (renderer.API, error) {
	api, err := renderer.ParseAPI(strings.ToLower(cfg.Renderer.API))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}
	return api, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	level, err := core.ParseLogLevel(e.config.Log.Level)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)

	e.bus.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.bus.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(e.config.Application, e.config.Renderer.VSync); err != nil {
		return err
	}

	api, err := rendererAPI(e.config)
	if err != nil {
		return err
	}
	ctx, err := renderer.New(api, e.platform, renderer.WithErrorChecks(e.config.Renderer.CheckErrors))
	if err != nil {
		return err
	}
	e.context = ctx
	ctx.CreateDefaults()
	// the context keeps its restore viewport in sync with the window
	e.bus.Register(core.EVENT_CODE_RESIZED, e.context, e.context.OnEvent)

	am, err := assets.NewAssetManager(e.config.Assets.ShaderDir)
	if err != nil {
		core.LogWarn("assets unavailable, using built in shaders: %s", err)
	} else {
		e.assetManager = am
		if e.config.Assets.HotReload {
			if err := am.Watch(); err != nil {
				core.LogWarn("shader hot reload disabled: %s", err)
			}
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.context, e.assetManager); err != nil {
			core.LogError("game failed to initialize: %s", err)
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine run: %w", core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var runErr error
	for e.isRunning.Load() {
		e.platform.PumpMessages()
		if e.platform.ShouldClose() {
			e.isRunning.Store(false)
			break
		}
		e.drainReloads()

		if e.isSuspended {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := (currentTime - e.lastTime).Seconds()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				runErr = err
				break
			}
		}

		e.context.BeginFrame()
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(e.context, delta); err != nil {
				core.LogError("game render failed, shutting down: %s", err)
				runErr = err
				break
			}
		}
		e.context.EndFrame()
		e.platform.SwapBuffers()

		if stats := e.context.Stats(); stats.DriverErrors > 0 || stats.SkippedDraws > 0 {
			core.LogDebug("frame %d: %d driver errors, %d skipped draws", stats.Frame, stats.DriverErrors, stats.SkippedDraws)
		}

		e.lastTime = currentTime
	}

	if err := e.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Stop asks the running loop to exit after the current frame. Safe to call from any
// goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown || e.currentStage == EngineStageUninitialized {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown: %s", err)
		}
	}
	if e.assetManager != nil {
		e.assetManager.Close()
	}
	if e.context != nil {
		if err := e.context.Shutdown(); err != nil {
			return err
		}
	}
	return e.platform.Shutdown()
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) drainReloads() {
	if e.assetManager == nil {
		return
	}
	for {
		select {
		case name, ok := <-e.assetManager.Reloads():
			if !ok {
				return
			}
			core.LogInfo("reloading shader %s", name)
			if e.gameInstance.FnShaderReload != nil {
				if err := e.gameInstance.FnShaderReload(name); err != nil {
					core.LogError("shader %s reload failed: %s", name, err)
				}
			}
			e.bus.Fire(core.EVENT_CODE_SHADER_RELOAD, e, core.EventContext{})
		default:
			return
		}
	}
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	width := data.Data.U32[0]
	height := data.Data.U32[1]

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return false
}
