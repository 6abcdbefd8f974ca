package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/phoenix/engine/assets"
	"github.com/spaghettifunk/phoenix/engine/core"
	"github.com/spaghettifunk/phoenix/engine/platform"
	"github.com/spaghettifunk/phoenix/engine/renderer"
	"github.com/spaghettifunk/phoenix/engine/renderer/opengl/native"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

const targetFrameSeconds float64 = 1.0 / 60.0

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	isSuspended  bool
	platform     *platform.Platform
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(g.ApplicationConfig.LogLevel())

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageBootComplete,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		platform:     platform.New(),
		assetManager: am,
		width:        g.ApplicationConfig.Window.StartWidth,
		height:       g.ApplicationConfig.Window.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	cfg := e.gameInstance.ApplicationConfig

	if err := e.platform.Startup(cfg.Name,
		cfg.Window.StartPosX,
		cfg.Window.StartPosY,
		cfg.Window.StartWidth,
		cfg.Window.StartHeight,
		cfg.Window.VSync); err != nil {
		return err
	}
	e.width, e.height, _ = e.platform.FramebufferSize()

	funcs, err := native.Init()
	if err != nil {
		return fmt.Errorf("failed to load OpenGL: %w", err)
	}
	core.LogInfo("OpenGL %s", native.Version())

	rendererType, err := renderer.ParseRendererType(cfg.Renderer.Backend)
	if err != nil {
		return err
	}
	e.renderer, err = renderer.New(rendererType, funcs, cfg.Renderer.Limits, e.width, e.height)
	if err != nil {
		return err
	}

	if err := e.assetManager.Initialize(cfg.Assets.Dir); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(e.renderer, e.assetManager); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

// Stop asks the frame loop to exit after the current frame. Safe to call from
// any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine run before initialization (stage %d)", e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}
		e.handleResize()
		if e.gameInstance.ApplicationConfig.Assets.HotReload {
			e.handleAssetChanges()
		}

		if e.isSuspended {
			e.platform.Sleep(10 * time.Millisecond)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := platform.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			return err
		}

		if err := e.renderer.BeginFrame(delta); err != nil {
			return err
		}
		if err := e.gameInstance.FnRender(e.renderer, delta); err != nil {
			core.LogError("game render failed, shutting down: %s", err)
			return err
		}
		if err := e.renderer.EndFrame(delta); err != nil {
			return err
		}
		e.platform.SwapBuffers()

		// Figure out how long the frame took and give the rest back to the OS.
		frameElapsedTime := platform.GetAbsoluteTime() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		if remaining := targetFrameSeconds - frameElapsedTime; remaining > 0.001 && !e.gameInstance.ApplicationConfig.Window.VSync {
			e.platform.Sleep(time.Duration((remaining - 0.001) * float64(time.Second)))
		}
		if e.renderer.Frame()%600 == 0 {
			fps, ms := e.metrics.Frame()
			core.LogDebug("frame %d: %.0f fps, %.2f ms", e.renderer.Frame(), fps, ms)
		}

		e.lastTime = currentTime
	}
	return nil
}

func (e *Engine) handleResize() {
	width, height, changed := e.platform.FramebufferSize()
	if !changed || (width == e.width && height == e.height) {
		return
	}
	e.width, e.height = width, height
	core.LogDebug("window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	e.renderer.OnResize(width, height)
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError("%s", err.Error())
	}
}

func (e *Engine) handleAssetChanges() {
	if e.gameInstance.FnOnAssetChanged == nil {
		return
	}
	for {
		select {
		case name, ok := <-e.assetManager.Changes():
			if !ok {
				return
			}
			core.LogInfo("asset %s changed, reloading", name)
			if err := e.gameInstance.FnOnAssetChanged(e.renderer, e.assetManager, name); err != nil {
				core.LogError("reload %s: %s", name, err)
			}
		default:
			return
		}
	}
}

// Shutdown tears the subsystems down in reverse boot order. It must run on the
// goroutine that owns the GL context.
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.renderer != nil {
		if e.gameInstance.FnShutdown != nil {
			if err := e.gameInstance.FnShutdown(e.renderer); err != nil {
				core.LogError("%s", err.Error())
			}
		}
		if err := e.renderer.Shutdown(); err != nil {
			return err
		}
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}
