package engine

import (
	"sync/atomic"
	"time"

	"github.com/arkestra/spatialscan/engine/config"
	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/provider"
	"github.com/arkestra/spatialscan/engine/renderer"
	"github.com/arkestra/spatialscan/engine/systems"
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
	currentStage  Stage
	appConfig     *ApplicationConfig
	systemManager *systems.SystemManager
	backend       renderer.Backend
	clock         *core.Clock
	lastTime      float64

	isRunning  atomic.Bool
	isScanning atomic.Bool

	watcher    *config.Watcher
	cfgUpdates chan *config.Config
}

func New(appConfig *ApplicationConfig, p provider.Provider, backend renderer.Backend) (*Engine, error) {
	sm, err := systems.NewSystemManager(p, backend, &systems.MeshImportConfig{
		Period:       appConfig.ImportPeriod,
		MaterialName: appConfig.ImportMaterial,
	})
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	e := &Engine{
		currentStage:  EngineStageUninitialized,
		appConfig:     appConfig,
		systemManager: sm,
		backend:       backend,
		clock:         core.NewClock(),
		lastTime:      0,
		cfgUpdates:    make(chan *config.Config, 1),
	}
	e.isRunning.Store(true)

	// The predicate abstracts "scanning in progress" for the import cycle.
	sm.ImportSystem().Configure(appConfig.ImportPeriod, e.IsScanning)
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	core.LogSetLevel(e.appConfig.LogLevel)

	if !core.EventSystemInitialize() {
		core.LogError("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_MESH_REPLACED, e.onMeshReplaced)
	core.EventRegister(core.EVENT_CODE_IMPORT_FAILED, e.onImportFailed)

	if err := e.backend.Initialize(e.appConfig.Name); err != nil {
		return err
	}

	e.systemManager.ImportSystem().SetVisible(e.appConfig.SurfaceVisible)

	if e.appConfig.ConfigPath != "" {
		w, err := config.NewWatcher(e.appConfig.ConfigPath)
		if err != nil {
			return err
		}
		if err := w.Start(e.onConfigChanged); err != nil {
			return err
		}
		e.watcher = w
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	// start goroutine to process all the events around the engine
	go core.ProcessEvents()

	e.setScanning(true)

	tickRate := e.appConfig.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	var targetTickSeconds float64 = 1.0 / float64(tickRate)

	for e.isRunning.Load() {
		// Update clock and get delta time.
		e.clock.Update()

		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)

		// Apply any configuration that changed on disk.
		select {
		case cfg := <-e.cfgUpdates:
			e.applyConfig(cfg)
		default:
		}

		// Close the scanning window once its duration has passed.
		if e.appConfig.ScanDuration > 0 && currentTime >= e.appConfig.ScanDuration {
			e.setScanning(false)
		}

		e.systemManager.Update(delta)

		// Give the remainder of the tick back to the OS.
		e.clock.Update()
		remaining := targetTickSeconds - (e.clock.Elapsed() - currentTime)
		if remaining > 0 {
			time.Sleep(time.Duration(remaining * float64(time.Second)))
		}

		e.lastTime = currentTime
	}

	return nil
}

// IsScanning reports whether the scanning phase is active. Used as the
// import cycle's enabled predicate.
func (e *Engine) IsScanning() bool {
	return e.isScanning.Load()
}

func (e *Engine) setScanning(scanning bool) {
	if e.isScanning.Load() == scanning {
		return
	}
	e.isScanning.Store(scanning)
	if scanning {
		core.LogInfo("scanning phase started")
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_SCAN_STARTED})
	} else {
		core.LogInfo("scanning phase stopped")
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_SCAN_STOPPED})
	}
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogError(err.Error())
		}
		e.watcher = nil
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.backend.Shutdown(); err != nil {
		return err
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}

	started, applied, failed := core.MetricsImportTotals()
	core.LogInfo("import totals: %d started, %d applied, %d failed", started, applied, failed)
	return nil
}

func (e *Engine) onConfigChanged(cfg *config.Config) {
	// Called on the watcher goroutine; hand over to the run loop.
	select {
	case e.cfgUpdates <- cfg:
	default:
	}
}

func (e *Engine) applyConfig(cfg *config.Config) {
	core.LogSetLevel(cfg.Application.LogLevel)
	is := e.systemManager.ImportSystem()
	if cfg.Import.PeriodSeconds != is.Period() {
		core.LogInfo("import period changed to %.2fs", cfg.Import.PeriodSeconds)
		is.Configure(cfg.Import.PeriodSeconds, e.IsScanning)
	}
	is.SetVisible(cfg.Import.Visible)
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
			e.isRunning.Store(false)
		}
	}
}

func (e *Engine) onMeshReplaced(context core.EventContext) {
	ev, ok := context.Data.(*core.MeshReplacedEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	core.LogInfo("displayed mesh replaced: snapshot %s (%d vertices, %d indices)", ev.SnapshotID, ev.VertexCount, ev.IndexCount)
}

func (e *Engine) onImportFailed(context core.EventContext) {
	ev, ok := context.Data.(*core.ImportFailedEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}
	core.LogWarn("mesh import failed: %s", ev.Err.Error())
}
