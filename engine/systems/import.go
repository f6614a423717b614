package systems

import (
	"errors"
	"fmt"
	"time"

	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/math"
	"github.com/arkestra/spatialscan/engine/provider"
	"github.com/arkestra/spatialscan/engine/renderer"
	"github.com/arkestra/spatialscan/engine/renderer/metadata"
)

type importState int

const (
	importStateIdle importState = iota
	importStateFetching
)

// Bounds applied to a configured non-zero period, in seconds.
const minImportPeriod float64 = 0.05
const maxImportPeriod float64 = 3600.0

/** @brief The configuration for the mesh import system. */
type MeshImportConfig struct {
	// Minimum seconds between fetch attempts. Zero or negative disables
	// importing entirely.
	Period float64
	// Must return true for fetching to be permitted. Stands for the
	// scanning-phase check.
	Enabled func() bool
	// Material the imported surface is drawn with.
	MaterialName string
}

// MeshImportSystem periodically pulls a geometry snapshot from the spatial
// provider while scanning is active and replaces the displayed mesh with it.
// At most one fetch is in flight at any time.
//
// Update and the completion delivery both run on the same ticking context
// (completions come through the job system's result queue), so no locking
// is needed around the import state or the displayed geometry.
//
// There is no timeout on a fetch: a provider that never completes keeps the
// cycle in its fetching state and suppresses further attempts.
type MeshImportSystem struct {
	period       float64
	enabled      func() bool
	materialName string

	state          importState
	sinceLastFetch float64

	displayed *metadata.Geometry
	visible   bool
	shutdown  bool

	// collaborators
	provider       provider.Provider
	geometrySystem *GeometrySystem
	renderer       renderer.Backend
	jobs           JobSubmitter
}

func NewMeshImportSystem(config *MeshImportConfig, p provider.Provider, gs *GeometrySystem, r renderer.Backend, jobs JobSubmitter) (*MeshImportSystem, error) {
	if p == nil || gs == nil || r == nil || jobs == nil {
		return nil, fmt.Errorf("func NewMeshImportSystem - all collaborators are required")
	}
	mis := &MeshImportSystem{
		state:          importStateIdle,
		visible:        true,
		provider:       p,
		geometrySystem: gs,
		renderer:       r,
		jobs:           jobs,
	}
	mis.Configure(config.Period, config.Enabled)
	mis.materialName = config.MaterialName
	return mis, nil
}

// Configure sets the minimum time between fetch attempts and the predicate
// gating them. A zero or negative period disables importing. May be called
// again at any time, including while a fetch is in flight.
func (mis *MeshImportSystem) Configure(period float64, enabled func() bool) {
	if period > 0 {
		period = math.Clamp(period, minImportPeriod, maxImportPeriod)
	}
	mis.period = period
	mis.enabled = enabled
	mis.sinceLastFetch = 0
}

// Period returns the configured minimum seconds between fetch attempts.
func (mis *MeshImportSystem) Period() float64 {
	return mis.period
}

/**
 * @brief Advances the import cycle by delta seconds. May initiate a fetch.
 * Must be called from a single context, once per time step.
 */
func (mis *MeshImportSystem) Update(delta float64) {
	if mis.shutdown {
		return
	}

	mis.sinceLastFetch += delta

	if mis.period <= 0 {
		return
	}
	if mis.state == importStateFetching {
		// At most one fetch in flight; this tick is silently ignored.
		return
	}
	if mis.sinceLastFetch < mis.period {
		return
	}
	if mis.enabled == nil || !mis.enabled() {
		return
	}

	// Record fetch start and hand the extraction to a worker. The provider
	// is free to take as many turns as it needs; completion comes back on
	// this context through the job result queue.
	mis.sinceLastFetch = 0
	mis.state = importStateFetching
	core.MetricsFetchStarted()

	started := time.Now()
	mis.jobs.Submit(metadata.JobTask{
		OnStart: func(interface{}) (interface{}, error) {
			return fetchSnapshot(mis.provider)
		},
		OnComplete: func(result interface{}) {
			mis.onSnapshotReady(result, time.Since(started).Seconds())
		},
		OnFailure: func(err error) {
			mis.onSnapshotFailed(err, time.Since(started).Seconds())
		},
	})
}

// fetchSnapshot runs the two-phase extraction on a worker goroutine.
// A nil snapshot with nil error means the provider had nothing to pull.
func fetchSnapshot(p provider.Provider) (interface{}, error) {
	info, ok := p.TryBeginExtract()
	if !ok {
		return (*metadata.GeometrySnapshot)(nil), nil
	}

	snapshot, err := p.Extract(info)
	if err != nil {
		if !errors.Is(err, core.ErrProviderFault) && !errors.Is(err, core.ErrInvalidGeometry) {
			err = fmt.Errorf("%s: %w", err.Error(), core.ErrProviderFault)
		}
		return nil, err
	}

	// The provider promised these counts when the extract began.
	if snapshot == nil ||
		uint32(len(snapshot.Vertices)) != info.VertexCount ||
		uint32(len(snapshot.Indices)) != info.IndexCount {
		return nil, fmt.Errorf("extracted buffers do not match reported counts: %w", core.ErrInvalidGeometry)
	}

	return snapshot, nil
}

// onSnapshotReady applies a completed fetch. Runs on the ticking context.
func (mis *MeshImportSystem) onSnapshotReady(result interface{}, elapsed float64) {
	// The cycle must never wedge; back to idle no matter what happens below.
	mis.state = importStateIdle

	if mis.shutdown {
		// Torn down while the fetch was in flight. The result is discarded
		// and no renderer resources are created for it.
		core.LogDebug("snapshot completed after shutdown, discarding")
		return
	}

	snapshot, _ := result.(*metadata.GeometrySnapshot)
	if snapshot == nil {
		core.LogDebug("provider had no snapshot ready")
		return
	}

	if err := snapshot.Validate(); err != nil {
		mis.reportFailure(err, elapsed)
		return
	}

	geometry, err := mis.geometrySystem.AcquireFromSnapshot(snapshot, mis.materialName, true)
	if err != nil {
		// Keep the previous mesh in place, same as any other failed fetch.
		mis.reportFailure(err, elapsed)
		return
	}

	previous := mis.displayed
	mis.displayed = geometry
	mis.renderer.SetGeometryVisible(geometry, mis.visible)
	if previous != nil {
		mis.geometrySystem.Release(previous)
	}

	core.MetricsFetchCompleted(elapsed, true)
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_MESH_REPLACED,
		Data: &core.MeshReplacedEvent{
			SnapshotID:  snapshot.ID,
			VertexCount: uint32(len(snapshot.Vertices)),
			IndexCount:  uint32(len(snapshot.Indices)),
		},
	})
}

// onSnapshotFailed records a failed fetch. Runs on the ticking context.
func (mis *MeshImportSystem) onSnapshotFailed(err error, elapsed float64) {
	mis.state = importStateIdle
	if mis.shutdown {
		core.LogDebug("fetch failed after shutdown: %s", err.Error())
		return
	}
	mis.reportFailure(err, elapsed)
}

func (mis *MeshImportSystem) reportFailure(err error, elapsed float64) {
	core.LogError("snapshot import failed, keeping previous mesh: %s", err.Error())
	core.MetricsFetchCompleted(elapsed, false)
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_IMPORT_FAILED,
		Data: &core.ImportFailedEvent{Err: err},
	})
}

// SetVisible toggles display of the imported surface. The flag is also
// applied to geometry imported later.
func (mis *MeshImportSystem) SetVisible(visible bool) {
	mis.visible = visible
	if mis.displayed != nil {
		mis.renderer.SetGeometryVisible(mis.displayed, visible)
	}
}

func (mis *MeshImportSystem) Visible() bool {
	return mis.visible
}

// MaterialName returns the material imported surfaces are drawn with.
func (mis *MeshImportSystem) MaterialName() string {
	return mis.materialName
}

// DisplayedGeometry returns the currently displayed geometry, or nil when
// nothing has been imported yet.
func (mis *MeshImportSystem) DisplayedGeometry() *metadata.Geometry {
	return mis.displayed
}

// Fetching reports whether a fetch is currently in flight.
func (mis *MeshImportSystem) Fetching() bool {
	return mis.state == importStateFetching
}

/**
 * @brief Shuts the import cycle down, releasing the displayed geometry.
 * Idempotent. An in-flight fetch is allowed to finish; its result is
 * discarded on delivery.
 */
func (mis *MeshImportSystem) Shutdown() error {
	if mis.shutdown {
		return nil
	}
	mis.shutdown = true

	if mis.displayed != nil {
		mis.geometrySystem.Release(mis.displayed)
		mis.displayed = nil
	}
	return nil
}
