package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/provider"
	"github.com/arkestra/spatialscan/engine/renderer"
)

// End to end: the running engine pulls snapshots from the simulated
// provider, replaces the displayed mesh and shuts down cleanly.
func TestEngine_ImportsAndShutsDown(t *testing.T) {
	scan := provider.NewSimulatedScan(provider.SimulatedScanConfig{
		Width:       4,
		Depth:       4,
		MaxSegments: 4,
	})
	backend := renderer.NewHeadlessBackend()

	eng, err := New(&ApplicationConfig{
		Name:           "engine-test",
		LogLevel:       "error",
		TickRate:       120,
		ImportPeriod:   0.06,
		ImportMaterial: "scan_material",
		SurfaceVisible: true,
	}, scan, backend)
	require.NoError(t, err)
	require.NoError(t, eng.Initialize())

	replaced := make(chan struct{}, 16)
	core.EventRegister(core.EVENT_CODE_MESH_REPLACED, func(core.EventContext) {
		replaced <- struct{}{}
	})

	runErr := make(chan error, 1)
	go func() { runErr <- eng.Run() }()

	select {
	case <-replaced:
	case <-time.After(10 * time.Second):
		t.Fatal("no mesh was imported")
	}

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	select {
	case err := <-runErr:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("engine did not stop after quit event")
	}

	assert.True(t, eng.IsScanning())
	require.NoError(t, eng.Shutdown())
	assert.Equal(t, 0, backend.LiveGeometryCount())
}

func TestEngine_ScanWindowCloses(t *testing.T) {
	scan := provider.NewSimulatedScan(provider.SimulatedScanConfig{
		Width:       1,
		Depth:       1,
		MaxSegments: 1,
	})

	eng, err := New(&ApplicationConfig{
		Name:         "engine-window-test",
		LogLevel:     "error",
		TickRate:     240,
		ImportPeriod: 0.05,
		ScanDuration: 0.05,
	}, scan, renderer.NewHeadlessBackend())
	require.NoError(t, err)
	require.NoError(t, eng.Initialize())

	runErr := make(chan error, 1)
	go func() { runErr <- eng.Run() }()

	require.Eventually(t, func() bool {
		return !eng.IsScanning()
	}, 10*time.Second, 5*time.Millisecond, "scanning window never closed")

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	select {
	case err := <-runErr:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("engine did not stop after quit event")
	}
	require.NoError(t, eng.Shutdown())
}
