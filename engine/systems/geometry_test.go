package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/spatialscan/engine/renderer"
	"github.com/arkestra/spatialscan/engine/renderer/metadata"
)

func newGeometryFixture(t *testing.T, maxCount uint32) (*GeometrySystem, *renderer.HeadlessBackend) {
	t.Helper()
	backend := renderer.NewHeadlessBackend()
	require.NoError(t, backend.Initialize("geometry-test"))
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: maxCount}, backend)
	require.NoError(t, err)
	return gs, backend
}

func TestNewGeometrySystem_RejectsZeroCount(t *testing.T) {
	_, err := NewGeometrySystem(&GeometrySystemConfig{}, renderer.NewHeadlessBackend())
	assert.Error(t, err)
}

func TestAcquireFromSnapshot(t *testing.T) {
	gs, backend := newGeometryFixture(t, 4)

	snapshot := makeSnapshot("acquire")
	geometry, err := gs.AcquireFromSnapshot(snapshot, "scan_material", true)
	require.NoError(t, err)
	require.NotNil(t, geometry)

	assert.NotEqual(t, metadata.InvalidID, geometry.ID)
	assert.NotEqual(t, metadata.InvalidID, geometry.InternalID)
	assert.Equal(t, metadata.ScanGeometryName, geometry.Name)
	assert.Equal(t, "scan_material", geometry.MaterialName)
	assert.Equal(t, 1, backend.LiveGeometryCount())
	assert.Equal(t, 1, gs.LiveCount())

	// Extents come from the uploaded vertices.
	assert.InDelta(t, -0.5, geometry.Extents.Min.X, 1e-6)
	assert.InDelta(t, 0.5, geometry.Extents.Max.Y, 1e-6)
	assert.InDelta(t, 0.0, geometry.Center.X, 1e-6)
}

func TestReleaseDestroysAutoReleaseGeometry(t *testing.T) {
	gs, backend := newGeometryFixture(t, 4)

	geometry, err := gs.AcquireFromSnapshot(makeSnapshot("release"), "", true)
	require.NoError(t, err)

	gs.Release(geometry)
	assert.Equal(t, 0, backend.LiveGeometryCount())
	assert.Equal(t, 0, gs.LiveCount())
	assert.Equal(t, metadata.InvalidID, geometry.ID)

	// Releasing an already-released geometry is a logged no-op.
	gs.Release(geometry)
	assert.Equal(t, 0, backend.LiveGeometryCount())
}

func TestSlotReuseAfterRelease(t *testing.T) {
	gs, _ := newGeometryFixture(t, 1)

	first, err := gs.AcquireFromSnapshot(makeSnapshot("a"), "", true)
	require.NoError(t, err)

	// Single slot is taken.
	_, err = gs.AcquireFromSnapshot(makeSnapshot("b"), "", true)
	assert.Error(t, err)

	gs.Release(first)
	second, err := gs.AcquireFromSnapshot(makeSnapshot("c"), "", true)
	require.NoError(t, err)
	assert.NotNil(t, second)
}

func TestGeometrySystemShutdownDestroysLiveGeometry(t *testing.T) {
	gs, backend := newGeometryFixture(t, 4)

	_, err := gs.AcquireFromSnapshot(makeSnapshot("one"), "", true)
	require.NoError(t, err)
	_, err = gs.AcquireFromSnapshot(makeSnapshot("two"), "", true)
	require.NoError(t, err)
	require.Equal(t, 2, backend.LiveGeometryCount())

	require.NoError(t, gs.Shutdown())
	assert.Equal(t, 0, backend.LiveGeometryCount())
	assert.Equal(t, 0, gs.LiveCount())
}
