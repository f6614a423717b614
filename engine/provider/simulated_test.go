package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkestra/spatialscan/engine/core"
)

func TestSimulatedScan_GrowsUntilMaxSegments(t *testing.T) {
	ss := NewSimulatedScan(SimulatedScanConfig{Width: 10, Depth: 10, MaxSegments: 3})

	var lastVertexCount uint32
	for i := 0; i < 3; i++ {
		info, ok := ss.TryBeginExtract()
		require.True(t, ok)
		assert.Greater(t, info.VertexCount, lastVertexCount)
		lastVertexCount = info.VertexCount

		snapshot, err := ss.Extract(info)
		require.NoError(t, err)
		require.NoError(t, snapshot.Validate())
		assert.Equal(t, info.VertexCount, uint32(len(snapshot.Vertices)))
		assert.Equal(t, info.IndexCount, uint32(len(snapshot.Indices)))
		assert.NotEmpty(t, snapshot.ID)
	}

	// Converged; counts stay put.
	info, ok := ss.TryBeginExtract()
	require.True(t, ok)
	assert.Equal(t, lastVertexCount, info.VertexCount)
}

func TestSimulatedScan_ExtractWithoutBeginIsFault(t *testing.T) {
	ss := NewSimulatedScan(SimulatedScanConfig{Width: 1, Depth: 1, MaxSegments: 1})

	_, err := ss.Extract(ExtractInfo{VertexCount: 4, IndexCount: 6})
	assert.True(t, errors.Is(err, core.ErrProviderFault))

	// A stale info from an older begin is also rejected.
	info, ok := ss.TryBeginExtract()
	require.True(t, ok)
	_, err = ss.Extract(ExtractInfo{VertexCount: info.VertexCount + 1, IndexCount: info.IndexCount})
	assert.True(t, errors.Is(err, core.ErrProviderFault))
}

func TestSimulatedScan_NormalsPointUp(t *testing.T) {
	ss := NewSimulatedScan(SimulatedScanConfig{Width: 4, Depth: 4, MaxSegments: 1})

	info, ok := ss.TryBeginExtract()
	require.True(t, ok)
	snapshot, err := ss.Extract(info)
	require.NoError(t, err)

	// Flat surface on the XZ plane; every face normal is vertical.
	for i, v := range snapshot.Vertices {
		assert.InDelta(t, 0.0, float64(v.Normal.X), 1e-5, "vertex %d", i)
		assert.InDelta(t, 1.0, float64(v.Normal.Y*v.Normal.Y), 1e-5, "vertex %d", i)
		assert.InDelta(t, 0.0, float64(v.Normal.Z), 1e-5, "vertex %d", i)
	}
}

func TestNewSimulatedScan_DefaultsZeroConfig(t *testing.T) {
	ss := NewSimulatedScan(SimulatedScanConfig{})

	info, ok := ss.TryBeginExtract()
	require.True(t, ok)
	assert.Equal(t, uint32(4), info.VertexCount)
	assert.Equal(t, uint32(6), info.IndexCount)
}
