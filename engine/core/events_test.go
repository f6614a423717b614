package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The event system is process-wide, so the full lifecycle lives in a single
// test to keep ordering deterministic.
func TestEventSystemLifecycle(t *testing.T) {
	require.True(t, EventSystemInitialize())
	go ProcessEvents()

	received := make(chan EventContext, 1)
	require.True(t, EventRegister(EVENT_CODE_MESH_REPLACED, func(ctx EventContext) {
		received <- ctx
	}))

	fired := EventFire(EventContext{
		Type: EVENT_CODE_MESH_REPLACED,
		Data: &MeshReplacedEvent{SnapshotID: "abc", VertexCount: 4, IndexCount: 6},
	})
	require.True(t, fired)

	select {
	case ctx := <-received:
		ev, ok := ctx.Data.(*MeshReplacedEvent)
		require.True(t, ok)
		assert.Equal(t, "abc", ev.SnapshotID)
		assert.Equal(t, uint32(4), ev.VertexCount)
	case <-time.After(2 * time.Second):
		t.Fatal("registered listener never ran")
	}

	require.NoError(t, EventSystemShutdown())
	// Idempotent.
	require.NoError(t, EventSystemShutdown())
}
