package provider

import (
	"github.com/arkestra/spatialscan/engine/renderer/metadata"
)

// ExtractInfo reports the buffer sizes of a snapshot that is ready to pull.
type ExtractInfo struct {
	VertexCount uint32
	IndexCount  uint32
}

// Provider is the spatial understanding collaborator the import cycle pulls
// geometry from. Both calls happen on a worker goroutine, never on the
// ticking context. A fetch is two-phase: TryBeginExtract reserves the
// pending snapshot and reports its counts, Extract produces buffers matching
// those counts or fails.
type Provider interface {
	TryBeginExtract() (ExtractInfo, bool)
	Extract(info ExtractInfo) (*metadata.GeometrySnapshot, error)
}
