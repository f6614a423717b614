package renderer

import (
	"github.com/arkestra/spatialscan/engine/math"
	"github.com/arkestra/spatialscan/engine/renderer/metadata"
)

// Backend is the rendering collaborator the import cycle hands finished
// geometry to. Implementations own the uploaded buffers; the caller owns the
// *metadata.Geometry record and must destroy it to release them.
type Backend interface {
	Initialize(appName string) error
	Shutdown() error
	CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) bool
	DestroyGeometry(geometry *metadata.Geometry)
	SetGeometryVisible(geometry *metadata.Geometry, visible bool) bool
}
