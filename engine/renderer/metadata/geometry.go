package metadata

import (
	"fmt"

	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/math"
)

/** @brief An invalid identifier value. */
const InvalidID uint32 = 0xFFFFFFFF
const InvalidIDUint16 uint16 = 0xFFFF

/** @brief The name given to imported scan geometry. */
const ScanGeometryName string = "scan_surface"

/**
 * @brief One complete pull of scanned geometry from the spatial provider.
 * Vertices carry position and normal; indices describe triangles.
 */
type GeometrySnapshot struct {
	/** @brief Unique identifier of this pull. */
	ID string
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices, three per triangle. */
	Indices []uint32
}

// Validate reports whether the snapshot can safely replace displayed
// geometry. Empty buffers, a partial triangle or an index referencing a
// missing vertex all make the snapshot invalid.
func (s *GeometrySnapshot) Validate() error {
	if s == nil || len(s.Vertices) == 0 || len(s.Indices) == 0 {
		return fmt.Errorf("empty vertex or index buffer: %w", core.ErrInvalidGeometry)
	}
	if len(s.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3: %w", len(s.Indices), core.ErrInvalidGeometry)
	}
	for _, idx := range s.Indices {
		if idx >= uint32(len(s.Vertices)) {
			return fmt.Errorf("index %d out of range (vertex count %d): %w", idx, len(s.Vertices), core.ErrInvalidGeometry)
		}
	}
	return nil
}

type GeometryReference struct {
	ReferenceCount uint64
	Geometry       *Geometry
	AutoRelease    bool
}

/**
 * @brief Represents actual geometry currently held for display.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The internal geometry identifier, used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name string
	/** @brief The name of the material the geometry should be drawn with. */
	MaterialName string
}
