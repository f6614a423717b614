package systems

import (
	"fmt"

	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/math"
	"github.com/arkestra/spatialscan/engine/renderer"
	"github.com/arkestra/spatialscan/engine/renderer/metadata"
)

/** @brief The configuration for the geometry system. */
type GeometrySystemConfig struct {
	/** @brief The maximum number of geometries that can be held at once. */
	MaxGeometryCount uint32
}

type GeometrySystem struct {
	config *GeometrySystemConfig
	// Array of registered geometries.
	registered []*metadata.GeometryReference
	// subsystems
	renderer renderer.Backend
}

func NewGeometrySystem(config *GeometrySystemConfig, r renderer.Backend) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogWarn(err.Error())
		return nil, err
	}

	gs := &GeometrySystem{
		config:     config,
		registered: make([]*metadata.GeometryReference, config.MaxGeometryCount),
		renderer:   r,
	}

	// Invalidate all geometries in the array.
	for i := uint32(0); i < config.MaxGeometryCount; i++ {
		gs.registered[i] = &metadata.GeometryReference{
			Geometry: &metadata.Geometry{
				ID:         metadata.InvalidID,
				InternalID: metadata.InvalidID,
				Generation: metadata.InvalidIDUint16,
			},
		}
	}

	return gs, nil
}

func (gs *GeometrySystem) Shutdown() error {
	for _, ref := range gs.registered {
		if ref.Geometry.ID != metadata.InvalidID {
			gs.destroyGeometry(ref.Geometry)
			ref.ReferenceCount = 0
			ref.AutoRelease = false
		}
	}
	return nil
}

/**
 * @brief Registers and acquires a new geometry built from the snapshot.
 *
 * @param snapshot The snapshot to upload. Must already be validated.
 * @param materialName The name of the material the geometry is drawn with.
 * @param autoRelease Indicates if the acquired geometry should be unloaded when its reference count reaches 0.
 * @return A pointer to the acquired geometry or nil if failed.
 */
func (gs *GeometrySystem) AcquireFromSnapshot(snapshot *metadata.GeometrySnapshot, materialName string, autoRelease bool) (*metadata.Geometry, error) {
	var geometry *metadata.Geometry
	var slot uint32
	for i := uint32(0); i < gs.config.MaxGeometryCount; i++ {
		if gs.registered[i].Geometry.ID == metadata.InvalidID {
			// Found empty slot.
			gs.registered[i].AutoRelease = autoRelease
			gs.registered[i].ReferenceCount = 1
			geometry = gs.registered[i].Geometry
			geometry.ID = i
			slot = i
			break
		}
	}

	if geometry == nil {
		err := fmt.Errorf("unable to obtain free slot for geometry. Adjust configuration to allow more space")
		core.LogError(err.Error())
		return nil, err
	}

	if !gs.renderer.CreateGeometry(geometry, snapshot.Vertices, snapshot.Indices) {
		// Invalidate the entry.
		gs.registered[slot].ReferenceCount = 0
		gs.registered[slot].AutoRelease = false
		geometry.ID = metadata.InvalidID
		geometry.Generation = metadata.InvalidIDUint16
		geometry.InternalID = metadata.InvalidID

		err := fmt.Errorf("renderer rejected geometry upload: %w", core.ErrProviderFault)
		core.LogError(err.Error())
		return nil, err
	}

	geometry.Extents, geometry.Center = math.GeometryCalculateExtents(snapshot.Vertices)
	geometry.Name = metadata.ScanGeometryName
	geometry.MaterialName = materialName

	return geometry, nil
}

/**
 * @brief Releases a reference to the provided geometry.
 *
 * @param geometry The geometry to be released.
 */
func (gs *GeometrySystem) Release(geometry *metadata.Geometry) {
	if geometry != nil && geometry.ID != metadata.InvalidID {
		ref := gs.registered[geometry.ID]

		// Take a copy of the id;
		id := geometry.ID
		if ref.Geometry.ID == id {
			if ref.ReferenceCount > 0 {
				ref.ReferenceCount--
			}

			// Also blanks out the geometry id.
			if ref.ReferenceCount < 1 && ref.AutoRelease {
				gs.destroyGeometry(ref.Geometry)
				ref.ReferenceCount = 0
				ref.AutoRelease = false
			}
		} else {
			core.LogError("Geometry id mismatch. Check registration logic, as this should never occur.")
		}
		return
	}

	core.LogWarn("GeometrySystem.Release cannot release invalid geometry id. Nothing was done.")
}

// LiveCount returns the number of registered geometries currently holding
// renderer resources.
func (gs *GeometrySystem) LiveCount() int {
	count := 0
	for _, ref := range gs.registered {
		if ref.Geometry.ID != metadata.InvalidID {
			count++
		}
	}
	return count
}

func (gs *GeometrySystem) destroyGeometry(geometry *metadata.Geometry) {
	gs.renderer.DestroyGeometry(geometry)
	geometry.InternalID = metadata.InvalidID
	geometry.Generation = metadata.InvalidIDUint16
	geometry.ID = metadata.InvalidID
	geometry.Name = ""
	geometry.MaterialName = ""
}
