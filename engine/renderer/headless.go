package renderer

import (
	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/math"
	"github.com/arkestra/spatialscan/engine/renderer/metadata"
)

type uploadedGeometry struct {
	vertices []math.Vertex3D
	indices  []uint32
	visible  bool
}

// HeadlessBackend keeps uploaded geometry in memory. It stands in for a GPU
// backend where no display is available and lets callers inspect what is
// currently held.
type HeadlessBackend struct {
	appName    string
	geometries map[uint32]*uploadedGeometry
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{
		geometries: make(map[uint32]*uploadedGeometry),
	}
}

func (hb *HeadlessBackend) Initialize(appName string) error {
	hb.appName = appName
	core.LogInfo("headless renderer initialized for '%s'", appName)
	return nil
}

func (hb *HeadlessBackend) Shutdown() error {
	for id := range hb.geometries {
		if err := core.IdentifierReleaseID(id); err != nil {
			core.LogError(err.Error())
		}
		delete(hb.geometries, id)
	}
	return nil
}

func (hb *HeadlessBackend) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) bool {
	if geometry == nil || len(vertices) == 0 || len(indices) == 0 {
		return false
	}

	// Take copies; the provider is free to reuse its buffers.
	upload := &uploadedGeometry{
		vertices: append([]math.Vertex3D(nil), vertices...),
		indices:  append([]uint32(nil), indices...),
		visible:  true,
	}

	geometry.InternalID = core.IdentifierAcquireNewID(upload)
	hb.geometries[geometry.InternalID] = upload
	geometry.Generation++
	return true
}

func (hb *HeadlessBackend) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry == nil || geometry.InternalID == metadata.InvalidID {
		return
	}
	if _, ok := hb.geometries[geometry.InternalID]; !ok {
		core.LogWarn("destroy requested for unknown geometry internal id %d", geometry.InternalID)
		return
	}
	delete(hb.geometries, geometry.InternalID)
	if err := core.IdentifierReleaseID(geometry.InternalID); err != nil {
		core.LogError(err.Error())
	}
	geometry.InternalID = metadata.InvalidID
}

func (hb *HeadlessBackend) SetGeometryVisible(geometry *metadata.Geometry, visible bool) bool {
	if geometry == nil || geometry.InternalID == metadata.InvalidID {
		return false
	}
	upload, ok := hb.geometries[geometry.InternalID]
	if !ok {
		return false
	}
	upload.visible = visible
	return true
}

// GeometryVisible reports the visibility flag of an uploaded geometry.
func (hb *HeadlessBackend) GeometryVisible(geometry *metadata.Geometry) bool {
	if geometry == nil || geometry.InternalID == metadata.InvalidID {
		return false
	}
	upload, ok := hb.geometries[geometry.InternalID]
	return ok && upload.visible
}

// LiveGeometryCount returns how many uploads are currently held.
func (hb *HeadlessBackend) LiveGeometryCount() int {
	return len(hb.geometries)
}
