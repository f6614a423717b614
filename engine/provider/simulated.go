package provider

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/arkestra/spatialscan/engine/core"
	"github.com/arkestra/spatialscan/engine/math"
	"github.com/arkestra/spatialscan/engine/renderer/metadata"
)

// SimulatedScanConfig controls the surface the simulated provider grows.
type SimulatedScanConfig struct {
	// Overall width of the scanned surface along the x-axis.
	Width float32
	// Overall depth of the scanned surface along the z-axis.
	Depth float32
	// The number of segment rows the scan converges to.
	MaxSegments uint32
}

// SimulatedScan mimics a spatial understanding library that refines its
// reconstruction over time: every extract reports a gridded surface one
// segment row finer than the previous one, until MaxSegments is reached.
type SimulatedScan struct {
	config   SimulatedScanConfig
	mutex    sync.Mutex
	segments uint32
	pending  *ExtractInfo
}

func NewSimulatedScan(config SimulatedScanConfig) *SimulatedScan {
	if config.Width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		config.Width = 1.0
	}
	if config.Depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		config.Depth = 1.0
	}
	if config.MaxSegments < 1 {
		core.LogWarn("MaxSegments must be a positive number. Defaulting to one.")
		config.MaxSegments = 1
	}
	return &SimulatedScan{config: config}
}

func (ss *SimulatedScan) TryBeginExtract() (ExtractInfo, bool) {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	if ss.segments < ss.config.MaxSegments {
		ss.segments++
	}
	segs := ss.segments

	info := ExtractInfo{
		VertexCount: segs * segs * 4, // 4 verts per segment
		IndexCount:  segs * segs * 6, // 6 indices per segment
	}
	ss.pending = &info
	return info, true
}

func (ss *SimulatedScan) Extract(info ExtractInfo) (*metadata.GeometrySnapshot, error) {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	if ss.pending == nil || *ss.pending != info {
		return nil, fmt.Errorf("extract requested without a matching begin: %w", core.ErrProviderFault)
	}
	ss.pending = nil

	segs := ss.segments
	snapshot := &metadata.GeometrySnapshot{
		ID:       uuid.New().String(),
		Vertices: make([]math.Vertex3D, info.VertexCount),
		Indices:  make([]uint32, info.IndexCount),
	}

	segWidth := ss.config.Width / float32(segs)
	segDepth := ss.config.Depth / float32(segs)
	halfWidth := ss.config.Width * 0.5
	halfDepth := ss.config.Depth * 0.5
	for z := uint32(0); z < segs; z++ {
		for x := uint32(0); x < segs; x++ {
			minX := (float32(x) * segWidth) - halfWidth
			minZ := (float32(z) * segDepth) - halfDepth
			maxX := minX + segWidth
			maxZ := minZ + segDepth
			minU := float32(x) / float32(segs)
			minV := float32(z) / float32(segs)
			maxU := float32(x+1) / float32(segs)
			maxV := float32(z+1) / float32(segs)

			vOffset := ((z * segs) + x) * 4
			snapshot.Vertices[vOffset+0].Position = math.NewVec3(minX, 0, minZ)
			snapshot.Vertices[vOffset+1].Position = math.NewVec3(maxX, 0, maxZ)
			snapshot.Vertices[vOffset+2].Position = math.NewVec3(minX, 0, maxZ)
			snapshot.Vertices[vOffset+3].Position = math.NewVec3(maxX, 0, minZ)
			snapshot.Vertices[vOffset+0].Texcoord = math.NewVec2(minU, minV)
			snapshot.Vertices[vOffset+1].Texcoord = math.NewVec2(maxU, maxV)
			snapshot.Vertices[vOffset+2].Texcoord = math.NewVec2(minU, maxV)
			snapshot.Vertices[vOffset+3].Texcoord = math.NewVec2(maxU, minV)

			iOffset := ((z * segs) + x) * 6
			snapshot.Indices[iOffset+0] = vOffset + 0
			snapshot.Indices[iOffset+1] = vOffset + 1
			snapshot.Indices[iOffset+2] = vOffset + 2
			snapshot.Indices[iOffset+3] = vOffset + 0
			snapshot.Indices[iOffset+4] = vOffset + 3
			snapshot.Indices[iOffset+5] = vOffset + 1
		}
	}

	math.GeometryGenerateNormals(snapshot.Vertices, snapshot.Indices)

	return snapshot, nil
}
