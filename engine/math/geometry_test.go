package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryGenerateNormals(t *testing.T) {
	// One triangle in the XY plane, counter-clockwise; the face normal
	// points along +Z.
	vertices := []Vertex3D{
		{Position: NewVec3(0, 0, 0)},
		{Position: NewVec3(1, 0, 0)},
		{Position: NewVec3(0, 1, 0)},
	}
	indices := []uint32{0, 1, 2}

	GeometryGenerateNormals(vertices, indices)

	want := NewVec3(0, 0, 1)
	for i := range vertices {
		assert.True(t, vertices[i].Normal.Compare(want, K_FLOAT_EPSILON), "vertex %d normal %+v", i, vertices[i].Normal)
	}
}

func TestGeometryGenerateNormals_IgnoresPartialTriangle(t *testing.T) {
	vertices := []Vertex3D{
		{Position: NewVec3(0, 0, 0)},
		{Position: NewVec3(1, 0, 0)},
	}
	// Two indices do not form a triangle; nothing to do.
	GeometryGenerateNormals(vertices, []uint32{0, 1})
	assert.Equal(t, Vec3{}, vertices[0].Normal)
}

func TestGeometryCalculateExtents(t *testing.T) {
	vertices := []Vertex3D{
		{Position: NewVec3(-2, 0, 1)},
		{Position: NewVec3(4, -3, 5)},
		{Position: NewVec3(0, 2, -1)},
	}

	extents, center := GeometryCalculateExtents(vertices)
	assert.True(t, extents.Min.Compare(NewVec3(-2, -3, -1), K_FLOAT_EPSILON))
	assert.True(t, extents.Max.Compare(NewVec3(4, 2, 5), K_FLOAT_EPSILON))
	assert.True(t, center.Compare(NewVec3(1, -0.5, 2), K_FLOAT_EPSILON))
}

func TestGeometryCalculateExtents_Empty(t *testing.T) {
	extents, center := GeometryCalculateExtents(nil)
	assert.Equal(t, Extents3D{}, extents)
	assert.Equal(t, Vec3{}, center)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(3, 5, 10))
	assert.Equal(t, 10, Clamp(42, 5, 10))
	assert.Equal(t, 7, Clamp(7, 5, 10))
	assert.Equal(t, 0.25, Clamp(0.25, 0.0, 1.0))
}
