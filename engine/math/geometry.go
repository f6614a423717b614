package math

// GeometryGenerateNormals writes face normals for every triangle described
// by indices. Vertices shared between triangles take the normal of the last
// triangle visited.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		c := edge1.Cross(edge2)
		normal := c.Normalized()

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// GeometryCalculateExtents returns the axis-aligned bounds and center of the
// provided vertices.
func GeometryCalculateExtents(vertices []Vertex3D) (Extents3D, Vec3) {
	extents := Extents3D{
		Min: NewVec3(K_INFINITY, K_INFINITY, K_INFINITY),
		Max: NewVec3(-K_INFINITY, -K_INFINITY, -K_INFINITY),
	}
	if len(vertices) == 0 {
		return Extents3D{}, Vec3{}
	}
	for _, v := range vertices {
		if v.Position.X < extents.Min.X {
			extents.Min.X = v.Position.X
		}
		if v.Position.Y < extents.Min.Y {
			extents.Min.Y = v.Position.Y
		}
		if v.Position.Z < extents.Min.Z {
			extents.Min.Z = v.Position.Z
		}
		if v.Position.X > extents.Max.X {
			extents.Max.X = v.Position.X
		}
		if v.Position.Y > extents.Max.Y {
			extents.Max.Y = v.Position.Y
		}
		if v.Position.Z > extents.Max.Z {
			extents.Max.Z = v.Position.Z
		}
	}
	center := extents.Min.Add(extents.Max).MulScalar(0.5)
	return extents, center
}
