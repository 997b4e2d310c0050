package arbor

import "cogentcore.org/core/math32"

// MeshBuffers holds the vertex attribute and index arrays for a generated
// primitive: positions and normals as packed XYZ triples, texture
// coordinates as UV pairs. Buffers are plain slices produced fresh per
// call; dropping the references releases them.
type MeshBuffers struct {
	Vertex   math32.ArrayF32
	Normal   math32.ArrayF32
	TexCoord math32.ArrayF32
	Index    math32.ArrayU32
}

// NumVertices returns the number of vertices in the buffers.
func (m *MeshBuffers) NumVertices() int {
	return len(m.Vertex) / 3
}

// NumTriangles returns the number of indexed triangles.
func (m *MeshBuffers) NumTriangles() int {
	return len(m.Index) / 3
}

// addVertex appends one vertex and returns its index.
func (m *MeshBuffers) addVertex(pos, norm math32.Vector3, u, v float32) uint32 {
	i := uint32(len(m.Vertex) / 3)
	m.Vertex = append(m.Vertex, pos.X, pos.Y, pos.Z)
	m.Normal = append(m.Normal, norm.X, norm.Y, norm.Z)
	m.TexCoord = append(m.TexCoord, u, v)
	return i
}

// addTriangle appends one indexed triangle.
func (m *MeshBuffers) addTriangle(a, b, c uint32) {
	m.Index = append(m.Index, a, b, c)
}

// --- Cylinder ---

// NewCylinder builds a capped cylinder centered at the origin, spanning
// -height/2 to +height/2 along Y, with radialSegs segments around the
// circumference (minimum 3). The seam vertex is duplicated so UVs wrap.
// Branch instancing uses NewCylinder(1, 1, n) stretched per transform.
func NewCylinder(radius, height float32, radialSegs int) *MeshBuffers {
	if radialSegs < 3 {
		radialSegs = 3
	}
	m := &MeshBuffers{}
	half := height / 2

	// Side wall: paired top/bottom rings with radial normals.
	for i := 0; i <= radialSegs; i++ {
		u := float32(i) / float32(radialSegs)
		theta := u * 2 * math32.Pi
		sin, cos := math32.Sin(theta), math32.Cos(theta)
		norm := math32.Vec3(sin, 0, cos)
		m.addVertex(math32.Vec3(radius*sin, half, radius*cos), norm, u, 0)
		m.addVertex(math32.Vec3(radius*sin, -half, radius*cos), norm, u, 1)
	}
	for i := 0; i < radialSegs; i++ {
		top := uint32(i * 2)
		bot := top + 1
		m.addTriangle(top, bot, top+2)
		m.addTriangle(bot, bot+3, top+2)
	}

	// Caps: center fans with axial normals.
	for _, face := range []struct {
		y    float32
		norm math32.Vector3
	}{
		{half, math32.Vec3(0, 1, 0)},
		{-half, math32.Vec3(0, -1, 0)},
	} {
		center := m.addVertex(math32.Vec3(0, face.y, 0), face.norm, 0.5, 0.5)
		ring := center + 1
		for i := 0; i <= radialSegs; i++ {
			theta := float32(i) / float32(radialSegs) * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)
			m.addVertex(math32.Vec3(radius*sin, face.y, radius*cos), face.norm, (sin+1)/2, (cos+1)/2)
		}
		for i := uint32(0); i < uint32(radialSegs); i++ {
			if face.y > 0 {
				m.addTriangle(center, ring+i, ring+i+1)
			} else {
				m.addTriangle(center, ring+i+1, ring+i)
			}
		}
	}
	return m
}

// --- Leaf ---

// NewLeaf builds a unit diamond-shaped leaf quad in the XY plane, spanning
// -0.5 to +0.5 along Y with the stem at the bottom tip. Both faces are
// indexed so the leaf is visible from either side.
func NewLeaf() *MeshBuffers {
	m := &MeshBuffers{}
	norm := math32.Vec3(0, 0, 1)
	bottom := m.addVertex(math32.Vec3(0, -0.5, 0), norm, 0.5, 1)
	right := m.addVertex(math32.Vec3(0.25, 0, 0), norm, 1, 0.5)
	top := m.addVertex(math32.Vec3(0, 0.5, 0), norm, 0.5, 0)
	left := m.addVertex(math32.Vec3(-0.25, 0, 0), norm, 0, 0.5)

	m.addTriangle(bottom, right, top)
	m.addTriangle(bottom, top, left)

	// Back face with the flipped normal.
	back := norm.MulScalar(-1)
	b2 := m.addVertex(math32.Vec3(0, -0.5, 0), back, 0.5, 1)
	r2 := m.addVertex(math32.Vec3(0.25, 0, 0), back, 1, 0.5)
	t2 := m.addVertex(math32.Vec3(0, 0.5, 0), back, 0.5, 0)
	l2 := m.addVertex(math32.Vec3(-0.25, 0, 0), back, 0, 0.5)

	m.addTriangle(b2, t2, r2)
	m.addTriangle(b2, l2, t2)
	return m
}

// --- Sphere ---

// NewSphere builds a latitude/longitude sphere centered at the origin with
// segs subdivisions in both directions (minimum 3). Used by the examples to
// visualize attraction points.
func NewSphere(radius float32, segs int) *MeshBuffers {
	if segs < 3 {
		segs = 3
	}
	m := &MeshBuffers{}

	for iy := 0; iy <= segs; iy++ {
		v := float32(iy) / float32(segs)
		phi := v * math32.Pi
		for ix := 0; ix <= segs; ix++ {
			u := float32(ix) / float32(segs)
			theta := u * 2 * math32.Pi
			norm := math32.Vec3(
				math32.Sin(phi)*math32.Sin(theta),
				math32.Cos(phi),
				math32.Sin(phi)*math32.Cos(theta),
			)
			m.addVertex(norm.MulScalar(radius), norm, u, v)
		}
	}

	stride := uint32(segs + 1)
	for iy := uint32(0); iy < uint32(segs); iy++ {
		for ix := uint32(0); ix < uint32(segs); ix++ {
			a := iy*stride + ix
			b := a + stride
			m.addTriangle(a, b, a+1)
			m.addTriangle(b, b+1, a+1)
		}
	}
	return m
}
