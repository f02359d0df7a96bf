package tamarack

import (
	"github.com/go-gl/mathgl/mgl32"
)

// --- AABB ---

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Center returns the box center.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Corners returns the eight box corners. Used by the viewer for wireframe
// edges and by the ray caster for world-space bounds.
func (b AABB) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
	}
}

// extend grows the box to include p.
func (b AABB) extend(p mgl32.Vec3) AABB {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// --- Mesh ---

// Mesh is an indexed triangle list in local space. Meshes are treated as
// immutable once attached to nodes; a single Mesh may be shared by many
// nodes (library clones share meshes, never materials).
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32

	bounds      AABB // cached local-space AABB
	boundsDirty bool
}

// NewMesh creates a mesh from a vertex and index list.
// len(indices) must be a multiple of 3.
func NewMesh(vertices []mgl32.Vec3, indices []uint32) *Mesh {
	if len(indices)%3 != 0 {
		panic("tamarack: mesh index count must be a multiple of 3")
	}
	return &Mesh{Vertices: vertices, Indices: indices, boundsDirty: true}
}

// NewBoxMesh creates a box of the given dimensions centered at the origin.
func NewBoxMesh(width, height, depth float32) *Mesh {
	hw, hh, hd := width/2, height/2, depth/2
	vertices := []mgl32.Vec3{
		{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
		{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
	}
	indices := []uint32{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 4, 7, 0, 7, 3, // left
		1, 6, 5, 1, 2, 6, // right
		3, 7, 6, 3, 6, 2, // top
		0, 1, 5, 0, 5, 4, // bottom
	}
	return NewMesh(vertices, indices)
}

// NewQuadMesh creates a flat XZ-plane quad of the given dimensions centered
// at the origin, facing +Y. Useful as a floor plane.
func NewQuadMesh(width, depth float32) *Mesh {
	hw, hd := width/2, depth/2
	vertices := []mgl32.Vec3{
		{-hw, 0, -hd}, {hw, 0, -hd}, {hw, 0, hd}, {-hw, 0, hd},
	}
	indices := []uint32{0, 2, 1, 0, 3, 2}
	return NewMesh(vertices, indices)
}

// Bounds returns the local-space AABB, computing and caching it on first use.
func (m *Mesh) Bounds() AABB {
	if m.boundsDirty {
		m.recomputeBounds()
	}
	return m.bounds
}

func (m *Mesh) recomputeBounds() {
	m.boundsDirty = false
	if len(m.Vertices) == 0 {
		m.bounds = AABB{}
		return
	}
	b := AABB{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b = b.extend(v)
	}
	m.bounds = b
}

// NumTriangles returns the triangle count.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// --- Ray/triangle intersection ---

// rayEpsilon guards against division by a near-zero determinant (ray parallel
// to the triangle plane) and against self-intersection at distance zero.
const rayEpsilon = 1e-7

// intersectTriangle runs the Möller–Trumbore test for a local-space ray
// against triangle (v0, v1, v2). Returns the hit distance along the ray and
// whether the triangle was hit in front of the origin. Backfaces count as
// hits: picking should not depend on winding.
func intersectTriangle(origin, dir, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	t := origin.Sub(v0)
	u := t.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := t.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	dist := e2.Dot(q) * inv
	if dist < rayEpsilon {
		return 0, false
	}
	return dist, true
}

// intersect finds the nearest triangle hit for a local-space ray.
// dir does not need to be normalized; the returned distance is in units of
// dir's length.
func (m *Mesh) intersect(origin, dir mgl32.Vec3) (float32, bool) {
	nearest := float32(0)
	found := false
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0 := m.Vertices[m.Indices[i]]
		v1 := m.Vertices[m.Indices[i+1]]
		v2 := m.Vertices[m.Indices[i+2]]
		if d, ok := intersectTriangle(origin, dir, v0, v1, v2); ok {
			if !found || d < nearest {
				nearest = d
				found = true
			}
		}
	}
	return nearest, found
}
