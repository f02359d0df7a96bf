package tamarack

import "github.com/go-gl/mathgl/mgl32"

// identityMatrix is the identity 4x4 matrix.
var identityMatrix = mgl32.Ident4()

// computeLocalMatrix computes the local transform matrix from the node's
// transform properties.
//
// Composition order: Scale -> Rotate -> Translate(Position).
func computeLocalMatrix(n *Node) mgl32.Mat4 {
	m := n.Rotation.Mat4()
	// Fold the scale into the rotation columns and set the translation
	// column directly, avoiding two extra full matrix multiplies.
	sx, sy, sz := n.Scale.X(), n.Scale.Y(), n.Scale.Z()
	m[0] *= sx
	m[1] *= sx
	m[2] *= sx
	m[4] *= sy
	m[5] *= sy
	m[6] *= sy
	m[8] *= sz
	m[9] *= sz
	m[10] *= sz
	m[12] = n.Position.X()
	m[13] = n.Position.Y()
	m[14] = n.Position.Z()
	return m
}

// updateWorldTransform recomputes world matrices for the subtree rooted at n.
// parentDirty forces recomputation even when the node itself is clean, since
// a parent change invalidates every descendant's world matrix.
func updateWorldTransform(n *Node, parent mgl32.Mat4, parentDirty bool) {
	dirty := parentDirty || n.transformDirty
	if dirty {
		n.worldMatrix = parent.Mul4(computeLocalMatrix(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldMatrix, dirty)
	}
}

// MarkDirty flags this node's world transform (and every descendant's) for
// recomputation on the next update. Call after mutating Position, Rotation,
// or Scale directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// WorldMatrix returns the node's cached world transform. Valid after the
// owning Scene's Update has run; a detached node returns whatever was last
// computed.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	return n.worldMatrix
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return mgl32.Vec3{n.worldMatrix[12], n.worldMatrix[13], n.worldMatrix[14]}
}

// transformPoint applies m to a position (w = 1).
func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 1})
	return mgl32.Vec3{v.X(), v.Y(), v.Z()}
}

// transformDir applies m to a direction (w = 0). The result is not normalized.
func transformDir(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(mgl32.Vec4{d.X(), d.Y(), d.Z(), 0})
	return mgl32.Vec3{v.X(), v.Y(), v.Z()}
}
