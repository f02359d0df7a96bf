package tamarack

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Ray ---

// Ray is a world-space ray: an origin point and a normalized direction.
// Rays are derived values computed per pick and discarded after use.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// --- Hit ---

// Hit is one ray/surface intersection: the struck node, the distance from
// the ray origin, and the world-space intersection point. Ephemeral,
// produced and consumed within one pick operation.
type Hit struct {
	Node     *Node
	Distance float32
	Point    mgl32.Vec3
}

// --- Options ---

// CastOptions controls scene traversal during a cast.
type CastOptions struct {
	// IncludeInvisible tests nodes with Visible == false instead of skipping
	// their subtrees. Off by default: most picks should ignore hidden
	// helpers, but call sites that probe a curated subtree sometimes need
	// everything in it.
	IncludeInvisible bool
}

// --- Casting ---

// CastRay casts the ray for the given normalized device coordinate against
// the node subtrees in roots. Hits are ordered by ascending distance from
// the ray origin, nearest first; the slice is empty when nothing was hit.
//
// Returns ErrNoCamera when cam is nil and ErrNoScene when roots is empty —
// a pick against a missing context is reported, never silently ignored.
func CastRay(ndc NDC, cam *Camera, roots []*Node, opts CastOptions) ([]Hit, error) {
	if cam == nil {
		return nil, ErrNoCamera
	}
	// Nil entries are tolerated in a mixed list but a list with no real root
	// is a missing scene, same as an empty one.
	valid := 0
	for _, root := range roots {
		if root != nil {
			valid++
		}
	}
	if valid == 0 {
		return nil, ErrNoScene
	}
	ray := cam.PickRay(ndc)
	return castRay(ray, roots, opts, nil), nil
}

// castRay runs the traversal for an already constructed world-space ray,
// appending into buf (may be nil). Exposed separately so the Scene can reuse
// its hit buffer across picks.
func castRay(ray Ray, roots []*Node, opts CastOptions, buf []Hit) []Hit {
	for _, root := range roots {
		if root == nil {
			continue
		}
		buf = collectHits(ray, root, opts, buf)
	}
	sort.Slice(buf, func(i, j int) bool {
		return buf[i].Distance < buf[j].Distance
	})
	return buf
}

// collectHits recursively tests node and its subtree against the ray.
func collectHits(ray Ray, n *Node, opts CastOptions, buf []Hit) []Hit {
	if n.disposed {
		return buf
	}
	if !n.Visible && !opts.IncludeInvisible {
		return buf
	}

	if n.Mesh != nil {
		if d, p, ok := intersectNode(ray, n); ok {
			buf = append(buf, Hit{Node: n, Distance: d, Point: p})
		}
	}

	for _, child := range n.children {
		buf = collectHits(ray, child, opts, buf)
	}
	return buf
}

// intersectNode tests the ray against a single node's mesh: the ray is
// transformed into the node's local space (handling rotation and non-uniform
// scale in one inverse), broad-phased against the mesh AABB, then run
// through the exact triangle test. The returned distance and point are in
// world space.
func intersectNode(ray Ray, n *Node) (float32, mgl32.Vec3, bool) {
	inv := n.worldMatrix.Inv()
	lo := transformPoint(inv, ray.Origin)
	ld := transformDir(inv, ray.Dir)

	if !rayIntersectsAABB(lo, ld, n.Mesh.Bounds()) {
		return 0, mgl32.Vec3{}, false
	}

	t, ok := n.Mesh.intersect(lo, ld)
	if !ok {
		return 0, mgl32.Vec3{}, false
	}

	// t is in units of the local direction's length; map the local hit point
	// back to world space and measure the true distance there.
	localPoint := lo.Add(ld.Mul(t))
	worldPoint := transformPoint(n.worldMatrix, localPoint)
	return worldPoint.Sub(ray.Origin).Len(), worldPoint, true
}

// rayIntersectsAABB is the slab test. Axes with zero direction are handled
// by the plain interval check instead of dividing, which avoids 0*Inf NaNs
// when the origin sits exactly on a slab plane.
func rayIntersectsAABB(origin, dir mgl32.Vec3, box AABB) bool {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < box.Min[i] || origin[i] > box.Max[i] {
				return false
			}
			continue
		}
		inv := 1 / dir[i]
		t0 := (box.Min[i] - origin[i]) * inv
		t1 := (box.Max[i] - origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return false
		}
	}
	return tmax >= 0
}
