package tamarack

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// refreshWorld recomputes world transforms for a detached test tree.
func refreshWorld(root *Node) {
	updateWorldTransform(root, identityMatrix, false)
}

// testCamera returns a camera at +Z looking at the origin.
func testCamera() *Camera {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.Target = mgl32.Vec3{0, 0, 0}
	return cam
}

func TestRayIntersectsAABB(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	tests := []struct {
		name   string
		origin mgl32.Vec3
		dir    mgl32.Vec3
		want   bool
	}{
		{"straight through", mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}, true},
		{"miss to the side", mgl32.Vec3{5, 0, 10}, mgl32.Vec3{0, 0, -1}, false},
		{"pointing away", mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1}, false},
		{"origin inside", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, true},
		{"diagonal hit", mgl32.Vec3{5, 5, 5}, mgl32.Vec3{-1, -1, -1}, true},
		{"zero axis on slab plane", mgl32.Vec3{1, 0, 10}, mgl32.Vec3{0, 0, -1}, true},
		{"zero axis outside slab", mgl32.Vec3{2, 0, 10}, mgl32.Vec3{0, 0, -1}, false},
		{"grazing corner", mgl32.Vec3{1, 1, 10}, mgl32.Vec3{0, 0, -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rayIntersectsAABB(tt.origin, tt.dir, box); got != tt.want {
				t.Errorf("rayIntersectsAABB(%v, %v) = %v, want %v", tt.origin, tt.dir, got, tt.want)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	v0 := mgl32.Vec3{-1, -1, 0}
	v1 := mgl32.Vec3{1, -1, 0}
	v2 := mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name     string
		origin   mgl32.Vec3
		dir      mgl32.Vec3
		wantHit  bool
		wantDist float32
	}{
		{"center hit", mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, true, 5},
		{"backface hit", mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, 1}, true, 5},
		{"outside edge", mgl32.Vec3{2, 0, 5}, mgl32.Vec3{0, 0, -1}, false, 0},
		{"behind origin", mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, -1}, false, 0},
		{"parallel", mgl32.Vec3{0, 0, 5}, mgl32.Vec3{1, 0, 0}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ok := intersectTriangle(tt.origin, tt.dir, v0, v1, v2)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && math.Abs(float64(dist-tt.wantDist)) > 1e-5 {
				t.Errorf("dist = %v, want %v", dist, tt.wantDist)
			}
		})
	}
}

func TestCastRayContextErrors(t *testing.T) {
	root := NewGroup("root")

	if _, err := CastRay(NDC{}, nil, []*Node{root}, CastOptions{}); !errors.Is(err, ErrNoCamera) {
		t.Errorf("nil camera: err = %v, want ErrNoCamera", err)
	}
	if _, err := CastRay(NDC{}, testCamera(), nil, CastOptions{}); !errors.Is(err, ErrNoScene) {
		t.Errorf("nil roots: err = %v, want ErrNoScene", err)
	}
	if _, err := CastRay(NDC{}, testCamera(), []*Node{}, CastOptions{}); !errors.Is(err, ErrNoScene) {
		t.Errorf("empty roots: err = %v, want ErrNoScene", err)
	}
	if _, err := CastRay(NDC{}, testCamera(), []*Node{nil, nil}, CastOptions{}); !errors.Is(err, ErrNoScene) {
		t.Errorf("all-nil roots: err = %v, want ErrNoScene", err)
	}
}

func TestCastRayMixedNilRoots(t *testing.T) {
	// Nil entries alongside a real root are tolerated, not an error.
	root := NewGroup("root")
	box := NewSolid("box", NewBoxMesh(2, 2, 2), Material{Color: ColorWhite})
	root.AddChild(box)
	refreshWorld(root)

	hits, err := CastRay(NDC{}, testCamera(), []*Node{nil, root, nil}, CastOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Node != box {
		t.Fatalf("len(hits) = %d, want 1 hit on box", len(hits))
	}
}

func TestCastRayNearestFirst(t *testing.T) {
	root := NewGroup("root")
	near := NewSolid("near", NewBoxMesh(1, 1, 1), Material{Color: ColorWhite})
	near.Position = mgl32.Vec3{0, 0, 5}
	far := NewSolid("far", NewBoxMesh(1, 1, 1), Material{Color: ColorWhite})
	far.Position = mgl32.Vec3{0, 0, -5}
	// Add farthest first so ordering cannot come from insertion order.
	root.AddChild(far)
	root.AddChild(near)
	refreshWorld(root)

	hits, err := CastRay(NDC{}, testCamera(), []*Node{root}, CastOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	if hits[0].Node != near || hits[1].Node != far {
		t.Errorf("hit order = [%s, %s], want [near, far]", hits[0].Node.Name, hits[1].Node.Name)
	}
	if hits[0].Distance >= hits[1].Distance {
		t.Errorf("distances not ascending: %v >= %v", hits[0].Distance, hits[1].Distance)
	}
}

func TestCastRayMiss(t *testing.T) {
	root := NewGroup("root")
	box := NewSolid("box", NewBoxMesh(1, 1, 1), Material{Color: ColorWhite})
	box.Position = mgl32.Vec3{50, 0, 0}
	root.AddChild(box)
	refreshWorld(root)

	hits, err := CastRay(NDC{}, testCamera(), []*Node{root}, CastOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("len(hits) = %d, want 0", len(hits))
	}
}

func TestCastRayVisibilityPolicy(t *testing.T) {
	root := NewGroup("root")
	hidden := NewSolid("hidden", NewBoxMesh(2, 2, 2), Material{Color: ColorWhite})
	hidden.Visible = false
	root.AddChild(hidden)
	refreshWorld(root)

	hits, err := CastRay(NDC{}, testCamera(), []*Node{root}, CastOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("default policy: len(hits) = %d, want 0 (invisible skipped)", len(hits))
	}

	hits, err = CastRay(NDC{}, testCamera(), []*Node{root}, CastOptions{IncludeInvisible: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("IncludeInvisible: len(hits) = %d, want 1", len(hits))
	}
}

func TestCastRayInvisibleSubtreePruned(t *testing.T) {
	// An invisible group hides its visible descendants under the default policy.
	root := NewGroup("root")
	group := NewGroup("group")
	group.Visible = false
	inner := NewSolid("inner", NewBoxMesh(2, 2, 2), Material{Color: ColorWhite})
	group.AddChild(inner)
	root.AddChild(group)
	refreshWorld(root)

	hits, err := CastRay(NDC{}, testCamera(), []*Node{root}, CastOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("len(hits) = %d, want 0", len(hits))
	}
}

func TestCastRayCuratedSubset(t *testing.T) {
	// Casting against a curated subtree list ignores everything else.
	interactive := NewGroup("interactive")
	box := NewSolid("box", NewBoxMesh(1, 1, 1), Material{Color: ColorWhite})
	interactive.AddChild(box)
	refreshWorld(interactive)

	other := NewSolid("other", NewBoxMesh(4, 4, 4), Material{Color: ColorWhite})
	refreshWorld(other)

	hits, err := CastRay(NDC{}, testCamera(), []*Node{interactive}, CastOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Node != box {
		t.Fatalf("hits = %v, want only the curated box", hits)
	}
}

func TestCastRayTransformedNode(t *testing.T) {
	// A scaled and translated node must intersect in its local space.
	root := NewGroup("root")
	box := NewSolid("box", NewBoxMesh(1, 1, 1), Material{Color: ColorWhite})
	box.Position = mgl32.Vec3{3, 0, 0}
	box.Scale = mgl32.Vec3{4, 4, 4} // covers x in [1, 5]
	root.AddChild(box)
	refreshWorld(root)

	cam := testCamera()
	cam.Position = mgl32.Vec3{3, 0, 10}
	cam.Target = mgl32.Vec3{3, 0, 0}

	hits, err := CastRay(NDC{}, cam, []*Node{root}, CastOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	// The ray origin sits on the near plane (z = 9.9) and the scaled box's
	// front face sits at z = 2, so the hit is 7.9 away.
	if math.Abs(float64(hits[0].Distance-7.9)) > 1e-2 {
		t.Errorf("distance = %v, want ~7.9", hits[0].Distance)
	}
}

func TestCastRayGroupsAreTransparent(t *testing.T) {
	// Nodes without meshes never produce hits but are traversed.
	root := NewGroup("root")
	group := NewGroup("group")
	box := NewSolid("box", NewBoxMesh(1, 1, 1), Material{Color: ColorWhite})
	group.AddChild(box)
	root.AddChild(group)
	refreshWorld(root)

	hits, err := CastRay(NDC{}, testCamera(), []*Node{root}, CastOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Node != box {
		t.Fatalf("want exactly the solid, got %d hits", len(hits))
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{1, 0, 0}, Dir: mgl32.Vec3{0, 1, 0}}
	p := r.At(3)
	if p != (mgl32.Vec3{1, 3, 0}) {
		t.Errorf("At(3) = %v, want (1, 3, 0)", p)
	}
}
