package tamarack

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func rackProto() *Node {
	rack := NewGroup("rack")
	rack.Selectable = true
	bin := NewSolid("bin", NewBoxMesh(1, 1, 1), Material{Color: Color{R: 1, A: 1}})
	bin.Position = mgl32.Vec3{0, 1, 0}
	rack.AddChild(bin)
	return rack
}

func TestLibraryCloneUnknown(t *testing.T) {
	lib := NewLibrary()
	if _, err := lib.Clone("missing"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestLibraryRegisterPanics(t *testing.T) {
	lib := NewLibrary()

	t.Run("nil", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on nil prototype")
			}
		}()
		lib.Register("x", nil)
	})

	t.Run("disposed", func(t *testing.T) {
		proto := NewGroup("gone")
		proto.Dispose()
		defer func() {
			if recover() == nil {
				t.Error("expected panic on disposed prototype")
			}
		}()
		lib.Register("x", proto)
	})
}

func TestLibraryCloneIsDeep(t *testing.T) {
	lib := NewLibrary()
	lib.Register("rack", rackProto())

	a, err := lib.Clone("rack")
	if err != nil {
		t.Fatal(err)
	}
	b, err := lib.Clone("rack")
	if err != nil {
		t.Fatal(err)
	}

	if a == b || a.ChildAt(0) == b.ChildAt(0) {
		t.Fatal("clones must not share nodes")
	}
	if a.ID == b.ID || a.ChildAt(0).ID == b.ChildAt(0).ID {
		t.Error("clones must get fresh IDs")
	}
	if !a.Selectable || a.ChildAt(0).Position != (mgl32.Vec3{0, 1, 0}) {
		t.Error("clone should preserve flags and transforms")
	}
}

func TestLibraryCloneMaterialIndependence(t *testing.T) {
	lib := NewLibrary()
	lib.Register("rack", rackProto())

	a, _ := lib.Clone("rack")
	b, _ := lib.Clone("rack")

	// Highlighting one instance must never touch another.
	a.ChildAt(0).Material.Emissive = Color{R: 1, A: 1}
	if b.ChildAt(0).Material.Emissive != (Color{}) {
		t.Error("clones must not share materials")
	}

	// Meshes are immutable and deliberately shared.
	if a.ChildAt(0).Mesh != b.ChildAt(0).Mesh {
		t.Error("clones should share meshes")
	}
}

func TestLibraryEvictAndClear(t *testing.T) {
	lib := NewLibrary()
	lib.Register("a", rackProto())
	lib.Register("b", rackProto())

	if !lib.Evict("a") {
		t.Error("Evict(a) = false, want true")
	}
	if lib.Evict("a") {
		t.Error("second Evict(a) = true, want false")
	}
	if lib.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lib.Len())
	}

	lib.Clear()
	if lib.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", lib.Len())
	}
}

func TestLibraryRegisterReplaces(t *testing.T) {
	lib := NewLibrary()
	lib.Register("rack", rackProto())

	tall := NewGroup("tall-rack")
	lib.Register("rack", tall)

	got, err := lib.Clone("rack")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "tall-rack" {
		t.Errorf("clone Name = %q, want the replacement prototype", got.Name)
	}
	if lib.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lib.Len())
	}
}
