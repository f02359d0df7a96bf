package tamarack

import "time"

// Scene is the top-level object that owns the node tree, cameras, and the
// pick/selection state.
type Scene struct {
	root   *Node
	picker *Picker
	debug  bool

	// Cameras
	cameras []*Camera

	// PickOptions is the traversal policy Scene.Pick casts with.
	PickOptions CastOptions

	// Pick state
	hitBuf   []Hit
	rootList []*Node

	// Synthetic input
	injectQueue []syntheticPick
}

// NewScene creates a new scene with a pre-created root container and an
// attached Picker.
func NewScene() *Scene {
	root := NewGroup("root")
	s := &Scene{
		root:   root,
		picker: NewPicker(),
	}
	s.rootList = []*Node{root}
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Picker returns the scene's selection manager.
func (s *Scene) Picker() *Picker {
	return s.picker
}

// NewCamera creates a camera with the given viewport and adds it to the
// scene. The first camera added becomes the pick camera.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-pick timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// Update refreshes world transforms, advances camera and highlight
// animations, and drains any injected picks. dt is the frame delta in
// seconds.
func (s *Scene) Update(dt float32) {
	// Refresh world transforms first so pick rays and camera fly targets see
	// accurate positions this frame.
	updateWorldTransform(s.root, identityMatrix, false)

	for _, cam := range s.cameras {
		cam.update(dt)
	}
	s.picker.update(dt)
	s.drainInjected()
}

// Pick runs the full pick pipeline for a pointer position in viewport pixel
// space: normalize the point against the pick camera's viewport, cast the
// ray through the scene, resolve the nearest hit to a selectable entity, and
// run the selection transition. Returns the entity selected after the
// transition (nil on deselection).
//
// Structural failures (degenerate viewport, no camera) abort the pick with
// no selection state change. Back-to-back calls with no intervening Update
// are safe: world transforms are refreshed here.
func (s *Scene) Pick(x, y float32) (*Node, error) {
	if len(s.cameras) == 0 {
		return nil, ErrNoCamera
	}
	cam := s.cameras[0]

	ndc, err := ResolvePointer(x, y, cam.Viewport)
	if err != nil {
		return nil, err
	}

	var stats pickStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	updateWorldTransform(s.root, identityMatrix, false)
	ray := cam.PickRay(ndc)
	s.hitBuf = castRay(ray, s.rootList, s.PickOptions, s.hitBuf[:0])

	if s.debug {
		stats.castTime = time.Since(t0)
		stats.hitCount = len(s.hitBuf)
		t0 = time.Now()
	}

	selected := s.picker.Apply(s.hitBuf)

	if s.debug {
		stats.applyTime = time.Since(t0)
		s.debugLog(stats)
	}
	return selected, nil
}

// CastAt casts a pick ray for the pointer position and returns every hit,
// nearest first, without touching selection state. Useful for hover probes
// and tooltips.
func (s *Scene) CastAt(x, y float32) ([]Hit, error) {
	if len(s.cameras) == 0 {
		return nil, ErrNoCamera
	}
	cam := s.cameras[0]
	ndc, err := ResolvePointer(x, y, cam.Viewport)
	if err != nil {
		return nil, err
	}
	updateWorldTransform(s.root, identityMatrix, false)
	return castRay(cam.PickRay(ndc), s.rootList, s.PickOptions, nil), nil
}
