package tamarack

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// flyAnim holds an active fly-to tween. A single 0..1 tween drives both the
// position and target lerp so they arrive together.
type flyAnim struct {
	tween      *gween.Tween
	fromPos    mgl32.Vec3
	toPos      mgl32.Vec3
	fromTarget mgl32.Vec3
	toTarget   mgl32.Vec3
}

// Camera is a perspective camera that can produce a world-space pick ray
// from a normalized device coordinate.
type Camera struct {
	// Position is the camera's world-space location.
	Position mgl32.Vec3
	// Target is the world-space point the camera looks at.
	Target mgl32.Vec3
	// Up is the camera's up direction.
	Up mgl32.Vec3
	// FOV is the vertical field of view in degrees.
	FOV float32
	// Near and Far are the clip plane distances.
	Near, Far float32
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	view        mgl32.Mat4
	proj        mgl32.Mat4
	viewProj    mgl32.Mat4
	invViewProj mgl32.Mat4

	// Snapshot of the fields the matrices were computed from; matrices are
	// rebuilt whenever any of them changed, so direct field mutation between
	// frames is picked up without an explicit MarkDirty.
	computedFor cameraParams
	computed    bool

	flyTween *flyAnim
}

// cameraParams is the comparable set of fields the matrix cache depends on.
type cameraParams struct {
	position, target, up mgl32.Vec3
	fov, near, far       float32
	viewport             Rect
}

func (c *Camera) params() cameraParams {
	return cameraParams{
		position: c.Position, target: c.Target, up: c.Up,
		fov: c.FOV, near: c.Near, far: c.Far, viewport: c.Viewport,
	}
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 5, 10},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      60,
		Near:     0.1,
		Far:      1000,
		Viewport: viewport,
	}
}

// MarkDirty forces a recomputation of the cached matrices on next use.
// Usually unnecessary: the cache also detects direct field changes.
func (c *Camera) MarkDirty() {
	c.computed = false
}

// computeMatrices rebuilds the view/projection matrices if any input changed.
func (c *Camera) computeMatrices() {
	p := c.params()
	if c.computed && p == c.computedFor {
		return
	}
	c.computedFor = p
	c.computed = true

	aspect := float32(1)
	if c.Viewport.Height != 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	c.view = mgl32.LookAtV(c.Position, c.Target, c.Up)
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
	c.viewProj = c.proj.Mul4(c.view)
	c.invViewProj = c.viewProj.Inv()
}

// PickRay unprojects a normalized device coordinate into a world-space ray.
// The origin lies on the near plane and the direction is normalized.
func (c *Camera) PickRay(ndc NDC) Ray {
	c.computeMatrices()

	near := unproject(c.invViewProj, mgl32.Vec4{ndc.X, ndc.Y, -1, 1})
	far := unproject(c.invViewProj, mgl32.Vec4{ndc.X, ndc.Y, 1, 1})

	dir := far.Sub(near)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: near, Dir: dir}
}

// unproject applies the inverse view-projection matrix with perspective divide.
func unproject(inv mgl32.Mat4, v mgl32.Vec4) mgl32.Vec3 {
	w := inv.Mul4x1(v)
	if w.W() != 0 {
		return mgl32.Vec3{w.X() / w.W(), w.Y() / w.W(), w.Z() / w.W()}
	}
	return mgl32.Vec3{w.X(), w.Y(), w.Z()}
}

// WorldToScreen projects a world-space point to viewport pixel coordinates.
// ok is false when the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy float32, ok bool) {
	c.computeMatrices()

	clip := c.viewProj.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 1})
	if clip.W() <= 0 {
		return 0, 0, false
	}
	nx := clip.X() / clip.W()
	ny := clip.Y() / clip.W()

	// Inverse of the pointer normalization: NDC back to pixels, Y flipped.
	sx = c.Viewport.X + (nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)/2*c.Viewport.Height
	return sx, sy, true
}

// --- Orbit controls ---

// orbitPitchLimit keeps the camera off the poles where LookAtV degenerates.
const orbitPitchLimit = math.Pi/2 - 0.01

// orbitMinDistance keeps Dolly from pushing the camera through the target.
const orbitMinDistance = 0.05

// Orbit rotates the camera position around its target by the given yaw and
// pitch deltas (radians). Pitch is clamped short of the poles.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	offset := c.Position.Sub(c.Target)
	radius := float64(offset.Len())
	if radius == 0 {
		return
	}
	yaw := math.Atan2(float64(offset.X()), float64(offset.Z()))
	pitch := math.Asin(float64(offset.Y()) / radius)

	yaw += float64(dYaw)
	pitch += float64(dPitch)
	if pitch > orbitPitchLimit {
		pitch = orbitPitchLimit
	}
	if pitch < -orbitPitchLimit {
		pitch = -orbitPitchLimit
	}

	c.Position = c.Target.Add(mgl32.Vec3{
		float32(radius * math.Cos(pitch) * math.Sin(yaw)),
		float32(radius * math.Sin(pitch)),
		float32(radius * math.Cos(pitch) * math.Cos(yaw)),
	})
}

// Dolly moves the camera along its view direction by delta world units
// (positive = toward the target). The camera never crosses the target.
func (c *Camera) Dolly(delta float32) {
	offset := c.Position.Sub(c.Target)
	dist := offset.Len()
	if dist == 0 {
		return
	}
	newDist := dist - delta
	if newDist < orbitMinDistance {
		newDist = orbitMinDistance
	}
	c.Position = c.Target.Add(offset.Mul(newDist / dist))
}

// Pan shifts both the camera position and target in the view plane.
func (c *Camera) Pan(dx, dy float32) {
	forward := c.Target.Sub(c.Position)
	if forward.Len() == 0 {
		return
	}
	forward = forward.Normalize()
	right := forward.Cross(c.Up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	up := right.Cross(forward)

	shift := right.Mul(dx).Add(up.Mul(dy))
	c.Position = c.Position.Add(shift)
	c.Target = c.Target.Add(shift)
}

// --- Animation ---

// FlyTo animates the camera to the given position and target over duration
// seconds. Any fly-to already in progress is replaced.
func (c *Camera) FlyTo(position, target mgl32.Vec3, duration float32, easeFn ease.TweenFunc) {
	c.flyTween = &flyAnim{
		tween:      gween.New(0, 1, duration, easeFn),
		fromPos:    c.Position,
		toPos:      position,
		fromTarget: c.Target,
		toTarget:   target,
	}
}

// update advances the fly-to animation. Called from Scene.Update.
func (c *Camera) update(dt float32) {
	if c.flyTween == nil {
		return
	}
	t, done := c.flyTween.tween.Update(dt)
	c.Position = lerpVec3(c.flyTween.fromPos, c.flyTween.toPos, t)
	c.Target = lerpVec3(c.flyTween.fromTarget, c.flyTween.toTarget, t)
	if done {
		c.flyTween = nil
	}
}

// lerpVec3 linearly interpolates between a and b.
func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
