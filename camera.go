package arbor

import (
	"cogentcore.org/core/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// orbitAnim holds active orbit-to tweens for camera yaw and pitch.
type orbitAnim struct {
	tweenYaw   *gween.Tween
	tweenPitch *gween.Tween
	doneYaw    bool
	donePitch  bool
}

// pitchLimit keeps the orbit short of the poles, where the look-at up
// vector degenerates.
const pitchLimit = math32.Pi/2 - 0.01

// OrbitCamera orbits a look-at target at a given distance, yaw, and pitch,
// and produces the view and projection matrices for rendering.
type OrbitCamera struct {
	// Target is the world-space point the camera looks at.
	Target math32.Vector3
	// Distance is the orbit radius from Target.
	Distance float32
	// Yaw is the horizontal orbit angle in radians. Zero places the camera
	// on the +Z side of the target.
	Yaw float32
	// Pitch is the vertical orbit angle in radians, positive above the
	// target. Clamped short of the poles.
	Pitch float32
	// FOV is the vertical field of view in degrees.
	FOV float32
	// Near and Far are the clip plane distances.
	Near, Far float32

	view  math32.Matrix4
	dirty bool

	orbitTween *orbitAnim
	zoomTween  *gween.Tween
}

// NewOrbitCamera creates a camera orbiting target at the given distance,
// slightly above the horizon, with a 45 degree field of view.
func NewOrbitCamera(target math32.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:   target,
		Distance: distance,
		Pitch:    0.3,
		FOV:      45,
		Near:     0.1,
		Far:      100,
		dirty:    true,
	}
}

// Position returns the camera's world-space position.
func (c *OrbitCamera) Position() math32.Vector3 {
	cp := math32.Cos(c.Pitch)
	offset := math32.Vec3(cp*math32.Sin(c.Yaw), math32.Sin(c.Pitch), cp*math32.Cos(c.Yaw))
	return c.Target.Add(offset.MulScalar(c.Distance))
}

// Orbit rotates the camera by the given yaw and pitch deltas.
func (c *OrbitCamera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clampPitch(c.Pitch + dPitch)
	c.dirty = true
}

// Zoom moves the camera toward (negative delta) or away from the target.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance = math32.Max(c.Near, c.Distance+delta)
	c.dirty = true
}

// OrbitTo animates yaw and pitch to the given angles over duration seconds.
func (c *OrbitCamera) OrbitTo(yaw, pitch float32, duration float32, easeFn ease.TweenFunc) {
	c.orbitTween = &orbitAnim{
		tweenYaw:   gween.New(c.Yaw, yaw, duration, easeFn),
		tweenPitch: gween.New(c.Pitch, clampPitch(pitch), duration, easeFn),
	}
}

// ZoomTo animates the orbit distance to the given value over duration seconds.
func (c *OrbitCamera) ZoomTo(distance float32, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(c.Distance, math32.Max(c.Near, distance), duration, easeFn)
}

// Update advances active camera animations. Call once per frame with the
// frame delta in seconds.
func (c *OrbitCamera) Update(dt float32) {
	if c.orbitTween != nil {
		if !c.orbitTween.doneYaw {
			val, done := c.orbitTween.tweenYaw.Update(dt)
			c.Yaw = val
			c.orbitTween.doneYaw = done
		}
		if !c.orbitTween.donePitch {
			val, done := c.orbitTween.tweenPitch.Update(dt)
			c.Pitch = val
			c.orbitTween.donePitch = done
		}
		if c.orbitTween.doneYaw && c.orbitTween.donePitch {
			c.orbitTween = nil
		}
		c.dirty = true
	}
	if c.zoomTween != nil {
		val, done := c.zoomTween.Update(dt)
		c.Distance = val
		if done {
			c.zoomTween = nil
		}
		c.dirty = true
	}
}

// ViewMatrix returns the world-to-view matrix, recomputing the cached copy
// only when the camera moved.
func (c *OrbitCamera) ViewMatrix() *math32.Matrix4 {
	if !c.dirty {
		return &c.view
	}
	c.dirty = false

	pos := c.Position()
	var q math32.Quat
	q.SetFromRotationMatrix(math32.NewLookAt(pos, c.Target, math32.Vec3(0, 1, 0)))
	var cam math32.Matrix4
	cam.SetTransform(pos, q, math32.Vec3(1, 1, 1))
	view, _ := cam.Inverse()
	c.view = *view
	return &c.view
}

// ProjectionMatrix returns the perspective projection for the given
// viewport aspect ratio (width over height).
func (c *OrbitCamera) ProjectionMatrix(aspect float32) *math32.Matrix4 {
	var proj math32.Matrix4
	proj.SetPerspective(c.FOV, aspect, c.Near, c.Far)
	return &proj
}

// MarkDirty forces a recomputation of the view matrix. Call after
// bulk-setting fields directly.
func (c *OrbitCamera) MarkDirty() {
	c.dirty = true
}

// clampPitch restricts pitch to the open interval around the horizon.
func clampPitch(p float32) float32 {
	return math32.Max(-pitchLimit, math32.Min(p, pitchLimit))
}
