// Package orientation tracks the view direction for 360° panoramic
// content. Pointer drags pan and tilt a virtual camera: the drag in
// flight contributes a live preview delta, committed into the base
// angles on release.
package orientation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// The vertical field of view and clip planes of the 360° frustum.
const (
	verticalFieldOfView = 50.0
	nearPlane           = 1.0
	farPlane            = 100.0
)

// Controller accumulates pan/tilt angles from pointer gestures and
// produces the projection and view matrices for panoramic rendering.
// All methods run on the rendering thread.
type Controller struct {
	active bool
	startX float64
	startY float64

	horizontalBase    float32
	verticalBase      float32
	horizontalCurrent float32
	verticalCurrent   float32
}

// Press starts a drag gesture at the given pointer position.
func (c *Controller) Press(x, y float64) {
	c.active = true
	c.startX = x
	c.startY = y
	c.horizontalCurrent = 0.0
	c.verticalCurrent = 0.0
}

// Move updates the in-flight preview deltas from the pointer position.
// The displacement since the press is normalized by the drawable size,
// so a full-width drag spans 180° either way and a full-height drag
// 90°. Dragging right pans the camera left. Returns true if the view
// changed and a redraw is due.
func (c *Controller) Move(x, y float64, width, height int) bool {
	if !c.active || width <= 0 || height <= 0 {
		return false
	}
	xf := float32(x-c.startX) / float32(width) // in [-1,+1]
	c.horizontalCurrent = -xf * 180.0
	yf := float32(y-c.startY) / float32(height) // in [-1,+1]
	c.verticalCurrent = -yf * 90.0
	return true
}

// Release ends the gesture, committing the preview deltas into the
// base angles.
func (c *Controller) Release() {
	c.active = false
	c.horizontalBase += c.horizontalCurrent
	c.verticalBase += c.verticalCurrent
	c.horizontalCurrent = 0.0
	c.verticalCurrent = 0.0
}

// Reset returns the camera to its initial orientation and abandons any
// gesture in flight. Called when the playing media changes.
func (c *Controller) Reset() {
	c.active = false
	c.horizontalBase = 0.0
	c.verticalBase = 0.0
	c.horizontalCurrent = 0.0
	c.verticalCurrent = 0.0
}

// Active reports whether a drag gesture is in flight.
func (c *Controller) Active() bool {
	return c.active
}

// Angles returns the effective horizontal and vertical view angles in
// degrees, including any in-flight preview delta.
func (c *Controller) Angles() (horizontal, vertical float32) {
	return c.horizontalBase + c.horizontalCurrent, c.verticalBase + c.verticalCurrent
}

// Transform returns the projection and view matrices for the current
// orientation. Valid only for 360° content; flat content uses identity
// transforms.
func (c *Controller) Transform(aspectRatio float32) (projection, view mgl32.Mat4) {
	top := math32.Tan(mgl32.DegToRad(verticalFieldOfView * 0.5))
	bottom := -top
	right := top * aspectRatio
	left := -right
	projection = mgl32.Frustum(left, right, bottom, top, nearPlane, farPlane)

	horizontal, vertical := c.Angles()
	rotation := mgl32.AnglesToQuat(
		mgl32.DegToRad(-horizontal),
		mgl32.DegToRad(-vertical),
		0.0, mgl32.YXZ)
	view = rotation.Mat4()
	return projection, view
}
