package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/voxelsplace/voxview/vox"
)

const (
	DefaultFovY     = 50
	DefaultNear     = 0.1
	DefaultFar      = 1000
	DefaultPanScale = 0.05
	// dragDegrees is how many pixels of drag make one degree of rotation.
	dragDegrees = 3
)

// Camera is the orbit state of the viewer. Rotations are in radians.
type Camera struct {
	TX, TY, TZ float32
	RX, RY, RZ float32
	FovY       float32 // degrees
	Near, Far  float32
	PanScale   float32
}

// FrameModel centres the model in x and y and backs off along z by one
// and a half times its depth.
func FrameModel(size vox.Size) *Camera {
	return &Camera{
		TX:       float32(size.X) * -0.5,
		TY:       float32(size.Y) * -0.5,
		TZ:       float32(size.Z) * -1.5,
		FovY:     DefaultFovY,
		Near:     DefaultNear,
		Far:      DefaultFar,
		PanScale: DefaultPanScale,
	}
}

// Projection returns the perspective matrix for a viewport.
func (c *Camera) Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ModelView is translate * rotX * rotY * rotZ.
func (c *Camera) ModelView() mgl32.Mat4 {
	return mgl32.Translate3D(c.TX, c.TY, c.TZ).
		Mul4(mgl32.HomogRotate3DX(c.RX)).
		Mul4(mgl32.HomogRotate3DY(c.RY)).
		Mul4(mgl32.HomogRotate3DZ(c.RZ))
}

// DragRotate applies a left-button drag of (dx, dy) pixels.
func (c *Camera) DragRotate(dx, dy float32) {
	c.RX += mgl32.DegToRad(dx / dragDegrees)
	c.RY += mgl32.DegToRad(dy / dragDegrees)
}

// DragPan applies a right-button drag of (dx, dy) pixels. Screen y grows
// downwards, so it is flipped.
func (c *Camera) DragPan(dx, dy float32) {
	c.TX += dx * c.PanScale
	c.TY -= dy * c.PanScale
}

// Wheel moves one unit along z per wheel event.
func (c *Camera) Wheel(delta float32) {
	if delta > 0 {
		c.TZ += 1
	} else {
		c.TZ -= 1
	}
}
