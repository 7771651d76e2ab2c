// Package camera provides the fixed framing camera used to view a mesh.
package camera

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// MinEyeDistance keeps the eye off the target for meshes with no extent.
const MinEyeDistance float32 = 1

// Lens holds the projection parameters. FOV is the vertical field of view
// in radians; Near and Far must be positive with Near < Far.
type Lens struct {
	FOV  float32
	Near float32
	Far  float32
}

// FramingCamera looks down -Z at the world origin from a distance that
// grows with the mesh size, so the whole mesh stays in view.
type FramingCamera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3
	Lens   Lens

	view   math.Mat4
	aspect float32
}

// NewFramingCamera places the eye on +Z at twice longestExtent from the
// origin. width and height give the initial aspect ratio.
func NewFramingCamera(longestExtent float32, lens Lens, width, height int) *FramingCamera {
	distance := 2 * longestExtent
	// A flat or single-point mesh would put the eye on the target and
	// make the view matrix NaN, so the distance never drops below MinEyeDistance.
	if distance < MinEyeDistance {
		distance = MinEyeDistance
	}

	c := &FramingCamera{
		Eye:    math.Vec3{X: 0, Y: 0, Z: distance},
		Target: math.Vec3{},
		Up:     math.Vec3{X: 0, Y: 1, Z: 0},
		Lens:   lens,
		aspect: 1,
	}
	c.view = math.LookAt(c.Eye, c.Target, c.Up)
	c.SetViewport(width, height)
	return c
}

// ViewMatrix returns the view matrix. It is computed once.
func (c *FramingCamera) ViewMatrix() math.Mat4 {
	return c.view
}

// SetViewport updates the aspect ratio from the framebuffer size. A zero
// height keeps the previous aspect ratio.
func (c *FramingCamera) SetViewport(width, height int) {
	if height == 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

// Aspect returns the current width/height ratio.
func (c *FramingCamera) Aspect() float32 {
	return c.aspect
}

// ProjectionMatrix returns the perspective projection for the current aspect ratio.
func (c *FramingCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.Lens.FOV, c.aspect, c.Lens.Near, c.Lens.Far)
}
