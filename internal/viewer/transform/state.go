package transform

import (
	"github.com/Faultbox/meshview/pkg/math"
)

// Steps holds the per-frame increments applied while a key is held.
type Steps struct {
	Rotate float32 // radians
	Move   float32
	Scale  float32
	Blend  float32 // texture fade, fraction per frame
}

// DefaultSteps returns the stock increments.
func DefaultSteps() Steps {
	return Steps{
		Rotate: 0.05,
		Move:   0.05,
		Scale:  0.01,
		Blend:  0.05,
	}
}

// State is the interactive transform of the displayed mesh. Rotation,
// position and scale are never clamped or wrapped; a zero or negative
// scale yields a degenerate or mirrored model matrix.
type State struct {
	Rotation math.Vec3 // radians around X, Y, Z
	Position math.Vec3
	Scale    math.Vec3

	UseTexture bool
	// TextureBlend eases toward 1 while UseTexture is set and toward 0 otherwise.
	TextureBlend float32
	ShowBounds   bool
}

// NewState returns the state at mesh load: no rotation or offset, unit scale.
func NewState() State {
	return State{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Step returns the state after one frame. held contains every action
// whose key is down; pressed contains the actions whose key went down
// this frame, and only drives the toggles.
func Step(s State, held, pressed ActionSet, steps Steps) State {
	s.Rotation = s.Rotation.Add(axisDelta(held, RotateXInc, RotateXDec, RotateYInc, RotateYDec, RotateZInc, RotateZDec).Scale(steps.Rotate))
	s.Position = s.Position.Add(axisDelta(held, MoveXInc, MoveXDec, MoveYInc, MoveYDec, MoveZInc, MoveZDec).Scale(steps.Move))

	var zoom float32
	if held.Has(ScaleUp) {
		zoom += steps.Scale
	}
	if held.Has(ScaleDown) {
		zoom -= steps.Scale
	}
	s.Scale = s.Scale.Add(math.Vec3{X: zoom, Y: zoom, Z: zoom})

	if pressed.Has(ToggleTexture) {
		s.UseTexture = !s.UseTexture
	}
	if pressed.Has(ToggleBounds) {
		s.ShowBounds = !s.ShowBounds
	}
	s.TextureBlend = approach(s.TextureBlend, s.UseTexture, steps.Blend)

	return s
}

// axisDelta turns inc/dec action pairs for X, Y and Z into -1, 0 or +1 per axis.
func axisDelta(held ActionSet, xInc, xDec, yInc, yDec, zInc, zDec Action) math.Vec3 {
	sign := func(inc, dec Action) float32 {
		var v float32
		if held.Has(inc) {
			v++
		}
		if held.Has(dec) {
			v--
		}
		return v
	}
	return math.Vec3{X: sign(xInc, xDec), Y: sign(yInc, yDec), Z: sign(zInc, zDec)}
}

func approach(v float32, on bool, step float32) float32 {
	if on {
		v += step
		if v > 1 {
			v = 1
		}
		return v
	}
	v -= step
	if v < 0 {
		v = 0
	}
	return v
}

// ModelMatrix composes the model transform, applied in this order:
// move the bounds center to the origin, rotate around X then Y then Z,
// move back, scale, then offset by Position.
func ModelMatrix(s State, center math.Vec3) math.Mat4 {
	return math.TranslateVec3(center.Negate()).
		RotatedX(s.Rotation.X).
		RotatedY(s.Rotation.Y).
		RotatedZ(s.Rotation.Z).
		Translated(center.X, center.Y, center.Z).
		Scaled(s.Scale.X, s.Scale.Y, s.Scale.Z).
		Translated(s.Position.X, s.Position.Y, s.Position.Z)
}
