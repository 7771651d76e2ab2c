package model

import (
	"errors"

	"github.com/Faultbox/meshview/pkg/math"
)

// ErrNoVertices is returned when a bounding volume is requested for an
// empty vertex set.
var ErrNoVertices = errors.New("mesh has no vertices")

// Analyze computes the axis-aligned bounding box of positions in one pass.
func Analyze(positions []math.Vec3) (Bounds, error) {
	if len(positions) == 0 {
		return Bounds{}, ErrNoVertices
	}

	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b, nil
}

// Center returns the per-axis midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis span of the box.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// LongestExtent returns the largest per-axis span.
func (b Bounds) LongestExtent() float32 {
	return b.Size().MaxComponent()
}
