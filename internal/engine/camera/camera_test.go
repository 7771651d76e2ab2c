package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/meshview/pkg/math"
)

var testLens = Lens{FOV: float32(gomath.Pi / 4), Near: 0.1, Far: 100}

func TestNewFramingCamera(t *testing.T) {
	c := NewFramingCamera(3, testLens, 800, 600)

	if want := (math.Vec3{Z: 6}); c.Eye != want {
		t.Errorf("eye = %v, want %v", c.Eye, want)
	}
	if c.Target != (math.Vec3{}) {
		t.Errorf("target = %v, want origin", c.Target)
	}
	if want := math.LookAt(c.Eye, c.Target, c.Up); c.ViewMatrix() != want {
		t.Errorf("view = %v, want %v", c.ViewMatrix(), want)
	}
	// The origin sits 2*extent in front of the eye.
	got := c.ViewMatrix().TransformVec3(math.Vec3{})
	if !got.ApproxEqual(math.Vec3{Z: -6}, 1e-5) {
		t.Errorf("origin in view space = %v, want (0, 0, -6)", got)
	}
}

func TestNewFramingCameraZeroExtent(t *testing.T) {
	c := NewFramingCamera(0, testLens, 800, 600)
	if c.Eye.Z != MinEyeDistance {
		t.Errorf("eye z = %v, want %v", c.Eye.Z, MinEyeDistance)
	}
	for i, v := range c.ViewMatrix() {
		if gomath.IsNaN(float64(v)) {
			t.Fatalf("view element %d is NaN", i)
		}
	}
}

func TestSetViewport(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          float32
	}{
		{"wide", 1600, 900, 1600.0 / 900.0},
		{"square", 512, 512, 1},
		{"zero height keeps previous", 1024, 0, 800.0 / 600.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFramingCamera(1, testLens, 800, 600)
			c.SetViewport(tt.width, tt.height)
			if c.Aspect() != tt.want {
				t.Errorf("aspect = %v, want %v", c.Aspect(), tt.want)
			}
		})
	}
}

func TestProjectionMatrix(t *testing.T) {
	c := NewFramingCamera(1, testLens, 800, 600)
	want := math.Perspective(testLens.FOV, 800.0/600.0, testLens.Near, testLens.Far)
	if got := c.ProjectionMatrix(); got != want {
		t.Errorf("projection = %v, want %v", got, want)
	}

	c.SetViewport(300, 0)
	if got := c.ProjectionMatrix(); got != want {
		t.Error("projection changed after zero-height resize")
	}
}
