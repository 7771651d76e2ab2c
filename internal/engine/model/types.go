// Package model builds GPU-ready meshes from parsed OBJ data and analyzes
// their bounding volume.
package model

import "github.com/Faultbox/meshview/pkg/math"

// VertexStride is the number of floats per vertex in Mesh.VertexData:
// position (3), color (3), texture coordinate (2).
const VertexStride = 8

// Byte offsets of each attribute inside one interleaved vertex.
const (
	PositionOffset = 0
	ColorOffset    = 3 * 4
	TexCoordOffset = 6 * 4
)

// Vertex is a mesh vertex with position, optional color, and texture coordinates.
type Vertex struct {
	Position math.Vec3
	Color    *math.Vec3 // nil means black
	TexCoord math.Vec2
}

// Mesh holds the complete mesh data ready for GPU upload. It is immutable
// once built.
type Mesh struct {
	Vertices   []Vertex
	VertexData []float32 // interleaved, VertexStride floats per vertex
	Indices    []uint16  // 0-based triangle list
	Bounds     Bounds

	// Center is the bounding box center, the pivot for rotations.
	Center math.Vec3
	// LongestExtent is the largest bounding box span on any axis.
	LongestExtent float32
	// MaxIndex is the largest referenced vertex index, -1 without triangles.
	MaxIndex int
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}
