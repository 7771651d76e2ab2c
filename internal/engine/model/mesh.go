package model

import (
	"fmt"

	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

// Load reads an OBJ file and builds a mesh from it.
func Load(path string) (*Mesh, error) {
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	return Build(obj)
}

// Build packs parsed OBJ data into interleaved vertex and index buffers and
// computes the bounding volume.
func Build(obj *formats.OBJ) (*Mesh, error) {
	if len(obj.Vertices) > formats.MaxOBJVertices {
		return nil, fmt.Errorf("%w: %d vertices", formats.ErrTooManyVertices, len(obj.Vertices))
	}

	vertices := make([]Vertex, len(obj.Vertices))
	positions := make([]math.Vec3, len(obj.Vertices))
	for i, v := range obj.Vertices {
		vertices[i] = Vertex{Position: v.Position, Color: v.Color, TexCoord: v.TexCoord}
		positions[i] = v.Position
	}

	bounds, err := Analyze(positions)
	if err != nil {
		return nil, err
	}

	indices := make([]uint16, 0, len(obj.Triangles)*3)
	for _, tri := range obj.Triangles {
		indices = append(indices, tri[0], tri[1], tri[2])
	}

	return &Mesh{
		Vertices:      vertices,
		VertexData:    interleave(vertices),
		Indices:       indices,
		Bounds:        bounds,
		Center:        bounds.Center(),
		LongestExtent: bounds.LongestExtent(),
		MaxIndex:      obj.MaxIndex(),
	}, nil
}

// interleave flattens vertices into position, color, uv order.
func interleave(vertices []Vertex) []float32 {
	data := make([]float32, 0, len(vertices)*VertexStride)
	for _, v := range vertices {
		var c math.Vec3
		if v.Color != nil {
			c = *v.Color
		}
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			c.X, c.Y, c.Z,
			v.TexCoord.X, v.TexCoord.Y,
		)
	}
	return data
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexBufferSize returns the vertex buffer size in bytes.
func (m *Mesh) VertexBufferSize() int {
	return len(m.VertexData) * 4
}

// IndexBufferSize returns the index buffer size in bytes.
func (m *Mesh) IndexBufferSize() int {
	return len(m.Indices) * 2
}

// DrawIndices returns the index buffer to upload, or nil when any index
// points past the vertex buffer.
func (m *Mesh) DrawIndices() []uint16 {
	if m.HasDanglingIndices() {
		return nil
	}
	return m.Indices
}

// HasDanglingIndices reports whether a triangle references a vertex past
// the end of the vertex buffer.
func (m *Mesh) HasDanglingIndices() bool {
	return m.MaxIndex >= len(m.Vertices)
}
