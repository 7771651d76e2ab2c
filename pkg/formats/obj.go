// OBJ-style text mesh parser: "v x y z" vertex and "f i1 i2 i3 ..." face records.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshview/pkg/math"
)

// OBJ format errors.
var (
	ErrInvalidVertex         = errors.New("a vertex must have exactly 3 numeric coordinates")
	ErrInvalidFace           = errors.New("a face must have at least 3 indices")
	ErrInvalidVertexIndex    = errors.New("invalid vertex index")
	ErrVertexIndexOutOfRange = errors.New("vertex index exceeds 16-bit range")
	ErrTooManyVertices       = errors.New("too many vertices for 16-bit indices")
)

// MaxOBJVertices is the largest vertex count addressable by uint16 indices.
const MaxOBJVertices = 65535

const maxOBJLine = 1 << 20

// SyntaxError describes a malformed record. It wraps one of the OBJ
// format errors above.
type SyntaxError struct {
	Line int    // 1-based line number
	Text string // trimmed line content
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err comes from a malformed OBJ record.
func IsFormatError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// OBJVertex is a vertex as read from the file.
type OBJVertex struct {
	Position math.Vec3
	Color    *math.Vec3 // nil when the file gives no color
	TexCoord math.Vec2
}

// OBJ holds a parsed, triangulated mesh.
type OBJ struct {
	Vertices  []OBJVertex
	Triangles [][3]uint16 // 0-based, in fan emission order
}

// MaxIndex returns the largest 0-based index referenced by a triangle,
// or -1 when there are no triangles.
func (o *OBJ) MaxIndex() int {
	maxIdx := -1
	for _, tri := range o.Triangles {
		for _, idx := range tri {
			if int(idx) > maxIdx {
				maxIdx = int(idx)
			}
		}
	}
	return maxIdx
}

// ParseOBJ parses OBJ text from bytes.
func ParseOBJ(data []byte) (*OBJ, error) {
	return ParseOBJReader(bytes.NewReader(data))
}

// ParseOBJReader parses OBJ text. Unknown record kinds are skipped. The
// first malformed record aborts parsing; no partial mesh is returned.
// Face indices are not checked against the vertex count, since faces may
// reference vertices declared later; see OBJ.MaxIndex.
func ParseOBJReader(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(obj.Vertices) == MaxOBJVertices {
				return nil, fmt.Errorf("line %d: %w (max %d)", lineNo, ErrTooManyVertices, MaxOBJVertices)
			}
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, &SyntaxError{Line: lineNo, Text: text, Err: err}
			}
			obj.Vertices = append(obj.Vertices, v)
		case "f":
			indices, err := parseFace(fields[1:])
			if err != nil {
				return nil, &SyntaxError{Line: lineNo, Text: text, Err: err}
			}
			obj.Triangles = append(obj.Triangles, triangulateFan(indices)...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	return obj, nil
}

// LoadOBJ reads and parses an OBJ file.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	defer f.Close()

	obj, err := ParseOBJReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return obj, nil
}

func parseVertex(fields []string) (OBJVertex, error) {
	if len(fields) != 3 {
		return OBJVertex{}, fmt.Errorf("%w: got %d", ErrInvalidVertex, len(fields))
	}

	var p [3]float32
	for i, s := range fields {
		// Out-of-range values saturate to ±Inf instead of failing.
		f, err := strconv.ParseFloat(s, 32)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return OBJVertex{}, fmt.Errorf("%w: %q", ErrInvalidVertex, s)
		}
		p[i] = float32(f)
	}

	pos := math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	return OBJVertex{Position: pos, TexCoord: cornerUV(pos)}, nil
}

// cornerUV maps the corners of the unit quad centered on the origin to
// texture corners. Any other position gets (0, 1).
func cornerUV(p math.Vec3) math.Vec2 {
	switch {
	case p.X == 0.5 && p.Y == 0.5:
		return math.Vec2{X: 1, Y: 1}
	case p.X == 0.5 && p.Y == -0.5:
		return math.Vec2{X: 1, Y: 0}
	case p.X == -0.5 && p.Y == -0.5:
		return math.Vec2{X: 0, Y: 0}
	default:
		return math.Vec2{X: 0, Y: 1}
	}
}

// parseFace returns the 1-based indices of a face record.
func parseFace(fields []string) ([]uint16, error) {
	indices := make([]uint16, 0, len(fields))
	for _, s := range fields {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVertexIndex, s)
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: 0", ErrInvalidVertexIndex)
		}
		if n > MaxOBJVertices {
			return nil, fmt.Errorf("%w: %d", ErrVertexIndexOutOfRange, n)
		}
		indices = append(indices, uint16(n))
	}
	if len(indices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFace, len(indices))
	}
	return indices, nil
}

// triangulateFan splits a polygon of 1-based indices into 0-based
// triangles sharing its first vertex.
func triangulateFan(indices []uint16) [][3]uint16 {
	tris := make([][3]uint16, 0, len(indices)-2)
	for i := 2; i < len(indices); i++ {
		tris = append(tris, [3]uint16{indices[0] - 1, indices[i-1] - 1, indices[i] - 1})
	}
	return tris
}
