package formats

import (
	"errors"
	"io/fs"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/meshview/pkg/math"
)

func TestParseOBJ_SingleTriangle(t *testing.T) {
	obj, err := ParseOBJ([]byte("v 1 2 3\nf 1 2 3"))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(obj.Vertices) != 1 {
		t.Fatalf("expected 1 vertex, got %d", len(obj.Vertices))
	}
	if got, want := obj.Vertices[0].Position, (math.Vec3{X: 1, Y: 2, Z: 3}); got != want {
		t.Errorf("vertex 0 = %v, want %v", got, want)
	}
	if obj.Vertices[0].Color != nil {
		t.Error("expected no vertex color")
	}
	if len(obj.Triangles) != 1 || obj.Triangles[0] != [3]uint16{0, 1, 2} {
		t.Errorf("triangles = %v, want [[0 1 2]]", obj.Triangles)
	}
}

func TestParseOBJ_FanTriangulation(t *testing.T) {
	src := strings.Repeat("v 0 0 0\n", 5) + "f 1 2 3 4 5\n"
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	want := [][3]uint16{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}
	if len(obj.Triangles) != len(want) {
		t.Fatalf("expected %d triangles, got %d", len(want), len(obj.Triangles))
	}
	for i, tri := range obj.Triangles {
		if tri != want[i] {
			t.Errorf("triangle %d = %v, want %v", i, tri, want[i])
		}
	}
}

func TestParseOBJ_FacesBeforeVertices(t *testing.T) {
	obj, err := ParseOBJ([]byte("f 3 2 1\nv 0 0 0\nv 1 0 0\nv 0 1 0\n"))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if obj.Triangles[0] != [3]uint16{2, 1, 0} {
		t.Errorf("triangle = %v, want [2 1 0]", obj.Triangles[0])
	}
}

func TestOBJMaxIndex(t *testing.T) {
	obj, err := ParseOBJ([]byte("v 0 0 0\nf 1 2 3\nf 1 7 2\n"))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if got := obj.MaxIndex(); got != 6 {
		t.Errorf("MaxIndex() = %d, want 6", got)
	}
	if got := (&OBJ{}).MaxIndex(); got != -1 {
		t.Errorf("empty MaxIndex() = %d, want -1", got)
	}
}

func TestParseOBJ_IgnoresUnknownRecords(t *testing.T) {
	src := `# a comment
o Quad
mtllib quad.mtl
v -0.5 -0.5 0
vn 0 0 1
v 0.5 -0.5 0

usemtl none
s off
v 0.5 0.5 0
v -0.5 0.5 0
f 1 2 3 4
`
	obj, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(obj.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(obj.Vertices))
	}
	if len(obj.Triangles) != 2 {
		t.Errorf("expected 2 triangles, got %d", len(obj.Triangles))
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		line    int
	}{
		{"vertex with 2 coords", "v 1 2\n", ErrInvalidVertex, 1},
		{"vertex with 4 coords", "v 1 2 3 4\n", ErrInvalidVertex, 1},
		{"vertex with no coords", "v\n", ErrInvalidVertex, 1},
		{"non-numeric coord", "v 1 two 3\n", ErrInvalidVertex, 1},
		{"zero index", "v 0 0 0\nv 0 0 0\nv 0 0 0\nf 0 1 2\n", ErrInvalidVertexIndex, 4},
		{"negative index", "v 0 0 0\nv 0 0 0\nv 0 0 0\nf -1 2 3\n", ErrInvalidVertexIndex, 4},
		{"non-numeric index", "v 0 0 0\nv 0 0 0\nv 0 0 0\nf 1 b 3\n", ErrInvalidVertexIndex, 4},
		{"slash index", "v 0 0 0\nv 0 0 0\nv 0 0 0\nf 1/1 2/2 3/3\n", ErrInvalidVertexIndex, 4},
		{"two indices", "v 0 0 0\nv 0 0 0\nf 1 2\n", ErrInvalidFace, 3},
		{"no indices", "f\n", ErrInvalidFace, 1},
		{"index past 16 bits", "v 0 0 0\nv 0 0 0\nf 1 2 70000\n", ErrVertexIndexOutOfRange, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ParseOBJ([]byte(tt.src))
			if obj != nil {
				t.Error("expected no partial mesh on error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !IsFormatError(err) {
				t.Fatalf("expected a format error, got %T", err)
			}
			var se *SyntaxError
			errors.As(err, &se)
			if se.Line != tt.line {
				t.Errorf("error line = %d, want %d", se.Line, tt.line)
			}
		})
	}
}

func TestParseOBJ_OutOfRangeCoordinates(t *testing.T) {
	obj, err := ParseOBJ([]byte("v 1e50 -1e50 1e-50\n"))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	p := obj.Vertices[0].Position
	if !gomath.IsInf(float64(p.X), 1) || !gomath.IsInf(float64(p.Y), -1) {
		t.Errorf("expected +Inf and -Inf, got %v, %v", p.X, p.Y)
	}
	if p.Z != 0 {
		t.Errorf("expected underflow to 0, got %v", p.Z)
	}
}

func TestParseOBJ_StopsAtFirstError(t *testing.T) {
	_, err := ParseOBJ([]byte("v 1 2\nf 1 2\n"))
	if !errors.Is(err, ErrInvalidVertex) {
		t.Errorf("expected first error to be the vertex error, got %v", err)
	}
}

func TestParseOBJ_TooManyVertices(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 70000; i++ {
		b.WriteString("v 0 0 0\n")
	}
	b.WriteString("f 1 2 3\n")

	obj, err := ParseOBJ([]byte(b.String()))
	if obj != nil {
		t.Error("expected no mesh when capacity is exceeded")
	}
	if !errors.Is(err, ErrTooManyVertices) {
		t.Fatalf("expected ErrTooManyVertices, got %v", err)
	}
	if IsFormatError(err) {
		t.Error("capacity error should not be reported as a format error")
	}
}

func TestParseOBJ_MaxVerticesAccepted(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxOBJVertices; i++ {
		b.WriteString("v 0 0 0\n")
	}
	b.WriteString("f 1 2 65535\n")

	obj, err := ParseOBJ([]byte(b.String()))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if got := obj.Triangles[0][2]; got != 65534 {
		t.Errorf("last index = %d, want 65534", got)
	}
}

func TestCornerUV(t *testing.T) {
	tests := []struct {
		pos  math.Vec3
		want math.Vec2
	}{
		{math.Vec3{X: 0.5, Y: 0.5}, math.Vec2{X: 1, Y: 1}},
		{math.Vec3{X: 0.5, Y: -0.5}, math.Vec2{X: 1, Y: 0}},
		{math.Vec3{X: -0.5, Y: -0.5}, math.Vec2{X: 0, Y: 0}},
		{math.Vec3{X: -0.5, Y: 0.5}, math.Vec2{X: 0, Y: 1}},
		{math.Vec3{X: 3, Y: 7, Z: 1}, math.Vec2{X: 0, Y: 1}},
	}
	for _, tt := range tests {
		if got := cornerUV(tt.pos); got != tt.want {
			t.Errorf("cornerUV(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestLoadOBJ(t *testing.T) {
	obj, err := LoadOBJ(filepath.Join("testdata", "cube.obj"))
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(obj.Vertices) != 8 {
		t.Errorf("expected 8 vertices, got %d", len(obj.Vertices))
	}
	if len(obj.Triangles) != 12 {
		t.Errorf("expected 12 triangles, got %d", len(obj.Triangles))
	}
}

func TestLoadOBJ_Missing(t *testing.T) {
	_, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	if IsFormatError(err) {
		t.Error("missing file should not be a format error")
	}
}

func TestLoadOBJ_WrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.obj")
	if err := os.WriteFile(path, []byte("v 1 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadOBJ(path)
	if !errors.Is(err, ErrInvalidVertex) {
		t.Fatalf("expected ErrInvalidVertex, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad.obj") {
		t.Errorf("error %q should name the file", err)
	}
}
