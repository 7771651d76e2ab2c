// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/renderer/shaders"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// Attribute locations shared with mesh.vert.
const (
	attribPosition = 0
	attribColor    = 1
	attribTexCoord = 2
)

const textureUnit = 0

// BoundsColor is the wireframe color of the bounding box overlay.
var BoundsColor = math.Vec3{X: 1, Y: 0.8, Z: 0.1}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// Frame holds the per-frame inputs of Draw.
type Frame struct {
	Model        math.Mat4
	View         math.Mat4
	Projection   math.Mat4
	TextureBlend float32
	ShowBounds   bool
}

// Renderer draws a single mesh with an optional texture and bbox overlay.
type Renderer struct {
	config Config

	meshProgram *shader.Program
	lineProgram *shader.Program

	meshVAO    uint32
	meshVBO    uint32
	meshEBO    uint32
	indexCount int32

	boundsVAO uint32
	boundsVBO uint32

	texture uint32
}

// New creates a new renderer.
// Must be called after the OpenGL context is current.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	var err error
	r.meshProgram, err = shader.New("mesh", shaders.MeshVertex, shaders.MeshFragment)
	if err != nil {
		return nil, err
	}
	r.lineProgram, err = shader.New("line", shaders.LineVertex, shaders.LineFragment)
	if err != nil {
		r.meshProgram.Delete()
		return nil, err
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Debug("closing renderer")
	r.releaseMesh()
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if r.meshProgram != nil {
		r.meshProgram.Delete()
	}
	if r.lineProgram != nil {
		r.lineProgram.Delete()
	}
}

func (r *Renderer) releaseMesh() {
	for _, vao := range []*uint32{&r.meshVAO, &r.boundsVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, buf := range []*uint32{&r.meshVBO, &r.meshEBO, &r.boundsVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	r.indexCount = 0
}

// Resize sets the viewport to the framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// UploadMesh copies the mesh and its bounding box wireframe to the GPU,
// replacing any previous mesh.
func (r *Renderer) UploadMesh(mesh *model.Mesh) error {
	if len(mesh.VertexData) == 0 {
		return fmt.Errorf("mesh has no vertex data")
	}
	r.releaseMesh()

	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)

	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	gl.BufferData(gl.ARRAY_BUFFER, mesh.VertexBufferSize(), unsafe.Pointer(&mesh.VertexData[0]), gl.STATIC_DRAW)

	indices := mesh.DrawIndices()
	if len(indices) > 0 {
		gl.GenBuffers(1, &r.meshEBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	stride := int32(model.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, model.PositionOffset)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribColor, 3, gl.FLOAT, false, stride, model.ColorOffset)
	gl.EnableVertexAttribArray(attribColor)
	gl.VertexAttribPointerWithOffset(attribTexCoord, 2, gl.FLOAT, false, stride, model.TexCoordOffset)
	gl.EnableVertexAttribArray(attribTexCoord)

	gl.BindVertexArray(0)
	r.indexCount = int32(len(indices))

	lines := debug.BoundsWireframe(mesh.Bounds)
	gl.GenVertexArrays(1, &r.boundsVAO)
	gl.BindVertexArray(r.boundsVAO)
	gl.GenBuffers(1, &r.boundsVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boundsVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, unsafe.Pointer(&lines[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(attribPosition)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", r.meshVAO),
		zap.Int("vertex_bytes", mesh.VertexBufferSize()),
		zap.Int("index_bytes", len(indices)*2),
	)
	return nil
}

// UploadTexture creates a mipmapped, repeating texture from img.
func (r *Renderer) UploadTexture(img *texture.Image) {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}

	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows are tightly packed.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Width), int32(img.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Debug("texture uploaded",
		zap.Uint32("id", r.texture),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)
}

// Begin clears the color and depth buffers.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the mesh and, if requested, its bounding box.
func (r *Renderer) Draw(f Frame) {
	if r.meshVAO == 0 {
		return
	}

	p := r.meshProgram
	p.Use()
	p.SetMat4("uModel", f.Model)
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Projection)
	p.SetInt("uTexture", textureUnit)
	p.SetFloat("uTextureBlend", f.TextureBlend)

	gl.ActiveTexture(gl.TEXTURE0 + textureUnit)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)

	gl.BindVertexArray(r.meshVAO)
	if r.indexCount > 0 {
		gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_SHORT, 0)
	}

	if f.ShowBounds {
		l := r.lineProgram
		l.Use()
		l.SetMat4("uModel", f.Model)
		l.SetMat4("uView", f.View)
		l.SetMat4("uProjection", f.Projection)
		l.SetVec3("uColor", BoundsColor)
		gl.BindVertexArray(r.boundsVAO)
		gl.DrawArrays(gl.LINES, 0, debug.BBoxWireframeVertexCount)
	}

	gl.BindVertexArray(0)
}

// ReadPixels reads the current framebuffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
