// Package viewer runs the interactive mesh viewing session.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/viewer/transform"
	"github.com/Faultbox/meshview/pkg/math"
)

// Viewer owns the window and the per-session transform state.
type Viewer struct {
	config *config.Config
	mesh   *model.Mesh

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FramingCamera
	keys     *Keymap
	shots    *debug.ScreenshotCapture

	state   transform.State
	steps   transform.Steps
	running bool
}

// New opens the window and uploads the mesh and texture.
func New(cfg *config.Config, mesh *model.Mesh, tex *texture.Image) (*Viewer, error) {
	keys, err := NewKeymap(cfg.Controls.Keys)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	v := &Viewer{
		config: cfg,
		mesh:   mesh,
		input:  input.New(),
		keys:   keys,
		shots:  debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
		state:  transform.NewState(),
		steps:  cfg.Steps(),
	}

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context created by the window.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.View.ClearColor,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.renderer.UploadMesh(mesh); err != nil {
		v.Close()
		return nil, err
	}
	v.renderer.UploadTexture(tex)

	v.camera = camera.NewFramingCamera(mesh.LongestExtent, camera.Lens{
		FOV:  math.Radians(cfg.View.FOVDegrees),
		Near: cfg.View.Near,
		Far:  cfg.View.Far,
	}, width, height)

	logger.Debug("camera placed",
		zap.Float32("eye_z", v.camera.Eye.Z),
		zap.Float32("aspect", v.camera.Aspect()),
	)
	return v, nil
}

// Run drives the frame loop until the window closes or the quit key is pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting view loop")

	for v.running {
		if v.input.Update() {
			break
		}

		for _, event := range v.input.Events() {
			if event.Type == input.EventWindowResize {
				v.resize()
			}
		}

		held, pressed := v.keys.Sets(v.input)
		if pressed.Has(transform.Quit) {
			break
		}
		v.update(held, pressed)

		v.render()

		if pressed.Has(transform.Screenshot) {
			v.screenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	v.running = false
	logger.Info("view loop stopped")
	return nil
}

// resize follows the framebuffer size, which can differ from the
// window size on high-DPI displays.
func (v *Viewer) resize() {
	width, height := v.window.DrawableSize()
	v.camera.SetViewport(width, height)
	v.renderer.Resize(width, height)
}

func (v *Viewer) update(held, pressed transform.ActionSet) {
	prev := v.state
	v.state = transform.Step(v.state, held, pressed, v.steps)

	if prev.UseTexture != v.state.UseTexture {
		logger.Info("display mode changed", zap.Bool("texture", v.state.UseTexture))
	}
	if prev.ShowBounds != v.state.ShowBounds {
		logger.Info("bounding box overlay changed", zap.Bool("visible", v.state.ShowBounds))
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.Draw(renderer.Frame{
		Model:        transform.ModelMatrix(v.state, v.mesh.Center),
		View:         v.camera.ViewMatrix(),
		Projection:   v.camera.ProjectionMatrix(),
		TextureBlend: v.state.TextureBlend,
		ShowBounds:   v.state.ShowBounds,
	})
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// LogMeshStats reports the loaded mesh at info level and warns about
// indices that reference missing vertices.
func LogMeshStats(path string, mesh *model.Mesh) {
	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("vertex_bytes", mesh.VertexBufferSize()),
		zap.Int("index_bytes", mesh.IndexBufferSize()),
		zap.Float32s("center", []float32{mesh.Center.X, mesh.Center.Y, mesh.Center.Z}),
		zap.Float32("extent", mesh.LongestExtent),
	)
	if mesh.HasDanglingIndices() {
		logger.Warn("faces reference vertices past the end of the vertex list; triangles will not be drawn",
			zap.Int("max_index", mesh.MaxIndex),
			zap.Int("vertices", mesh.VertexCount()),
		)
	}
}
