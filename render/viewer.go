package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/vox"
)

// ErrInvalidFile is reported when loaded bytes are not a usable vox model.
var ErrInvalidFile = errors.New("not a valid vox file")

// Button identifies the mouse button of a drag.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Viewer drives one model through decode, mesh and draw. A render asked
// for before a model has loaded is deferred until Load succeeds.
// A Viewer is not safe for concurrent use.
type Viewer struct {
	Decoder *api.Decoder
	Target  Rasterizer
	Logger  *slog.Logger

	model   *vox.Model
	mesh    *vox.Mesh
	camera  *Camera
	pending bool
}

func NewViewer(dec *api.Decoder, target Rasterizer, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{Decoder: dec, Target: target, Logger: logger}
}

// Load replaces the current model. On failure nothing stays loaded and
// the error wraps ErrInvalidFile when the bytes were not a usable model.
func (v *Viewer) Load(data []byte) error {
	v.model, v.mesh, v.camera = nil, nil, nil
	mesh, model, err := v.Decoder.Mesh(data)
	if err != nil {
		if vox.IsInvalidFile(err) {
			v.Logger.Warn("not a valid vox file", "err", err, "bytes", len(data))
			return fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
		v.Logger.Error("load failed", "err", err, "bytes", len(data))
		return err
	}
	v.model, v.mesh, v.camera = model, mesh, FrameModel(model.Size)
	v.Logger.Debug("model loaded", "size", model.Size, "voxels", len(model.Voxels), "vertices", mesh.VertexCount())
	if v.pending {
		v.pending = false
		return v.draw()
	}
	return nil
}

// Ready reports whether a model is loaded.
func (v *Viewer) Ready() bool { return v.mesh != nil }

// Model returns the loaded model, or nil.
func (v *Viewer) Model() *vox.Model { return v.model }

// Camera returns the current camera, or nil before a model has loaded.
func (v *Viewer) Camera() *Camera { return v.camera }

// Render draws the model, or defers the draw until one is loaded.
func (v *Viewer) Render() error {
	if !v.Ready() {
		v.pending = true
		return nil
	}
	return v.draw()
}

// Drag rotates on the left button and pans on the right one, then redraws.
func (v *Viewer) Drag(button Button, dx, dy float32) error {
	if !v.Ready() {
		return nil
	}
	switch button {
	case ButtonLeft:
		v.camera.DragRotate(dx, dy)
	case ButtonRight:
		v.camera.DragPan(dx, dy)
	default:
		return nil
	}
	return v.draw()
}

// Wheel zooms one step and redraws.
func (v *Viewer) Wheel(delta float32) error {
	if !v.Ready() {
		return nil
	}
	v.camera.Wheel(delta)
	return v.draw()
}

func (v *Viewer) draw() error {
	w, h := v.Target.Viewport()
	v.Target.Clear()
	return v.Target.DrawTriangles(v.mesh.Positions, v.mesh.Colors, v.camera.Projection(w, h), v.camera.ModelView())
}
