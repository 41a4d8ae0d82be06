package utils

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/render"
	"github.com/voxelsplace/voxview/vox"
)

// View is the camera input for RunRender on top of the default framing.
type View struct {
	Width, Height int
	// Yaw and Pitch are drag distances in pixels, as a mouse would give them.
	Yaw, Pitch float32
	Zoom       int
}

// RunRender draws a .vox file with the software rasterizer and writes
// the picture; the format follows outPath's extension (png, bmp, tif/tiff).
func RunRender(inPath, outPath string, view View, opts vox.Options) error {
	if view.Width <= 0 || view.Height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive", view.Width, view.Height)
	}
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	canvas := render.NewCanvas(view.Width, view.Height)
	v := render.NewViewer(api.NewDecoder(opts, 0), canvas, nil)
	if err := v.Load(data); err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	cam := v.Camera()
	cam.DragRotate(view.Yaw, view.Pitch)
	for i := 0; i < view.Zoom; i++ {
		cam.Wheel(1)
	}
	for i := 0; i > view.Zoom; i-- {
		cam.Wheel(-1)
	}
	if err := v.Render(); err != nil {
		return err
	}
	return WriteImage(outPath, canvas.Image)
}

// WriteImage encodes img to path, picking the codec from the extension.
func WriteImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		err = png.Encode(f, img)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("unsupported image format %q", ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}
