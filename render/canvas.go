package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/voxelsplace/voxview/vox"
)

// Rasterizer is the drawing backend a Viewer hands its buffers to.
type Rasterizer interface {
	Viewport() (width, height int)
	Clear()
	// DrawTriangles draws len(positions)/3 vertices as a triangle list.
	DrawTriangles(positions, colors []float32, projection, modelView mgl32.Mat4) error
}

// Canvas is a software Rasterizer with a depth buffer. Faces get a simple
// view-space shade so cube edges stay visible without lighting.
type Canvas struct {
	Image      *image.RGBA
	Background color.RGBA
	depth      []float32
}

func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{
		Image:      image.NewRGBA(image.Rect(0, 0, width, height)),
		Background: color.RGBA{A: 255},
		depth:      make([]float32, width*height),
	}
	c.Clear()
	return c
}

func (c *Canvas) Viewport() (int, int) {
	b := c.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear() {
	pix := c.Image.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.Background.R, c.Background.G, c.Background.B, c.Background.A
	}
	for i := range c.depth {
		c.depth[i] = math.MaxFloat32
	}
}

type screenVertex struct {
	x, y, z float32
}

func (c *Canvas) DrawTriangles(positions, colors []float32, projection, modelView mgl32.Mat4) error {
	if len(positions)%(3*vox.PositionStride) != 0 {
		return fmt.Errorf("render: %d position floats is not a whole number of triangles", len(positions))
	}
	n := len(positions) / vox.PositionStride
	if len(colors) != n*vox.ColorStride {
		return fmt.Errorf("render: %d color floats for %d vertices", len(colors), n)
	}
	w, h := c.Viewport()
	if w == 0 || h == 0 {
		return nil
	}
	mvp := projection.Mul4(modelView)

	for tri := 0; tri < n; tri += 3 {
		var sv [3]screenVertex
		var model [3]mgl32.Vec3
		visible := true
		for k := 0; k < 3; k++ {
			p := positions[(tri+k)*vox.PositionStride:]
			model[k] = mgl32.Vec3{p[0], p[1], p[2]}
			clip := mvp.Mul4x1(model[k].Vec4(1))
			if clip.W() <= 0 {
				visible = false
				break
			}
			ndc := clip.Vec3().Mul(1 / clip.W())
			sv[k] = screenVertex{
				x: (ndc.X() + 1) * 0.5 * float32(w),
				y: (1 - ndc.Y()) * 0.5 * float32(h),
				z: ndc.Z(),
			}
		}
		if !visible {
			continue
		}
		normal := model[1].Sub(model[0]).Cross(model[2].Sub(model[0]))
		viewNormal := modelView.Mul4x1(normal.Vec4(0)).Vec3()
		shade := float32(1)
		if l := viewNormal.Len(); l > 0 {
			shade = 0.4 + 0.6*float32(math.Abs(float64(viewNormal.Z()/l)))
		}
		col := colors[tri*vox.ColorStride:]
		rgba := color.RGBA{
			R: channel(col[0] * shade),
			G: channel(col[1] * shade),
			B: channel(col[2] * shade),
			A: channel(col[3]),
		}
		c.fill(sv, rgba)
	}
	return nil
}

func (c *Canvas) fill(v [3]screenVertex, col color.RGBA) {
	area := edge(v[0], v[1], v[2].x, v[2].y)
	if area == 0 {
		return
	}
	w, h := c.Viewport()
	minX := clamp(int(math.Floor(float64(min(v[0].x, v[1].x, v[2].x)))), 0, w-1)
	maxX := clamp(int(math.Ceil(float64(max(v[0].x, v[1].x, v[2].x)))), 0, w-1)
	minY := clamp(int(math.Floor(float64(min(v[0].y, v[1].y, v[2].y)))), 0, h-1)
	maxY := clamp(int(math.Ceil(float64(max(v[0].y, v[1].y, v[2].y)))), 0, h-1)

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			fx, fy := float32(px)+0.5, float32(py)+0.5
			b0 := edge(v[1], v[2], fx, fy) / area
			b1 := edge(v[2], v[0], fx, fy) / area
			b2 := edge(v[0], v[1], fx, fy) / area
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			z := b0*v[0].z + b1*v[1].z + b2*v[2].z
			if z < -1 || z > 1 {
				continue
			}
			i := py*w + px
			if z >= c.depth[i] {
				continue
			}
			c.depth[i] = z
			c.Image.SetRGBA(px, py, col)
		}
	}
}

func edge(a, b screenVertex, x, y float32) float32 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

func channel(v float32) uint8 {
	return uint8(clamp(int(v*255+0.5), 0, 255))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
