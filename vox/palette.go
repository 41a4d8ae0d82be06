package vox

// Color is one RGBA palette entry.
type Color [4]uint8

// Normalized returns the color as floats in [0, 1].
func (c Color) Normalized() [4]float32 {
	return [4]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, float32(c[3]) / 255}
}

// PaletteSize is the fixed number of entries in an RGBA chunk.
const PaletteSize = 256

type Palette [PaletteSize]Color

// GrayPalette is used when a file has no RGBA chunk: entry i is (i, i, i, 255).
func GrayPalette() Palette {
	var p Palette
	for i := range p {
		v := uint8(i)
		p[i] = Color{v, v, v, 255}
	}
	return p
}
