package vox

import "encoding/binary"

const (
	IDMain = "MAIN"
	IDSize = "SIZE"
	IDRGBA = "RGBA"
	IDXYZI = "XYZI"
)

// Size is the model extent in voxels.
type Size struct {
	X, Y, Z uint32
}

// Voxel is one occupied cell. ColorIndex is the raw index from the file;
// see IndexBase for how it maps onto the palette.
type Voxel struct {
	X, Y, Z, ColorIndex uint8
}

// Model is the decoded content of a vox file.
type Model struct {
	Size    Size
	HasSize bool
	Palette Palette
	// DefaultPalette is set when the file had no RGBA chunk.
	DefaultPalette bool
	VoxelCount     uint32
	Voxels         []Voxel
}

// Extract interprets the direct children of the MAIN chunk. Unknown chunk
// ids are skipped; a repeated SIZE, RGBA or XYZI replaces the earlier one.
func Extract(tree *ChunkTree) (*Model, error) {
	root := tree.Root()
	if root == nil {
		return nil, newError(ErrStructure, "", 0, "empty chunk tree")
	}
	m := &Model{Palette: GrayPalette(), DefaultPalette: true}
	for _, c := range tree.Children(root) {
		var err error
		switch c.ID {
		case IDSize:
			err = m.readSize(c)
		case IDRGBA:
			err = m.readPalette(c)
		case IDXYZI:
			err = m.readVoxels(c)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Model) readSize(c *Chunk) error {
	if len(c.Content) != 12 {
		return newError(ErrContent, c.ID, c.Offset, "want 12 bytes, got %d", len(c.Content))
	}
	z := int32(binary.LittleEndian.Uint32(c.Content[8:12]))
	if z < 0 {
		return newError(ErrContent, c.ID, c.Offset, "negative z extent %d", z)
	}
	m.Size = Size{
		X: binary.LittleEndian.Uint32(c.Content[0:4]),
		Y: binary.LittleEndian.Uint32(c.Content[4:8]),
		Z: uint32(z),
	}
	m.HasSize = true
	return nil
}

func (m *Model) readPalette(c *Chunk) error {
	if len(c.Content)%4 != 0 {
		return newError(ErrContent, c.ID, c.Offset, "length %d is not a multiple of 4", len(c.Content))
	}
	if len(c.Content) != PaletteSize*4 {
		return newError(ErrContent, c.ID, c.Offset, "want %d entries, got %d", PaletteSize, len(c.Content)/4)
	}
	for i := range m.Palette {
		copy(m.Palette[i][:], c.Content[i*4:i*4+4])
	}
	m.DefaultPalette = false
	return nil
}

func (m *Model) readVoxels(c *Chunk) error {
	if len(c.Content) < 4 {
		return newError(ErrContent, c.ID, c.Offset, "missing voxel count")
	}
	count := binary.LittleEndian.Uint32(c.Content[:4])
	body := c.Content[4:]
	if len(body)%4 != 0 || uint64(len(body)/4) != uint64(count) {
		return newError(ErrContent, c.ID, c.Offset, "declares %d voxels but carries %d bytes", count, len(body))
	}
	voxels := make([]Voxel, count)
	for i := range voxels {
		r := body[i*4 : i*4+4]
		voxels[i] = Voxel{X: r[0], Y: r[1], Z: r[2], ColorIndex: r[3]}
	}
	m.VoxelCount = count
	m.Voxels = voxels
	return nil
}

// ColorOf looks up the palette color of v.
func (m *Model) ColorOf(v Voxel, base IndexBase) (Color, error) {
	i, err := base.PaletteIndex(v.ColorIndex)
	if err != nil {
		return Color{}, err
	}
	if i < 0 || i >= len(m.Palette) {
		return Color{}, newError(ErrRange, "", 0, "palette index %d out of range", i)
	}
	return m.Palette[i], nil
}

// Contains reports whether v lies inside the declared size.
func (m *Model) Contains(v Voxel) bool {
	return uint32(v.X) < m.Size.X && uint32(v.Y) < m.Size.Y && uint32(v.Z) < m.Size.Z
}

// Decode runs signature check, chunk parsing and extraction over data.
func Decode(data []byte, opts Options) (*Model, error) {
	tree, err := ParseFile(data, opts.MaxDepth)
	if err != nil {
		return nil, err
	}
	return Extract(tree)
}
