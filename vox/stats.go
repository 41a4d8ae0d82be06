package vox

import "github.com/willf/bitset"

// Stats summarises a decoded model.
type Stats struct {
	Size           Size
	VoxelCount     int
	ColorsUsed     int
	DefaultPalette bool
	OutOfBounds    int
}

// Stats counts distinct color indexes and voxels outside the declared size.
func (m *Model) Stats() Stats {
	used := bitset.New(PaletteSize)
	st := Stats{Size: m.Size, VoxelCount: len(m.Voxels), DefaultPalette: m.DefaultPalette}
	for _, v := range m.Voxels {
		used.Set(uint(v.ColorIndex))
		if m.HasSize && !m.Contains(v) {
			st.OutOfBounds++
		}
	}
	st.ColorsUsed = int(used.Count())
	return st
}
