package vox

import "fmt"

// IndexBase selects how a voxel's color index maps onto the 256-entry palette.
type IndexBase int

const (
	// OneBased maps color index c to palette entry c-1; c == 0 is invalid.
	// This is how MagicaVoxel writes files.
	OneBased IndexBase = iota
	// ZeroBased maps color index c straight to palette entry c.
	ZeroBased
)

func (b IndexBase) String() string {
	switch b {
	case OneBased:
		return "one-based"
	case ZeroBased:
		return "zero-based"
	default:
		return fmt.Sprintf("IndexBase(%d)", int(b))
	}
}

// PaletteIndex resolves a voxel color index to a palette slot.
func (b IndexBase) PaletteIndex(colorIndex uint8) (int, error) {
	switch b {
	case OneBased:
		if colorIndex == 0 {
			return 0, newError(ErrRange, "", 0, "color index 0 is reserved")
		}
		return int(colorIndex) - 1, nil
	case ZeroBased:
		return int(colorIndex), nil
	default:
		return 0, fmt.Errorf("vox: unknown index base %d", int(b))
	}
}

// Options controls decoding and meshing.
type Options struct {
	MaxDepth  int
	IndexBase IndexBase
	// Strict rejects voxels outside the declared model size when meshing.
	Strict bool
}

func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth, IndexBase: OneBased, Strict: true}
}
