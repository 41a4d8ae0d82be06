package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/vox"
)

// RunInfo prints a summary of a .vox file to w.
func RunInfo(w io.Writer, inPath string, opts vox.Options) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	info, err := api.VOXInfo(data, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	palette := "file"
	if info.Stats.DefaultPalette {
		palette = "default gray ramp"
	}
	fmt.Fprintf(w, "file:        %s\n", inPath)
	fmt.Fprintf(w, "version:     %d\n", info.Version)
	fmt.Fprintf(w, "compression: %s\n", info.Compression)
	fmt.Fprintf(w, "chunks:      %s\n", strings.Join(info.Chunks, " "))
	fmt.Fprintf(w, "size:        %dx%dx%d\n", info.Stats.Size.X, info.Stats.Size.Y, info.Stats.Size.Z)
	fmt.Fprintf(w, "voxels:      %d\n", info.Stats.VoxelCount)
	fmt.Fprintf(w, "colors used: %d\n", info.Stats.ColorsUsed)
	fmt.Fprintf(w, "palette:     %s\n", palette)
	if info.Stats.OutOfBounds > 0 {
		fmt.Fprintf(w, "out of bounds voxels: %d\n", info.Stats.OutOfBounds)
	}
	return nil
}
