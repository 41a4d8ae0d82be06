package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/vox"
)

// RunVOX2GLB converts a .vox file (optionally gzip/zlib/zstd wrapped) into a .glb.
func RunVOX2GLB(inPath, outPath string, opts vox.Options) error {
	return convertGLB(api.NewDecoder(opts, 0), inPath, outPath)
}

func convertGLB(dec *api.Decoder, inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	mesh, _, err := dec.Mesh(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	doc := api.MeshDocument(mesh, modelName(inPath))
	return gltf.SaveBinary(doc, outPath)
}

// modelName strips directories and every extension: a/b/castle.vox.zst -> castle.
func modelName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base[1:], '.'); i >= 0 {
		return base[:i+1]
	}
	return base
}
