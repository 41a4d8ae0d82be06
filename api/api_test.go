package api

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/qmuntal/gltf"

	"github.com/voxelsplace/voxview/internal/voxtest"
	"github.com/voxelsplace/voxview/vox"
)

func compressAll(t *testing.T, raw []byte) map[Compression][]byte {
	t.Helper()
	out := map[Compression][]byte{CompNone: raw}

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	if _, err := gw.Write(raw); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	out[CompGzip] = gz.Bytes()

	var zb bytes.Buffer
	zw := zlib.NewWriter(&zb)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("zlib: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	out[CompZlib] = zb.Bytes()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	out[CompZstd] = enc.EncodeAll(raw, nil)
	return out
}

func TestUnwrap(t *testing.T) {
	raw := voxtest.Cube(2)
	for comp, data := range compressAll(t, raw) {
		if got := DetectCompression(data); got != comp {
			t.Fatalf("detected %s want %s", got, comp)
		}
		out, gotComp, err := Unwrap(data)
		if err != nil {
			t.Fatalf("%s: %v", comp, err)
		}
		if gotComp != comp || !bytes.Equal(out, raw) {
			t.Fatalf("%s: unwrap mismatch", comp)
		}
	}
}

func TestUnwrap_Corrupt(t *testing.T) {
	bad := append([]byte{0x1f, 0x8b}, []byte("definitely not gzip")...)
	if _, _, err := Unwrap(bad); err == nil {
		t.Fatalf("expected error for corrupt gzip")
	}
}

func TestDecode_LooksCompressed(t *testing.T) {
	tests := map[string][]byte{
		"zlib": {0x78, 0x9c, 0x00, 0x01, 0x02, 0x03},
		"gzip": {0x1f, 0x8b, 0x08, 0x00},
		"zstd": {0x28, 0xb5, 0x2f, 0xfd, 0xff, 0xff, 0xff, 0xff},
		"text": []byte("x^garbage"),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewDecoder(vox.DefaultOptions(), 4).Decode(data)
			if !errors.Is(err, vox.ErrSignature) {
				t.Fatalf("want ErrSignature, got %v", err)
			}
			if !vox.IsInvalidFile(err) {
				t.Fatalf("IsInvalidFile false for %v", err)
			}
			if _, err := VOXInfo(data, vox.DefaultOptions()); !errors.Is(err, vox.ErrSignature) {
				t.Fatalf("VOXInfo: want ErrSignature, got %v", err)
			}
		})
	}
}

func TestVOXToMesh(t *testing.T) {
	mesh, model, err := VOXToMesh(voxtest.Cube(2), vox.DefaultOptions())
	if err != nil {
		t.Fatalf("VOXToMesh: %v", err)
	}
	if model.Size != (vox.Size{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("size %+v", model.Size)
	}
	if mesh.VertexCount() != 8*vox.VerticesPerVoxel {
		t.Fatalf("got %d vertices", mesh.VertexCount())
	}
	if c := mesh.VertexColor(0); c != [4]float32{1, 0, 0, 1} {
		t.Fatalf("color %v", c)
	}
}

func TestVOXToMesh_Invalid(t *testing.T) {
	_, _, err := VOXToMesh([]byte("PNG\x00 not a model"), vox.DefaultOptions())
	if !errors.Is(err, vox.ErrSignature) {
		t.Fatalf("want ErrSignature, got %v", err)
	}
}

func TestVOXToGLB(t *testing.T) {
	glb, err := VOXToGLB(voxtest.Cube(1), vox.DefaultOptions())
	if err != nil {
		t.Fatalf("VOXToGLB: %v", err)
	}
	if !bytes.HasPrefix(glb, []byte("glTF")) {
		t.Fatalf("missing glb magic")
	}
	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(glb)).Decode(&doc); err != nil {
		t.Fatalf("decode glb: %v", err)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("unexpected meshes %+v", doc.Meshes)
	}
	prim := doc.Meshes[0].Primitives[0]
	for _, attr := range []string{gltf.POSITION, gltf.NORMAL, gltf.COLOR_0} {
		idx, ok := prim.Attributes[attr]
		if !ok {
			t.Fatalf("missing %s", attr)
		}
		if got := int(doc.Accessors[idx].Count); got != vox.VerticesPerVoxel {
			t.Fatalf("%s count %d", attr, got)
		}
	}
	if doc.Materials[0].AlphaMode != gltf.AlphaOpaque {
		t.Fatalf("alpha mode %v", doc.Materials[0].AlphaMode)
	}
}

func TestVOXToGLB_AlphaBlend(t *testing.T) {
	data := voxtest.File(voxtest.Size(1, 1, 1), voxtest.RGBA([4]byte{10, 20, 30, 40}), voxtest.XYZI([4]byte{0, 0, 0, 1}))
	glb, err := VOXToGLB(data, vox.DefaultOptions())
	if err != nil {
		t.Fatalf("VOXToGLB: %v", err)
	}
	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(glb)).Decode(&doc); err != nil {
		t.Fatalf("decode glb: %v", err)
	}
	if doc.Materials[0].AlphaMode != gltf.AlphaBlend {
		t.Fatalf("alpha mode %v", doc.Materials[0].AlphaMode)
	}
}

func TestEncodeGLB_Empty(t *testing.T) {
	glb, err := EncodeGLB(&vox.Mesh{}, "empty")
	if err != nil {
		t.Fatalf("EncodeGLB: %v", err)
	}
	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(glb)).Decode(&doc); err != nil {
		t.Fatalf("decode glb: %v", err)
	}
	if len(doc.Meshes) != 0 {
		t.Fatalf("expected no meshes")
	}
}

func TestVOXInfo(t *testing.T) {
	data := voxtest.File(
		voxtest.Size(4, 4, 4),
		voxtest.Chunk("nTRN", []byte{0}),
		voxtest.XYZI([4]byte{0, 0, 0, 1}, [4]byte{1, 1, 1, 2}, [4]byte{2, 2, 2, 2}),
	)
	info, err := VOXInfo(compressAll(t, data)[CompZstd], vox.DefaultOptions())
	if err != nil {
		t.Fatalf("VOXInfo: %v", err)
	}
	want := Info{
		Version:     voxtest.Version,
		Compression: CompZstd,
		Chunks:      []string{"SIZE", "nTRN", "XYZI"},
		Stats:       vox.Stats{Size: vox.Size{X: 4, Y: 4, Z: 4}, VoxelCount: 3, ColorsUsed: 2, DefaultPalette: true},
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("info (-want +got):\n%s", diff)
	}
}

func TestDecoder_Cache(t *testing.T) {
	d := NewDecoder(vox.DefaultOptions(), 2)
	a, b, c := voxtest.Cube(1), voxtest.Cube(2), voxtest.Cube(3)

	m1, err := d.Decode(a)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m2, err := d.Decode(append([]byte(nil), a...))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m1 != m2 || d.Hits() != 1 {
		t.Fatalf("expected cached model, hits=%d", d.Hits())
	}

	for _, in := range [][]byte{b, c} {
		if _, err := d.Decode(in); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	// a was evicted by b and c
	m3, err := d.Decode(a)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m3 == m1 {
		t.Fatalf("expected eviction of the oldest entry")
	}
	if d.Hits() != 1 {
		t.Fatalf("hits=%d", d.Hits())
	}
}

func TestDecoder_ErrorsNotCached(t *testing.T) {
	d := NewDecoder(vox.DefaultOptions(), 4)
	bad := voxtest.File(voxtest.Chunk("RGBA", make([]byte, 1023)))
	for i := 0; i < 2; i++ {
		if _, err := d.Decode(bad); !errors.Is(err, vox.ErrContent) {
			t.Fatalf("want ErrContent, got %v", err)
		}
	}
	if d.Hits() != 0 {
		t.Fatalf("hits=%d", d.Hits())
	}
}
