package vox

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decode(t *testing.T, data []byte) (*Model, error) {
	t.Helper()
	return Decode(data, DefaultOptions())
}

func TestExtract_Size(t *testing.T) {
	m, err := decode(t, fileBytes(sizeChunk(2, 2, 2)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !m.HasSize || m.Size != (Size{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("size = %+v (has=%v)", m.Size, m.HasSize)
	}
}

func TestExtract_NegativeZ(t *testing.T) {
	_, err := decode(t, fileBytes(sizeChunk(2, 2, 0xffffffff)))
	if !errors.Is(err, ErrContent) {
		t.Fatalf("want ErrContent, got %v", err)
	}
}

func TestExtract_ShortSize(t *testing.T) {
	_, err := decode(t, fileBytes(chunkBytes(IDSize, []byte{1, 0, 0, 0, 1, 0, 0, 0})))
	if !errors.Is(err, ErrContent) {
		t.Fatalf("want ErrContent, got %v", err)
	}
}

func TestExtract_Palette(t *testing.T) {
	content := make([]byte, PaletteSize*4)
	for i := range content {
		content[i] = byte(i * 7)
	}
	m, err := decode(t, fileBytes(chunkBytes(IDRGBA, content)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.DefaultPalette {
		t.Fatalf("palette flagged as default")
	}
	if want := (Color{content[0], content[1], content[2], content[3]}); m.Palette[0] != want {
		t.Fatalf("entry 0 = %v want %v", m.Palette[0], want)
	}
	if want := (Color{content[1020], content[1021], content[1022], content[1023]}); m.Palette[255] != want {
		t.Fatalf("entry 255 = %v want %v", m.Palette[255], want)
	}
}

func TestExtract_BadPaletteLength(t *testing.T) {
	for _, n := range []int{1023, 1020, 1028, 0} {
		_, err := decode(t, fileBytes(chunkBytes(IDRGBA, make([]byte, n))))
		if !errors.Is(err, ErrContent) {
			t.Fatalf("len %d: want ErrContent, got %v", n, err)
		}
	}
}

func TestExtract_DefaultPalette(t *testing.T) {
	m, err := decode(t, fileBytes(sizeChunk(1, 1, 1), xyziChunk(Voxel{0, 0, 0, 10})))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !m.DefaultPalette {
		t.Fatalf("expected default palette")
	}
	if diff := cmp.Diff(GrayPalette(), m.Palette); diff != "" {
		t.Fatalf("palette mismatch:\n%s", diff)
	}
	if m.Palette[10] != (Color{10, 10, 10, 255}) {
		t.Fatalf("ramp entry 10 = %v", m.Palette[10])
	}
}

func TestExtract_Voxels(t *testing.T) {
	want := []Voxel{{0, 0, 0, 1}, {1, 2, 3, 4}, {7, 7, 7, 255}}
	m, err := decode(t, fileBytes(sizeChunk(8, 8, 8), xyziChunk(want...)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.VoxelCount != 3 {
		t.Fatalf("count %d", m.VoxelCount)
	}
	if diff := cmp.Diff(want, m.Voxels); diff != "" {
		t.Fatalf("voxels (-want +got):\n%s", diff)
	}
}

func TestExtract_VoxelCountMismatch(t *testing.T) {
	content := binary.LittleEndian.AppendUint32(nil, 3)
	content = append(content, 0, 0, 0, 1, 1, 1, 1, 1)
	_, err := decode(t, fileBytes(chunkBytes(IDXYZI, content)))
	if !errors.Is(err, ErrContent) {
		t.Fatalf("want ErrContent, got %v", err)
	}

	for _, body := range [][]byte{{1, 0}, append(binary.LittleEndian.AppendUint32(nil, 1), 1, 2, 3)} {
		if _, err := decode(t, fileBytes(chunkBytes(IDXYZI, body))); !errors.Is(err, ErrContent) {
			t.Fatalf("%v: want ErrContent, got %v", body, err)
		}
	}
}

func TestExtract_UnknownChunksAndLastWins(t *testing.T) {
	m, err := decode(t, fileBytes(
		chunkBytes("PACK", []byte{1, 0, 0, 0}),
		sizeChunk(1, 1, 1),
		chunkBytes("nTRN", []byte("whatever"), chunkBytes("XYZI", []byte{0xde, 0xad})),
		sizeChunk(4, 5, 6),
		xyziChunk(Voxel{3, 4, 5, 1}),
	))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Size != (Size{4, 5, 6}) {
		t.Fatalf("size %+v", m.Size)
	}
	if len(m.Voxels) != 1 || m.Voxels[0] != (Voxel{3, 4, 5, 1}) {
		t.Fatalf("voxels %+v", m.Voxels)
	}
}

func TestExtract_EmptyMain(t *testing.T) {
	m, err := decode(t, fileBytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.HasSize || len(m.Voxels) != 0 || !m.DefaultPalette {
		t.Fatalf("unexpected model %+v", m)
	}
}

func TestIndexBase(t *testing.T) {
	m := &Model{Palette: redPalette()}
	for _, tc := range []struct {
		base IndexBase
		idx  uint8
		want Color
		err  error
	}{
		{OneBased, 1, Color{255, 0, 0, 255}, nil},
		{OneBased, 2, Color{0, 255, 0, 128}, nil},
		{OneBased, 255, Color{254, 254, 254, 255}, nil},
		{OneBased, 0, Color{}, ErrRange},
		{ZeroBased, 0, Color{255, 0, 0, 255}, nil},
		{ZeroBased, 255, Color{0, 0, 255, 255}, nil},
	} {
		got, err := m.ColorOf(Voxel{ColorIndex: tc.idx}, tc.base)
		if !errors.Is(err, tc.err) || (tc.err == nil && err != nil) {
			t.Fatalf("%s %d: err %v want %v", tc.base, tc.idx, err, tc.err)
		}
		if got != tc.want {
			t.Fatalf("%s %d: got %v want %v", tc.base, tc.idx, got, tc.want)
		}
	}
}

func TestStats(t *testing.T) {
	m, err := decode(t, fileBytes(sizeChunk(2, 2, 2), xyziChunk(
		Voxel{0, 0, 0, 1}, Voxel{1, 0, 0, 1}, Voxel{1, 1, 1, 9}, Voxel{5, 0, 0, 3},
	)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Stats{Size: Size{2, 2, 2}, VoxelCount: 4, ColorsUsed: 3, DefaultPalette: true, OutOfBounds: 1}
	if diff := cmp.Diff(want, m.Stats()); diff != "" {
		t.Fatalf("stats (-want +got):\n%s", diff)
	}
}

func TestIsInvalidFile(t *testing.T) {
	_, err := decode(t, []byte("nope"))
	if !IsInvalidFile(err) {
		t.Fatalf("expected invalid-file error, got %v", err)
	}
	if IsInvalidFile(errors.New("disk on fire")) {
		t.Fatalf("unrelated error classified as invalid file")
	}
}
