package api

import (
	"bytes"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/voxelsplace/voxview/vox"
)

// VOXToMesh decodes .vox bytes (optionally compressed) and builds the
// triangle buffers. The model is returned alongside for camera framing.
func VOXToMesh(data []byte, opts vox.Options) (*vox.Mesh, *vox.Model, error) {
	return NewDecoder(opts, 0).Mesh(data)
}

// Mesh decodes data with d and builds its mesh.
func (d *Decoder) Mesh(data []byte) (*vox.Mesh, *vox.Model, error) {
	model, err := d.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	mesh, err := vox.BuildMesh(model, d.Options)
	if err != nil {
		return nil, nil, err
	}
	return mesh, model, nil
}

// VOXToGLB takes .vox bytes and returns .glb bytes with one cube per voxel.
func VOXToGLB(data []byte, opts vox.Options) ([]byte, error) {
	mesh, _, err := VOXToMesh(data, opts)
	if err != nil {
		return nil, err
	}
	return EncodeGLB(mesh, "VoxModel")
}

// EncodeGLB serialises a mesh as a binary glTF.
func EncodeGLB(mesh *vox.Mesh, name string) ([]byte, error) {
	doc := MeshDocument(mesh, name)
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode glb: %w", err)
	}
	return out.Bytes(), nil
}

// MeshDocument builds a glTF document holding mesh as a single non-indexed
// triangle primitive with flat normals and per-vertex colors. An empty mesh
// yields a document with an empty scene.
func MeshDocument(mesh *vox.Mesh, name string) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "VOX -> GLB"

	n := mesh.VertexCount()
	if n == 0 {
		return doc
	}
	positions := make([][3]float32, n)
	colors := make([][4]float32, n)
	for i := range positions {
		positions[i] = mesh.Vertex(i)
		colors[i] = mesh.VertexColor(i)
	}

	pbr := &gltf.PBRMetallicRoughness{MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	material := &gltf.Material{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
	if mesh.HasAlpha() {
		material.AlphaMode = gltf.AlphaBlend
	}
	doc.Materials = []*gltf.Material{material}

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, mesh.FlatNormals()),
			gltf.COLOR_0:  modeler.WriteColor(doc, colors),
		},
		Material: gltf.Index(0),
	}
	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}

// Info describes a .vox file without meshing it.
type Info struct {
	Version     uint32
	Compression Compression
	Chunks      []string
	Stats       vox.Stats
}

// VOXInfo decodes data and summarises it.
func VOXInfo(data []byte, opts vox.Options) (Info, error) {
	var info Info
	raw, comp, err := Unwrap(data)
	if err != nil {
		return info, err
	}
	info.Compression = comp
	hdr, err := vox.ParseHeader(raw)
	if err != nil {
		return info, err
	}
	info.Version = hdr.Version
	tree, err := vox.ParseFile(raw, opts.MaxDepth)
	if err != nil {
		return info, err
	}
	for _, c := range tree.Children(tree.Root()) {
		info.Chunks = append(info.Chunks, c.ID)
	}
	model, err := vox.Extract(tree)
	if err != nil {
		return info, err
	}
	info.Stats = model.Stats()
	return info, nil
}
