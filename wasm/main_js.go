//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/vox"
)

var decoder = api.NewDecoder(vox.DefaultOptions(), 8)

func bytesFromJS(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func float32sToJS(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	for i, f := range data {
		arr.SetIndex(i, f)
	}
	return arr
}

// voxMesh returns {positions, colors, size} for a renderer, or an error string.
func voxMesh(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing vox bytes")
	}
	mesh, model, err := decoder.Mesh(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf("not a valid vox file: " + err.Error())
	}
	result := js.Global().Get("Object").New()
	result.Set("positions", float32sToJS(mesh.Positions))
	result.Set("colors", float32sToJS(mesh.Colors))
	result.Set("vertexCount", mesh.VertexCount())
	size := js.Global().Get("Object").New()
	size.Set("x", model.Size.X)
	size.Set("y", model.Size.Y)
	size.Set("z", model.Size.Z)
	result.Set("size", size)
	return result
}

func vox2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing vox bytes")
	}
	mesh, _, err := decoder.Mesh(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.EncodeGLB(mesh, "VoxModel")
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func voxInfo(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing vox bytes")
	}
	info, err := api.VOXInfo(bytesFromJS(args[0]), decoder.Options)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	result.Set("version", info.Version)
	result.Set("voxels", info.Stats.VoxelCount)
	result.Set("colorsUsed", info.Stats.ColorsUsed)
	result.Set("defaultPalette", info.Stats.DefaultPalette)
	return result
}

func main() {
	js.Global().Set("voxMesh", js.FuncOf(voxMesh))
	js.Global().Set("vox2glb", js.FuncOf(vox2glb))
	js.Global().Set("voxInfo", js.FuncOf(voxInfo))
	select {}
}
