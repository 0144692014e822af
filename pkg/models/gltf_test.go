package models

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/scanline/pkg/math3d"
)

// buildDocument assembles a one-triangle document with float positions,
// ushort indices and normalized ubyte COLOR_0.
func buildDocument() *gltf.Document {
	var data []byte
	putFloat := func(f float32) {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}

	for _, p := range [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 4, -1}} {
		putFloat(p[0])
		putFloat(p[1])
		putFloat(p[2])
	}
	for _, i := range []uint16{0, 1, 2} {
		data = binary.LittleEndian.AppendUint16(data, i)
	}
	data = append(data, 0, 0) // align
	data = append(data,
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 128,
	)

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 6},
			{Buffer: 0, ByteOffset: 44, ByteLength: 12},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), Count: 3, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: gltf.Index(1), Count: 3, Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
			{BufferView: gltf.Index(2), Count: 3, Type: gltf.AccessorVec4, ComponentType: gltf.ComponentUbyte, Normalized: true},
		},
		Materials: []*gltf.Material{
			{Name: "half", PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{0.5, 1, 1, 1}}},
		},
		Meshes: []*gltf.Mesh{{
			Name: "tri",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0, gltf.COLOR_0: 2},
				Indices:    gltf.Index(1),
				Material:   gltf.Index(0),
			}},
		}},
	}
}

func TestLoadDocument(t *testing.T) {
	mesh, err := LoadDocument(buildDocument(), "tri.glb")
	if err != nil {
		t.Fatal(err)
	}

	if mesh.VertexCount() != 3 || mesh.TriangleCount() != 1 {
		t.Fatalf("got %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	}
	if mesh.Faces[0].V != [3]int{0, 1, 2} || mesh.Faces[0].Material != 0 {
		t.Errorf("face = %+v", mesh.Faces[0])
	}
	if got := mesh.Vertices[2].Position; got != math3d.V3(0, 4, -1) {
		t.Errorf("position 2 = %v", got)
	}
	if mesh.BoundsMax != math3d.V3(2, 4, 0) || mesh.BoundsMin != math3d.V3(0, 0, -1) {
		t.Errorf("bounds = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}

	tests := []struct {
		corner int
		want   math3d.Vec4
	}{
		{0, math3d.RGBA(127.5, 0, 0, 255)},
		{1, math3d.RGBA(0, 255, 0, 255)},
		{2, math3d.RGBA(0, 0, 255, 128)},
	}
	for _, tc := range tests {
		got := mesh.VertexColor(0, tc.corner)
		if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 ||
			math.Abs(got.Z-tc.want.Z) > 1e-9 || math.Abs(got.W-tc.want.W) > 1e-9 {
			t.Errorf("corner %d color = %v, want %v", tc.corner, got, tc.want)
		}
	}
}

func TestLoadDocumentWithoutColors(t *testing.T) {
	doc := buildDocument()
	prim := doc.Meshes[0].Primitives[0]
	delete(prim.Attributes, gltf.COLOR_0)
	prim.Material = nil
	prim.Indices = nil

	mesh, err := LoadDocument(doc, "plain")
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Faces[0].Material != -1 {
		t.Errorf("material = %d, want -1", mesh.Faces[0].Material)
	}
	if got := mesh.VertexColor(0, 1); got != White {
		t.Errorf("color = %v, want white", got)
	}
}

func TestLoadDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*gltf.Document)
	}{
		{"index out of range", func(d *gltf.Document) {
			binary.LittleEndian.PutUint16(d.Buffers[0].Data[36:], 9)
		}},
		{"accessor past buffer", func(d *gltf.Document) {
			d.Accessors[0].Count = 100
		}},
		{"missing buffer view", func(d *gltf.Document) {
			d.Accessors[0].BufferView = nil
		}},
		{"buffer view out of range", func(d *gltf.Document) {
			d.Accessors[0].BufferView = gltf.Index(9)
		}},
		{"buffer view past buffer", func(d *gltf.Document) {
			d.BufferViews[2].ByteLength = 100
		}},
		{"buffer out of range", func(d *gltf.Document) {
			d.BufferViews[1].Buffer = 3
		}},
		{"accessor out of range", func(d *gltf.Document) {
			d.Meshes[0].Primitives[0].Attributes[gltf.COLOR_0] = 7
		}},
		{"float indices", func(d *gltf.Document) {
			d.Accessors[1].ComponentType = gltf.ComponentFloat
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := buildDocument()
			tc.mutate(doc)
			if _, err := LoadDocument(doc, "bad"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadGLTFRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(buildDocument(), path); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadGLTF(path)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Name != "tri.glb" || mesh.TriangleCount() != 1 {
		t.Errorf("mesh %q with %d triangles", mesh.Name, mesh.TriangleCount())
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	if _, err := LoadGLTF("/nonexistent/path.glb"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
