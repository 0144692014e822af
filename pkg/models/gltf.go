package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/scanline/pkg/math3d"
)

// LoadGLTF loads a GLTF or GLB file and returns a Mesh. Vertex colors come
// from COLOR_0 when present, otherwise white; face colors are further
// multiplied by the primitive material's base color factor.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return LoadDocument(doc, filepath.Base(path))
}

// LoadDocument converts every triangle primitive of an already decoded
// document into one mesh.
func LoadDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, mat := range doc.Materials {
		m := Material{Name: mat.Name, BaseColor: [4]float64{1, 1, 1, 1}}
		if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			m.BaseColor = *pbr.BaseColorFactor
		}
		mesh.Materials = append(mesh.Materials, m)
	}

	// Process all meshes in the document
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		acr, err := accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		positions, err := modeler.ReadPosition(doc, acr, nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var colors [][4]uint8
		if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
			acr, err := accessor(doc, colIdx)
			if err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
			colors, err = modeler.ReadColor(doc, acr, nil)
			if err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		material := -1
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		// Base vertex index for this primitive
		baseVertex := len(mesh.Vertices)

		for i, p := range positions {
			v := MeshVertex{
				Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])),
				Color:    White,
			}
			if i < len(colors) {
				c := colors[i]
				v.Color = math3d.RGBA(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			acr, err := accessor(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			if acr.Type != gltf.AccessorScalar || acr.ComponentType == gltf.ComponentFloat {
				return fmt.Errorf("read indices: unsupported %v %v accessor", acr.Type, acr.ComponentType)
			}
			indices, err = modeler.ReadIndices(doc, acr, nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			face := Face{Material: material}
			for k := range 3 {
				idx := int(indices[i+k])
				if idx >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
				}
				face.V[k] = baseVertex + idx
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	return nil
}

// accessor returns accessor i after checking that every element it reads
// lies inside its buffer view and buffer. Accessors without a buffer view
// are accepted only when they are sparse.
func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", i)
	}
	acr := doc.Accessors[i]
	if acr.BufferView == nil {
		if acr.Sparse == nil {
			return nil, fmt.Errorf("accessor %d has no buffer view", i)
		}
		return acr, nil
	}

	vi := *acr.BufferView
	if vi < 0 || vi >= len(doc.BufferViews) {
		return nil, fmt.Errorf("accessor %d: buffer view %d out of range", i, vi)
	}
	view := doc.BufferViews[vi]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer view %d: buffer %d out of range", vi, view.Buffer)
	}
	if data := doc.Buffers[view.Buffer].Data; view.ByteOffset+view.ByteLength > len(data) {
		return nil, fmt.Errorf("buffer view %d reads past buffer end (%d > %d)", vi, view.ByteOffset+view.ByteLength, len(data))
	}

	elemSize := acr.Type.Components() * acr.ComponentType.ByteSize()
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if acr.Count > 0 {
		if end := acr.ByteOffset + (acr.Count-1)*stride + elemSize; end > view.ByteLength {
			return nil, fmt.Errorf("accessor %d reads past buffer view end (%d > %d)", i, end, view.ByteLength)
		}
	}
	return acr, nil
}
