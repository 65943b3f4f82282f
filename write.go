package gounwrap

import "math"

// UV coordinates closer than this quantization step are treated as equal
// when deduplicating per-vertex UV lists.
const uvQuantizeScale = 1e5

type uvKey struct {
	x, y int64
}

func quantizeUV(uv Vector2) uvKey {
	return uvKey{
		x: int64(math.Round(uv.X * uvQuantizeScale)),
		y: int64(math.Round(uv.Y * uvQuantizeScale)),
	}
}

// applyUV writes the solved coordinates back onto the mesh. Every vertex's
// UV list is rebuilt from scratch; equal (quantized) UVs on the same vertex
// share one sub-index. Faces that fanned into several triangles are stitched
// back together through the face-local slots recorded during splitting.
func applyUV(m *Mesh, split *SplitResult, uvs []Vector2) {
	for i := range m.Vertices {
		m.Vertices[i].UVs = nil
	}
	for i := range m.Faces {
		m.Faces[i].UVIndices = nil
	}

	seen := make([]map[uvKey]int, len(m.Vertices))

	for t := range split.Triangles {
		face := &m.Faces[split.TriFace[t]]
		if face.UVIndices == nil {
			face.UVIndices = make([]int, len(face.Vertices))
		}
		for k := 0; k < 3; k++ {
			uvID := split.CornerUV[3*t+k]
			v := split.SourceVertex[uvID]
			uv := uvs[uvID]

			key := quantizeUV(uv)
			if seen[v] == nil {
				seen[v] = make(map[uvKey]int)
			}
			sub, ok := seen[v][key]
			if !ok {
				sub = len(m.Vertices[v].UVs)
				m.Vertices[v].UVs = append(m.Vertices[v].UVs, uv)
				seen[v][key] = sub
			}
			face.UVIndices[split.TriLocal[t][k]] = sub
		}
	}
}
