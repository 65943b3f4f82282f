package gounwrap

import "testing"

func TestApplyUVDeduplicatesPerVertex(t *testing.T) {
	m := quadMesh()
	seams := NewSeamSet()
	seams.Add(0, 2)
	split := SplitMeshAtSeams(m, seams, false)
	if len(split.SourceVertex) != 6 {
		t.Fatalf("UV vertex count = %d, want 6", len(split.SourceVertex))
	}

	// Give both seam-side copies of vertex 0 coordinates closer than the
	// quantization step, and the copies of vertex 2 clearly different ones.
	uvs := make([]Vector2, 6)
	for i, src := range split.SourceVertex {
		switch src {
		case 0:
			uvs[i] = Vector2{X: 0.5, Y: 0.5}
		case 2:
			uvs[i] = Vector2{X: 0.25 * float64(i), Y: 0}
		default:
			uvs[i] = Vector2{X: 0.1, Y: 0.9}
		}
	}
	// Nudge one copy of vertex 0 by far less than 1e-5.
	for i, src := range split.SourceVertex {
		if src == 0 {
			uvs[i].X += 1e-9
			break
		}
	}

	applyUV(m, split, uvs)

	if got := len(m.Vertices[0].UVs); got != 1 {
		t.Errorf("vertex 0 has %d UVs, want 1 (near-equal coordinates deduplicate)", got)
	}
	if got := len(m.Vertices[2].UVs); got != 2 {
		t.Errorf("vertex 2 has %d UVs, want 2 (distinct coordinates stay split)", got)
	}

	for fi, f := range m.Faces {
		if len(f.UVIndices) != len(f.Vertices) {
			t.Fatalf("face %d has %d UV indices for %d vertices", fi, len(f.UVIndices), len(f.Vertices))
		}
		for k, sub := range f.UVIndices {
			v := f.Vertices[k]
			if sub < 0 || sub >= len(m.Vertices[v].UVs) {
				t.Errorf("face %d corner %d: UV index %d out of range", fi, k, sub)
			}
		}
	}
}

func TestApplyUVClearsStaleUVs(t *testing.T) {
	m := quadMesh()
	m.Vertices[1].UVs = []Vector2{{X: 9, Y: 9}, {X: 8, Y: 8}}

	split := SplitMeshAtSeams(m, NewSeamSet(), false)
	uvs := make([]Vector2, len(split.SourceVertex))
	for i := range uvs {
		uvs[i] = Vector2{X: float64(i), Y: 0}
	}

	applyUV(m, split, uvs)

	if got := len(m.Vertices[1].UVs); got != 1 {
		t.Errorf("vertex 1 has %d UVs, want 1 (old list must be cleared)", got)
	}
	if m.Vertices[1].UVs[0].X == 9 {
		t.Error("stale UV survived the rewrite")
	}
}
