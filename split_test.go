package gounwrap

import "testing"

// quadMesh is a unit square split into two triangles sharing the 0-2
// diagonal.
func quadMesh() *Mesh {
	m := NewMesh()
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(1, 1, 0)
	m.AddVertex(0, 1, 0)
	m.AddFace(0, 1, 2)
	m.AddFace(0, 2, 3)
	return m
}

func TestSplitQuadIslands(t *testing.T) {
	testCases := []struct {
		name        string
		seams       [][2]int
		wantUV      int
		wantIslands int
	}{
		{
			name:        "No seams",
			wantUV:      4,
			wantIslands: 1,
		},
		{
			name:        "Seam on shared diagonal",
			seams:       [][2]int{{0, 2}},
			wantUV:      6,
			wantIslands: 2,
		},
		{
			name:        "Seam on boundary edge only",
			seams:       [][2]int{{0, 1}},
			wantUV:      4,
			wantIslands: 1,
		},
		{
			name:        "Seam not present in mesh is ignored",
			seams:       [][2]int{{1, 3}},
			wantUV:      4,
			wantIslands: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seams := NewSeamSet()
			for _, s := range tc.seams {
				seams.Add(s[0], s[1])
			}
			res := SplitMeshAtSeams(quadMesh(), seams, false)

			if len(res.SourceVertex) != tc.wantUV {
				t.Errorf("UV vertex count = %d, want %d", len(res.SourceVertex), tc.wantUV)
			}
			if res.IslandCount != tc.wantIslands {
				t.Errorf("IslandCount = %d, want %d", res.IslandCount, tc.wantIslands)
			}
			if len(res.Triangles) != 2 {
				t.Fatalf("triangle count = %d, want 2", len(res.Triangles))
			}
		})
	}
}

func TestSplitIslandsPartitionUVVertices(t *testing.T) {
	seams := NewSeamSet()
	seams.Add(0, 2)
	res := SplitMeshAtSeams(quadMesh(), seams, false)

	if len(res.Island) != len(res.SourceVertex) {
		t.Fatalf("island ids cover %d of %d UV vertices", len(res.Island), len(res.SourceVertex))
	}
	for i, isl := range res.Island {
		if isl < 0 || isl >= res.IslandCount {
			t.Errorf("UV vertex %d has island %d outside [0,%d)", i, isl, res.IslandCount)
		}
	}
	// Both sides of the seam reference the same source vertices but live in
	// different islands.
	for _, tri := range res.Triangles {
		isl := res.Island[tri[0]]
		if res.Island[tri[1]] != isl || res.Island[tri[2]] != isl {
			t.Error("a triangle spans two islands")
		}
	}
}

func TestSplitSkipsHiddenAndDegenerateFaces(t *testing.T) {
	m := quadMesh()
	m.Faces[1].Hidden = true
	m.Faces = append(m.Faces, Face{Vertices: []int{0, 1}})

	res := SplitMeshAtSeams(m, NewSeamSet(), false)

	if len(res.Triangles) != 1 {
		t.Fatalf("triangle count = %d, want 1 (hidden and 2-vertex faces skipped)", len(res.Triangles))
	}
	if res.TriFace[0] != 0 {
		t.Errorf("TriFace[0] = %d, want 0", res.TriFace[0])
	}
}

func TestSplitPolygonFanBackReferences(t *testing.T) {
	m := NewMesh()
	m.AddVertex(0, 0, 0)
	m.AddVertex(1, 0, 0)
	m.AddVertex(1, 1, 0)
	m.AddVertex(0, 1, 0)
	m.AddFace(0, 1, 2, 3)

	res := SplitMeshAtSeams(m, NewSeamSet(), false)

	if len(res.Triangles) != 2 {
		t.Fatalf("quad must fan into 2 triangles, got %d", len(res.Triangles))
	}
	wantLocal := [][3]int{{0, 1, 2}, {0, 2, 3}}
	for ti, want := range wantLocal {
		if res.TriFace[ti] != 0 {
			t.Errorf("TriFace[%d] = %d, want 0", ti, res.TriFace[ti])
		}
		if res.TriLocal[ti] != want {
			t.Errorf("TriLocal[%d] = %v, want %v", ti, res.TriLocal[ti], want)
		}
	}
	// The fan shares all four corners, so no splitting happens inside one face.
	if len(res.SourceVertex) != 4 {
		t.Errorf("UV vertex count = %d, want 4", len(res.SourceVertex))
	}
}

func TestSplitCube(t *testing.T) {
	testCases := []struct {
		name        string
		seams       SeamSet
		wantUV      int
		wantIslands int
	}{
		{
			name:        "Closed cube",
			seams:       NewSeamSet(),
			wantUV:      8,
			wantIslands: 1,
		},
		{
			name:        "Cross seams",
			seams:       CubeSeams(),
			wantUV:      14,
			wantIslands: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := SplitMeshAtSeams(NewCubeMesh(1), tc.seams, false)
			if len(res.Triangles) != 12 {
				t.Fatalf("triangle count = %d, want 12", len(res.Triangles))
			}
			if len(res.SourceVertex) != tc.wantUV {
				t.Errorf("UV vertex count = %d, want %d", len(res.SourceVertex), tc.wantUV)
			}
			if res.IslandCount != tc.wantIslands {
				t.Errorf("IslandCount = %d, want %d", res.IslandCount, tc.wantIslands)
			}
		})
	}
}

func TestSplitAllSeamsSeparatesFaces(t *testing.T) {
	seams := NewSeamSet()
	cube := NewCubeMesh(1)
	for _, f := range cube.Faces {
		n := len(f.Vertices)
		for i := 0; i < n; i++ {
			seams.Add(f.Vertices[i], f.Vertices[(i+1)%n])
		}
	}

	res := SplitMeshAtSeams(cube, seams, false)

	if res.IslandCount != 6 {
		t.Errorf("IslandCount = %d, want 6 (every face its own island)", res.IslandCount)
	}
	if len(res.SourceVertex) != 24 {
		t.Errorf("UV vertex count = %d, want 24", len(res.SourceVertex))
	}
}
