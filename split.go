package gounwrap

import (
	"github.com/go-gl/mathgl/mgl64"
)

// SplitResult is the mesh after seam splitting: a fan triangulation whose
// corners have been merged across every shared non-seam edge and assigned
// compact UV-vertex ids. It is rebuilt from scratch on every call and never
// persisted.
type SplitResult struct {
	// Positions holds the 3D position of every UV vertex.
	Positions []mgl64.Vec3
	// SourceVertex maps a UV vertex back to the mesh vertex it came from.
	SourceVertex []int
	// Triangles is the triangulated index buffer in UV-vertex ids.
	Triangles [][3]int
	// CornerUV maps a triangle corner (3*tri+k) to its UV-vertex id.
	CornerUV []int
	// TriFace and TriLocal map each triangle back to its source face and,
	// per corner, to the face-local vertex slot it was fanned from.
	TriFace  []int
	TriLocal [][3]int
	// Island assigns an island id to every UV vertex.
	Island      []int
	IslandCount int
}

// SplitMeshAtSeams fan-triangulates every visible face of the mesh and
// splits UV connectivity along the given seam edges. Two corners meeting at
// the same mesh vertex across a shared edge become one UV vertex unless the
// edge is a seam, in which case both sides stay distinct. Seam edges that do
// not exist in the mesh are ignored.
func SplitMeshAtSeams(m *Mesh, seams SeamSet, boundaryIsSeam bool) *SplitResult {
	var triVerts [][3]int
	var triFace []int
	var triLocal [][3]int

	for fi := range m.Faces {
		face := &m.Faces[fi]
		if face.Hidden || len(face.Vertices) < 3 {
			continue
		}
		// Fan from the first vertex of the polygon, remembering which
		// face-local slot each triangle corner came from.
		for i := 1; i+1 < len(face.Vertices); i++ {
			triVerts = append(triVerts, [3]int{face.Vertices[0], face.Vertices[i], face.Vertices[i+1]})
			triFace = append(triFace, fi)
			triLocal = append(triLocal, [3]int{0, i, i + 1})
		}
	}

	numCorners := len(triVerts) * 3

	// Register every corner under its outgoing undirected edge. An edge with
	// one corner is a boundary edge, with two an interior edge. The order
	// slice keeps iteration deterministic.
	edgeCorners := make(map[EdgeKey][]int)
	var edgeOrder []EdgeKey
	for t := range triVerts {
		for k := 0; k < 3; k++ {
			a := triVerts[t][k]
			b := triVerts[t][(k+1)%3]
			key := NewEdgeKey(a, b)
			if _, seen := edgeCorners[key]; !seen {
				edgeOrder = append(edgeOrder, key)
			}
			edgeCorners[key] = append(edgeCorners[key], 3*t+k)
		}
	}

	corners := NewDisjointSet(numCorners)
	for _, key := range edgeOrder {
		if _, seam := seams[key]; seam {
			continue
		}
		shared := edgeCorners[key]
		if len(shared) == 1 && boundaryIsSeam {
			continue
		}
		if len(shared) != 2 {
			continue
		}

		// Each corner's outgoing edge runs from its own vertex to the next
		// corner's vertex. Match up the endpoints that reference the same
		// mesh vertex and merge those corners across the edge.
		ca, cb := shared[0], shared[1]
		ta, ka := ca/3, ca%3
		tb, kb := cb/3, cb%3
		na := 3*ta + (ka+1)%3
		nb := 3*tb + (kb+1)%3

		if triVerts[ta][ka] == triVerts[tb][kb] {
			corners.Union(ca, cb)
			corners.Union(na, nb)
		} else {
			corners.Union(ca, nb)
			corners.Union(na, cb)
		}
	}

	res := &SplitResult{
		CornerUV: make([]int, numCorners),
		TriFace:  triFace,
		TriLocal: triLocal,
	}

	// Compact ids per union-find representative, in corner order.
	rootID := make(map[int]int)
	for c := 0; c < numCorners; c++ {
		root := corners.Find(c)
		id, ok := rootID[root]
		if !ok {
			id = len(res.SourceVertex)
			rootID[root] = id
			v := triVerts[c/3][c%3]
			res.SourceVertex = append(res.SourceVertex, v)
			res.Positions = append(res.Positions, m.Vertices[v].Position)
		}
		res.CornerUV[c] = id
	}

	res.Triangles = make([][3]int, len(triVerts))
	for t := range triVerts {
		res.Triangles[t] = [3]int{res.CornerUV[3*t], res.CornerUV[3*t+1], res.CornerUV[3*t+2]}
	}

	// Island detection: a second union-find over UV vertices, joined through
	// every output triangle. Seams already kept their two sides apart, so
	// disconnected regions fall out as separate components.
	islands := NewDisjointSet(len(res.SourceVertex))
	for _, tri := range res.Triangles {
		islands.Union(tri[0], tri[1])
		islands.Union(tri[0], tri[2])
	}
	res.Island = make([]int, len(res.SourceVertex))
	islandID := make(map[int]int)
	for i := range res.Island {
		root := islands.Find(i)
		id, ok := islandID[root]
		if !ok {
			id = res.IslandCount
			islandID[root] = id
			res.IslandCount++
		}
		res.Island[i] = id
	}

	return res
}
