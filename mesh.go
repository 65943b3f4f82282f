package gounwrap

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is a mesh vertex: a 3D position plus ordered lists of UV
// coordinates and normals that faces index into.
type Vertex struct {
	Position mgl64.Vec3
	UVs      []Vector2
	Normals  []mgl64.Vec3
}

// Face is a polygon over mesh vertices. UVIndices and NormalIndices are
// per-corner sub-indices into the corresponding vertex's UV/normal lists
// and, when present, have the same length as Vertices.
type Face struct {
	Vertices      []int
	UVIndices     []int
	NormalIndices []int
	Hidden        bool
}

type Mesh struct {
	Vertices []Vertex
	Faces    []Face
}

func NewMesh() *Mesh {
	return &Mesh{}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(x, y, z float64) int {
	m.Vertices = append(m.Vertices, Vertex{Position: mgl64.Vec3{x, y, z}})
	return len(m.Vertices) - 1
}

// AddFace appends a face over the given vertex indices and returns its index.
func (m *Mesh) AddFace(verts ...int) int {
	face := Face{Vertices: make([]int, len(verts))}
	copy(face.Vertices, verts)
	m.Faces = append(m.Faces, face)
	return len(m.Faces) - 1
}

func (m *Mesh) Copy() *Mesh {
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		nv := Vertex{Position: v.Position}
		nv.UVs = append(nv.UVs, v.UVs...)
		nv.Normals = append(nv.Normals, v.Normals...)
		out.Vertices[i] = nv
	}
	for i, f := range m.Faces {
		nf := Face{Hidden: f.Hidden}
		nf.Vertices = append(nf.Vertices, f.Vertices...)
		nf.UVIndices = append(nf.UVIndices, f.UVIndices...)
		nf.NormalIndices = append(nf.NormalIndices, f.NormalIndices...)
		out.Faces[i] = nf
	}
	return out
}

// EdgeKey identifies an undirected mesh edge. The smaller vertex index is
// always stored first so that (a,b) and (b,a) compare equal.
type EdgeKey struct {
	A int
	B int
}

func NewEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// SeamSet is the set of edges that must not share UV connectivity.
type SeamSet map[EdgeKey]struct{}

func NewSeamSet() SeamSet {
	return make(SeamSet)
}

func (s SeamSet) Add(a, b int) {
	s[NewEdgeKey(a, b)] = struct{}{}
}

func (s SeamSet) Contains(a, b int) bool {
	_, ok := s[NewEdgeKey(a, b)]
	return ok
}
