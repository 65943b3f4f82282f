package gounwrap

import "math"

// NewGridMesh builds a flat (nx x ny)-cell grid of quads in the XY plane
// with the given cell size. Handy as a known-developable test surface.
func NewGridMesh(nx, ny int, cellSize float64) *Mesh {
	m := NewMesh()
	for y := 0; y <= ny; y++ {
		for x := 0; x <= nx; x++ {
			m.AddVertex(float64(x)*cellSize, float64(y)*cellSize, 0)
		}
	}
	stride := nx + 1
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			a := y*stride + x
			m.AddFace(a, a+1, a+1+stride, a+stride)
		}
	}
	return m
}

// NewCubeMesh builds an axis-aligned cube of the given edge length out of
// six outward-facing quads.
func NewCubeMesh(size float64) *Mesh {
	m := NewMesh()
	s := size
	m.AddVertex(0, 0, 0)
	m.AddVertex(s, 0, 0)
	m.AddVertex(s, s, 0)
	m.AddVertex(0, s, 0)
	m.AddVertex(0, 0, s)
	m.AddVertex(s, 0, s)
	m.AddVertex(s, s, s)
	m.AddVertex(0, s, s)

	m.AddFace(0, 3, 2, 1) // bottom
	m.AddFace(4, 5, 6, 7) // top
	m.AddFace(0, 1, 5, 4) // front
	m.AddFace(1, 2, 6, 5) // right
	m.AddFace(2, 3, 7, 6) // back
	m.AddFace(3, 0, 4, 7) // left
	return m
}

// CubeSeams returns the seam set that opens NewCubeMesh's cube into the
// classic single-island cross: the four side walls stay attached to the
// bottom, the top stays attached to the back wall, and every other edge
// is cut.
func CubeSeams() SeamSet {
	seams := NewSeamSet()
	seams.Add(4, 5)
	seams.Add(5, 6)
	seams.Add(4, 7)
	seams.Add(0, 4)
	seams.Add(1, 5)
	seams.Add(2, 6)
	seams.Add(3, 7)
	return seams
}

// NewUVSphereMesh builds a latitude/longitude sphere: triangle fans at the
// poles and quads in between. The surface is closed, so unwrapping it
// without seams exercises the no-boundary pin fallback.
func NewUVSphereMesh(radius float64, slices, stacks int) *Mesh {
	m := NewMesh()
	top := m.AddVertex(0, 0, radius)

	// stacks-1 rings of slices vertices each.
	for i := 1; i < stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		for j := 0; j < slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			m.AddVertex(
				radius*math.Sin(phi)*math.Cos(theta),
				radius*math.Sin(phi)*math.Sin(theta),
				radius*math.Cos(phi),
			)
		}
	}
	bottom := m.AddVertex(0, 0, -radius)

	ring := func(i, j int) int {
		return 1 + (i-1)*slices + j%slices
	}

	for j := 0; j < slices; j++ {
		m.AddFace(top, ring(1, j), ring(1, j+1))
	}
	for i := 1; i < stacks-1; i++ {
		for j := 0; j < slices; j++ {
			m.AddFace(ring(i, j), ring(i+1, j), ring(i+1, j+1), ring(i, j+1))
		}
	}
	for j := 0; j < slices; j++ {
		m.AddFace(bottom, ring(stacks-1, j+1), ring(stacks-1, j))
	}
	return m
}
