package gounwrap

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultMaxIterations = 3000
	DefaultTolerance     = 1e-10

	// Triangles whose flattened signed area falls below this contribute
	// nothing to the conformal system.
	minTriangleArea = 1e-20
)

// UnwrapConfig controls the conformal solve. Zero-valued fields fall back to
// the package defaults.
type UnwrapConfig struct {
	MaxIterations  int
	Tolerance      float64
	BoundaryIsSeam bool
}

// UnwrapResult reports the outcome of an unwrap. UVs holds one coordinate
// per UV vertex of the split mesh; on failure no UVs are produced and the
// mesh is left untouched.
type UnwrapResult struct {
	UVs         []Vector2
	IslandCount int
	Success     bool
	Message     string
}

// UnwrapMesh computes a least-squares conformal UV map for the mesh, split
// along the given seams, and writes the result back into the mesh's
// per-vertex UV lists and per-face UV indices. Each island is solved
// independently, normalized, and packed into the unit square.
func UnwrapMesh(m *Mesh, seams SeamSet, cfg UnwrapConfig) *UnwrapResult {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}

	split := SplitMeshAtSeams(m, seams, cfg.BoundaryIsSeam)
	if len(split.Triangles) == 0 {
		return &UnwrapResult{Message: "mesh has no visible triangles to unwrap"}
	}

	uvs := make([]Vector2, len(split.SourceVertex))
	for id := 0; id < split.IslandCount; id++ {
		solveIsland(split, id, uvs, cfg)
	}

	packIslands(uvs, split.Island, split.IslandCount)
	applyUV(m, split, uvs)

	return &UnwrapResult{
		UVs:         uvs,
		IslandCount: split.IslandCount,
		Success:     true,
	}
}

// solveIsland runs the LSCM solve for one island and stores the resulting
// coordinates into uvs. Islands too small to carry a conformal map get
// (0,0) for every member, which still counts as success.
func solveIsland(split *SplitResult, island int, uvs []Vector2, cfg UnwrapConfig) {
	var verts []int
	local := make(map[int]int)
	for i, isl := range split.Island {
		if isl == island {
			local[i] = len(verts)
			verts = append(verts, i)
		}
	}

	var tris [][3]int
	for _, tri := range split.Triangles {
		if split.Island[tri[0]] == island {
			tris = append(tris, [3]int{local[tri[0]], local[tri[1]], local[tri[2]]})
		}
	}

	pos := make([]mgl64.Vec3, len(verts))
	for i, v := range verts {
		pos[i] = split.Positions[v]
	}

	qualifying := 0
	for _, tri := range tris {
		if triangleArea(pos[tri[0]], pos[tri[1]], pos[tri[2]]) >= minTriangleArea {
			qualifying++
		}
	}
	if len(verts) < 3 || qualifying == 0 {
		for _, v := range verts {
			uvs[v] = Vector2{}
		}
		return
	}

	// Two pins fix the map's translation, rotation and scale; without them
	// the least-squares system is rank deficient by four degrees of freedom.
	pinA, pinB := selectPins(pos, tris)
	pinUV := [2]Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}}

	// Free vertices get two interleaved unknowns (u,v) each.
	freeSlot := make([]int, len(verts))
	numFree := 0
	for i := range verts {
		if i == pinA || i == pinB {
			freeSlot[i] = -1
			continue
		}
		freeSlot[i] = numFree
		numFree++
	}

	mat := NewSparseMatrix(2 * numFree)
	rhs := make([]float64, 2*numFree)

	for _, tri := range tris {
		assembleTriangle(mat, rhs, pos, tri, pinA, pinB, pinUV, freeSlot)
	}

	x := ConjugateGradient(mat, rhs, cfg.MaxIterations, cfg.Tolerance)

	for i, v := range verts {
		switch i {
		case pinA:
			uvs[v] = pinUV[0]
		case pinB:
			uvs[v] = pinUV[1]
		default:
			uvs[v] = Vector2{X: x[2*freeSlot[i]], Y: x[2*freeSlot[i]+1]}
		}
	}
}

func triangleArea(p0, p1, p2 mgl64.Vec3) float64 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Len() / 2
}

// selectPins picks the two vertices to fix. Preference goes to the pair of
// boundary vertices with the greatest 3D separation; the scan is quadratic
// but boundaries are small. A closed island has no boundary, so fall back to
// vertex zero and whatever lies farthest from it.
func selectPins(pos []mgl64.Vec3, tris [][3]int) (int, int) {
	edgeCount := make(map[EdgeKey]int)
	for _, tri := range tris {
		for k := 0; k < 3; k++ {
			edgeCount[NewEdgeKey(tri[k], tri[(k+1)%3])]++
		}
	}
	onBoundary := make([]bool, len(pos))
	for key, n := range edgeCount {
		if n == 1 {
			onBoundary[key.A] = true
			onBoundary[key.B] = true
		}
	}
	var boundary []int
	for i, b := range onBoundary {
		if b {
			boundary = append(boundary, i)
		}
	}

	if len(boundary) >= 2 {
		bestA, bestB := boundary[0], boundary[1]
		bestDist := -1.0
		for i := 0; i < len(boundary); i++ {
			for j := i + 1; j < len(boundary); j++ {
				d := pos[boundary[i]].Sub(pos[boundary[j]]).Len()
				if d > bestDist {
					bestDist = d
					bestA, bestB = boundary[i], boundary[j]
				}
			}
		}
		return bestA, bestB
	}

	far := 1
	farDist := -1.0
	for i := 1; i < len(pos); i++ {
		d := pos[0].Sub(pos[i]).Len()
		if d > farDist {
			farDist = d
			far = i
		}
	}
	return 0, far
}

// assembleTriangle adds one triangle's two conformality residual rows to the
// normal equations. The triangle is flattened into a local orthonormal frame
// aligned to its first edge, the barycentric gradients of its corners are
// taken there, and the discrete Cauchy-Riemann rows are accumulated as
// area-weighted outer products. Terms on pinned vertices move to the right
// hand side.
func assembleTriangle(mat *SparseMatrix, rhs []float64, pos []mgl64.Vec3, tri [3]int, pinA, pinB int, pinUV [2]Vector2, freeSlot []int) {
	p0, p1, p2 := pos[tri[0]], pos[tri[1]], pos[tri[2]]
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)

	e1Len := e1.Len()
	if e1Len == 0 {
		return
	}
	axisX := e1.Mul(1 / e1Len)
	axisY := e1.Cross(e2).Cross(axisX)
	axisYLen := axisY.Len()
	if axisYLen == 0 {
		return
	}
	axisY = axisY.Mul(1 / axisYLen)

	// Flattened 2D coordinates in the triangle's own frame.
	var qx, qy [3]float64
	qx[0], qy[0] = 0, 0
	qx[1], qy[1] = e1Len, 0
	qx[2], qy[2] = e2.Dot(axisX), e2.Dot(axisY)

	area := ((qx[1]-qx[0])*(qy[2]-qy[0]) - (qy[1]-qy[0])*(qx[2]-qx[0])) / 2
	if area < minTriangleArea {
		return
	}

	// Gradients of the three corner hat functions in the local frame.
	var gx, gy [3]float64
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		gx[i] = (qy[j] - qy[k]) / (2 * area)
		gy[i] = (qx[k] - qx[j]) / (2 * area)
	}

	// Row coefficients over the six slots (u0,v0,u1,v1,u2,v2).
	// Real part: sum du/dx - dv/dy. Imaginary part: sum du/dy + dv/dx.
	var rowRe, rowIm [6]float64
	for i := 0; i < 3; i++ {
		rowRe[2*i] = gx[i]
		rowRe[2*i+1] = -gy[i]
		rowIm[2*i] = gy[i]
		rowIm[2*i+1] = gx[i]
	}

	addResidualRow(mat, rhs, tri, rowRe, area, pinA, pinB, pinUV, freeSlot)
	addResidualRow(mat, rhs, tri, rowIm, area, pinA, pinB, pinUV, freeSlot)
}

// addResidualRow folds one weighted residual row w*(c.x + const)^2 into the
// normal matrix and right hand side.
func addResidualRow(mat *SparseMatrix, rhs []float64, tri [3]int, row [6]float64, weight float64, pinA, pinB int, pinUV [2]Vector2, freeSlot []int) {
	// Unknown slot for each row coefficient, or -1 with a fixed value when
	// the vertex is pinned.
	var slots [6]int
	var fixed [6]float64
	for i := 0; i < 3; i++ {
		v := tri[i]
		switch v {
		case pinA:
			slots[2*i], slots[2*i+1] = -1, -1
			fixed[2*i], fixed[2*i+1] = pinUV[0].X, pinUV[0].Y
		case pinB:
			slots[2*i], slots[2*i+1] = -1, -1
			fixed[2*i], fixed[2*i+1] = pinUV[1].X, pinUV[1].Y
		default:
			slots[2*i] = 2 * freeSlot[v]
			slots[2*i+1] = 2*freeSlot[v] + 1
		}
	}

	constant := 0.0
	for i := 0; i < 6; i++ {
		if slots[i] < 0 {
			constant += row[i] * fixed[i]
		}
	}

	for i := 0; i < 6; i++ {
		if slots[i] < 0 || row[i] == 0 {
			continue
		}
		rhs[slots[i]] -= weight * row[i] * constant
		for j := i; j < 6; j++ {
			if slots[j] < 0 {
				continue
			}
			mat.Add(slots[i], slots[j], weight*row[i]*row[j])
		}
	}
}
