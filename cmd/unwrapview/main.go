package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/gounwrap"
)

const (
	screenWidth  = 960
	screenHeight = 540
)

var islandColors = []color.RGBA{
	{R: 235, G: 110, B: 100, A: 110},
	{R: 110, G: 200, B: 120, A: 110},
	{R: 110, G: 140, B: 235, A: 110},
	{R: 230, G: 200, B: 90, A: 110},
	{R: 190, G: 120, B: 220, A: 110},
	{R: 100, G: 210, B: 210, A: 110},
}

type builtinShape struct {
	name  string
	mesh  func() *gounwrap.Mesh
	seams func() gounwrap.SeamSet
}

var builtinShapes = []builtinShape{
	{
		name:  "cube",
		mesh:  func() *gounwrap.Mesh { return gounwrap.NewCubeMesh(100) },
		seams: gounwrap.CubeSeams,
	},
	{
		name:  "grid",
		mesh:  func() *gounwrap.Mesh { return gounwrap.NewGridMesh(8, 8, 20) },
		seams: gounwrap.NewSeamSet,
	},
	{
		name:  "sphere",
		mesh:  func() *gounwrap.Mesh { return gounwrap.NewUVSphereMesh(80, 14, 8) },
		seams: gounwrap.NewSeamSet,
	},
}

type Game struct {
	meshName string
	mesh     *gounwrap.Mesh
	seams    gounwrap.SeamSet
	result   *gounwrap.UnwrapResult
	split    *gounwrap.SplitResult

	shapeIdx int
	fromFile bool
	useSeams bool
	angle    float64

	center mgl64.Vec3
	extent float64
}

func NewGame(objPath string) *Game {
	g := &Game{useSeams: true}

	if objPath != "" {
		log.Println("Loading OBJ:", objPath)
		mesh, err := gounwrap.LoadOBJFile(objPath)
		if err != nil {
			log.Fatalf("could not load model: %v", err)
		}
		g.fromFile = true
		g.setMesh(objPath, mesh, gounwrap.NewSeamSet())
		return g
	}

	g.loadShape(0)
	return g
}

func (g *Game) loadShape(idx int) {
	g.shapeIdx = idx
	shape := builtinShapes[idx]
	g.setMesh(shape.name, shape.mesh(), shape.seams())
}

func (g *Game) setMesh(name string, mesh *gounwrap.Mesh, seams gounwrap.SeamSet) {
	g.meshName = name
	g.mesh = mesh
	g.seams = seams

	// Center and extent drive the little turntable projection.
	g.center = mgl64.Vec3{}
	for _, v := range mesh.Vertices {
		g.center = g.center.Add(v.Position)
	}
	if len(mesh.Vertices) > 0 {
		g.center = g.center.Mul(1 / float64(len(mesh.Vertices)))
	}
	g.extent = 1
	for _, v := range mesh.Vertices {
		if d := v.Position.Sub(g.center).Len(); d > g.extent {
			g.extent = d
		}
	}

	g.unwrap()
}

func (g *Game) unwrap() {
	seams := g.seams
	if !g.useSeams {
		seams = gounwrap.NewSeamSet()
	}
	g.result = gounwrap.UnwrapMesh(g.mesh, seams, gounwrap.UnwrapConfig{})
	g.split = gounwrap.SplitMeshAtSeams(g.mesh, seams, false)
	if !g.result.Success {
		log.Println("unwrap failed:", g.result.Message)
	}
}

func (g *Game) Update() error {
	g.angle += 0.01

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.useSeams = !g.useSeams
		g.unwrap()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && !g.fromFile {
		g.loadShape((g.shapeIdx + 1) % len(builtinShapes))
	}
	return nil
}

// project rotates a mesh position onto the left pane.
func (g *Game) project(p mgl64.Vec3, rot mgl64.Mat4) (float32, float32) {
	v4 := rot.Mul4x1(p.Sub(g.center).Vec4(1))
	depth := v4.Z() + 3*g.extent
	scale := 1.6 * float64(screenHeight) / depth
	cx := float64(screenWidth) / 4
	cy := float64(screenHeight) / 2
	return float32(cx + v4.X()*scale), float32(cy - v4.Y()*scale)
}

func (g *Game) Draw(screen *ebiten.Image) {
	rot := mgl64.HomogRotate3DX(0.35).Mul4(mgl64.HomogRotate3DY(g.angle))

	lineCol := color.RGBA{R: 180, G: 180, B: 180, A: 255}
	seamCol := color.RGBA{R: 235, G: 80, B: 80, A: 255}

	for _, f := range g.mesh.Faces {
		if f.Hidden {
			continue
		}
		xp := make([]float32, len(f.Vertices))
		yp := make([]float32, len(f.Vertices))
		for k, vi := range f.Vertices {
			xp[k], yp[k] = g.project(g.mesh.Vertices[vi].Position, rot)
		}
		gounwrap.DrawPolygonOutline(screen, xp, yp, 1, lineCol)

		if !g.useSeams {
			continue
		}
		for k, vi := range f.Vertices {
			vj := f.Vertices[(k+1)%len(f.Vertices)]
			if g.seams.Contains(vi, vj) {
				gounwrap.DrawLine(screen, xp[k], yp[k], xp[(k+1)%len(xp)], yp[(k+1)%len(yp)], seamCol)
			}
		}
	}

	if g.result != nil && g.result.Success {
		g.drawUVLayout(screen)
	}

	status := fmt.Sprintf("%s  islands: %d", g.meshName, g.islandCount())
	if g.result != nil && !g.result.Success {
		status = fmt.Sprintf("%s  unwrap failed: %s", g.meshName, g.result.Message)
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)
	ebitenutil.DebugPrintAt(screen, "S: toggle seams  M: next shape  Esc: quit", 8, screenHeight-20)
}

func (g *Game) islandCount() int {
	if g.result == nil {
		return 0
	}
	return g.result.IslandCount
}

// drawUVLayout paints the packed islands into the right pane, one color per
// island, with triangle outlines on top.
func (g *Game) drawUVLayout(screen *ebiten.Image) {
	size := float64(screenHeight) - 60
	x0 := float64(screenWidth)/2 + 30
	y0 := 30.0

	border := []float32{float32(x0), float32(x0 + size), float32(x0 + size), float32(x0)}
	borderY := []float32{float32(y0), float32(y0), float32(y0 + size), float32(y0 + size)}
	gounwrap.DrawPolygonOutline(screen, border, borderY, 1, color.RGBA{R: 90, G: 90, B: 90, A: 255})

	for _, tri := range g.split.Triangles {
		var xp, yp [3]float32
		for k, id := range tri {
			uv := g.result.UVs[id]
			xp[k] = float32(x0 + uv.X*size)
			yp[k] = float32(y0 + (1-uv.Y)*size)
		}
		clr := islandColors[g.split.Island[tri[0]]%len(islandColors)]
		gounwrap.FillConvexPolygon(screen, xp[:], yp[:], clr)
		outline := clr
		outline.A = 255
		gounwrap.DrawPolygonOutline(screen, xp[:], yp[:], 1, outline)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	objPath := flag.String("obj", "", "OBJ model to unwrap instead of the built-in shapes")
	flag.Parse()

	game := NewGame(*objPath)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("gounwrap viewer")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
