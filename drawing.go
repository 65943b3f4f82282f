package gounwrap

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func DrawLine(screen *ebiten.Image, startX, startY, endX, endY float32, col color.Color) {
	vector.StrokeLine(screen, startX, startY, endX, endY, 1, col, false)
}

// FillConvexPolygon fills the convex polygon given by parallel x/y slices.
func FillConvexPolygon(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(xp)-2)*3)
	for i := 2; i < len(xp); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	vertices := make([]ebiten.Vertex, len(xp))
	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(vertices, indices, whiteSub, op)
}

// DrawPolygonOutline strokes the closed outline of a polygon defined by
// parallel x/y slices.
func DrawPolygonOutline(screen *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	strokeOp := &vector.StrokeOptions{
		Width: strokeWidth,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	drawOp := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	}
	screen.DrawTriangles(vertices, indices, whiteSub, drawOp)
}
