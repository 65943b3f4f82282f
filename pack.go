package gounwrap

import "math"

// Gap left between neighboring islands before the final unit-square fit.
const islandPadding = 0.1

type uvBounds struct {
	minX, minY float64
	maxX, maxY float64
}

func newUVBounds() uvBounds {
	return uvBounds{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
}

func (b *uvBounds) extend(uv Vector2) {
	b.minX = math.Min(b.minX, uv.X)
	b.minY = math.Min(b.minY, uv.Y)
	b.maxX = math.Max(b.maxX, uv.X)
	b.maxY = math.Max(b.maxY, uv.Y)
}

// packIslands normalizes every island by the larger of its bounding box
// width/height (uniform only, so conformality survives) and lays the islands
// out left to right with a fixed gap. With more than one island the whole
// row then gets one uniform rescale into the unit square.
func packIslands(uvs []Vector2, island []int, count int) {
	if count == 0 || len(uvs) == 0 {
		return
	}

	bounds := make([]uvBounds, count)
	for i := range bounds {
		bounds[i] = newUVBounds()
	}
	for i, uv := range uvs {
		bounds[island[i]].extend(uv)
	}

	scales := make([]float64, count)
	offsets := make([]float64, count)
	cursor := 0.0
	for i, b := range bounds {
		size := math.Max(b.maxX-b.minX, b.maxY-b.minY)
		scale := 1.0
		if size > 0 {
			scale = 1 / size
		}
		scales[i] = scale
		offsets[i] = cursor
		cursor += (b.maxX-b.minX)*scale + islandPadding
	}

	for i := range uvs {
		id := island[i]
		uvs[i] = Vector2{
			X: (uvs[i].X-bounds[id].minX)*scales[id] + offsets[id],
			Y: (uvs[i].Y - bounds[id].minY) * scales[id],
		}
	}

	if count < 2 {
		return
	}

	// Fit the combined layout back into the unit square.
	total := newUVBounds()
	for _, uv := range uvs {
		total.extend(uv)
	}
	size := math.Max(total.maxX-total.minX, total.maxY-total.minY)
	if size <= 0 {
		return
	}
	for i := range uvs {
		uvs[i] = Vector2{
			X: (uvs[i].X - total.minX) / size,
			Y: (uvs[i].Y - total.minY) / size,
		}
	}
}
