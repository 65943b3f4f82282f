package gounwrap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadOBJFile loads a Wavefront OBJ model from disk.
func LoadOBJFile(fileName string) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open OBJ file %s: %w", fileName, err)
	}
	defer file.Close()

	m, err := LoadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing OBJ file %s: %w", fileName, err)
	}
	return m, nil
}

// LoadOBJ reads a Wavefront OBJ model. Supported statements are v, vt and f
// (with v, v/vt and v/vt/vn corner forms, 1-based or negative indices);
// everything else is skipped. Texture coordinates are remapped from the
// file's global vt list into each vertex's own UV list.
func LoadOBJ(reader io.Reader) (*Mesh, error) {
	m := NewMesh()

	var texCoords []Vector2
	// Per mesh vertex: global vt index already appended -> UV sub-index.
	uvSub := make(map[[2]int]int)

	parseFloat := func(s string) (float64, error) {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse float value '%s': %w", s, err)
		}
		return val, nil
	}

	resolveIndex := func(s string, count int) (int, error) {
		idx, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("could not parse index '%s': %w", s, err)
		}
		if idx < 0 {
			idx = count + idx
		} else {
			idx--
		}
		if idx < 0 || idx >= count {
			return 0, fmt.Errorf("index %s out of range (%d elements)", s, count)
		}
		return idx, nil
	}

	scanner := bufio.NewScanner(reader)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNum)
			}
			x, err := parseFloat(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			y, err := parseFloat(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			z, err := parseFloat(fields[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			m.AddVertex(x, y, z)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texture coordinate needs 2 values", lineNum)
			}
			u, err := parseFloat(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			v, err := parseFloat(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			texCoords = append(texCoords, Vector2{X: u, Y: v})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNum)
			}
			face := Face{}
			hasUV := true
			var uvIndices []int
			for _, corner := range fields[1:] {
				parts := strings.Split(corner, "/")
				vi, err := resolveIndex(parts[0], len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				face.Vertices = append(face.Vertices, vi)

				if len(parts) < 2 || parts[1] == "" {
					hasUV = false
					continue
				}
				ti, err := resolveIndex(parts[1], len(texCoords))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				sub, ok := uvSub[[2]int{vi, ti}]
				if !ok {
					sub = len(m.Vertices[vi].UVs)
					m.Vertices[vi].UVs = append(m.Vertices[vi].UVs, texCoords[ti])
					uvSub[[2]int{vi, ti}] = sub
				}
				uvIndices = append(uvIndices, sub)
			}
			if hasUV {
				face.UVIndices = uvIndices
			}
			m.Faces = append(m.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ data: %w", err)
	}

	return m, nil
}

// SaveOBJFile writes the mesh to disk as a Wavefront OBJ model.
func SaveOBJFile(fileName string, m *Mesh) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create OBJ file %s: %w", fileName, err)
	}
	defer file.Close()

	if err := SaveOBJ(file, m); err != nil {
		return fmt.Errorf("error writing OBJ file %s: %w", fileName, err)
	}
	return nil
}

// SaveOBJ writes the mesh as Wavefront OBJ. Per-vertex UV lists are flattened
// into one vt block; faces reference them as v/vt whenever the face carries a
// full set of UV indices.
func SaveOBJ(writer io.Writer, m *Mesh) error {
	w := bufio.NewWriter(writer)

	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v.Position.X(), v.Position.Y(), v.Position.Z())
	}

	// First vt line used by each vertex's UV list.
	uvBase := make([]int, len(m.Vertices))
	next := 0
	for i, v := range m.Vertices {
		uvBase[i] = next
		for _, uv := range v.UVs {
			fmt.Fprintf(w, "vt %g %g\n", uv.X, uv.Y)
			next++
		}
	}

	for _, f := range m.Faces {
		fmt.Fprint(w, "f")
		withUV := len(f.UVIndices) == len(f.Vertices)
		for k, vi := range f.Vertices {
			if withUV {
				fmt.Fprintf(w, " %d/%d", vi+1, uvBase[vi]+f.UVIndices[k]+1)
			} else {
				fmt.Fprintf(w, " %d", vi+1)
			}
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing OBJ data: %w", err)
	}
	return nil
}
