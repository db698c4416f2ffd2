package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/lumen/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file. Only v, f, usemtl and o/g lines are
// read; polygons are fan-triangulated.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads OBJ data from r.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("")
	materials := map[string]int{}
	current := -1

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			var c [3]float64
			for i := range c {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				c[i] = v
			}
			mesh.Vertices = append(mesh.Vertices, MeshVertex{Position: math3d.V3(c[0], c[1], c[2])})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				i, err := objIndex(tok, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				idx = append(idx, i)
			}
			for i := 1; i+1 < len(idx); i++ {
				mesh.Faces = append(mesh.Faces, Face{
					V:        [3]int{idx[0], idx[i], idx[i+1]},
					Material: current,
				})
			}

		case "usemtl":
			if len(fields) < 2 {
				continue
			}
			name := fields[1]
			i, ok := materials[name]
			if !ok {
				i = len(mesh.Materials)
				materials[name] = i
				mesh.Materials = append(mesh.Materials, Material{
					Name:      name,
					BaseColor: [4]float64{1, 1, 1, 1},
					Roughness: 1,
				})
			}
			current = i

		case "o", "g":
			if mesh.Name == "" && len(fields) > 1 {
				mesh.Name = fields[1]
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// objIndex resolves the vertex part of a face token ("3", "3/1", "-1//2").
func objIndex(tok string, count int) (int, error) {
	if slash := strings.IndexByte(tok, '/'); slash >= 0 {
		tok = tok[:slash]
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("face index 0 is invalid")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("face index %s out of range", tok)
	}
	return i, nil
}
