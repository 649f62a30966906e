package scenegraph

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"wavescape/internal/field"
)

// Plane is a wireframe grid mesh in the XY plane, centred on the origin,
// whose Z coordinates are driven by a height field.
type Plane struct {
	*Mesh
	Cols, Rows int
}

// NewPlane builds a width x height plane with cols x rows vertices. Vertices
// run left to right within a row and rows run from +Y to -Y, so vertex i sits
// at grid column i%cols and grid row i/cols.
func NewPlane(name string, width, height float64, cols, rows int, c color.RGBA) *Plane {
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}
	m := &Mesh{
		Name:      name,
		Positions: make([]mgl64.Vec3, cols*rows),
		Normals:   make([]mgl64.Vec3, cols*rows),
		Edges:     make([][2]int32, 0, 2*cols*rows),
		Color:     c,
		Visible:   true,
	}
	dx := width / float64(cols-1)
	dy := height / float64(rows-1)
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			i := r*cols + col
			m.Positions[i] = mgl64.Vec3{-width/2 + float64(col)*dx, height/2 - float64(r)*dy, 0}
			m.Normals[i] = mgl64.Vec3{0, 0, 1}
			if col+1 < cols {
				m.Edges = append(m.Edges, [2]int32{int32(i), int32(i + 1)})
			}
			if r+1 < rows {
				m.Edges = append(m.Edges, [2]int32{int32(i), int32(i + cols)})
			}
		}
	}
	return &Plane{Mesh: m, Cols: cols, Rows: rows}
}

// SetHeights copies g into the vertex Z coordinates. g must be Cols x Rows.
func (p *Plane) SetHeights(g *field.Grid) bool {
	if g.W != p.Cols || g.H != p.Rows {
		return false
	}
	for i, h := range g.Cells() {
		p.Positions[i][2] = h
	}
	return true
}

// ComputeNormals derives vertex normals from the current heights with
// central differences, falling back to one-sided differences at the border.
func (p *Plane) ComputeNormals() {
	at := func(c, r int) mgl64.Vec3 { return p.Positions[r*p.Cols+c] }
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			l, rt := max(c-1, 0), min(c+1, p.Cols-1)
			up, dn := max(r-1, 0), min(r+1, p.Rows-1)
			tx := at(rt, r).Sub(at(l, r))
			ty := at(c, up).Sub(at(c, dn))
			n := tx.Cross(ty)
			if n.Len() == 0 {
				n = mgl64.Vec3{0, 0, 1}
			}
			p.Normals[r*p.Cols+c] = n.Normalize()
		}
	}
}

// SetNormalFromSlope sets the normal of vertex i from the height slope
// (dh/dx, dh/dy) expressed in plane units.
func (p *Plane) SetNormalFromSlope(i int, dhdx, dhdy float64) {
	p.Normals[i] = mgl64.Vec3{-dhdx, -dhdy, 1}.Normalize()
}
