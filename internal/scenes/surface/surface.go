// Package surface holds the height-field plane shared by the terrain scenes.
package surface

import (
	"context"
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"wavescape/internal/field"
	"wavescape/internal/scenegraph"
)

// Surface owns a plane mesh, its scene graph, and a lock that separates the
// tick goroutine from the render loop.
type Surface struct {
	mu       sync.RWMutex
	sampling sync.Mutex // serializes writers of scratch
	plane    *scenegraph.Plane
	root     *scenegraph.Group
	grid     *field.Grid
	scratch  *field.Grid
	base     []float64
	workers  int
}

// New builds a cols x rows plane of the given size and wraps it in a root
// group together with extra nodes (lights, fog).
func New(name string, size float64, cols, rows int, c color.RGBA, workers int, extra ...scenegraph.Node) *Surface {
	plane := scenegraph.NewPlane(name, size, size, cols, rows, c)
	root := &scenegraph.Group{Name: name + "-root"}
	root.Add(plane.Mesh)
	root.Add(extra...)
	base := make([]float64, 2*len(plane.Positions))
	for i, p := range plane.Positions {
		base[2*i], base[2*i+1] = p[0], p[1]
	}
	return &Surface{
		plane:   plane,
		root:    root,
		grid:    field.NewGrid(plane.Cols, plane.Rows),
		scratch: field.NewGrid(plane.Cols, plane.Rows),
		base:    base,
		workers: workers,
	}
}

// Cols returns the number of vertices per row.
func (s *Surface) Cols() int { return s.plane.Cols }

// Rows returns the number of rows.
func (s *Surface) Rows() int { return s.plane.Rows }

// VertexXY returns the rest position of the vertex at (col, row).
func (s *Surface) VertexXY(col, row int) (float64, float64) {
	i := row*s.plane.Cols + col
	return s.base[2*i], s.base[2*i+1]
}

// Spacing returns the distance between neighbouring columns and rows.
func (s *Surface) Spacing() (dx, dy float64) {
	return s.base[2] - s.base[0], s.base[1] - s.base[2*s.plane.Cols+1]
}

// Update samples fn into a scratch grid without holding the lock, then
// commits the heights to the mesh. finish, if non-nil, runs under the write
// lock after the heights are committed; when it is nil normals are
// recomputed from the heights.
func (s *Surface) Update(ctx context.Context, fn func(col, row int) float64, finish func(p *scenegraph.Plane)) error {
	s.sampling.Lock()
	defer s.sampling.Unlock()
	if err := field.Sample(ctx, s.scratch, s.workers, fn); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid, s.scratch = s.scratch, s.grid
	s.plane.SetHeights(s.grid)
	if finish != nil {
		finish(s.plane)
	} else {
		s.plane.ComputeNormals()
	}
	return nil
}

// Flatten resets every height to zero.
func (s *Surface) Flatten() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid.Clear()
	s.plane.SetHeights(s.grid)
	for i := range s.plane.Normals {
		s.plane.Normals[i] = mgl64.Vec3{0, 0, 1}
	}
}

// View calls fn with the root while holding the read lock.
func (s *Surface) View(fn func(root scenegraph.Node)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.root)
}

// HeightField returns a copy of the committed heights.
func (s *Surface) HeightField() *field.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := field.NewGrid(s.grid.W, s.grid.H)
	copy(g.Cells(), s.grid.Cells())
	return g
}
