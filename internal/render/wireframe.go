package render

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"wavescape/internal/scenegraph"
)

// Segment is a projected, shaded edge. Colours are not premultiplied.
type Segment struct {
	A, B  mgl64.Vec2
	Color color.NRGBA
	Depth float64
}

// Point is a projected, shaded dot.
type Point struct {
	P      mgl64.Vec2
	Radius float64
	Color  color.NRGBA
	Depth  float64
}

// Frame holds the screen-space primitives of one scene graph, sorted far to
// near so painting in order yields correct overlap.
type Frame struct {
	Segments   []Segment
	Points     []Point
	Background color.RGBA
}

type placedMesh struct {
	mesh   *scenegraph.Mesh
	offset mgl64.Vec3
}

// collector gathers everything Wireframe needs in a single walk.
type collector struct {
	meshes []placedMesh
	lights []*scenegraph.Light
	fog    *scenegraph.Fog
}

func (c *collector) VisitMesh(m *scenegraph.Mesh, offset mgl64.Vec3) {
	if m.Visible {
		c.meshes = append(c.meshes, placedMesh{m, offset})
	}
}

func (c *collector) VisitLight(l *scenegraph.Light) { c.lights = append(c.lights, l) }

func (c *collector) VisitGroup(*scenegraph.Group, mgl64.Vec3) bool { return true }

func (c *collector) VisitOther(o *scenegraph.Other) {
	if f, ok := o.Value.(scenegraph.Fog); ok {
		c.fog = &f
	}
}

// shader computes per-vertex colour from lights and fog.
type shader struct {
	ambient mgl64.Vec3
	dirs    []*scenegraph.Light
	fog     *scenegraph.Fog
	unlit   bool
}

func newShader(lights []*scenegraph.Light, fog *scenegraph.Fog) shader {
	s := shader{fog: fog, unlit: len(lights) == 0}
	for _, l := range lights {
		switch l.Kind {
		case scenegraph.LightAmbient:
			s.ambient = s.ambient.Add(lightRGB(l))
		case scenegraph.LightDirectional:
			if l.Direction.Len() > 0 {
				s.dirs = append(s.dirs, l)
			}
		}
	}
	return s
}

func lightRGB(l *scenegraph.Light) mgl64.Vec3 {
	return mgl64.Vec3{float64(l.Color.R), float64(l.Color.G), float64(l.Color.B)}.Mul(l.Intensity / 255)
}

// shade returns the lit colour of base with the given normal at depth.
// A zero normal receives ambient light only.
func (s shader) shade(base color.RGBA, normal mgl64.Vec3, depth, alpha float64) color.NRGBA {
	light := mgl64.Vec3{1, 1, 1}
	if !s.unlit {
		light = s.ambient
		if normal.Len() > 0 {
			n := normal.Normalize()
			for _, l := range s.dirs {
				// Double-sided: wireframes show both faces.
				lambert := math.Abs(n.Dot(l.Direction.Normalize()))
				light = light.Add(lightRGB(l).Mul(lambert))
			}
		}
	}
	rgb := mgl64.Vec3{
		float64(base.R) * math.Min(light[0], 1),
		float64(base.G) * math.Min(light[1], 1),
		float64(base.B) * math.Min(light[2], 1),
	}
	if s.fog != nil {
		f := fogFactor(*s.fog, depth)
		fc := mgl64.Vec3{float64(s.fog.Color.R), float64(s.fog.Color.G), float64(s.fog.Color.B)}
		rgb = rgb.Mul(1 - f).Add(fc.Mul(f))
	}
	return color.NRGBA{
		R: clampByte(rgb[0]),
		G: clampByte(rgb[1]),
		B: clampByte(rgb[2]),
		A: clampByte(alpha * float64(base.A)),
	}
}

// fogFactor is 0 at Near and closer and 1 at Far and beyond.
func fogFactor(f scenegraph.Fog, depth float64) float64 {
	if f.Far <= f.Near {
		if depth >= f.Far {
			return 1
		}
		return 0
	}
	return math.Max(0, math.Min(1, (depth-f.Near)/(f.Far-f.Near)))
}

func clampByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// Wireframe projects every visible mesh under root for a w x h viewport.
// Edges become segments and meshes with a PointSize become dots. Primitives
// that are fully transparent or cross the near plane are dropped.
func Wireframe(root scenegraph.Node, cam *OrbitCamera, w, h int) Frame {
	var c collector
	scenegraph.Walk(root, &c)
	sh := newShader(c.lights, c.fog)
	proj := cam.Projector(w, h)

	var frame Frame
	if c.fog != nil {
		frame.Background = c.fog.Color
	} else {
		frame.Background = color.RGBA{A: 255}
	}
	for _, pm := range c.meshes {
		m := pm.mesh
		screen := make([]mgl64.Vec2, len(m.Positions))
		depth := make([]float64, len(m.Positions))
		visible := make([]bool, len(m.Positions))
		for i, p := range m.Positions {
			screen[i], depth[i], visible[i] = proj.Project(p.Add(pm.offset))
		}
		alphaAt := func(i int) float64 {
			if i < len(m.Alpha) {
				return m.Alpha[i]
			}
			return 1
		}
		normalAt := func(i int) mgl64.Vec3 {
			if i < len(m.Normals) {
				return m.Normals[i]
			}
			return mgl64.Vec3{}
		}
		for _, e := range m.Edges {
			a, b := int(e[0]), int(e[1])
			if a < 0 || b < 0 || a >= len(m.Positions) || b >= len(m.Positions) {
				continue
			}
			if !visible[a] || !visible[b] {
				continue
			}
			alpha := (alphaAt(a) + alphaAt(b)) / 2
			if alpha <= 0 {
				continue
			}
			d := (depth[a] + depth[b]) / 2
			n := normalAt(a).Add(normalAt(b))
			frame.Segments = append(frame.Segments, Segment{
				A:     screen[a],
				B:     screen[b],
				Color: sh.shade(m.Color, n, d, alpha),
				Depth: d,
			})
		}
		if m.PointSize > 0 {
			for i := range m.Positions {
				if !visible[i] || alphaAt(i) <= 0 {
					continue
				}
				frame.Points = append(frame.Points, Point{
					P:      screen[i],
					Radius: math.Max(1, proj.PixelRadius(m.PointSize, depth[i])),
					Color:  sh.shade(m.Color, normalAt(i), depth[i], alphaAt(i)),
					Depth:  depth[i],
				})
			}
		}
	}
	slices.SortStableFunc(frame.Segments, func(a, b Segment) int { return cmp.Compare(b.Depth, a.Depth) })
	slices.SortStableFunc(frame.Points, func(a, b Point) int { return cmp.Compare(b.Depth, a.Depth) })
	return frame
}
