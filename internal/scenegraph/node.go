// Package scenegraph models the objects a scene hands to the renderer as a
// closed set of node kinds: meshes, lights, groups, and everything else.
package scenegraph

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is implemented only by *Mesh, *Light, *Group and *Other.
type Node interface {
	sealed()
}

// Mesh is renderable geometry: a set of points joined by edges.
type Mesh struct {
	Name      string
	Positions []mgl64.Vec3
	// Normals is optional; when set it has one entry per position.
	Normals []mgl64.Vec3
	Edges   [][2]int32
	// Alpha is optional per-vertex opacity in [0, 1].
	Alpha []float64
	Color color.RGBA
	// PointSize draws every vertex as a dot of this radius when > 0.
	PointSize float64
	Visible   bool
}

// LightKind distinguishes light behaviours.
type LightKind uint8

const (
	// LightAmbient lights every surface evenly.
	LightAmbient LightKind = iota
	// LightDirectional lights surfaces by their facing towards Direction.
	LightDirectional
)

// Light contributes to mesh shading.
type Light struct {
	Name      string
	Kind      LightKind
	Color     color.RGBA
	Intensity float64
	Direction mgl64.Vec3
}

// Group translates and owns child nodes.
type Group struct {
	Name     string
	Position mgl64.Vec3
	Children []Node
}

// Other carries scene-level data that is neither geometry nor light, such as Fog.
type Other struct {
	Name  string
	Value any
}

// White is the default light colour.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Fog fades geometry towards Color between Near and Far camera distances.
type Fog struct {
	Color     color.RGBA
	Near, Far float64
}

func (*Mesh) sealed()  {}
func (*Light) sealed() {}
func (*Group) sealed() {}
func (*Other) sealed() {}

// Add appends children to the group.
func (g *Group) Add(children ...Node) { g.Children = append(g.Children, children...) }

// Visitor receives one callback per node kind. VisitGroup returns false to
// skip the group's children.
type Visitor interface {
	VisitMesh(m *Mesh, offset mgl64.Vec3)
	VisitLight(l *Light)
	VisitGroup(g *Group, offset mgl64.Vec3) bool
	VisitOther(o *Other)
}

// Walk visits n and its descendants depth-first. Meshes and groups receive
// the accumulated translation of their ancestors.
func Walk(n Node, v Visitor) {
	walk(n, v, mgl64.Vec3{})
}

func walk(n Node, v Visitor, offset mgl64.Vec3) {
	switch node := n.(type) {
	case nil:
		return
	case *Mesh:
		v.VisitMesh(node, offset)
	case *Light:
		v.VisitLight(node)
	case *Group:
		if !v.VisitGroup(node, offset) {
			return
		}
		inner := offset.Add(node.Position)
		for _, child := range node.Children {
			walk(child, v, inner)
		}
	case *Other:
		v.VisitOther(node)
	default:
		panic(fmt.Sprintf("scenegraph: unknown node type %T", n))
	}
}

// Stats counts the nodes reachable from a root.
type Stats struct {
	Meshes, Lights, Groups, Others int
	Vertices                       int
}

// Count walks n and tallies each node kind.
func Count(n Node) Stats {
	var c counter
	Walk(n, &c)
	return c.Stats
}

type counter struct{ Stats }

func (c *counter) VisitMesh(m *Mesh, _ mgl64.Vec3) {
	c.Meshes++
	c.Vertices += len(m.Positions)
}
func (c *counter) VisitLight(*Light) { c.Lights++ }
func (c *counter) VisitGroup(*Group, mgl64.Vec3) bool {
	c.Groups++
	return true
}
func (c *counter) VisitOther(*Other) { c.Others++ }
