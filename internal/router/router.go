package router

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownRoute is returned when a hash does not name a registered route.
var ErrUnknownRoute = errors.New("router: unknown route")

// DefaultHash is used when navigation starts with an empty hash.
const DefaultHash = "#/scene1"

// Route binds a hash path to a scene.
type Route struct {
	Path  string
	Scene string
	Label string
	// Page is the 1-based pagination index highlighted for this route.
	Page int
	// SpeedControl reports whether the Lorenz speed slider should be shown.
	SpeedControl bool
}

// Hash returns the route as a location hash, e.g. "#/scene2".
func (r Route) Hash() string { return "#" + r.Path }

// Router resolves location hashes to routes.
type Router struct {
	routes map[string]Route
}

// New builds a router from routes, keyed by Path.
func New(routes ...Route) *Router {
	r := &Router{routes: make(map[string]Route, len(routes))}
	for _, rt := range routes {
		if rt.Path == "" || rt.Scene == "" {
			continue
		}
		r.routes[rt.Path] = rt
	}
	return r
}

// Default returns the router for the bundled scenes.
func Default() *Router {
	return New(
		Route{Path: "/scene1", Scene: "lorenz", Label: "Lorenz Attractor", Page: 1, SpeedControl: true},
		Route{Path: "/scene2", Scene: "simplex", Label: "Periodic Simplex Noise", Page: 2},
		Route{Path: "/scene3", Scene: "gerstner", Label: "Gerstner Waves", Page: 3},
		Route{Path: "/scene4", Scene: "hills", Label: "Simplex Hills", Page: 4},
	)
}

// Resolve maps a location hash to its route. An empty hash resolves to
// DefaultHash; the leading '#' is optional.
func (r *Router) Resolve(hash string) (Route, error) {
	if hash == "" || hash == "#" {
		hash = DefaultHash
	}
	path := strings.TrimPrefix(hash, "#")
	rt, ok := r.routes[path]
	if !ok {
		return Route{}, fmt.Errorf("%w %q", ErrUnknownRoute, hash)
	}
	return rt, nil
}

// ByPage returns the route shown at the given pagination index.
func (r *Router) ByPage(page int) (Route, bool) {
	for _, rt := range r.routes {
		if rt.Page == page {
			return rt, true
		}
	}
	return Route{}, false
}

// Routes lists every route ordered by page.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].Path < out[j].Path
	})
	return out
}
