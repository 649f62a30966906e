package router

import (
	"errors"
	"testing"
)

func TestResolveDefault(t *testing.T) {
	r := Default()
	for _, hash := range []string{"", "#"} {
		rt, err := r.Resolve(hash)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", hash, err)
		}
		if rt.Scene != "lorenz" || !rt.SpeedControl {
			t.Fatalf("Resolve(%q) = %+v, want lorenz with speed control", hash, rt)
		}
	}
}

func TestResolveKnownRoutes(t *testing.T) {
	r := Default()
	cases := map[string]string{
		"#/scene1": "Lorenz Attractor",
		"#/scene2": "Periodic Simplex Noise",
		"/scene3":  "Gerstner Waves",
		"#/scene4": "Simplex Hills",
	}
	for hash, label := range cases {
		rt, err := r.Resolve(hash)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", hash, err)
		}
		if rt.Label != label {
			t.Errorf("Resolve(%q).Label = %q, want %q", hash, rt.Label, label)
		}
		if rt.Path != "/scene1" && rt.SpeedControl {
			t.Errorf("%s should hide the speed control", rt.Path)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, err := Default().Resolve("#/scene9"); !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}
}

func TestRoutesOrderedByPage(t *testing.T) {
	routes := Default().Routes()
	if len(routes) != 4 {
		t.Fatalf("expected 4 routes, got %d", len(routes))
	}
	for i, rt := range routes {
		if rt.Page != i+1 {
			t.Fatalf("route %d has page %d", i, rt.Page)
		}
		back, ok := Default().ByPage(rt.Page)
		if !ok || back.Hash() != rt.Hash() {
			t.Fatalf("ByPage(%d) = %+v", rt.Page, back)
		}
	}
	if _, ok := Default().ByPage(7); ok {
		t.Fatal("ByPage(7) should not resolve")
	}
}

func TestNewSkipsIncompleteRoutes(t *testing.T) {
	r := New(Route{Path: "/a"}, Route{Scene: "b"}, Route{Path: "/c", Scene: "c"})
	if got := len(r.Routes()); got != 1 {
		t.Fatalf("expected 1 route, got %d", got)
	}
}
