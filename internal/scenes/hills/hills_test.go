package hills

import (
	"context"
	"errors"
	"testing"
	"time"

	"wavescape/internal/core"
	"wavescape/internal/noise"
	"wavescape/internal/scenegraph"
)

func TestRegistered(t *testing.T) {
	if _, ok := core.Scenes()["hills"]; !ok {
		t.Fatal("hills not registered")
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{"source": "perlin", "seed": "42", "fog_near": "9"})
	if cfg.Source != "perlin" || cfg.Seed != 42 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.FogFar < cfg.FogNear {
		t.Fatalf("fog far %v below near %v", cfg.FogFar, cfg.FogNear)
	}
	if got := FromMap(map[string]string{"source": "bogus"}).Source; got != "opensimplex" {
		t.Fatalf("unknown source should keep default, got %q", got)
	}
	if _, ok := cfg.NewSource(1).(*noise.Perlin); !ok {
		t.Fatal("perlin config should build a Perlin source")
	}
}

func TestTickSamplesOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cols, cfg.Rows = 9, 9
	s := New(cfg)
	if err := s.Tick(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	first := s.HeightField()
	lo, hi := first.MinMax()
	if lo == hi {
		t.Fatal("terrain is flat after first tick")
	}
	src := noise.NewOpenSimplex(cfg.Seed, cfg.Scale, cfg.Amplitude)
	if got, want := first.At(0, 0), src.Height(-cfg.Size/2, cfg.Size/2, 0); got != want {
		t.Fatalf("corner height %v, want %v", got, want)
	}

	if err := s.Tick(context.Background(), 5*time.Second); err != nil {
		t.Fatal(err)
	}
	second := s.HeightField()
	for i, v := range second.Cells() {
		if v != first.Cells()[i] {
			t.Fatalf("static terrain changed at %d", i)
		}
	}
}

func TestResetReseeds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cols, cfg.Rows = 9, 9
	s := New(cfg)
	if err := s.Tick(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	a := s.HeightField()

	s.Reset(7)
	if s.Seed() != 7 {
		t.Fatalf("seed = %d", s.Seed())
	}
	if err := s.Tick(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	b := s.HeightField()
	same := true
	for i := range a.Cells() {
		if a.Cells()[i] != b.Cells()[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("reseeded terrain is identical")
	}

	s.Reset(0)
	if s.Seed() != cfg.Seed {
		t.Fatalf("zero seed should restore %d, got %d", cfg.Seed, s.Seed())
	}
}

func TestSceneHasFog(t *testing.T) {
	s := New(DefaultConfig())
	var fog *scenegraph.Fog
	s.View(func(root scenegraph.Node) {
		for _, n := range root.(*scenegraph.Group).Children {
			if o, ok := n.(*scenegraph.Other); ok {
				if f, ok := o.Value.(scenegraph.Fog); ok {
					fog = &f
				}
			}
		}
	})
	if fog == nil || fog.Near != 2 || fog.Far != 8 {
		t.Fatalf("fog = %+v", fog)
	}
}

func TestCancelledTickKeepsTerrainPending(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cols, cfg.Rows = 9, 9
	s := New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Tick(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if lo, hi := s.HeightField().MinMax(); lo != 0 || hi != 0 {
		t.Fatalf("cancelled tick committed terrain: [%v, %v]", lo, hi)
	}
	if err := s.Tick(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if lo, hi := s.HeightField().MinMax(); lo == hi {
		t.Fatal("terrain still flat after the retried tick")
	}
}

func TestResetFlattensBeforeResampling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cols, cfg.Rows = 9, 9
	s := New(cfg)
	if err := s.Tick(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	s.Reset(11)
	if lo, hi := s.HeightField().MinMax(); lo != 0 || hi != 0 {
		t.Fatalf("reset left terrain [%v, %v]", lo, hi)
	}
	if err := s.Tick(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	want := noise.NewOpenSimplex(11, cfg.Scale, cfg.Amplitude).Height(-cfg.Size/2, cfg.Size/2, 0)
	if got := s.HeightField().At(0, 0); got != want {
		t.Fatalf("corner height %v, want %v from the new seed", got, want)
	}
}
