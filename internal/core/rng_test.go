package core

import "testing"

func TestSeedSequence(t *testing.T) {
	a, b, c := NewSeedSequence(5), NewSeedSequence(5), NewSeedSequence(6)
	differs := false
	for i := 0; i < 100; i++ {
		x, y, z := a.Next(), b.Next(), c.Next()
		if x != y {
			t.Fatalf("step %d: same base seed diverged: %d vs %d", i, x, y)
		}
		if x <= 0 || z <= 0 {
			t.Fatalf("step %d: non-positive seed", i)
		}
		differs = differs || x != z
	}
	if !differs {
		t.Fatal("different base seeds produced identical sequences")
	}
}
