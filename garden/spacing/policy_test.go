package spacing

import "testing"

func TestMinDistanceSeverityTiers(t *testing.T) {
	cases := []struct {
		name          string
		compatibility float64
		wantBase      float64
	}{
		{"strongly negative", -0.8, 2.5},
		{"strongly positive", 0.8, 1.0},
		{"neutral", 0.0, 1.5},
		{"boundary negative", -0.5, 1.5},
		{"boundary positive", 0.5, 1.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MinDistance(c.compatibility, 0, 0)
			if got != c.wantBase {
				t.Errorf("MinDistance(%v, 0, 0) = %v, want %v", c.compatibility, got, c.wantBase)
			}
		})
	}
}

func TestMinDistanceIncludesSizeRadii(t *testing.T) {
	got := MinDistance(0.0, 4, 1) // sqrt(4)/2=1, sqrt(1)/2=0.5
	want := 1.5 + 1 + 0.5
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProximityPenaltyZeroWhenSatisfied(t *testing.T) {
	if p := ProximityPenalty(2.0, 1.5); p != 0 {
		t.Errorf("expected 0, got %v", p)
	}
	if p := ProximityPenalty(1.5, 1.5); p != 0 {
		t.Errorf("expected 0 at exact boundary, got %v", p)
	}
}

func TestProximityPenaltyPositiveWhenViolated(t *testing.T) {
	p := ProximityPenalty(0.75, 1.5) // ratio 0.5, deficit 0.5, penalty 0.25
	if p != 0.25 {
		t.Errorf("got %v, want 0.25", p)
	}
}
