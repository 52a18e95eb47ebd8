package ga

import (
	"testing"

	"github.com/fernwood-labs/huertogen/garden"
)

type stubCompat map[string]float64

func (s stubCompat) Lookup(a, b string) float64 {
	if v, ok := s[a+"|"+b]; ok {
		return v
	}
	if v, ok := s[b+"|"+a]; ok {
		return v
	}
	return 0
}

func lettuce() garden.Plant {
	return garden.Plant{ID: 1, Species: "Lechuga", Size: 0.1, WeeklyWatering: 5}
}

func TestTryPlaceWithinBoundsOnEmptyPlot(t *testing.T) {
	ind := garden.NewIndividual(garden.NewDimensions(3, 3))
	rng := NewRNG(42)
	c := garden.Constraints{MaxArea: 9}

	instance, ok := tryPlace(ind, lettuce(), rng, stubCompat{}, c, 50)
	if !ok {
		t.Fatal("expected a placement within an empty 3x3 plot")
	}
	if !instance.WithinBounds(3, 3) {
		t.Fatalf("placed instance out of bounds: %+v", instance)
	}
}

func TestTryPlaceFailsWhenPlotTooSmall(t *testing.T) {
	ind := garden.NewIndividual(garden.NewDimensions(3, 3))
	big := garden.Plant{ID: 2, Species: "Calabaza", Size: 100}
	rng := NewRNG(7)
	c := garden.Constraints{MaxArea: 9}

	_, ok := tryPlace(ind, big, rng, stubCompat{}, c, 10)
	if ok {
		t.Fatal("expected placement of an oversized plant to fail")
	}
}

func TestTryPlaceRejectsWhenSpacingCannotBeMet(t *testing.T) {
	ind := garden.NewIndividual(garden.NewDimensions(1, 1))
	ind.Plants = append(ind.Plants, garden.NewPlantInstance(lettuce(), 0, 0))
	rng := NewRNG(3)
	c := garden.Constraints{MaxArea: 1}

	// Two neutral lettuces need 1.5 + 2*sqrt(0.1)/2 ~= 1.82 m between
	// centers, but no two centers in a 1x1 plot are that far apart, so
	// every draw is rejected.
	_, ok := tryPlace(ind, lettuce(), rng, stubCompat{}, c, 1)
	if ok {
		t.Fatal("expected placement to fail when the spacing radius covers the whole plot")
	}
}

func TestRelocationSatisfiesExcludesSelf(t *testing.T) {
	ind := garden.NewIndividual(garden.NewDimensions(5, 5))
	ind.Plants = append(ind.Plants, garden.NewPlantInstance(lettuce(), 0, 0))
	candidate := garden.NewPlantInstance(lettuce(), 0, 0)

	if !relocationSatisfies(ind, 0, candidate, stubCompat{}) {
		t.Fatal("relocating an instance onto its own prior position must be allowed")
	}
}
