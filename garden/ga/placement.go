package ga

import (
	"math"

	"github.com/fernwood-labs/huertogen/garden"
	"github.com/fernwood-labs/huertogen/garden/spacing"
)

// maxUsedAreaFraction caps used area at 85% of maxArea during
// placement, during initialization and the Insert mutation.
const maxUsedAreaFraction = 0.85

// CompatibilityLookup is the minimal surface placement and mutation
// need from garden/compat.Index.
type CompatibilityLookup interface {
	Lookup(a, b string) float64
}

// placer is a rejection sampler, adapted from
// lixenwraith-vi-fighter/genetic/extension.go's MonteCarloInitializer:
// SampleSpace draws a candidate, Constraints validates it, MaxAttempts
// bounds the retry loop. A failed placement is simply skipped, with no
// fallback to an invalid candidate.
type placer struct {
	ind       *garden.Individual
	plant     garden.Plant
	rng       *RNG
	compat    CompatibilityLookup
	c         garden.Constraints
}

// tryPlace attempts up to maxAttempts rejection-sampling draws for one
// plant instance within ind's plot, honoring bounds, overlap, spacing
// and resource caps. Returns (instance, true) on success.
func tryPlace(ind *garden.Individual, plant garden.Plant, rng *RNG, compat CompatibilityLookup, c garden.Constraints, maxAttempts int) (garden.PlantInstance, bool) {
	p := &placer{ind: ind, plant: plant, rng: rng, compat: compat, c: c}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := p.sample()
		if p.satisfies(candidate) {
			return candidate, true
		}
	}
	return garden.PlantInstance{}, false
}

// sample draws one candidate position inside an inset rectangle of
// margin sqrt(size).
func (p *placer) sample() garden.PlantInstance {
	margin := math.Sqrt(p.plant.Size)
	width, height := p.ind.Dimensions.Width, p.ind.Dimensions.Height

	maxX := width - margin
	maxY := height - margin
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}

	x := p.rng.Range(0, maxX)
	y := p.rng.Range(0, maxY)
	return garden.NewPlantInstance(p.plant, x, y)
}

// satisfies checks every rejection-sampling constraint used during
// initialization and the Insert mutation.
func (p *placer) satisfies(candidate garden.PlantInstance) bool {
	if !candidate.WithinBounds(p.ind.Dimensions.Width, p.ind.Dimensions.Height) {
		return false
	}

	for _, existing := range p.ind.Plants {
		if candidate.Overlaps(existing) {
			return false
		}
		minDist := spacing.MinDistance(
			p.compat.Lookup(candidate.Plant.Species, existing.Plant.Species),
			candidate.Plant.Size, existing.Plant.Size,
		)
		if candidate.Distance(existing) < minDist {
			return false
		}
	}

	addedArea := candidate.Width * candidate.Height
	if p.ind.UsedArea()+addedArea > maxUsedAreaFraction*p.c.MaxArea {
		return false
	}

	addedWater := candidate.Plant.WeeklyWatering
	if p.c.MaxWaterWeekly > 0 && p.ind.TotalWeeklyWater()+addedWater > p.c.MaxWaterWeekly {
		return false
	}

	if p.c.MaxBudget != nil {
		addedCost := candidate.Plant.Size * 50
		if p.ind.TotalCost()+addedCost > *p.c.MaxBudget {
			return false
		}
	}

	return true
}

// relocationSatisfies is like satisfies but excludes the instance
// being relocated from the overlap/spacing checks against itself.
func relocationSatisfies(ind *garden.Individual, excludeIdx int, candidate garden.PlantInstance, compat CompatibilityLookup) bool {
	if !candidate.WithinBounds(ind.Dimensions.Width, ind.Dimensions.Height) {
		return false
	}
	for i, existing := range ind.Plants {
		if i == excludeIdx {
			continue
		}
		if candidate.Overlaps(existing) {
			return false
		}
		minDist := spacing.MinDistance(
			compat.Lookup(candidate.Plant.Species, existing.Plant.Species),
			candidate.Plant.Size, existing.Plant.Size,
		)
		if candidate.Distance(existing) < minDist {
			return false
		}
	}
	return true
}
