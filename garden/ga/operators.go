package ga

import (
	"github.com/fernwood-labs/huertogen/garden"
)

// maxInsertAttempts and maxRelocateAttempts bound the rejection-sampling
// retries the Insert and Relocate mutation operators make before giving
// up on a single mutation and leaving the individual unchanged.
const (
	maxInsertAttempts   = 30
	maxRelocateAttempts = 20
)

// TournamentSelect runs a k-way tournament: k indices are drawn
// uniformly from population with replacement (the same index may be
// drawn more than once), and the fittest of them wins. Ties
// are broken by the lower index, so the outcome of a fixed RNG stream
// is reproducible regardless of sort stability upstream. Adapted from
// lixenwraith-vi-fighter/genetic/genetic.go's TournamentSelector.
func TournamentSelect(population []*garden.Individual, k int, rng *RNG) *garden.Individual {
	if len(population) == 0 {
		return nil
	}
	if k > len(population) {
		k = len(population)
	}

	bestIdx := rng.IntN(len(population))
	for i := 1; i < k; i++ {
		idx := rng.IntN(len(population))
		if population[idx].Fitness() > population[bestIdx].Fitness() || (population[idx].Fitness() == population[bestIdx].Fitness() && idx < bestIdx) {
			bestIdx = idx
		}
	}
	return population[bestIdx]
}

// UniformCrossover produces two children from two parents by walking
// the longer parent's instance list and, at each index present in both
// parents, swapping the instance between children with probability
// 0.5. Indices beyond the shorter parent's length are inherited from
// whichever parent has them. Both children inherit parent1's plot
// dimensions, since crossover recombines planting layout, not geometry.
// Adapted from lixenwraith-vi-fighter/genetic/genetic.go's
// UniformCombiner.
func UniformCrossover(parent1, parent2 *garden.Individual, rng *RNG) (*garden.Individual, *garden.Individual) {
	child1 := garden.NewIndividual(parent1.Dimensions)
	child2 := garden.NewIndividual(parent1.Dimensions)

	maxLen := len(parent1.Plants)
	if len(parent2.Plants) > maxLen {
		maxLen = len(parent2.Plants)
	}

	for i := 0; i < maxLen; i++ {
		has1 := i < len(parent1.Plants)
		has2 := i < len(parent2.Plants)

		switch {
		case has1 && has2:
			if rng.Bool(0.5) {
				child1.Plants = append(child1.Plants, parent1.Plants[i].Clone())
				child2.Plants = append(child2.Plants, parent2.Plants[i].Clone())
			} else {
				child1.Plants = append(child1.Plants, parent2.Plants[i].Clone())
				child2.Plants = append(child2.Plants, parent1.Plants[i].Clone())
			}
		case has1:
			child1.Plants = append(child1.Plants, parent1.Plants[i].Clone())
		case has2:
			child2.Plants = append(child2.Plants, parent2.Plants[i].Clone())
		}
	}

	return child1, child2
}

// Mutate applies each of the four mutation operators to ind in turn,
// each independently gated by its own probability. ind is mutated in
// place; callers that need the pre-mutation individual preserved must
// clone first.
func Mutate(ind *garden.Individual, pool []garden.Plant, c garden.Constraints, maxSpecies int, compat CompatibilityLookup, rng *RNG, swapRate, insertRate, deleteRate, relocateRate float64) {
	if rng.Bool(swapRate) {
		mutateSwap(ind, rng)
	}
	if rng.Bool(insertRate) {
		mutateInsert(ind, pool, c, maxSpecies, compat, rng)
	}
	if rng.Bool(deleteRate) {
		mutateDelete(ind, rng)
	}
	if rng.Bool(relocateRate) {
		mutateRelocate(ind, compat, rng)
	}
}

// mutateSwap exchanges the list positions of two instances. Since
// instance order carries no geometric meaning, this is a pure
// genome-representation no-op; it is kept to match the genome's other
// mutation operators and to preserve crossover's per-index swap
// semantics across generations.
func mutateSwap(ind *garden.Individual, rng *RNG) {
	n := len(ind.Plants)
	if n < 2 {
		return
	}
	i := rng.IntN(n)
	j := rng.IntN(n)
	ind.Plants[i], ind.Plants[j] = ind.Plants[j], ind.Plants[i]
}

// mutateInsert adds one new instance of a randomly chosen pool species,
// placed by rejection sampling, capped at 3*maxSpecies total instances.
func mutateInsert(ind *garden.Individual, pool []garden.Plant, c garden.Constraints, maxSpecies int, compat CompatibilityLookup, rng *RNG) {
	if len(pool) == 0 {
		return
	}
	if len(ind.Plants) >= 3*maxSpecies {
		return
	}

	plant := pool[rng.IntN(len(pool))]
	instance, ok := tryPlace(ind, plant, rng, compat, c, maxInsertAttempts)
	if !ok {
		return
	}
	ind.Plants = append(ind.Plants, instance)
}

// mutateDelete removes one randomly chosen instance, guarded so the
// individual never drops below two instances.
func mutateDelete(ind *garden.Individual, rng *RNG) {
	if len(ind.Plants) <= 2 {
		return
	}
	idx := rng.IntN(len(ind.Plants))
	ind.Plants = append(ind.Plants[:idx], ind.Plants[idx+1:]...)
}

// mutateRelocate picks one instance and attempts to resample its
// position within the plot, accepting the move only if the new
// position clears every other instance's overlap and spacing
// constraint. The instance is left untouched if no valid position is
// found within the attempt budget.
func mutateRelocate(ind *garden.Individual, compat CompatibilityLookup, rng *RNG) {
	if len(ind.Plants) == 0 {
		return
	}
	idx := rng.IntN(len(ind.Plants))
	original := ind.Plants[idx]

	p := &placer{ind: ind, plant: original.Plant, rng: rng}
	for attempt := 0; attempt < maxRelocateAttempts; attempt++ {
		candidate := p.sample()
		candidate.Rotation = original.Rotation
		candidate.Status = original.Status
		candidate.PlantedAt = original.PlantedAt

		if relocationSatisfies(ind, idx, candidate, compat) {
			ind.Plants[idx] = candidate
			return
		}
	}
}
