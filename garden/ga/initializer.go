package ga

import (
	"math"

	"github.com/fernwood-labs/huertogen/garden"
)

// initPlacementAttempts is the per-instance rejection-sampling retry
// budget during population initialization.
const initPlacementAttempts = 50

// InitializePopulation builds populationSize individuals via a
// heuristic pass: random plot aspect ratio, a random subset of the
// pool, 1-2 instances per chosen species, each placed by rejection
// sampling.
func InitializePopulation(pool []garden.Plant, c garden.Constraints, maxSpecies, populationSize int, compat CompatibilityLookup, rng *RNG) []*garden.Individual {
	population := make([]*garden.Individual, populationSize)
	for i := 0; i < populationSize; i++ {
		population[i] = initializeOne(pool, c, maxSpecies, compat, rng)
	}
	return population
}

func initializeOne(pool []garden.Plant, c garden.Constraints, maxSpecies int, compat CompatibilityLookup, rng *RNG) *garden.Individual {
	aspect := rng.Range(0.6, 1.4)
	width := math.Sqrt(c.MaxArea * aspect)
	height := c.MaxArea / width

	ind := garden.NewIndividual(garden.NewDimensions(width, height))

	numSpecies := maxSpecies - 2
	if numSpecies < 0 {
		numSpecies = 0
	}
	numSpecies = 2 + rng.IntN(numSpecies+1)
	if numSpecies > len(pool) {
		numSpecies = len(pool)
	}

	shuffled := shuffledCopy(pool, rng)
	chosen := shuffled
	if numSpecies < len(shuffled) {
		chosen = shuffled[:numSpecies]
	}

	for _, plant := range chosen {
		instances := 1 + rng.IntN(2) // 1 or 2
		for k := 0; k < instances; k++ {
			instance, ok := tryPlace(ind, plant, rng, compat, c, initPlacementAttempts)
			if !ok {
				continue
			}
			ind.Plants = append(ind.Plants, instance)
		}
	}

	return ind
}

func shuffledCopy(pool []garden.Plant, rng *RNG) []garden.Plant {
	shuffled := make([]garden.Plant, len(pool))
	copy(shuffled, pool)
	Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }, rng)
	return shuffled
}
