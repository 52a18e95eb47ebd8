package ga

import (
	"sort"
	"time"

	"github.com/fernwood-labs/huertogen/garden"
	"github.com/fernwood-labs/huertogen/garden/fitness"
)

// topSolutionCount is how many individuals the engine hands back at
// the end of a run, regardless of population size.
const topSolutionCount = 3

// Engine drives the generational loop: selection, crossover, mutation,
// evaluation, elitist replacement, and the stopping-reason checks.
// Adapted from lixenwraith-vi-fighter/genetic/engine.go's Run /
// evolveGeneration / selectElite, but rewritten as a single-threaded
// synchronous loop over concrete *garden.Individual values instead of
// a goroutine-pooled generic Candidate[S,F] engine: one optimization
// request is one sequential run, not a background simulation
// competing for worker slots.
type Engine struct {
	Config        garden.GAConfig
	Constraints   garden.Constraints
	Objective     garden.Objective
	Pool          []garden.Plant
	Compatibility CompatibilityLookup
	Evaluator     *fitness.Evaluator
}

// Result is the outcome of one Engine.Run call.
type Result struct {
	TopSolutions   []*garden.Individual
	Generations    int
	StoppingReason garden.StoppingReason
	BestFitness    float64
}

// Run executes the full evolutionary search and returns the top three
// individuals by fitness, along with why the search stopped.
func (e *Engine) Run() (*Result, error) {
	seed := uint64(time.Now().UnixNano())
	if e.Config.Seed != nil {
		seed = *e.Config.Seed
	}
	rng := NewRNG(seed)

	deadline := time.Time{}
	if e.Config.Timeout > 0 {
		deadline = time.Now().Add(e.Config.Timeout)
	}

	population := InitializePopulation(e.Pool, e.Constraints, e.Config.MaxSpecies, e.Config.PopulationSize, e.Compatibility, rng)
	if err := e.evaluateAll(population); err != nil {
		return nil, err
	}
	e.sortByFitness(population)

	bestFitness := population[0].Fitness()
	stall := 0
	generation := 0
	reason := garden.StoppingMaxGenerations

	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			reason = garden.StoppingTimeout
			break
		}
		if e.Config.Patience > 0 && stall >= e.Config.Patience {
			reason = garden.StoppingPatience
			break
		}
		if generation > 0 && e.Config.ConvergenceThreshold > 0 {
			if populationFitnessVariance(population) < e.Config.ConvergenceThreshold {
				reason = garden.StoppingConvergence
				break
			}
		}
		if generation >= e.Config.MaxGenerations {
			reason = garden.StoppingMaxGenerations
			break
		}

		next, err := e.evolveGeneration(population, rng)
		if err != nil {
			return nil, err
		}
		population = next
		e.sortByFitness(population)

		if population[0].Fitness() > bestFitness+0.001 {
			bestFitness = population[0].Fitness()
			stall = 0
		} else {
			stall++
		}
		generation++
	}

	top := population
	if len(top) > topSolutionCount {
		top = top[:topSolutionCount]
	}

	return &Result{
		TopSolutions:   top,
		Generations:    generation,
		StoppingReason: reason,
		BestFitness:    population[0].Fitness(),
	}, nil
}

// evolveGeneration tournament-selects populationSize parents (with
// replacement), crosses and mutates them pairwise into populationSize
// offspring, then forms the next generation by concatenating parents
// and offspring, sorting by fitness, and truncating to populationSize.
// Elitism here is emergent from the sort+truncate, not a separately
// reserved slice: a parent only survives if it outranks the weaker
// half of the combined pool. EliteCount is accepted on GAConfig but
// has no separate role in this replacement scheme; see DESIGN.md.
func (e *Engine) evolveGeneration(population []*garden.Individual, rng *RNG) ([]*garden.Individual, error) {
	n := len(population)

	parents := make([]*garden.Individual, n)
	for i := 0; i < n; i++ {
		parents[i] = TournamentSelect(population, e.Config.TournamentK, rng)
	}

	offspring := make([]*garden.Individual, 0, n)
	for i := 0; i < n; i += 2 {
		if i+1 >= n {
			// odd populationSize: the last selected parent has no
			// partner to cross with, so it is cloned and mutated alone.
			child := parents[i].Clone()
			Mutate(child, e.Pool, e.Constraints, e.Config.MaxSpecies, e.Compatibility, rng,
				e.Config.MutationRate, e.Config.InsertionRate, e.Config.DeletionRate, 0.5*e.Config.MutationRate)
			offspring = append(offspring, child)
			break
		}

		parent1, parent2 := parents[i], parents[i+1]

		var child1, child2 *garden.Individual
		if rng.Bool(e.Config.CrossoverProbability) {
			child1, child2 = UniformCrossover(parent1, parent2, rng)
		} else {
			child1, child2 = parent1.Clone(), parent2.Clone()
		}

		Mutate(child1, e.Pool, e.Constraints, e.Config.MaxSpecies, e.Compatibility, rng,
			e.Config.MutationRate, e.Config.InsertionRate, e.Config.DeletionRate, 0.5*e.Config.MutationRate)
		Mutate(child2, e.Pool, e.Constraints, e.Config.MaxSpecies, e.Compatibility, rng,
			e.Config.MutationRate, e.Config.InsertionRate, e.Config.DeletionRate, 0.5*e.Config.MutationRate)

		offspring = append(offspring, child1, child2)
	}

	if err := e.evaluateAll(offspring); err != nil {
		return nil, err
	}

	combined := make([]*garden.Individual, 0, n+len(offspring))
	combined = append(combined, parents...)
	combined = append(combined, offspring...)

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Fitness() > combined[j].Fitness()
	})

	return combined[:n], nil
}

func (e *Engine) evaluateAll(population []*garden.Individual) error {
	for _, ind := range population {
		metrics, err := e.Evaluator.Evaluate(ind, e.Constraints, e.Objective)
		if err != nil {
			return err
		}
		ind.Metrics = metrics
	}
	return nil
}

func (e *Engine) sortByFitness(population []*garden.Individual) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].Fitness() > population[j].Fitness()
	})
}

// populationFitnessVariance is the statistical variance of fitness
// across the population, compared against convergenceThreshold to
// detect convergence.
func populationFitnessVariance(population []*garden.Individual) float64 {
	n := len(population)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, ind := range population {
		sum += ind.Fitness()
	}
	mean := sum / float64(n)

	var variance float64
	for _, ind := range population {
		diff := ind.Fitness() - mean
		variance += diff * diff
	}
	return variance / float64(n)
}
