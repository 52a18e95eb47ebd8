package ga

import (
	"testing"

	"github.com/fernwood-labs/huertogen/garden"
	"github.com/fernwood-labs/huertogen/garden/fitness"
)

func enginePool() []garden.Plant {
	return []garden.Plant{
		{ID: 1, Species: "Lechuga", Types: []garden.PlantType{garden.TypeVegetable}, Size: 0.1, WeeklyWatering: 5, HarvestDays: 45, SoilType: "franco"},
		{ID: 2, Species: "Tomate", Types: []garden.PlantType{garden.TypeVegetable}, Size: 0.3, WeeklyWatering: 12, HarvestDays: 80, SoilType: "franco"},
		{ID: 3, Species: "Albahaca", Types: []garden.PlantType{garden.TypeAromatic}, Size: 0.15, WeeklyWatering: 6, HarvestDays: 60, SoilType: "arenoso"},
	}
}

func baseConfig(seed uint64) garden.GAConfig {
	s := seed
	return garden.GAConfig{
		PopulationSize:       10,
		MaxGenerations:       5,
		CrossoverProbability: 0.7,
		MutationRate:         0.2,
		InsertionRate:        0.1,
		DeletionRate:         0.1,
		TournamentK:          3,
		EliteCount:           2,
		Patience:             20,
		ConvergenceThreshold: 0,
		MaxSpecies:           3,
		Seed:                 &s,
	}
}

func TestEngineRunProducesTopThreeAndStoppingReason(t *testing.T) {
	e := &Engine{
		Config:        baseConfig(11),
		Constraints:   garden.Constraints{MaxArea: 20, MaxWaterWeekly: 200},
		Objective:     garden.ObjectiveAlimenticio,
		Pool:          enginePool(),
		Compatibility: stubCompat{},
		Evaluator:     fitness.NewEvaluator(stubCompat{}),
	}

	result, err := e.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.TopSolutions) != 3 {
		t.Fatalf("expected 3 top solutions, got %d", len(result.TopSolutions))
	}
	if result.StoppingReason == "" {
		t.Fatal("expected a non-empty stopping reason")
	}
	if result.Generations > e.Config.MaxGenerations {
		t.Fatalf("generations %d exceeded MaxGenerations %d", result.Generations, e.Config.MaxGenerations)
	}
}

func TestEngineRunIsDeterministicForFixedSeed(t *testing.T) {
	build := func() *Engine {
		return &Engine{
			Config:        baseConfig(99),
			Constraints:   garden.Constraints{MaxArea: 20, MaxWaterWeekly: 200},
			Objective:     garden.ObjectiveSostenible,
			Pool:          enginePool(),
			Compatibility: stubCompat{},
			Evaluator:     fitness.NewEvaluator(stubCompat{}),
		}
	}

	r1, err := build().Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := build().Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r1.BestFitness != r2.BestFitness {
		t.Fatalf("same seed produced different best fitness: %v vs %v", r1.BestFitness, r2.BestFitness)
	}
	if r1.Generations != r2.Generations {
		t.Fatalf("same seed produced different generation counts: %d vs %d", r1.Generations, r2.Generations)
	}
}

func TestEngineRunRespectsMaxGenerationsWithoutConvergence(t *testing.T) {
	cfg := baseConfig(3)
	cfg.MaxGenerations = 2
	cfg.Patience = 1000
	cfg.ConvergenceThreshold = 0

	e := &Engine{
		Config:        cfg,
		Constraints:   garden.Constraints{MaxArea: 20, MaxWaterWeekly: 200},
		Objective:     garden.ObjectiveMedicinal,
		Pool:          enginePool(),
		Compatibility: stubCompat{},
		Evaluator:     fitness.NewEvaluator(stubCompat{}),
	}

	result, err := e.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Generations != cfg.MaxGenerations {
		t.Fatalf("expected exactly %d generations, got %d", cfg.MaxGenerations, result.Generations)
	}
	if result.StoppingReason != garden.StoppingMaxGenerations {
		t.Fatalf("expected max_generations stop, got %v", result.StoppingReason)
	}
}
