package ga

import (
	"testing"

	"github.com/fernwood-labs/huertogen/garden"
)

func makeFitIndividual(fitness float64) *garden.Individual {
	ind := garden.NewIndividual(garden.NewDimensions(10, 10))
	ind.Metrics = &garden.Metrics{Fitness: fitness}
	return ind
}

func TestTournamentSelectPrefersHigherFitness(t *testing.T) {
	population := []*garden.Individual{
		makeFitIndividual(0.1),
		makeFitIndividual(0.9),
		makeFitIndividual(0.5),
	}
	rng := NewRNG(1)

	var sawWinner bool
	for i := 0; i < 50; i++ {
		winner := TournamentSelect(population, 3, rng)
		if winner.Fitness() == 0.9 {
			sawWinner = true
		}
	}
	if !sawWinner {
		t.Fatal("expected the fittest individual to win at least one full-population tournament")
	}
}

func TestUniformCrossoverInheritsParentOneDimensions(t *testing.T) {
	p1 := garden.NewIndividual(garden.NewDimensions(4, 4))
	p1.Plants = []garden.PlantInstance{garden.NewPlantInstance(lettuce(), 0, 0)}
	p2 := garden.NewIndividual(garden.NewDimensions(6, 6))
	p2.Plants = []garden.PlantInstance{garden.NewPlantInstance(lettuce(), 1, 1), garden.NewPlantInstance(lettuce(), 2, 2)}

	rng := NewRNG(5)
	child1, child2 := UniformCrossover(p1, p2, rng)

	if child1.Dimensions != p1.Dimensions || child2.Dimensions != p1.Dimensions {
		t.Fatal("both children must inherit parent1's plot dimensions")
	}
	if len(child1.Plants) == 0 && len(child2.Plants) == 0 {
		t.Fatal("expected at least one child to inherit plant instances")
	}
}

func TestMutateDeleteNeverDropsBelowTwoInstances(t *testing.T) {
	ind := garden.NewIndividual(garden.NewDimensions(5, 5))
	ind.Plants = []garden.PlantInstance{
		garden.NewPlantInstance(lettuce(), 0, 0),
		garden.NewPlantInstance(lettuce(), 2, 2),
	}
	rng := NewRNG(9)

	mutateDelete(ind, rng)
	if len(ind.Plants) != 2 {
		t.Fatalf("expected delete to be a no-op at the floor, got %d plants", len(ind.Plants))
	}
}

func TestMutateInsertRespectsSpeciesCap(t *testing.T) {
	ind := garden.NewIndividual(garden.NewDimensions(50, 50))
	for i := 0; i < 9; i++ {
		ind.Plants = append(ind.Plants, garden.NewPlantInstance(lettuce(), float64(i), 0))
	}
	rng := NewRNG(2)
	c := garden.Constraints{MaxArea: 2500}

	mutateInsert(ind, []garden.Plant{lettuce()}, c, 3, stubCompat{}, rng)
	if len(ind.Plants) != 9 {
		t.Fatalf("expected insert to be a no-op at the 3*maxSpecies cap, got %d", len(ind.Plants))
	}
}

func TestMutateSwapPreservesInstanceSet(t *testing.T) {
	ind := garden.NewIndividual(garden.NewDimensions(5, 5))
	a := garden.NewPlantInstance(lettuce(), 0, 0)
	b := garden.NewPlantInstance(lettuce(), 1, 1)
	ind.Plants = []garden.PlantInstance{a, b}
	rng := NewRNG(4)

	mutateSwap(ind, rng)
	if len(ind.Plants) != 2 {
		t.Fatalf("swap must not change the instance count, got %d", len(ind.Plants))
	}
}
