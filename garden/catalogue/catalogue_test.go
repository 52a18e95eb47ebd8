package catalogue

import (
	"testing"

	"github.com/fernwood-labs/huertogen/garden"
)

func TestNewInMemoryRejectsDuplicateSpecies(t *testing.T) {
	plants := []garden.Plant{
		{ID: 1, Species: "Cilantro", Types: []garden.PlantType{garden.TypeAromatic}},
		{ID: 2, Species: "Cilantro", Types: []garden.PlantType{garden.TypeAromatic}},
	}
	if _, err := NewInMemory(plants); err == nil {
		t.Fatal("expected a CatalogueError for duplicate species")
	}
}

func TestNewInMemoryRejectsEmptyTypeSet(t *testing.T) {
	plants := []garden.Plant{{ID: 1, Species: "Cilantro", Types: nil}}
	if _, err := NewInMemory(plants); err == nil {
		t.Fatal("expected a CatalogueError for an empty type set")
	}
}

func TestNewInMemoryListAllAndFindByID(t *testing.T) {
	plants := []garden.Plant{
		{ID: 1, Species: "Cilantro", Types: []garden.PlantType{garden.TypeAromatic}},
		{ID: 2, Species: "Tomate", Types: []garden.PlantType{garden.TypeVegetable}},
	}
	store, err := NewInMemory(plants)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.ListAll()) != 2 {
		t.Fatalf("expected 2 plants, got %d", len(store.ListAll()))
	}
	p, ok := store.FindByID(2)
	if !ok || p.Species != "Tomate" {
		t.Fatalf("expected to find Tomate by id 2, got %+v, %v", p, ok)
	}
	if _, ok := store.FindByID(99); ok {
		t.Fatal("expected id 99 to be absent")
	}
}

func TestLoadCatalogueFromFileMissingPathIsCatalogueError(t *testing.T) {
	_, err := LoadCatalogueFromFile("/nonexistent/catalogue.yaml")
	if err == nil {
		t.Fatal("expected a CatalogueError for a missing file")
	}
}
