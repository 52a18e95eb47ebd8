package orchestrator

import (
	"errors"
	"testing"

	"github.com/fernwood-labs/huertogen/garden"
	"github.com/fernwood-labs/huertogen/garden/catalogue"
	"github.com/fernwood-labs/huertogen/garden/compat"
)

func smallCatalogueStore(t *testing.T) (*catalogue.InMemory, *compat.Index) {
	t.Helper()
	plants := []garden.Plant{
		{ID: 1, Species: "Cilantro", Types: []garden.PlantType{garden.TypeAromatic}, Size: 0.08, WeeklyWatering: 4, HarvestDays: 30, SoilType: "franco"},
		{ID: 2, Species: "Tomate", Types: []garden.PlantType{garden.TypeVegetable}, Size: 0.3, WeeklyWatering: 12, HarvestDays: 80, SoilType: "franco"},
		{ID: 3, Species: "Albahaca", Types: []garden.PlantType{garden.TypeAromatic, garden.TypeMedicinal}, Size: 0.15, WeeklyWatering: 6, HarvestDays: 60, SoilType: "arenoso"},
	}
	store, err := catalogue.NewInMemory(plants)
	if err != nil {
		t.Fatalf("unexpected catalogue error: %v", err)
	}

	index, err := compat.Build([]garden.CompatibilityEntry{
		{Species1: "Cilantro", Species2: "Tomate", Score: 1.0},
		{Species1: "Cilantro", Species2: "Albahaca", Score: 1.0},
		{Species1: "Tomate", Species2: "Albahaca", Score: 0.8},
	})
	if err != nil {
		t.Fatalf("unexpected compatibility build error: %v", err)
	}
	return store, index
}

func TestRunEmptyRequestReturnsThreeSolutions(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)

	seed := uint64(42)
	resp, err := o.Run(Request{UserID: "u", UserExperience: 2, Seed: &seed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success=true")
	}
	if len(resp.Solutions) != 3 {
		t.Fatalf("expected 3 solutions, got %d", len(resp.Solutions))
	}
	for _, s := range resp.Solutions {
		if len(s.Layout.Instances) < 1 {
			t.Fatalf("expected each solution to carry placed instances, got %+v", s.Layout)
		}
	}
}

func TestRunPinnedSpeciesSelectsExactPool(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)

	seed := uint64(1)
	waterLimit := 150.0
	resp, err := o.Run(Request{
		UserID:          "u",
		UserExperience:  2,
		DesiredPlantIDs: []int{1, 2, 3},
		MaxPlantSpecies: 3,
		Dimensions:      &Dimensions{Width: 2, Height: 1},
		WaterLimit:      &waterLimit,
		Objective:       "alimenticio",
		Seed:            &seed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Metadata.SelectedPlants) != 3 {
		t.Fatalf("expected pool of exactly 3, got %d", len(resp.Metadata.SelectedPlants))
	}
}

func TestRunInfeasibleWaterStillReturnsSolutions(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)

	seed := uint64(1)
	waterLimit := 1.0
	resp, err := o.Run(Request{
		UserID:         "u",
		UserExperience: 2,
		WaterLimit:     &waterLimit,
		Seed:           &seed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Solutions) == 0 {
		t.Fatal("expected solver to still return solutions under an infeasible water limit")
	}
	for _, s := range resp.Solutions {
		if len(s.Layout.Instances) > 0 && s.Metrics.EH > 0.001 {
			t.Logf("EH = %v (not strictly required to be 0 at this population size)", s.Metrics.EH)
		}
	}
}

func TestRunMissingUserIDIsValidationError(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)

	_, err := o.Run(Request{UserExperience: 2})
	if err == nil {
		t.Fatal("expected a validation error for missing userId")
	}
}

type stubProfile map[string]int

func (s stubProfile) GetByID(userID string) (*catalogue.UserProfileData, bool) {
	level, ok := s[userID]
	if !ok {
		return nil, false
	}
	return &catalogue.UserProfileData{ExperienceLevel: level}, true
}

type stubNotifier struct {
	sent bool
	err  error
}

func (s *stubNotifier) Send(userID, title, body string, data map[string]any) error {
	s.sent = true
	return s.err
}

func TestRunFallsBackToUserProfileForMissingExperience(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)
	o.UserProfile = stubProfile{"u": 3}

	seed := uint64(2)
	resp, err := o.Run(Request{UserID: "u", Seed: &seed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Solutions) == 0 {
		t.Fatal("expected at least one solution via the user-profile fallback")
	}
}

func TestRunMissingExperienceWithoutProfileIsValidationError(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)

	_, err := o.Run(Request{UserID: "u"})
	if err == nil {
		t.Fatal("expected a validation error when no UserProfile is wired and userExperience is missing")
	}
}

func TestRunFiresNotificationOnSuccess(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)
	notifier := &stubNotifier{}
	o.Notifier = notifier

	seed := uint64(3)
	_, err := o.Run(Request{UserID: "u", UserExperience: 2, Seed: &seed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !notifier.sent {
		t.Fatal("expected the wired notifier to be invoked on a successful run")
	}
}

func TestRunSwallowsNotificationFailure(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)
	o.Notifier = &stubNotifier{err: errors.New("sink unavailable")}

	seed := uint64(4)
	_, err := o.Run(Request{UserID: "u", UserExperience: 2, Seed: &seed})
	if err != nil {
		t.Fatalf("a failing notifier must never surface as a run error: %v", err)
	}
}

func TestRunTimeoutStillReturnsAtLeastOneSolution(t *testing.T) {
	store, index := smallCatalogueStore(t)
	o := New(store, index, nil)

	seed := uint64(7)
	resp, err := o.Run(Request{
		UserID:         "u",
		UserExperience: 2,
		TimeoutMs:      50,
		PopulationSize: 50,
		MaxGenerations: 10000,
		Seed:           &seed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Solutions) == 0 {
		t.Fatal("expected at least one solution even on timeout")
	}
}
