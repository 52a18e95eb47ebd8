package compat

import (
	"errors"
	"testing"

	"github.com/fernwood-labs/huertogen/garden"
)

func TestLookupDirectAndReverse(t *testing.T) {
	idx, err := Build([]garden.CompatibilityEntry{
		{Species1: "Cilantro", Species2: "Tomate", Score: 0.8},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := idx.Lookup("Cilantro", "Tomate"); got != 0.8 {
		t.Errorf("direct lookup: got %v, want 0.8", got)
	}
	if got := idx.Lookup("Tomate", "Cilantro"); got != 0.8 {
		t.Errorf("reverse lookup: got %v, want 0.8", got)
	}
}

func TestLookupMissingPairIsNeutral(t *testing.T) {
	idx, err := Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := idx.Lookup("A", "B"); got != 0 {
		t.Errorf("missing pair: got %v, want 0", got)
	}
}

func TestBuildRejectsOutOfRangeScore(t *testing.T) {
	_, err := Build([]garden.CompatibilityEntry{
		{Species1: "A", Species2: "B", Score: 1.5},
	})
	if err == nil {
		t.Fatal("expected error for out-of-range score")
	}
	var catErr *garden.CatalogueError
	if !errors.As(err, &catErr) {
		t.Errorf("expected CatalogueError, got %v", err)
	}
}
