// Package selector implements the Plant Selector: it
// scores catalogue species against the objective, mutual
// compatibility and user preferences, then greedily picks up to
// maxSpecies of them.
//
// The weighted multi-factor scoring step generalizes
// lixenwraith-vi-fighter/genetic/fitness/weighted.go's WeightedAggregator
// from "weighted metric sum for one individual" to "weighted score per
// catalogue candidate"; the greedy mutual-compatibility gate (step 4)
// has no teacher analogue and is new code written in the
// same plain-function style.
package selector

import (
	"math"
	"sort"

	"github.com/fernwood-labs/huertogen/garden"
)

// CompatibilityLookup is the minimal surface the selector needs from
// garden/compat.Index.
type CompatibilityLookup interface {
	Lookup(a, b string) float64
}

// Config configures one selection pass.
type Config struct {
	DesiredPlantIDs    map[int]struct{}
	MaxSpecies         int
	Objective          garden.Objective
	Compatibility      CompatibilityLookup
	Season             string // reserved, pass-through
}

// scored pairs a candidate plant with its computed selection score.
type scored struct {
	plant garden.Plant
	score float64
}

// strongNegativeThreshold is the "strongly negative" pairing cutoff
// used by the greedy gate in step 4.
const strongNegativeThreshold = -0.3

// Select runs the full pipeline and returns 1..maxSpecies plants. It
// never fails and always returns at least one plant when catalogue is
// non-empty.
func Select(catalogue []garden.Plant, cfg Config) []garden.Plant {
	if len(catalogue) == 0 {
		return nil
	}

	candidates := filterByDesired(catalogue, cfg.DesiredPlantIDs)
	scoredCandidates := scoreAll(candidates, cfg)

	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		return scoredCandidates[i].score > scoredCandidates[j].score
	})

	picked := greedyPick(scoredCandidates, cfg)

	if len(picked) < cfg.MaxSpecies {
		picked = fillRemainder(picked, scoredCandidates, cfg.MaxSpecies)
	}

	return picked
}

// filterByDesired restricts to the desired id set, falling back to
// the full catalogue only when none of the desired ids match a
// catalogue row.
func filterByDesired(catalogue []garden.Plant, desired map[int]struct{}) []garden.Plant {
	if len(desired) == 0 {
		return catalogue
	}

	var filtered []garden.Plant
	for _, p := range catalogue {
		if _, ok := desired[p.ID]; ok {
			filtered = append(filtered, p)
		}
	}

	// An explicit, non-empty pin is honored as-is, even if it names
	// fewer than maxSpecies plants: a single pinned id must select
	// exactly that plant, not the whole catalogue. The fallback only
	// covers pins that match nothing in the catalogue.
	if len(filtered) == 0 {
		return catalogue
	}
	return filtered
}

func scoreAll(candidates []garden.Plant, cfg Config) []scored {
	result := make([]scored, len(candidates))
	for i, p := range candidates {
		result[i] = scored{
			plant: p,
			score: 0.30*objectiveScore(p, cfg.Objective) +
				0.40*compatibilityScore(p, candidates, cfg.Compatibility) +
				0.20*resourceScore(p) +
				0.10*diversityScore(p),
		}
	}
	return result
}

// objectiveScore implements the per-objective scoring rules.
func objectiveScore(p garden.Plant, objective garden.Objective) float64 {
	switch objective {
	case garden.ObjectiveAlimenticio:
		if p.HasType(garden.TypeVegetable) {
			return 1.0
		}
		return 0.3
	case garden.ObjectiveMedicinal:
		if p.HasType(garden.TypeMedicinal) {
			return 1.0
		}
		if p.HasType(garden.TypeAromatic) {
			return 0.6
		}
		return 0.2
	case garden.ObjectiveSostenible:
		v := 1 - p.WeeklyWatering/100
		if v < 0 {
			v = 0
		}
		return v
	case garden.ObjectiveOrnamental:
		if p.HasType(garden.TypeOrnamental) {
			return 1.0
		}
		if p.HasType(garden.TypeAromatic) {
			return 0.5
		}
		return 0.2
	default:
		return 0.2
	}
}

// compatibilityScore is the mean pairwise compatibility with every
// other candidate (excluding the same species), remapped from
// [-1, 1] to [0, 1]; 1.0 when there is only one candidate.
func compatibilityScore(p garden.Plant, candidates []garden.Plant, compat CompatibilityLookup) float64 {
	var sum float64
	var count int
	for _, other := range candidates {
		if other.Species == p.Species {
			continue
		}
		sum += compat.Lookup(p.Species, other.Species)
		count++
	}
	if count == 0 {
		return 1.0
	}
	mean := sum / float64(count)
	return (mean + 1) / 2
}

// resourceScore rewards small footprint and low watering need.
func resourceScore(p garden.Plant) float64 {
	sizeTerm := 1 - p.Size/2
	if sizeTerm < 0 {
		sizeTerm = 0
	}
	waterTerm := 1 - p.WeeklyWatering/100
	if waterTerm < 0 {
		waterTerm = 0
	}
	return (sizeTerm + waterTerm) / 2
}

// diversityScore rewards carrying multiple category tags.
func diversityScore(p garden.Plant) float64 {
	return math.Min(1, float64(len(p.Types))/3)
}

// greedyPick accepts sorted candidates in score order, gated by mutual
// compatibility: a candidate is accepted only if it has at most one
// strongly negative (< -0.3) pairing with already-selected members.
func greedyPick(sortedCandidates []scored, cfg Config) []garden.Plant {
	var picked []garden.Plant
	for _, c := range sortedCandidates {
		if len(picked) >= cfg.MaxSpecies {
			break
		}
		if strongNegativeCount(c.plant, picked, cfg.Compatibility) <= 1 {
			picked = append(picked, c.plant)
		}
	}
	return picked
}

func strongNegativeCount(p garden.Plant, picked []garden.Plant, compat CompatibilityLookup) int {
	var n int
	for _, other := range picked {
		if compat.Lookup(p.Species, other.Species) < strongNegativeThreshold {
			n++
		}
	}
	return n
}

// fillRemainder fills any leftover slots by pure score order, ignoring
// the compatibility gate.
func fillRemainder(picked []garden.Plant, sortedCandidates []scored, maxSpecies int) []garden.Plant {
	pickedIDs := make(map[int]struct{}, len(picked))
	for _, p := range picked {
		pickedIDs[p.ID] = struct{}{}
	}
	for _, c := range sortedCandidates {
		if len(picked) >= maxSpecies {
			break
		}
		if _, already := pickedIDs[c.plant.ID]; already {
			continue
		}
		picked = append(picked, c.plant)
		pickedIDs[c.plant.ID] = struct{}{}
	}
	return picked
}
