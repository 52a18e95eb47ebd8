// Package orchestrator normalizes an inbound request, drives the
// Selector -> GA -> Validator pipeline, and assembles the ranked
// response.
//
// Grounded on lixenwraith-vi-fighter/genetic/registry/registry.go's
// top-level coordinator shape, which sequences one call into the
// right subsystem behind a single method (Register/Start/Sample/
// CompleteTracking); that sequencing is generalized here into a
// single Run(Request) (*Response, error) entry point. The layered
// default-filling style is grounded on C360Studio-semspec/config's
// DefaultConfig()+Merge() pattern and logged with slog the same way.
package orchestrator

import (
	"math"
	"time"

	"github.com/fernwood-labs/huertogen/garden"
	"github.com/fernwood-labs/huertogen/garden/ga"
)

// defaultLatitude and defaultLongitude are Tuxtla Gutiérrez's
// coordinates, used when a request omits a location.
const (
	defaultLatitude  = 16.75
	defaultLongitude = -93.11
)

// Dimensions mirrors the inbound request's plot size in meters.
type Dimensions struct {
	Width  float64
	Height float64
}

// Location is a latitude/longitude pair. It is defaulted during
// normalization but no pipeline stage reads it; season is passed
// through as given.
type Location struct {
	Lat float64
	Lon float64
}

// Request is the core's inbound contract. Every field is optional
// except UserID and UserExperience; normalize fills the rest with
// documented defaults.
type Request struct {
	UserID               string
	DesiredPlantIDs      []int
	MaxPlantSpecies      int
	Dimensions           *Dimensions
	WaterLimit           *float64
	UserExperience       int
	Season               string
	Location             *Location
	CategoryDistribution *garden.CategoryDistribution
	Budget               *float64
	Objective            string
	MaintenanceMinutes   *float64

	// GA tuning, all optional.
	PopulationSize       int
	MaxGenerations       int
	CrossoverProbability float64
	MutationRate         float64
	InsertionRate        float64
	DeletionRate         float64
	TournamentK          int
	EliteCount           int
	Patience             int
	ConvergenceThreshold float64
	TimeoutMs            int
	Seed                 *uint64
}

// normalized is a Request with every field resolved to a concrete
// value, ready to drive the pipeline.
type normalized struct {
	userID               string
	desiredPlantIDs      map[int]struct{}
	maxPlantSpecies      int
	dimensions           Dimensions
	waterLimit           float64
	userExperience       int
	season               string
	location             Location
	categoryDistribution *garden.CategoryDistribution
	budget               float64
	objective            garden.Objective
	maintenanceMinutes   float64
	gaConfig             garden.GAConfig
}

// normalize fills every documented default, drawing from rng for the
// defaults that are randomized when omitted (dimensions, water limit).
func (r Request) normalize(rng *ga.RNG) normalized {
	n := normalized{
		userID:         r.UserID,
		userExperience: r.UserExperience,
	}

	n.maxPlantSpecies = r.MaxPlantSpecies
	if n.maxPlantSpecies != 3 && n.maxPlantSpecies != 5 {
		n.maxPlantSpecies = 5
	}

	if len(r.DesiredPlantIDs) > 0 {
		n.desiredPlantIDs = make(map[int]struct{}, len(r.DesiredPlantIDs))
		for _, id := range r.DesiredPlantIDs {
			n.desiredPlantIDs[id] = struct{}{}
		}
	}

	if r.Dimensions != nil {
		n.dimensions = *r.Dimensions
	} else {
		area := rng.Range(1, 5)
		aspect := rng.Range(0.6, 1.4)
		width := math.Sqrt(area * aspect)
		n.dimensions = Dimensions{Width: width, Height: area / width}
	}
	area := n.dimensions.Width * n.dimensions.Height

	if r.WaterLimit != nil {
		n.waterLimit = *r.WaterLimit
	} else {
		n.waterLimit = area * rng.Range(50, 80)
	}

	n.season = r.Season
	if n.season == "" {
		n.season = "auto"
	}

	if r.Location != nil {
		n.location = *r.Location
	} else {
		n.location = Location{Lat: defaultLatitude, Lon: defaultLongitude}
	}

	n.categoryDistribution = r.CategoryDistribution

	if r.Budget != nil {
		n.budget = *r.Budget
	} else {
		n.budget = area * 200
	}

	n.objective = garden.Objective(r.Objective)
	switch n.objective {
	case garden.ObjectiveAlimenticio, garden.ObjectiveMedicinal, garden.ObjectiveSostenible, garden.ObjectiveOrnamental:
	default:
		n.objective = garden.ObjectiveAlimenticio
	}

	if r.MaintenanceMinutes != nil {
		n.maintenanceMinutes = *r.MaintenanceMinutes
	} else {
		n.maintenanceMinutes = float64(n.userExperience) * 60
	}

	n.gaConfig = garden.GAConfig{
		PopulationSize:       orDefaultInt(r.PopulationSize, 50),
		MaxGenerations:       orDefaultInt(r.MaxGenerations, 100),
		CrossoverProbability: orDefaultFloat(r.CrossoverProbability, 0.8),
		MutationRate:         orDefaultFloat(r.MutationRate, 0.1),
		InsertionRate:        orDefaultFloat(r.InsertionRate, 0.05),
		DeletionRate:         orDefaultFloat(r.DeletionRate, 0.05),
		TournamentK:          orDefaultInt(r.TournamentK, 3),
		EliteCount:           orDefaultInt(r.EliteCount, 2),
		Patience:             orDefaultInt(r.Patience, 20),
		ConvergenceThreshold: orDefaultFloat(r.ConvergenceThreshold, 0.001),
		Timeout:              time.Duration(orDefaultInt(r.TimeoutMs, 30000)) * time.Millisecond,
		Seed:                 r.Seed,
		MaxSpecies:           n.maxPlantSpecies,
	}

	return n
}

func orDefaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func orDefaultFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
