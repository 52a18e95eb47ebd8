package orchestrator

import (
	"math"

	"github.com/fernwood-labs/huertogen/garden"
	"github.com/fernwood-labs/huertogen/garden/validator"
)

// InstanceView is one placed plant as surfaced to a caller.
type InstanceView struct {
	ID             int
	Name           string
	ScientificName string
	Quantity       int
	Position       struct{ X, Y float64 }
	Area           float64
	Types          []garden.PlantType
}

// LayoutView is a solution's physical layout.
type LayoutView struct {
	Dimensions Dimensions
	Instances  []InstanceView
}

// MetricsView is a solution's six sub-scores plus fitness, rounded to
// four decimals for display.
type MetricsView struct {
	CEE     float64
	PSRNT   float64
	EH      float64
	UE      float64
	CS      float64
	BSN     float64
	Fitness float64
}

// Estimations are the derived per-solution quantities.
type Estimations struct {
	MonthlyProductionKg       float64
	WeeklyWaterLiters         float64
	ImplementationCostMXN     float64
	MaintenanceMinutesPerWeek float64
}

// HarvestWindow summarizes one instance's expected harvest timing,
// counted in days from planting, for the response's calendar summary.
// Full calendar/schedule rendering is an external collaborator's job;
// this is the raw per-instance timing data that renderer would
// consume.
type HarvestWindow struct {
	Species     string
	HarvestDays int
}

// CalendarSummary is the solution-level rollup of harvest timing,
// carried alongside layout/metrics/estimations/compatibility.
type CalendarSummary struct {
	EarliestHarvestDays int
	LatestHarvestDays   int
	AverageHarvestDays  float64
	Windows             []HarvestWindow
}

// CompatibilityLabel categorizes an unordered instance pair's pairwise
// score for display.
type CompatibilityLabel string

const (
	LabelBenefica   CompatibilityLabel = "benefica"
	LabelNeutral    CompatibilityLabel = "neutral"
	LabelPerjudicial CompatibilityLabel = "perjudicial"
)

// PairCompatibility is one unordered instance pair's compatibility
// summary entry.
type PairCompatibility struct {
	InstanceAIndex int
	InstanceBIndex int
	Score          float64
	Label          CompatibilityLabel
}

// Solution is one ranked candidate layout.
type Solution struct {
	Rank             int
	Layout           LayoutView
	Metrics          MetricsView
	Estimations      Estimations
	Calendar         CalendarSummary
	Compatibility    []PairCompatibility
	ValidationReport *validator.Report

	// Individual is the underlying genome, kept for callers that need
	// a lossless round trip (e.g. CLI --out snapshotting) rather than
	// the display-oriented LayoutView. Excluded from JSON responses.
	Individual *garden.Individual `json:"-"`
}

// Metadata carries run-level summary information.
type Metadata struct {
	ExecutionTimeMs       int64
	TotalGenerations      int
	ConvergenceGeneration int
	PopulationSize        int
	StoppingReason        garden.StoppingReason
	AppliedWeights        map[string]float64
	SelectedPlants        []garden.Plant
}

// Response is the core's outbound contract.
type Response struct {
	Success   bool
	Solutions []Solution
	Metadata  Metadata
}

// round4 implements the response's "each rounded to 4 decimals" rule.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func buildMetricsView(m *garden.Metrics) MetricsView {
	if m == nil {
		return MetricsView{}
	}
	return MetricsView{
		CEE:     round4(m.CEE),
		PSRNT:   round4(m.PSRNT),
		EH:      round4(m.EH),
		UE:      round4(m.UE),
		CS:      round4(m.CS),
		BSN:     round4(m.BSN),
		Fitness: round4(m.Fitness),
	}
}

func buildLayoutView(ind *garden.Individual) LayoutView {
	instances := make([]InstanceView, len(ind.Plants))
	for i, p := range ind.Plants {
		view := InstanceView{
			ID:             p.Plant.ID,
			Name:           p.Plant.Species,
			ScientificName: p.Plant.ScientificName,
			Quantity:       1,
			Area:           p.Width * p.Height,
			Types:          p.Plant.Types,
		}
		view.Position.X = p.X
		view.Position.Y = p.Y
		instances[i] = view
	}
	return LayoutView{
		Dimensions: Dimensions{Width: ind.Dimensions.Width, Height: ind.Dimensions.Height},
		Instances:  instances,
	}
}

// buildCompatibilitySummary labels every unordered instance pair
// benefica (>0.5), neutral, or perjudicial (<-0.5).
func buildCompatibilitySummary(ind *garden.Individual, compat validator.CompatibilityLookup) []PairCompatibility {
	var pairs []PairCompatibility
	for i := 0; i < len(ind.Plants); i++ {
		for j := i + 1; j < len(ind.Plants); j++ {
			score := compat.Lookup(ind.Plants[i].Plant.Species, ind.Plants[j].Plant.Species)
			pairs = append(pairs, PairCompatibility{
				InstanceAIndex: i,
				InstanceBIndex: j,
				Score:          round4(score),
				Label:          labelFor(score),
			})
		}
	}
	return pairs
}

func labelFor(score float64) CompatibilityLabel {
	switch {
	case score > 0.5:
		return LabelBenefica
	case score < -0.5:
		return LabelPerjudicial
	default:
		return LabelNeutral
	}
}

// buildCalendarSummary rolls up every instance's catalogue harvestDays
// into the solution-level calendar summary.
func buildCalendarSummary(ind *garden.Individual) CalendarSummary {
	if len(ind.Plants) == 0 {
		return CalendarSummary{}
	}

	earliest := ind.Plants[0].Plant.HarvestDays
	latest := ind.Plants[0].Plant.HarvestDays
	var sum int
	windows := make([]HarvestWindow, len(ind.Plants))

	for i, p := range ind.Plants {
		days := p.Plant.HarvestDays
		if days < earliest {
			earliest = days
		}
		if days > latest {
			latest = days
		}
		sum += days
		windows[i] = HarvestWindow{Species: p.Plant.Species, HarvestDays: days}
	}

	return CalendarSummary{
		EarliestHarvestDays: earliest,
		LatestHarvestDays:   latest,
		AverageHarvestDays:  round4(float64(sum) / float64(len(ind.Plants))),
		Windows:             windows,
	}
}

// buildEstimations computes the four derived per-solution quantities.
func buildEstimations(ind *garden.Individual) Estimations {
	var vegetableArea float64
	for _, p := range ind.Plants {
		if p.Plant.HasType(garden.TypeVegetable) {
			vegetableArea += p.Width * p.Height
		}
	}
	return Estimations{
		MonthlyProductionKg:       round4(vegetableArea * 2),
		WeeklyWaterLiters:         round4(ind.TotalWeeklyWater()),
		ImplementationCostMXN:     round4(ind.TotalCost()),
		MaintenanceMinutesPerWeek: float64(ind.TotalPlants()) * 15,
	}
}
