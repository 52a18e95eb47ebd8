package fitness

import "github.com/fernwood-labs/huertogen/garden"

// weightTables holds the four objective-dependent weight rows. Each
// row sums to 1.
var weightTables = map[garden.Objective]map[string]float64{
	garden.ObjectiveAlimenticio: {
		MetricCEE: 0.15, MetricPSRNT: 0.40, MetricEH: 0.15,
		MetricUE: 0.10, MetricCS: 0.10, MetricBSN: 0.10,
	},
	garden.ObjectiveMedicinal: {
		MetricCEE: 0.20, MetricPSRNT: 0.35, MetricEH: 0.10,
		MetricUE: 0.10, MetricCS: 0.10, MetricBSN: 0.15,
	},
	garden.ObjectiveSostenible: {
		MetricCEE: 0.20, MetricPSRNT: 0.15, MetricEH: 0.30,
		MetricUE: 0.10, MetricCS: 0.10, MetricBSN: 0.15,
	},
	garden.ObjectiveOrnamental: {
		MetricCEE: 0.15, MetricPSRNT: 0.30, MetricEH: 0.10,
		MetricUE: 0.20, MetricCS: 0.10, MetricBSN: 0.15,
	},
}

// WeightsFor returns the weight row for an objective, defaulting to
// alimenticio's row when the objective is unrecognized (orchestrator
// normalization should prevent this, but the evaluator must never
// panic on bad data).
func WeightsFor(obj garden.Objective) map[string]float64 {
	if row, ok := weightTables[obj]; ok {
		return row
	}
	return weightTables[garden.ObjectiveAlimenticio]
}

// NewObjectiveAggregator builds the WeightedAggregator used by the
// Evaluator: its ContextAdjuster ignores the passed-in weights
// entirely and resolves the row for the context's objective, since the
// whole row is tied to the objective rather than adjusting individual
// weights.
func NewObjectiveAggregator() *WeightedAggregator {
	return &WeightedAggregator{
		ContextAdjuster: func(_ map[string]float64, ctx Context) map[string]float64 {
			return WeightsFor(ctx.Objective())
		},
	}
}
