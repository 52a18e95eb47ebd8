package fitness

import (
	"math"

	"github.com/fernwood-labs/huertogen/garden"
)

// clamp01 restricts a score to [0, 1]; every sub-metric is clamped.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CompatibilityLookup is the minimal surface the evaluator needs from
// garden/compat.Index, kept as an interface so this package has no
// import-time dependency on the compat package.
type CompatibilityLookup interface {
	Lookup(a, b string) float64
}

// Evaluator computes an Individual's six sub-metrics and aggregated
// fitness.
type Evaluator struct {
	compat     CompatibilityLookup
	aggregator *WeightedAggregator
}

// NewEvaluator builds an Evaluator backed by the given compatibility
// lookup.
func NewEvaluator(compat CompatibilityLookup) *Evaluator {
	return &Evaluator{compat: compat, aggregator: NewObjectiveAggregator()}
}

// Evaluate computes and returns a fresh *garden.Metrics for the
// individual. It never mutates ind.Metrics itself; callers assign the
// result; recomputing metrics after any structural mutation is the
// caller's responsibility.
func (e *Evaluator) Evaluate(ind *garden.Individual, c garden.Constraints, objective garden.Objective) (*garden.Metrics, error) {
	row := WeightsFor(objective)
	if sum := sumWeights(row); math.Abs(sum-1.0) > 1e-9 {
		return nil, garden.NewEvaluationError("weights", "objective weight row does not sum to 1")
	}

	bundle := Bundle{
		MetricCEE:   e.cee(ind.Plants),
		MetricPSRNT: e.psrnt(ind.Plants, c.DesiredCategoryDistribution),
		MetricEH:    e.eh(ind.TotalWeeklyWater(), c.MaxWaterWeekly),
		MetricUE:    e.ue(ind.UsedArea(), ind.Dimensions.TotalArea),
		MetricCS:    e.cs(ind.Plants),
		MetricBSN:   e.bsn(ind.Plants),
	}

	for key, v := range bundle {
		if v < 0 || v > 1 {
			return nil, garden.NewEvaluationError(key, "sub-metric outside [0, 1]")
		}
	}

	fitness := clamp01(e.aggregator.Calculate(bundle, ObjectiveContext(objective)))

	return &garden.Metrics{
		CEE:     bundle[MetricCEE],
		PSRNT:   bundle[MetricPSRNT],
		EH:      bundle[MetricEH],
		UE:      bundle[MetricUE],
		CS:      bundle[MetricCS],
		BSN:     bundle[MetricBSN],
		Fitness: fitness,
	}, nil
}

func sumWeights(row map[string]float64) float64 {
	var s float64
	for _, w := range row {
		s += w
	}
	return s
}

// cee is the pairwise compatibility metric with distance weighting and
// amplified penalty/bonus near the danger/bonus distance thresholds.
func (e *Evaluator) cee(plants []garden.PlantInstance) float64 {
	if len(plants) < 2 {
		return 1.0
	}

	var sumContrib, sumWeight float64
	for i := 0; i < len(plants); i++ {
		for j := i + 1; j < len(plants); j++ {
			p, q := plants[i], plants[j]
			d := p.Distance(q)
			w := math.Exp(-d / 2)
			compat := e.compat.Lookup(p.Plant.Species, q.Plant.Species)

			contrib := compat * w
			if compat < -0.5 && d < 1.5 {
				contrib *= 2
			} else if compat > 0.5 && d < 1.0 {
				contrib *= 1.5
			}

			sumContrib += contrib
			sumWeight += w
		}
	}

	if sumWeight == 0 {
		return 1.0
	}

	raw := sumContrib / sumWeight // in roughly [-1, 1] (can exceed with amplification)
	if raw < -1 {
		raw = -1
	} else if raw > 1 {
		raw = 1
	}
	// remap [-1, 1] -> [0, 1]
	return clamp01((raw + 1) / 2)
}

// categoryCounts tallies tag incidences across the four category
// buckets, in the fixed order vegetable/medicinal/aromatic/ornamental.
func categoryCounts(plants []garden.PlantInstance) [4]float64 {
	var counts [4]float64
	for _, p := range plants {
		for _, t := range p.Plant.Types {
			switch t {
			case garden.TypeVegetable:
				counts[0]++
			case garden.TypeMedicinal:
				counts[1]++
			case garden.TypeAromatic:
				counts[2]++
			case garden.TypeOrnamental:
				counts[3]++
			}
		}
	}
	return counts
}

// actualPercentages normalizes the raw incidence counts to a 4-bucket
// vector summing to 100, or all-zero when there are no plants/tags.
func actualPercentages(plants []garden.PlantInstance) [4]float64 {
	counts := categoryCounts(plants)
	var total float64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return [4]float64{}
	}
	var pct [4]float64
	for i, c := range counts {
		pct[i] = c / total * 100
	}
	return pct
}

// psrnt is the category-distribution satisfaction metric, or a
// Shannon-entropy diversity bonus when no desired distribution was
// supplied.
func (e *Evaluator) psrnt(plants []garden.PlantInstance, desired *garden.CategoryDistribution) float64 {
	actual := actualPercentages(plants)

	if desired == nil {
		return shannonDiversity(actual)
	}

	desiredVec := [4]float64{desired.Vegetable, desired.Medicinal, desired.Aromatic, desired.Ornamental}
	var mse float64
	for i := range actual {
		diff := actual[i] - desiredVec[i]
		mse += diff * diff
	}
	mse /= 4

	score := 1 - math.Sqrt(mse)/100
	if score < 0 {
		score = 0
	}
	return clamp01(score)
}

func shannonDiversity(actual [4]float64) float64 {
	var h float64
	for _, pctValue := range actual {
		if pctValue <= 0 {
			continue
		}
		p := pctValue / 100
		h -= p * math.Log2(p)
	}
	return clamp01(h / math.Log2(4))
}

// eh is the piecewise water-efficiency curve.
func (e *Evaluator) eh(totalWeeklyWater, maxWaterWeekly float64) float64 {
	if maxWaterWeekly == 0 {
		return 1.0
	}
	u := totalWeeklyWater / maxWaterWeekly

	switch {
	case u > 1.00:
		v := 1 - (u-1)*2
		if v < 0 {
			v = 0
		}
		return clamp01(v)
	case u >= 0.80 && u <= 0.95:
		return 1.0
	case u < 0.80:
		return clamp01(u / 0.80)
	default: // 0.95 < u <= 1.00
		return clamp01(1 - (u-0.95)*2)
	}
}

// ue is the space-utilization metric.
func (e *Evaluator) ue(usedArea, totalArea float64) float64 {
	if totalArea == 0 {
		return 0
	}
	u := usedArea / totalArea

	switch {
	case u >= 0.70 && u <= 0.85:
		return 1.0
	case u < 0.70:
		return clamp01(u / 0.70)
	default:
		v := 1 - (u-0.85)*3
		if v < 0 {
			v = 0
		}
		return clamp01(v)
	}
}

// cs is the harvest-cycle synchronization metric: the lower the
// spread of harvestDays across the layout, the higher the score.
func (e *Evaluator) cs(plants []garden.PlantInstance) float64 {
	if len(plants) < 2 {
		return 1.0
	}

	var sum float64
	for _, p := range plants {
		sum += float64(p.Plant.HarvestDays)
	}
	mean := sum / float64(len(plants))

	var variance float64
	for _, p := range plants {
		diff := float64(p.Plant.HarvestDays) - mean
		variance += diff * diff
	}
	variance /= float64(len(plants))
	stdev := math.Sqrt(variance)

	score := 1 - stdev/60
	if score < 0 {
		score = 0
	}
	return clamp01(score)
}

// bsn is the soil-type diversity metric.
func (e *Evaluator) bsn(plants []garden.PlantInstance) float64 {
	soils := make(map[string]struct{})
	for _, p := range plants {
		soils[p.Plant.SoilType] = struct{}{}
	}
	k := len(soils)

	switch {
	case k == 2 || k == 3:
		return 1.0
	case k == 1:
		return 0.6
	case k >= 4:
		v := 1 - float64(k-3)*0.2
		if v < 0.4 {
			v = 0.4
		}
		return clamp01(v)
	default: // k == 0, empty layout
		return 1.0
	}
}
