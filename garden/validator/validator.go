// Package validator implements the five-category batch validation
// pass: botanical, physical, technical, economic, agricultural.
//
// Grounded on lixenwraith-vi-fighter/genetic/registry/registry.go's
// "collect outcomes, never throw for data reasons" style: a missing
// lookup there returns a zero Stats value rather than an error, the
// same posture this package takes toward a failed check — each check
// reports pass/fail into the Report rather than returning early.
package validator

import (
	"fmt"

	"github.com/fernwood-labs/huertogen/garden"
)

// CompatibilityLookup is the minimal surface the Agricultural check
// needs from garden/compat.Index.
type CompatibilityLookup interface {
	Lookup(a, b string) float64
}

// CatalogueLookup is the minimal surface the Botanical check needs.
type CatalogueLookup interface {
	FindByID(id int) (garden.Plant, bool)
}

// experienceMaintenanceMinutes maps userExperience levels 1/2/3 to
// their default weekly maintenance-minute budget.
var experienceMaintenanceMinutes = map[int]float64{1: 60, 2: 120, 3: 180}

const (
	checkBotanical    = "botanical"
	checkPhysical     = "physical"
	checkTechnical    = "technical"
	checkEconomic     = "economic"
	checkAgricultural = "agricultural"

	maxUsedAreaRatio      = 0.85
	agriculturalMinDist   = 1.0
	agriculturalThreshold = -0.5
)

// Report is the aggregated outcome of all five checks.
type Report struct {
	IsValid bool
	Passed  []string
	Failed  []string
	Errors  []string
}

func (r *Report) record(name string, ok bool, reason string) {
	if ok {
		r.Passed = append(r.Passed, name)
		return
	}
	r.Failed = append(r.Failed, name)
	if reason != "" {
		r.Errors = append(r.Errors, reason)
	}
}

// Validate runs all five checks independently against ind and
// aggregates the outcome. maintenanceMinutes is the request's
// available-per-week budget (already defaulted by the orchestrator);
// maxBudget is nil when the request set no economic cap.
func Validate(ind *garden.Individual, catalogue CatalogueLookup, compat CompatibilityLookup, maintenanceMinutes float64, maxBudget *float64) *Report {
	report := &Report{}

	botanical(ind, catalogue, report)
	physical(ind, report)
	technical(ind, maintenanceMinutes, report)
	economic(ind, maxBudget, report)
	agricultural(ind, compat, report)

	report.IsValid = len(report.Failed) == 0
	return report
}

// botanical requires every placed instance's catalogue id to resolve.
func botanical(ind *garden.Individual, catalogue CatalogueLookup, report *Report) {
	if catalogue == nil {
		report.record(checkBotanical, true, "")
		return
	}
	for _, instance := range ind.Plants {
		if _, ok := catalogue.FindByID(instance.Plant.ID); !ok {
			report.record(checkBotanical, false, fmt.Sprintf("unknown plant id %d in layout", instance.Plant.ID))
			return
		}
	}
	report.record(checkBotanical, true, "")
}

// physical requires the used footprint to stay under maxArea and
// under the 85% space-utilization ceiling.
func physical(ind *garden.Individual, report *Report) {
	used := ind.UsedArea()
	total := ind.Dimensions.TotalArea

	if used > ind.Dimensions.TotalArea {
		report.record(checkPhysical, false, fmt.Sprintf("used area %.2f exceeds plot area %.2f", used, total))
		return
	}
	if total > 0 && used/total > maxUsedAreaRatio {
		report.record(checkPhysical, false, fmt.Sprintf("space utilization %.2f exceeds 0.85", used/total))
		return
	}
	report.record(checkPhysical, true, "")
}

// technical requires estimated weekly maintenance time to fit within
// the available budget.
func technical(ind *garden.Individual, maintenanceMinutes float64, report *Report) {
	required := float64(ind.TotalPlants()) * 15
	if required > maintenanceMinutes {
		report.record(checkTechnical, false, fmt.Sprintf("requires %.0f maintenance min/week, budget is %.0f", required, maintenanceMinutes))
		return
	}
	report.record(checkTechnical, true, "")
}

// economic requires total cost to stay under maxBudget, when set.
func economic(ind *garden.Individual, maxBudget *float64, report *Report) {
	if maxBudget == nil {
		report.record(checkEconomic, true, "")
		return
	}
	cost := ind.TotalCost()
	if cost > *maxBudget {
		report.record(checkEconomic, false, fmt.Sprintf("cost %.2f exceeds budget %.2f", cost, *maxBudget))
		return
	}
	report.record(checkEconomic, true, "")
}

// agricultural requires that no two instances closer than 1.0 m apart
// carry a strongly negative (< -0.5) compatibility score.
func agricultural(ind *garden.Individual, compat CompatibilityLookup, report *Report) {
	if compat == nil {
		report.record(checkAgricultural, true, "")
		return
	}
	plants := ind.Plants
	for i := 0; i < len(plants); i++ {
		for j := i + 1; j < len(plants); j++ {
			d := plants[i].Distance(plants[j])
			if d >= agriculturalMinDist {
				continue
			}
			score := compat.Lookup(plants[i].Plant.Species, plants[j].Plant.Species)
			if score < agriculturalThreshold {
				report.record(checkAgricultural, false, fmt.Sprintf(
					"%s and %s are %.2fm apart with compatibility %.2f", plants[i].Plant.Species, plants[j].Plant.Species, d, score))
				return
			}
		}
	}
	report.record(checkAgricultural, true, "")
}

// ExperienceMaintenanceMinutes returns the default weekly maintenance
// budget for an experience level, falling back to level 1's budget
// for out-of-range input.
func ExperienceMaintenanceMinutes(level int) float64 {
	if minutes, ok := experienceMaintenanceMinutes[level]; ok {
		return minutes
	}
	return experienceMaintenanceMinutes[1]
}

