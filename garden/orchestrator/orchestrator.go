package orchestrator

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/fernwood-labs/huertogen/garden"
	"github.com/fernwood-labs/huertogen/garden/catalogue"
	"github.com/fernwood-labs/huertogen/garden/compat"
	"github.com/fernwood-labs/huertogen/garden/fitness"
	"github.com/fernwood-labs/huertogen/garden/ga"
	"github.com/fernwood-labs/huertogen/garden/selector"
	"github.com/fernwood-labs/huertogen/garden/validator"
)

// CatalogueStore is the minimal surface the orchestrator needs from
// garden/catalogue.CatalogueStore.
type CatalogueStore interface {
	ListAll() []garden.Plant
	FindByID(id int) (garden.Plant, bool)
}

// Orchestrator wires the Compatibility Index, Plant Selector, Genetic
// Algorithm and Validator into one request/response call. Adapted from
// lixenwraith-vi-fighter/genetic/registry/registry.go's coordinator
// shape: one exported method sequencing a call across several
// subsystems behind a single return value.
type Orchestrator struct {
	Catalogue CatalogueStore
	Index     *compat.Index
	Logger    *slog.Logger

	// UserProfile and Notifier are optional collaborators; a nil value
	// simply disables the corresponding fallback/notice. Typed directly
	// against garden/catalogue's ports so a caller's
	// catalogue.UserProfile/NotificationSink implementation can be
	// assigned here without an adapter.
	UserProfile catalogue.UserProfile
	Notifier    catalogue.NotificationSink
}

// New builds an Orchestrator, defaulting Logger to slog.Default() when
// nil, matching C360Studio-semspec/config.NewLoader's nil-logger
// fallback. UserProfile and Notifier are left unset; assign them on
// the returned value when those optional collaborators are available.
func New(catalogueStore CatalogueStore, index *compat.Index, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{Catalogue: catalogueStore, Index: index, Logger: logger}
}

// Run executes one full optimization request: normalize, select,
// evolve, validate, assemble. It returns an error for a
// ValidationError-class request defect (missing UserID/UserExperience),
// a CatalogueError-class startup defect (empty catalogue), or an
// EvaluationError from the GA run (wrapped); selection, placement and
// validation never raise for data reasons and are instead surfaced
// through the response.
func (o *Orchestrator) Run(req Request) (*Response, error) {
	start := time.Now()

	if req.UserID == "" {
		return nil, garden.NewValidationError("userId", "required")
	}
	if req.UserExperience < 1 || req.UserExperience > 3 {
		if resolved, ok := o.lookupExperience(req.UserID); ok {
			req.UserExperience = resolved
		} else {
			return nil, garden.NewValidationError("userExperience", "must be 1, 2 or 3")
		}
	}

	plants := o.Catalogue.ListAll()
	if len(plants) == 0 {
		return nil, garden.NewCatalogueError("catalogue is empty")
	}

	seed := uint64(time.Now().UnixNano())
	if req.Seed != nil {
		seed = *req.Seed
	}
	bootstrapRNG := ga.NewRNG(seed)

	n := req.normalize(bootstrapRNG)
	runID := uuid.New().String()
	o.Logger.Debug("starting garden optimization run",
		slog.String("runId", runID), slog.String("userId", n.userID), slog.String("objective", string(n.objective)))

	pool := selector.Select(plants, selector.Config{
		DesiredPlantIDs: n.desiredPlantIDs,
		MaxSpecies:      n.maxPlantSpecies,
		Objective:       n.objective,
		Compatibility:   o.Index,
		Season:          n.season,
	})

	constraints := garden.Constraints{
		MaxArea:                     n.dimensions.Width * n.dimensions.Height,
		MaxWaterWeekly:              n.waterLimit,
		MaxBudget:                   &n.budget,
		DesiredCategoryDistribution: n.categoryDistribution,
		DesiredPlantIDs:             n.desiredPlantIDs,
	}

	engine := &ga.Engine{
		Config:        n.gaConfig,
		Constraints:   constraints,
		Objective:     n.objective,
		Pool:          pool,
		Compatibility: o.Index,
		Evaluator:     fitness.NewEvaluator(o.Index),
	}

	result, err := engine.Run()
	if err != nil {
		return nil, errors.Wrap(err, "genetic algorithm run failed")
	}

	solutions := make([]Solution, len(result.TopSolutions))
	for i, ind := range result.TopSolutions {
		report := validator.Validate(ind, catalogueLookup{o.Catalogue}, o.Index, n.maintenanceMinutes, &n.budget)
		solutions[i] = Solution{
			Rank:             i + 1,
			Layout:           buildLayoutView(ind),
			Metrics:          buildMetricsView(ind.Metrics),
			Estimations:      buildEstimations(ind),
			Calendar:         buildCalendarSummary(ind),
			Compatibility:    buildCompatibilitySummary(ind, o.Index),
			ValidationReport: report,
			Individual:       ind,
		}
	}

	convergenceGeneration := result.Generations
	if result.StoppingReason != garden.StoppingConvergence {
		convergenceGeneration = 0
	}

	response := &Response{
		Success:   true,
		Solutions: solutions,
		Metadata: Metadata{
			ExecutionTimeMs:       time.Since(start).Milliseconds(),
			TotalGenerations:      result.Generations,
			ConvergenceGeneration: convergenceGeneration,
			PopulationSize:        n.gaConfig.PopulationSize,
			StoppingReason:        result.StoppingReason,
			AppliedWeights:        fitness.WeightsFor(n.objective),
			SelectedPlants:        pool,
		},
	}

	o.Logger.Debug("completed garden optimization run",
		slog.String("runId", runID), slog.Int("solutions", len(solutions)),
		slog.String("stoppingReason", string(result.StoppingReason)))

	o.notify(n.userID, runID, response)

	return response, nil
}

// lookupExperience consults the optional UserProfile collaborator for
// a fallback experience level when the inbound request omits a valid
// one. Returns ok=false when no UserProfile is wired or the lookup
// misses, leaving the caller to raise its own ValidationError.
func (o *Orchestrator) lookupExperience(userID string) (int, bool) {
	if o.UserProfile == nil {
		return 0, false
	}
	profile, ok := o.UserProfile.GetByID(userID)
	if !ok || profile == nil || profile.ExperienceLevel < 1 || profile.ExperienceLevel > 3 {
		return 0, false
	}
	return profile.ExperienceLevel, true
}

// notify fires the optional completion notice. A notification failure
// is logged at warn level and never propagates.
func (o *Orchestrator) notify(userID, runID string, response *Response) {
	if o.Notifier == nil {
		return
	}
	err := o.Notifier.Send(userID, "Garden layout ready", "Your optimized garden layout is ready.", map[string]any{
		"runId":          runID,
		"solutions":      len(response.Solutions),
		"stoppingReason": string(response.Metadata.StoppingReason),
	})
	if err != nil {
		o.Logger.Warn("notification delivery failed", slog.String("runId", runID), slog.String("userId", userID), slog.Any("error", err))
	}
}

// catalogueLookup adapts CatalogueStore to validator.CatalogueLookup.
type catalogueLookup struct {
	store CatalogueStore
}

func (c catalogueLookup) FindByID(id int) (garden.Plant, bool) {
	return c.store.FindByID(id)
}
