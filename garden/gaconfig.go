package garden

import "time"

// GAConfig holds the tunables for one genetic-algorithm run. Defaults
// live in garden/orchestrator (normalizing an inbound request), not
// here: this struct is a plain value type with no behavior of its own.
type GAConfig struct {
	PopulationSize        int
	MaxGenerations        int
	CrossoverProbability  float64
	MutationRate          float64
	InsertionRate         float64
	DeletionRate          float64
	TournamentK           int
	EliteCount            int
	Patience              int
	ConvergenceThreshold  float64
	Timeout               time.Duration
	Seed                  *uint64
	MaxSpecies            int // 3 or 5
}
