// Package persistence saves and loads a solved Individual as a JSON
// snapshot, for the round-trip / idempotence property and for the CLI's
// --out flag.
//
// Adapted from lixenwraith-vi-fighter/genetic/persistence/
// {manager,dto}.go's Manager.Save/Load + PopulationDTO shape:
// FilePath/Exists/Save/Load are kept as-is, but the TOML codec is
// replaced with stdlib encoding/json (see DESIGN.md for why no
// third-party codec is grounded here), and PopulationDTO's
// Generation/Candidates pair becomes SolutionDTO's Dimensions/Plants
// pair, the shape this system actually needs to round-trip.
package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fernwood-labs/huertogen/garden"
)

// Manager handles save/load of solved layouts under a base directory.
type Manager struct {
	basePath string
}

// NewManager creates a manager rooted at basePath.
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path a named solution would be saved to.
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".json")
}

// Exists reports whether a named solution file is present.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save writes an Individual to disk as a SolutionDTO.
func (m *Manager) Save(name string, ind *garden.Individual) error {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(FromIndividual(ind), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.FilePath(name), data, 0644)
}

// Load reads a named solution back from disk.
func (m *Manager) Load(name string) (*garden.Individual, error) {
	data, err := os.ReadFile(m.FilePath(name))
	if err != nil {
		return nil, err
	}

	var dto SolutionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	return dto.ToIndividual(), nil
}

// SolutionDTO is the serializable form of one Individual.
type SolutionDTO struct {
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Plants  []InstanceDTO `json:"plants"`
	Metrics *MetricsDTO   `json:"metrics,omitempty"`
}

// InstanceDTO is the serializable form of one PlantInstance. Position
// is carried at full float64 precision so a round trip through JSON
// reproduces an equivalent layout.
type InstanceDTO struct {
	PlantID        int        `json:"plantId"`
	Species        string     `json:"species"`
	ScientificName string     `json:"scientificName"`
	Types          []string   `json:"types"`
	SunRequirement string     `json:"sunRequirement"`
	WeeklyWatering float64    `json:"weeklyWatering"`
	HarvestDays    int        `json:"harvestDays"`
	SoilType       string     `json:"soilType"`
	WaterPerKg     float64    `json:"waterPerKg"`
	Benefits       []string   `json:"benefits"`
	Size           float64    `json:"size"`
	X              float64    `json:"x"`
	Y              float64    `json:"y"`
	Width          float64    `json:"width"`
	Height         float64    `json:"height"`
	Rotation       int        `json:"rotation"`
	PlantedAt      *time.Time `json:"plantedAt,omitempty"`
	Status         string     `json:"status"`
}

// MetricsDTO is the serializable form of garden.Metrics.
type MetricsDTO struct {
	CEE     float64 `json:"cee"`
	PSRNT   float64 `json:"psrnt"`
	EH      float64 `json:"eh"`
	UE      float64 `json:"ue"`
	CS      float64 `json:"cs"`
	BSN     float64 `json:"bsn"`
	Fitness float64 `json:"fitness"`
}

// FromIndividual converts an Individual to its serializable DTO.
func FromIndividual(ind *garden.Individual) SolutionDTO {
	dto := SolutionDTO{
		Width:  ind.Dimensions.Width,
		Height: ind.Dimensions.Height,
		Plants: make([]InstanceDTO, len(ind.Plants)),
	}

	for i, p := range ind.Plants {
		types := make([]string, len(p.Plant.Types))
		for j, t := range p.Plant.Types {
			types[j] = string(t)
		}
		dto.Plants[i] = InstanceDTO{
			PlantID:        p.Plant.ID,
			Species:        p.Plant.Species,
			ScientificName: p.Plant.ScientificName,
			Types:          types,
			SunRequirement: string(p.Plant.SunRequirement),
			WeeklyWatering: p.Plant.WeeklyWatering,
			HarvestDays:    p.Plant.HarvestDays,
			SoilType:       p.Plant.SoilType,
			WaterPerKg:     p.Plant.WaterPerKg,
			Benefits:       p.Plant.Benefits,
			Size:           p.Plant.Size,
			X:              p.X,
			Y:              p.Y,
			Width:          p.Width,
			Height:         p.Height,
			Rotation:       int(p.Rotation),
			PlantedAt:      p.PlantedAt,
			Status:         string(p.Status),
		}
	}

	if ind.Metrics != nil {
		dto.Metrics = &MetricsDTO{
			CEE: ind.Metrics.CEE, PSRNT: ind.Metrics.PSRNT, EH: ind.Metrics.EH,
			UE: ind.Metrics.UE, CS: ind.Metrics.CS, BSN: ind.Metrics.BSN, Fitness: ind.Metrics.Fitness,
		}
	}

	return dto
}

// ToIndividual reconstructs an Individual from its DTO.
func (dto SolutionDTO) ToIndividual() *garden.Individual {
	ind := garden.NewIndividual(garden.NewDimensions(dto.Width, dto.Height))
	ind.Plants = make([]garden.PlantInstance, len(dto.Plants))

	for i, p := range dto.Plants {
		types := make([]garden.PlantType, len(p.Types))
		for j, t := range p.Types {
			types[j] = garden.PlantType(t)
		}
		plant := garden.Plant{
			ID:             p.PlantID,
			Species:        p.Species,
			ScientificName: p.ScientificName,
			Types:          types,
			SunRequirement: garden.SunRequirement(p.SunRequirement),
			WeeklyWatering: p.WeeklyWatering,
			HarvestDays:    p.HarvestDays,
			SoilType:       p.SoilType,
			WaterPerKg:     p.WaterPerKg,
			Benefits:       p.Benefits,
			Size:           p.Size,
		}
		ind.Plants[i] = garden.PlantInstance{
			Plant:     plant,
			X:         p.X,
			Y:         p.Y,
			Width:     p.Width,
			Height:    p.Height,
			Rotation:  garden.Rotation(p.Rotation),
			PlantedAt: p.PlantedAt,
			Status:    garden.InstanceStatus(p.Status),
		}
	}

	if dto.Metrics != nil {
		ind.Metrics = &garden.Metrics{
			CEE: dto.Metrics.CEE, PSRNT: dto.Metrics.PSRNT, EH: dto.Metrics.EH,
			UE: dto.Metrics.UE, CS: dto.Metrics.CS, BSN: dto.Metrics.BSN, Fitness: dto.Metrics.Fitness,
		}
	}

	return ind
}
