// Package catalogue defines the external collaborator ports the core
// consumes (CatalogueStore, CompatibilityStore, UserProfile,
// NotificationSink) and provides an in-memory and a YAML-file-backed
// implementation of the first two.
//
// The layered-load-then-validate shape is grounded on
// C360Studio-semspec/config/loader.go's Loader.Load (read file,
// unmarshal, validate, return a *CatalogueError-class failure rather
// than panicking); the duplicate-species/empty-type-set validation is
// grounded on original_source/main.py's catalogue-summary pass, which
// walked the loaded species list checking exactly these invariants
// before handing the catalogue to the optimizer.
package catalogue

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fernwood-labs/huertogen/garden"
)

// CatalogueStore is the read port over the plant catalogue.
type CatalogueStore interface {
	ListAll() []garden.Plant
	FindByID(id int) (garden.Plant, bool)
}

// CompatibilityStore is the read port over the compatibility matrix,
// consulted once at startup to build garden/compat.Index.
type CompatibilityStore interface {
	LoadAll() ([]garden.CompatibilityEntry, error)
}

// UserProfileData is the subset of a user profile the core consults.
type UserProfileData struct {
	ExperienceLevel int
}

// UserProfile is the optional port for looking up a requester's
// experience level when the request omits it.
type UserProfile interface {
	GetByID(userID string) (*UserProfileData, bool)
}

// NotificationSink is the optional, fire-and-forget port for
// delivering completion notifications. Failures are logged by the
// caller and never propagate.
type NotificationSink interface {
	Send(userID, title, body string, data map[string]any) error
}

// InMemory is a CatalogueStore backed by a fixed, validated slice. It
// never mutates after construction.
type InMemory struct {
	byID    map[int]garden.Plant
	ordered []garden.Plant
}

// NewInMemory validates plants (unique id, unique species, non-empty
// types) and returns an InMemory store, or a *garden.CatalogueError on
// the first violation.
func NewInMemory(plants []garden.Plant) (*InMemory, error) {
	if err := validatePlants(plants); err != nil {
		return nil, err
	}
	store := &InMemory{
		byID:    make(map[int]garden.Plant, len(plants)),
		ordered: make([]garden.Plant, len(plants)),
	}
	copy(store.ordered, plants)
	for _, p := range plants {
		store.byID[p.ID] = p
	}
	return store, nil
}

func (s *InMemory) ListAll() []garden.Plant {
	out := make([]garden.Plant, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s *InMemory) FindByID(id int) (garden.Plant, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// validatePlants checks the invariants original_source/main.py's
// catalogue summary pass enforced before handing a catalogue to the
// optimizer: unique ids, unique species names, and a non-empty type
// set on every row.
func validatePlants(plants []garden.Plant) error {
	seenIDs := make(map[int]struct{}, len(plants))
	seenSpecies := make(map[string]struct{}, len(plants))

	for _, p := range plants {
		if _, dup := seenIDs[p.ID]; dup {
			return garden.NewCatalogueError("duplicate plant id in catalogue")
		}
		seenIDs[p.ID] = struct{}{}

		if _, dup := seenSpecies[p.Species]; dup {
			return garden.NewCatalogueError("duplicate species name in catalogue: " + p.Species)
		}
		seenSpecies[p.Species] = struct{}{}

		if len(p.Types) == 0 {
			return garden.NewCatalogueError("plant " + p.Species + " has an empty type set")
		}
	}
	return nil
}

// plantDTO and compatibilityDTO mirror the YAML wire shape for
// catalogue and compatibility files.
type plantDTO struct {
	ID             int      `yaml:"id"`
	Species        string   `yaml:"species"`
	ScientificName string   `yaml:"scientificName"`
	Types          []string `yaml:"types"`
	SunRequirement string   `yaml:"sunRequirement"`
	WeeklyWatering float64  `yaml:"weeklyWatering"`
	HarvestDays    int      `yaml:"harvestDays"`
	SoilType       string   `yaml:"soilType"`
	WaterPerKg     float64  `yaml:"waterPerKg"`
	Benefits       []string `yaml:"benefits"`
	Size           float64  `yaml:"size"`
}

type compatibilityDTO struct {
	Species1 string  `yaml:"species1"`
	Species2 string  `yaml:"species2"`
	Score    float64 `yaml:"score"`
}

type catalogueFile struct {
	Plants []plantDTO `yaml:"plants"`
}

type compatibilityFile struct {
	Entries []compatibilityDTO `yaml:"entries"`
}

// LoadCatalogueFromFile reads and validates a YAML catalogue file,
// returning a *garden.CatalogueError if reading, parsing, or
// validation fails.
func LoadCatalogueFromFile(path string) ([]garden.Plant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, garden.NewCatalogueError("reading catalogue file: " + err.Error())
	}

	var doc catalogueFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, garden.NewCatalogueError("parsing catalogue file: " + err.Error())
	}

	plants := make([]garden.Plant, len(doc.Plants))
	for i, dto := range doc.Plants {
		types := make([]garden.PlantType, len(dto.Types))
		for j, t := range dto.Types {
			types[j] = garden.PlantType(t)
		}
		plants[i] = garden.Plant{
			ID:             dto.ID,
			Species:        dto.Species,
			ScientificName: dto.ScientificName,
			Types:          types,
			SunRequirement: garden.SunRequirement(dto.SunRequirement),
			WeeklyWatering: dto.WeeklyWatering,
			HarvestDays:    dto.HarvestDays,
			SoilType:       dto.SoilType,
			WaterPerKg:     dto.WaterPerKg,
			Benefits:       dto.Benefits,
			Size:           dto.Size,
		}
	}

	if err := validatePlants(plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// FileCompatibilityStore is a CompatibilityStore backed by a YAML
// file, loaded lazily on LoadAll.
type FileCompatibilityStore struct {
	Path string
}

func (s FileCompatibilityStore) LoadAll() ([]garden.CompatibilityEntry, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, garden.NewCatalogueError("reading compatibility file: " + err.Error())
	}

	var doc compatibilityFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, garden.NewCatalogueError("parsing compatibility file: " + err.Error())
	}

	entries := make([]garden.CompatibilityEntry, len(doc.Entries))
	for i, dto := range doc.Entries {
		entries[i] = garden.CompatibilityEntry{Species1: dto.Species1, Species2: dto.Species2, Score: dto.Score}
	}
	return entries, nil
}
