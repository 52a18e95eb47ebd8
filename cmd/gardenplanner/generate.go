package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fernwood-labs/huertogen/garden"
	"github.com/fernwood-labs/huertogen/garden/catalogue"
	"github.com/fernwood-labs/huertogen/garden/compat"
	"github.com/fernwood-labs/huertogen/garden/orchestrator"
	"github.com/fernwood-labs/huertogen/garden/persistence"
)

// requestFile is the on-disk YAML shape for the "generate" command's
// --request flag; it carries a subset of orchestrator.Request's
// exported fields (no Location, and of the GA tuning fields only
// Seed, TimeoutMs, PopulationSize and MaxGenerations).
type requestFile struct {
	UserID               string                       `yaml:"userId"`
	DesiredPlantIDs      []int                        `yaml:"desiredPlantIds"`
	MaxPlantSpecies      int                          `yaml:"maxPlantSpecies"`
	Dimensions           *orchestrator.Dimensions     `yaml:"dimensions"`
	WaterLimit           *float64                     `yaml:"waterLimit"`
	UserExperience       int                          `yaml:"userExperience"`
	Season               string                       `yaml:"season"`
	Budget               *float64                     `yaml:"budget"`
	Objective            string                       `yaml:"objective"`
	MaintenanceMinutes   *float64                     `yaml:"maintenanceMinutes"`
	CategoryDistribution *garden.CategoryDistribution `yaml:"categoryDistribution"`
	Seed                 *uint64                      `yaml:"seed"`
	TimeoutMs            int                          `yaml:"timeoutMs"`
	PopulationSize       int                          `yaml:"populationSize"`
	MaxGenerations       int                          `yaml:"maxGenerations"`
}

func (f requestFile) toRequest() orchestrator.Request {
	return orchestrator.Request{
		UserID:               f.UserID,
		DesiredPlantIDs:      f.DesiredPlantIDs,
		MaxPlantSpecies:      f.MaxPlantSpecies,
		Dimensions:           f.Dimensions,
		WaterLimit:           f.WaterLimit,
		UserExperience:       f.UserExperience,
		Season:               f.Season,
		Budget:               f.Budget,
		Objective:            f.Objective,
		MaintenanceMinutes:   f.MaintenanceMinutes,
		CategoryDistribution: f.CategoryDistribution,
		Seed:                 f.Seed,
		TimeoutMs:            f.TimeoutMs,
		PopulationSize:       f.PopulationSize,
		MaxGenerations:       f.MaxGenerations,
	}
}

func generateCmd() *cobra.Command {
	var (
		catalogueFile     string
		compatibilityFile string
		requestPath       string
		outPath           string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one garden layout optimization",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(catalogueFile, compatibilityFile, requestPath, outPath)
		},
	}

	cmd.Flags().StringVar(&catalogueFile, "catalogue", "", "Path to the catalogue YAML file (required)")
	cmd.Flags().StringVar(&compatibilityFile, "compatibility", "", "Path to the compatibility YAML file (required)")
	cmd.Flags().StringVar(&requestPath, "request", "", "Path to the request YAML file (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "Directory to save the solved solutions to (optional)")
	_ = cmd.MarkFlagRequired("catalogue")
	_ = cmd.MarkFlagRequired("compatibility")
	_ = cmd.MarkFlagRequired("request")

	return cmd
}

func runGenerate(catalogueFile, compatibilityFile, requestPath, outPath string) error {
	plants, err := catalogue.LoadCatalogueFromFile(catalogueFile)
	if err != nil {
		return err
	}
	store, err := catalogue.NewInMemory(plants)
	if err != nil {
		return err
	}

	compatEntries, err := (catalogue.FileCompatibilityStore{Path: compatibilityFile}).LoadAll()
	if err != nil {
		return err
	}
	index, err := compat.Build(compatEntries)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(requestPath)
	if err != nil {
		return fmt.Errorf("reading request file: %w", err)
	}
	var reqFile requestFile
	if err := yaml.Unmarshal(raw, &reqFile); err != nil {
		return fmt.Errorf("parsing request file: %w", err)
	}

	o := orchestrator.New(store, index, slog.Default())
	resp, err := o.Run(reqFile.toRequest())
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))

	if outPath != "" {
		mgr := persistence.NewManager(outPath)
		for _, sol := range resp.Solutions {
			name := fmt.Sprintf("solution-%d", sol.Rank)
			if err := mgr.Save(name, sol.Individual); err != nil {
				return fmt.Errorf("saving %s: %w", name, err)
			}
		}
	}

	return nil
}
