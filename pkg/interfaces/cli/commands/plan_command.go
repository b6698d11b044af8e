package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/reqplan/reqplan/pkg/application/services/planning"
	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
	"github.com/reqplan/reqplan/pkg/infrastructure/config"
	"github.com/reqplan/reqplan/pkg/infrastructure/events"
	csvrepo "github.com/reqplan/reqplan/pkg/infrastructure/repositories/csv"
	"github.com/reqplan/reqplan/pkg/infrastructure/repositories/memory"
	"github.com/reqplan/reqplan/pkg/infrastructure/repositories/sqlite"
	"github.com/reqplan/reqplan/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	ScenarioDir      string
	ProductsFile     string
	FacilitiesFile   string
	RoutingsFile     string
	StepsFile        string
	ShortagesFile    string
	CalendarsFile    string
	DBPath           string
	SupplierCalendar string
	PlanName         string
	OutputDir        string
	Format           string
	Verbose          bool
}

// PlanCommand loads a planning scenario, proposes orders for its shortages,
// and writes the results.
type PlanCommand struct {
	config Config
	logger *slog.Logger
}

// NewPlanCommand creates a plan command with the given configuration
func NewPlanCommand(config Config, logger *slog.Logger) *PlanCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanCommand{config: config, logger: logger}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	files, err := c.resolveInputFiles()
	if err != nil {
		return err
	}
	if c.config.SupplierCalendar == "" {
		return fmt.Errorf("a supplier calendar must be configured")
	}

	loader := csvrepo.NewLoader()

	products, err := loader.LoadProducts(files["products"])
	if err != nil {
		return fmt.Errorf("error loading products: %w", err)
	}
	facilities, err := loader.LoadProductFacilities(files["facilities"])
	if err != nil {
		return fmt.Errorf("error loading product facilities: %w", err)
	}
	routings, err := loader.LoadRoutings(files["routings"], files["steps"])
	if err != nil {
		return fmt.Errorf("error loading routings: %w", err)
	}
	shortages, err := loader.LoadShortages(files["shortages"])
	if err != nil {
		return fmt.Errorf("error loading shortages: %w", err)
	}
	calendars, err := config.LoadCalendars(files["calendars"])
	if err != nil {
		return fmt.Errorf("error loading calendars: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("📂 Scenario loaded:\n")
		fmt.Printf("  Products: %d\n", len(products))
		fmt.Printf("  Facility policies: %d\n", len(facilities))
		fmt.Printf("  Routings: %d\n", len(routings))
		fmt.Printf("  Calendars: %d\n", len(calendars))
		fmt.Printf("  Shortages: %d\n\n", len(shortages))
	}

	productRepo := memory.NewProductRepository(len(products))
	if err := productRepo.LoadProducts(products); err != nil {
		return fmt.Errorf("failed to load products into repository: %w", err)
	}
	if err := productRepo.LoadProductFacilities(facilities); err != nil {
		return fmt.Errorf("failed to load facility policies into repository: %w", err)
	}

	routingRepo := memory.NewRoutingRepository(len(routings))
	if err := routingRepo.LoadRoutings(routings); err != nil {
		return fmt.Errorf("failed to load routings into repository: %w", err)
	}

	calendarRepo := memory.NewCalendarRepository(len(calendars))
	if err := calendarRepo.LoadCalendars(calendars); err != nil {
		return fmt.Errorf("failed to load calendars into repository: %w", err)
	}

	var requirementRepo repositories.RequirementRepository
	if c.config.DBPath != "" {
		store, err := sqlite.Open(c.config.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		requirementRepo = store
	} else {
		requirementRepo = memory.NewRequirementRepository()
	}

	service := planning.NewProposedOrderService(planning.Config{
		SupplierCalendarID: entities.CalendarID(c.config.SupplierCalendar),
		PlanName:           c.config.PlanName,
	}, c.logger, events.NewInMemoryEventStore())

	started := time.Now()
	result, err := service.Plan(ctx, shortages, productRepo, routingRepo, calendarRepo, requirementRepo)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	return output.Generate(result, output.Config{
		Format:       c.config.Format,
		OutputDir:    c.config.OutputDir,
		Verbose:      c.config.Verbose,
		PlanningTime: time.Since(started),
	})
}

// resolveInputFiles maps scenario-relative defaults and explicit flags to
// concrete paths, preferring explicit flags.
func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	defaults := map[string]string{
		"products":   "products.csv",
		"facilities": "product_facilities.csv",
		"routings":   "routings.csv",
		"steps":      "routing_steps.csv",
		"shortages":  "shortages.csv",
		"calendars":  "calendars.yml",
	}
	explicit := map[string]string{
		"products":   c.config.ProductsFile,
		"facilities": c.config.FacilitiesFile,
		"routings":   c.config.RoutingsFile,
		"steps":      c.config.StepsFile,
		"shortages":  c.config.ShortagesFile,
		"calendars":  c.config.CalendarsFile,
	}

	files := make(map[string]string, len(defaults))
	for kind, name := range defaults {
		path := explicit[kind]
		if path == "" {
			if c.config.ScenarioDir == "" {
				return nil, fmt.Errorf("either --scenario or --%s must be provided", kind)
			}
			path = filepath.Join(c.config.ScenarioDir, name)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s file not found: %s", kind, path)
		}
		files[kind] = path
	}
	return files, nil
}
