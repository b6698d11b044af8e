package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/reqplan/reqplan/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format       string
	OutputDir    string
	Verbose      bool
	PlanningTime time.Duration
}

const dateFormat = "2006-01-02 15:04"

// Generate creates output in the specified format
func Generate(result *dto.PlanningResult, config Config) error {
	switch config.Format {
	case "", "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput renders a human-readable summary with tables
func generateTextOutput(result *dto.PlanningResult, config Config) error {
	fmt.Printf("📊 Planning Results Summary\n")
	fmt.Printf("===========================\n\n")
	fmt.Printf("Proposed Orders: %d\n", len(result.Orders))
	fmt.Printf("Requirements: %d\n", len(result.Requirements))
	fmt.Printf("Skipped (WIP): %d\n", len(result.Skipped))
	fmt.Printf("Warnings: %d\n", len(result.Warnings))
	fmt.Printf("Planning Time: %v\n\n", config.PlanningTime)

	if len(result.Orders) > 0 {
		fmt.Printf("📋 Proposed Orders:\n")
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Product", "Type", "Qty", "Start", "Required By", "Facility", "Steps"})
		for _, order := range result.Orders {
			t.AppendRow(table.Row{
				order.ProductID,
				order.Type.String(),
				order.Quantity.String(),
				order.StartAt.Format(dateFormat),
				order.RequiredBy.Format(dateFormat),
				order.FacilityID,
				len(order.StepStarts),
			})
		}
		t.Render()
		fmt.Println()
	}

	if len(result.Requirements) > 0 {
		fmt.Printf("🗂  Requirements:\n")
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Product", "Type", "Status", "Qty", "Start", "Required By"})
		for _, requirement := range result.Requirements {
			t.AppendRow(table.Row{
				requirement.ID,
				requirement.ProductID,
				requirement.Type.String(),
				requirement.Status,
				requirement.Quantity.String(),
				requirement.StartAt.Format(dateFormat),
				requirement.RequiredBy.Format(dateFormat),
			})
		}
		t.Render()
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("⚠️  Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Printf("  [%s] %s: %s\n", warning.Kind, warning.ProductID, warning.Detail)
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput writes the full result as JSON
func generateJSONOutput(result *dto.PlanningResult, config Config) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal planning result: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, "planning_result.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if config.Verbose {
		fmt.Printf("✅ Wrote %s\n", path)
	}
	return nil
}

// generateCSVOutput writes orders and requirements as CSV files
func generateCSVOutput(result *dto.PlanningResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("csv output requires an output directory")
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ordersPath := filepath.Join(config.OutputDir, "proposed_orders.csv")
	orderRows := [][]string{{"product_id", "facility_id", "type", "quantity", "start_at", "required_by"}}
	for _, order := range result.Orders {
		orderRows = append(orderRows, []string{
			string(order.ProductID),
			string(order.FacilityID),
			order.Type.String(),
			order.Quantity.String(),
			order.StartAt.Format(time.RFC3339),
			order.RequiredBy.Format(time.RFC3339),
		})
	}
	if err := writeCSV(ordersPath, orderRows); err != nil {
		return err
	}

	requirementsPath := filepath.Join(config.OutputDir, "requirements.csv")
	requirementRows := [][]string{{"id", "product_id", "facility_id", "type", "status", "quantity", "start_at", "required_by", "description"}}
	for _, requirement := range result.Requirements {
		requirementRows = append(requirementRows, []string{
			requirement.ID,
			string(requirement.ProductID),
			string(requirement.FacilityID),
			requirement.Type.String(),
			string(requirement.Status),
			requirement.Quantity.String(),
			requirement.StartAt.Format(time.RFC3339),
			requirement.RequiredBy.Format(time.RFC3339),
			requirement.Description,
		})
	}
	if err := writeCSV(requirementsPath, requirementRows); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Printf("✅ Wrote %s and %s\n", ordersPath, requirementsPath)
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}
