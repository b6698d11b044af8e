package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProducts loads product master data from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readAll(filename, "products")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "name", "method", "work_in_process", "variant_of"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var products []*entities.Product
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// LoadProductFacilities loads per-facility supply policies from a CSV file
func (l *Loader) LoadProductFacilities(filename string) ([]*entities.ProductFacility, error) {
	records, err := readAll(filename, "product facilities")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "facility_id", "days_to_ship", "reorder_quantity", "minimum_stock"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("product facilities CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var facilities []*entities.ProductFacility
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("product facilities CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		facility, err := parseProductFacility(record)
		if err != nil {
			return nil, fmt.Errorf("product facilities CSV row %d: %w", i+2, err)
		}
		facilities = append(facilities, facility)
	}
	return facilities, nil
}

// LoadRoutings loads routings and their steps from two CSV files and
// assembles them into complete routings.
func (l *Loader) LoadRoutings(routingsFile, stepsFile string) ([]*entities.Routing, error) {
	routingRecords, err := readAll(routingsFile, "routings")
	if err != nil {
		return nil, err
	}

	routingHeader := []string{"routing_id", "product_id"}
	if !validateHeader(routingRecords[0], routingHeader) {
		return nil, fmt.Errorf("routings CSV header mismatch. Expected: %v, Got: %v", routingHeader, routingRecords[0])
	}

	products := make(map[entities.RoutingID]entities.ProductID, len(routingRecords)-1)
	order := make([]entities.RoutingID, 0, len(routingRecords)-1)
	for i, record := range routingRecords[1:] {
		if len(record) != len(routingHeader) {
			return nil, fmt.Errorf("routings CSV row %d: expected %d columns, got %d", i+2, len(routingHeader), len(record))
		}
		routingID := entities.RoutingID(strings.TrimSpace(record[0]))
		if _, exists := products[routingID]; exists {
			return nil, fmt.Errorf("routings CSV row %d: duplicate routing id %s", i+2, routingID)
		}
		products[routingID] = entities.ProductID(strings.TrimSpace(record[1]))
		order = append(order, routingID)
	}

	stepRecords, err := readAll(stepsFile, "routing steps")
	if err != nil {
		return nil, err
	}

	stepHeader := []string{"routing_id", "step_id", "sequence", "calendar_id", "setup_minutes", "run_minutes_per_unit", "effective_from", "effective_thru"}
	if !validateHeader(stepRecords[0], stepHeader) {
		return nil, fmt.Errorf("routing steps CSV header mismatch. Expected: %v, Got: %v", stepHeader, stepRecords[0])
	}

	steps := make(map[entities.RoutingID][]entities.RoutingStep)
	for i, record := range stepRecords[1:] {
		if len(record) != len(stepHeader) {
			return nil, fmt.Errorf("routing steps CSV row %d: expected %d columns, got %d", i+2, len(stepHeader), len(record))
		}
		routingID := entities.RoutingID(strings.TrimSpace(record[0]))
		if _, exists := products[routingID]; !exists {
			return nil, fmt.Errorf("routing steps CSV row %d: unknown routing id %s", i+2, routingID)
		}
		step, err := parseRoutingStep(record)
		if err != nil {
			return nil, fmt.Errorf("routing steps CSV row %d: %w", i+2, err)
		}
		steps[routingID] = append(steps[routingID], *step)
	}

	var routings []*entities.Routing
	for _, routingID := range order {
		routing, err := entities.NewRouting(routingID, products[routingID], steps[routingID])
		if err != nil {
			return nil, fmt.Errorf("routing %s: %w", routingID, err)
		}
		routings = append(routings, routing)
	}
	return routings, nil
}

// LoadShortages loads projected shortages from a CSV file
func (l *Loader) LoadShortages(filename string) ([]*entities.Shortage, error) {
	records, err := readAll(filename, "shortages")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "facility_id", "manufacturing_facility_id", "quantity", "required_by", "source"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("shortages CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var shortages []*entities.Shortage
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("shortages CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		shortage, err := parseShortage(record)
		if err != nil {
			return nil, fmt.Errorf("shortages CSV row %d: %w", i+2, err)
		}
		shortages = append(shortages, shortage)
	}
	return shortages, nil
}

// Helper functions for parsing CSV records

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseProduct(record []string) (*entities.Product, error) {
	var method entities.ProcurementMethod
	switch strings.ToLower(strings.TrimSpace(record[2])) {
	case "manufactured", "make":
		method = entities.Manufactured
	case "procured", "buy":
		method = entities.Procured
	default:
		return nil, fmt.Errorf("invalid method: %s (expected 'manufactured' or 'procured')", record[2])
	}

	product, err := entities.NewProduct(entities.ProductID(strings.TrimSpace(record[0])), record[1], method)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(record[3])) {
	case "true", "yes", "y":
		product.WorkInProcess = true
	case "false", "no", "n", "":
	default:
		return nil, fmt.Errorf("invalid work_in_process: %s", record[3])
	}

	product.VariantOfID = entities.ProductID(strings.TrimSpace(record[4]))
	return product, nil
}

func parseProductFacility(record []string) (*entities.ProductFacility, error) {
	daysToShip, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, fmt.Errorf("invalid days_to_ship: %s", record[2])
	}
	reorderQuantity, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("invalid reorder_quantity: %s", record[3])
	}
	minimumStock, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid minimum_stock: %s", record[4])
	}
	return entities.NewProductFacility(
		entities.ProductID(strings.TrimSpace(record[0])),
		entities.FacilityID(strings.TrimSpace(record[1])),
		daysToShip,
		reorderQuantity,
		minimumStock,
	)
}

func parseRoutingStep(record []string) (*entities.RoutingStep, error) {
	sequence, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, fmt.Errorf("invalid sequence: %s", record[2])
	}
	setupMinutes, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid setup_minutes: %s", record[4])
	}
	runMinutes, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid run_minutes_per_unit: %s", record[5])
	}

	step, err := entities.NewRoutingStep(
		entities.StepID(strings.TrimSpace(record[1])),
		sequence,
		entities.CalendarID(strings.TrimSpace(record[3])),
		time.Duration(setupMinutes*float64(time.Minute)),
		time.Duration(runMinutes*float64(time.Minute)),
	)
	if err != nil {
		return nil, err
	}

	if from := strings.TrimSpace(record[6]); from != "" {
		t, err := parseTime(from)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_from: %s", from)
		}
		step.EffectiveFrom = &t
	}
	if thru := strings.TrimSpace(record[7]); thru != "" {
		t, err := parseTime(thru)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_thru: %s", thru)
		}
		step.EffectiveThru = &t
	}
	return step, nil
}

func parseShortage(record []string) (*entities.Shortage, error) {
	quantity, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[3])
	}
	requiredBy, err := parseTime(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid required_by: %s (expected YYYY-MM-DD or RFC 3339)", record[4])
	}
	return entities.NewShortage(
		entities.ProductID(strings.TrimSpace(record[0])),
		entities.FacilityID(strings.TrimSpace(record[1])),
		entities.FacilityID(strings.TrimSpace(record[2])),
		quantity,
		requiredBy,
		record[5],
	)
}

func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
