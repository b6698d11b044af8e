package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadProducts(t *testing.T) {
	path := writeFile(t, "products.csv",
		"product_id,name,method,work_in_process,variant_of\n"+
			"GUITAR,Acoustic guitar,manufactured,false,\n"+
			"GUITAR_RED,Red guitar,make,no,GUITAR\n"+
			"TUNER_SET,Tuner set,procured,,\n"+
			"NECK_WIP,Neck in progress,manufactured,true,\n")

	products, err := NewLoader().LoadProducts(path)
	if err != nil {
		t.Fatalf("LoadProducts failed: %v", err)
	}
	if len(products) != 4 {
		t.Fatalf("Expected 4 products, got %d", len(products))
	}

	if products[0].Method != entities.Manufactured || products[0].WorkInProcess {
		t.Errorf("Unexpected GUITAR flags: %+v", products[0])
	}
	if products[1].VariantOfID != "GUITAR" {
		t.Errorf("Expected variant parent GUITAR, got %s", products[1].VariantOfID)
	}
	if products[2].Method != entities.Procured {
		t.Errorf("Expected TUNER_SET procured, got %s", products[2].Method)
	}
	if !products[3].WorkInProcess {
		t.Error("Expected NECK_WIP flagged work-in-process")
	}
}

func TestLoadProducts_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		expectedErr string
	}{
		{
			"wrong header",
			"id,name\nGUITAR,Acoustic guitar\n",
			"products CSV header mismatch",
		},
		{
			"invalid method",
			"product_id,name,method,work_in_process,variant_of\nGUITAR,Acoustic guitar,grown,false,\n",
			"invalid method: grown",
		},
		{
			"invalid wip flag",
			"product_id,name,method,work_in_process,variant_of\nGUITAR,Acoustic guitar,manufactured,maybe,\n",
			"invalid work_in_process: maybe",
		},
		{
			"header only",
			"product_id,name,method,work_in_process,variant_of\n",
			"must have header and at least one data row",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().LoadProducts(writeFile(t, "products.csv", tc.content))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.expectedErr) {
				t.Errorf("Expected error containing %q, got %q", tc.expectedErr, err.Error())
			}
		})
	}
}

func TestLoadProductFacilities(t *testing.T) {
	path := writeFile(t, "product_facilities.csv",
		"product_id,facility_id,days_to_ship,reorder_quantity,minimum_stock\n"+
			"TUNER_SET,PLANT,5,100,25.5\n")

	facilities, err := NewLoader().LoadProductFacilities(path)
	if err != nil {
		t.Fatalf("LoadProductFacilities failed: %v", err)
	}
	if len(facilities) != 1 {
		t.Fatalf("Expected 1 policy, got %d", len(facilities))
	}
	policy := facilities[0]
	if policy.DaysToShip != 5 {
		t.Errorf("Expected 5 days to ship, got %d", policy.DaysToShip)
	}
	if !policy.ReorderQuantity.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected reorder quantity 100, got %s", policy.ReorderQuantity)
	}
	if !policy.MinimumStock.Equal(decimal.RequireFromString("25.5")) {
		t.Errorf("Expected minimum stock 25.5, got %s", policy.MinimumStock)
	}
}

func TestLoadRoutings(t *testing.T) {
	routingsPath := writeFile(t, "routings.csv",
		"routing_id,product_id\n"+
			"RT-GUITAR,GUITAR\n")
	stepsPath := writeFile(t, "routing_steps.csv",
		"routing_id,step_id,sequence,calendar_id,setup_minutes,run_minutes_per_unit,effective_from,effective_thru\n"+
			"RT-GUITAR,ASSEMBLE,20,WORKSHOP,30,90,,\n"+
			"RT-GUITAR,CUT,10,WORKSHOP,15,45,2026-01-01,2026-12-31\n")

	routings, err := NewLoader().LoadRoutings(routingsPath, stepsPath)
	if err != nil {
		t.Fatalf("LoadRoutings failed: %v", err)
	}
	if len(routings) != 1 {
		t.Fatalf("Expected 1 routing, got %d", len(routings))
	}

	routing := routings[0]
	if routing.ProductID != "GUITAR" {
		t.Errorf("Expected product GUITAR, got %s", routing.ProductID)
	}
	if len(routing.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(routing.Steps))
	}
	// Steps come back ordered by sequence regardless of file order.
	if routing.Steps[0].ID != "CUT" || routing.Steps[1].ID != "ASSEMBLE" {
		t.Errorf("Unexpected step order: %s, %s", routing.Steps[0].ID, routing.Steps[1].ID)
	}
	cut := routing.Steps[0]
	if cut.SetupTime != 15*time.Minute || cut.RunTimePerUnit != 45*time.Minute {
		t.Errorf("Unexpected CUT durations: setup %v, run %v", cut.SetupTime, cut.RunTimePerUnit)
	}
	if cut.EffectiveFrom == nil || !cut.EffectiveFrom.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected effective_from: %v", cut.EffectiveFrom)
	}
	if routing.Steps[1].EffectiveFrom != nil {
		t.Errorf("Expected open validity for ASSEMBLE, got %v", routing.Steps[1].EffectiveFrom)
	}
}

func TestLoadRoutings_UnknownRoutingInSteps(t *testing.T) {
	routingsPath := writeFile(t, "routings.csv",
		"routing_id,product_id\nRT-GUITAR,GUITAR\n")
	stepsPath := writeFile(t, "routing_steps.csv",
		"routing_id,step_id,sequence,calendar_id,setup_minutes,run_minutes_per_unit,effective_from,effective_thru\n"+
			"RT-BANJO,CUT,10,WORKSHOP,0,45,,\n")

	_, err := NewLoader().LoadRoutings(routingsPath, stepsPath)
	if err == nil || !strings.Contains(err.Error(), "unknown routing id RT-BANJO") {
		t.Errorf("Expected unknown-routing error, got %v", err)
	}
}

func TestLoadShortages(t *testing.T) {
	path := writeFile(t, "shortages.csv",
		"product_id,facility_id,manufacturing_facility_id,quantity,required_by,source\n"+
			"GUITAR,PLANT,WORKSHOP,3,2026-03-10,SALES_ORDER\n"+
			"TUNER_SET,PLANT,,10.5,2026-03-10T12:00:00Z,MIN_STOCK\n")

	shortages, err := NewLoader().LoadShortages(path)
	if err != nil {
		t.Fatalf("LoadShortages failed: %v", err)
	}
	if len(shortages) != 2 {
		t.Fatalf("Expected 2 shortages, got %d", len(shortages))
	}

	first := shortages[0]
	if first.ManufacturingFacilityID != "WORKSHOP" {
		t.Errorf("Expected manufacturing facility WORKSHOP, got %s", first.ManufacturingFacilityID)
	}
	if !first.RequiredBy.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected required-by: %v", first.RequiredBy)
	}

	second := shortages[1]
	if !second.Quantity.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("Expected quantity 10.5, got %s", second.Quantity)
	}
	if !second.RequiredBy.Equal(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected required-by: %v", second.RequiredBy)
	}
}

func TestLoadShortages_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadShortages(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
