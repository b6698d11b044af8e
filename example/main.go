package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reqplan/reqplan/pkg/application/services/planning"
	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	productRepo := memory.NewProductRepository(2)
	routingRepo := memory.NewRoutingRepository(1)
	calendarRepo := memory.NewCalendarRepository(2)
	requirementRepo := memory.NewRequirementRepository()

	setupGuitarShop(productRepo, routingRepo, calendarRepo)

	service := planning.NewProposedOrderService(planning.Config{
		SupplierCalendarID: "SUPPLIER",
		PlanName:           "DEMO",
	}, nil, nil)

	requiredBy := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	shortages := []*entities.Shortage{
		{
			ProductID:               "GUITAR",
			FacilityID:              "STORE",
			ManufacturingFacilityID: "WORKSHOP",
			Quantity:                decimal.NewFromInt(12),
			RequiredBy:              requiredBy,
			Source:                  "FALL_SEASON_FORECAST",
		},
		{
			ProductID:  "TUNER_SET",
			FacilityID: "STORE",
			Quantity:   decimal.NewFromInt(40),
			RequiredBy: requiredBy,
		},
	}

	fmt.Println("🎸 Planning supply for the fall season...")
	result, err := service.Plan(ctx, shortages, productRepo, routingRepo, calendarRepo, requirementRepo)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	for _, order := range result.Orders {
		fmt.Printf("%s order for %s x%s: start %s, ready %s\n",
			order.Type, order.ProductID, order.Quantity,
			order.StartAt.Format("2006-01-02 15:04"),
			order.RequiredBy.Format("2006-01-02"))
		for stepID, start := range order.StepStarts {
			fmt.Printf("  step %s starts %s\n", stepID, start.Format("2006-01-02 15:04"))
		}
	}
	fmt.Printf("Requirements created: %d\n", len(result.Requirements))
}

func setupGuitarShop(
	productRepo *memory.ProductRepository,
	routingRepo *memory.RoutingRepository,
	calendarRepo *memory.CalendarRepository,
) {
	guitar, _ := entities.NewProduct("GUITAR", "Acoustic guitar", entities.Manufactured)
	tuners, _ := entities.NewProduct("TUNER_SET", "Tuning machine set", entities.Procured)
	productRepo.AddProduct(*guitar)
	productRepo.AddProduct(*tuners)

	policy, _ := entities.NewProductFacility("TUNER_SET", "STORE", 5,
		decimal.NewFromInt(100), decimal.NewFromInt(20))
	productRepo.AddProductFacility(*policy)

	// Workshop runs a single day shift, supplier ships around the clock.
	week := map[time.Weekday][]entities.WorkWindow{}
	for day := time.Monday; day <= time.Friday; day++ {
		week[day] = []entities.WorkWindow{{Start: 8 * time.Hour, End: 16 * time.Hour}}
	}
	workshop, _ := entities.NewCalendar("WORKSHOP_SHIFT", "Workshop day shift", week)
	calendarRepo.AddCalendar(*workshop)
	calendarRepo.AddCalendar(*entities.ContinuousCalendar("SUPPLIER"))

	cut, _ := entities.NewRoutingStep("CUT_BODY", 10, "WORKSHOP_SHIFT", 30*time.Minute, 45*time.Minute)
	assemble, _ := entities.NewRoutingStep("ASSEMBLE", 20, "WORKSHOP_SHIFT", 15*time.Minute, 90*time.Minute)
	finish, _ := entities.NewRoutingStep("FINISH", 30, "WORKSHOP_SHIFT", 0, 60*time.Minute)
	routing, _ := entities.NewRouting("GUITAR_ROUTING", "GUITAR",
		[]entities.RoutingStep{*cut, *assemble, *finish})
	routingRepo.AddRouting(*routing)
}
