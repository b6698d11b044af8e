package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
)

func requirementFixture(id string) *entities.Requirement {
	return &entities.Requirement{
		ID:         id,
		ProductID:  "GUITAR",
		FacilityID: "PLANT",
		Type:       entities.InternalRequirement,
		Status:     entities.RequirementProposed,
		Quantity:   decimal.NewFromInt(3),
		RequiredBy: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartAt:    time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		CreatedAt:  time.Now().UTC(),
	}
}

func TestRequirementRepository_CreateAndGet(t *testing.T) {
	repo := NewRequirementRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, requirementFixture("REQ-1")); err != nil {
		t.Fatalf("Failed to create requirement: %v", err)
	}

	retrieved, err := repo.GetRequirement(ctx, "REQ-1")
	if err != nil {
		t.Fatalf("Failed to get requirement: %v", err)
	}
	if retrieved.ProductID != "GUITAR" {
		t.Errorf("Expected product GUITAR, got %s", retrieved.ProductID)
	}
	if retrieved.Status != entities.RequirementProposed {
		t.Errorf("Expected proposed status, got %s", retrieved.Status)
	}
}

func TestRequirementRepository_Create_Duplicate(t *testing.T) {
	repo := NewRequirementRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, requirementFixture("REQ-1")); err != nil {
		t.Fatalf("Failed to create requirement: %v", err)
	}
	if err := repo.Create(ctx, requirementFixture("REQ-1")); err == nil {
		t.Error("Expected error when creating duplicate requirement, got none")
	}
}

func TestRequirementRepository_Create_Nil(t *testing.T) {
	repo := NewRequirementRepository()

	if err := repo.Create(context.Background(), nil); err == nil {
		t.Error("Expected error for nil requirement, got none")
	}
}

func TestRequirementRepository_GetRequirement_NotFound(t *testing.T) {
	repo := NewRequirementRepository()

	_, err := repo.GetRequirement(context.Background(), "NONEXISTENT")
	if !errors.Is(err, repositories.ErrRequirementNotFound) {
		t.Errorf("Expected ErrRequirementNotFound, got %v", err)
	}
}

func TestRequirementRepository_ListRequirements(t *testing.T) {
	repo := NewRequirementRepository()
	ctx := context.Background()

	for _, id := range []string{"REQ-1", "REQ-2", "REQ-3"} {
		if err := repo.Create(ctx, requirementFixture(id)); err != nil {
			t.Fatalf("Failed to create %s: %v", id, err)
		}
	}

	listed, err := repo.ListRequirements(ctx)
	if err != nil {
		t.Fatalf("Failed to list requirements: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("Expected 3 requirements, got %d", len(listed))
	}
	for i, id := range []string{"REQ-1", "REQ-2", "REQ-3"} {
		if listed[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, listed[i].ID)
		}
	}
}
