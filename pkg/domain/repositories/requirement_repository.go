package repositories

import (
	"context"
	"errors"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// ErrRequirementNotFound indicates an unknown requirement identifier
var ErrRequirementNotFound = errors.New("requirement not found")

// RequirementRepository persists requirements generated by planning
type RequirementRepository interface {
	Create(ctx context.Context, requirement *entities.Requirement) error
	GetRequirement(ctx context.Context, id string) (*entities.Requirement, error)
	ListRequirements(ctx context.Context) ([]*entities.Requirement, error)
}
