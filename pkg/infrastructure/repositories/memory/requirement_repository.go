package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
)

// RequirementRepository is an in-memory requirement store. Unlike the pure
// lookup repositories it is written to during planning, so it locks.
type RequirementRepository struct {
	requirements []entities.Requirement
	byID         map[string]int
	mutex        sync.RWMutex
}

// NewRequirementRepository creates an in-memory requirement repository
func NewRequirementRepository() *RequirementRepository {
	return &RequirementRepository{
		byID: make(map[string]int),
	}
}

// Verify interface compliance
var _ repositories.RequirementRepository = (*RequirementRepository)(nil)

// Create stores a new requirement
func (r *RequirementRepository) Create(ctx context.Context, requirement *entities.Requirement) error {
	if requirement == nil {
		return fmt.Errorf("requirement cannot be nil")
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byID[requirement.ID]; exists {
		return fmt.Errorf("requirement %s already exists", requirement.ID)
	}
	r.byID[requirement.ID] = len(r.requirements)
	r.requirements = append(r.requirements, *requirement)
	return nil
}

// GetRequirement returns a requirement by identifier
func (r *RequirementRepository) GetRequirement(ctx context.Context, id string) (*entities.Requirement, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	index, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrRequirementNotFound, id)
	}
	requirement := r.requirements[index]
	return &requirement, nil
}

// ListRequirements returns all requirements in creation order
func (r *RequirementRepository) ListRequirements(ctx context.Context) ([]*entities.Requirement, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*entities.Requirement, 0, len(r.requirements))
	for i := range r.requirements {
		requirement := r.requirements[i]
		out = append(out, &requirement)
	}
	return out, nil
}
