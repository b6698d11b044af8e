package memory

import (
	"fmt"

	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
)

// RoutingRepository is an in-memory routing store indexed by product
type RoutingRepository struct {
	routings  []entities.Routing
	byProduct map[entities.ProductID]int
}

// NewRoutingRepository creates an in-memory routing repository
func NewRoutingRepository(expectedRoutings int) *RoutingRepository {
	return &RoutingRepository{
		routings:  make([]entities.Routing, 0, expectedRoutings),
		byProduct: make(map[entities.ProductID]int, expectedRoutings),
	}
}

// Verify interface compliance
var _ repositories.RoutingRepository = (*RoutingRepository)(nil)

// LoadRoutings loads routings into the repository
func (r *RoutingRepository) LoadRoutings(routings []*entities.Routing) error {
	for _, routing := range routings {
		r.AddRouting(*routing)
	}
	return nil
}

// AddRouting adds a routing to the repository. A later routing for the same
// product replaces the earlier index entry.
func (r *RoutingRepository) AddRouting(routing entities.Routing) {
	r.byProduct[routing.ProductID] = len(r.routings)
	r.routings = append(r.routings, routing)
}

// GetRoutingForProduct returns the routing that produces a product
func (r *RoutingRepository) GetRoutingForProduct(productID entities.ProductID) (*entities.Routing, error) {
	index, exists := r.byProduct[productID]
	if !exists {
		return nil, fmt.Errorf("%w: product %s", repositories.ErrRoutingNotFound, productID)
	}
	return &r.routings[index], nil
}

// GetAllRoutings returns all routings
func (r *RoutingRepository) GetAllRoutings() ([]*entities.Routing, error) {
	routings := make([]*entities.Routing, 0, len(r.routings))
	for i := range r.routings {
		routings = append(routings, &r.routings[i])
	}
	return routings, nil
}
