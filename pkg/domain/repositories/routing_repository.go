package repositories

import (
	"errors"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// ErrRoutingNotFound indicates a product with no routing on file
var ErrRoutingNotFound = errors.New("routing not found")

// RoutingRepository provides access to routing data
type RoutingRepository interface {
	GetRoutingForProduct(productID entities.ProductID) (*entities.Routing, error)
	GetAllRoutings() ([]*entities.Routing, error)
	LoadRoutings(routings []*entities.Routing) error
}
