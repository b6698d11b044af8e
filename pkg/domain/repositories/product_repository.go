package repositories

import (
	"errors"

	"github.com/reqplan/reqplan/pkg/domain/entities"
)

// ErrProductNotFound indicates an unknown product identifier
var ErrProductNotFound = errors.New("product not found")

// ErrProductFacilityNotFound indicates a product with no supply policy at
// the requested facility
var ErrProductFacilityNotFound = errors.New("product facility policy not found")

// ProductRepository provides access to product master data
type ProductRepository interface {
	GetProduct(productID entities.ProductID) (*entities.Product, error)
	GetProductFacility(productID entities.ProductID, facilityID entities.FacilityID) (*entities.ProductFacility, error)
	GetAllProducts() ([]*entities.Product, error)
	LoadProducts(products []*entities.Product) error
	LoadProductFacilities(facilities []*entities.ProductFacility) error
}
