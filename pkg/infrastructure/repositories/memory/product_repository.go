package memory

import (
	"fmt"

	"github.com/reqplan/reqplan/pkg/domain/entities"
	"github.com/reqplan/reqplan/pkg/domain/repositories"
)

// ProductRepository is an in-memory product master store
type ProductRepository struct {
	products    []entities.Product
	productsMap map[entities.ProductID]int
	facilities  map[facilityKey]entities.ProductFacility
}

type facilityKey struct {
	productID  entities.ProductID
	facilityID entities.FacilityID
}

// NewProductRepository creates an in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:    make([]entities.Product, 0, expectedProducts),
		productsMap: make(map[entities.ProductID]int, expectedProducts),
		facilities:  make(map[facilityKey]entities.ProductFacility),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	for _, product := range products {
		r.AddProduct(*product)
	}
	return nil
}

// LoadProductFacilities loads facility policies into the repository
func (r *ProductRepository) LoadProductFacilities(facilities []*entities.ProductFacility) error {
	for _, facility := range facilities {
		r.AddProductFacility(*facility)
	}
	return nil
}

// AddProduct adds a product to the repository
func (r *ProductRepository) AddProduct(product entities.Product) {
	r.productsMap[product.ID] = len(r.products)
	r.products = append(r.products, product)
}

// AddProductFacility adds a facility policy to the repository
func (r *ProductRepository) AddProductFacility(facility entities.ProductFacility) {
	r.facilities[facilityKey{facility.ProductID, facility.FacilityID}] = facility
}

// GetProduct returns product master data for an identifier
func (r *ProductRepository) GetProduct(productID entities.ProductID) (*entities.Product, error) {
	index, exists := r.productsMap[productID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrProductNotFound, productID)
	}
	return &r.products[index], nil
}

// GetProductFacility returns the supply policy for a product at a facility
func (r *ProductRepository) GetProductFacility(
	productID entities.ProductID,
	facilityID entities.FacilityID,
) (*entities.ProductFacility, error) {
	facility, exists := r.facilities[facilityKey{productID, facilityID}]
	if !exists {
		return nil, fmt.Errorf("%w: %s at %s", repositories.ErrProductFacilityNotFound, productID, facilityID)
	}
	return &facility, nil
}

// GetAllProducts returns all products
func (r *ProductRepository) GetAllProducts() ([]*entities.Product, error) {
	products := make([]*entities.Product, 0, len(r.products))
	for i := range r.products {
		products = append(products, &r.products[i])
	}
	return products, nil
}
