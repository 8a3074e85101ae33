// Package product defines the catalog product entity, its pricing rule and
// its persistence contract.
package product

import (
	"context"
	"math"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shop-catalog/internal/domain/page"
)

// DefaultImage is the image name of a product that has no uploaded image.
const DefaultImage = "default.png"

// MaxQuantity is the largest stock count the store can hold.
const MaxQuantity = math.MaxInt32

// PriceLimit is the exclusive upper bound of a price rounded to cents.
var PriceLimit = decimal.New(1, 10)

var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateName is returned by a Repository when a write would leave
	// two products with the same name in one category.
	ErrDuplicateName = errors.New("product name already exists in category")
)

// Product represents a catalog item. SpecialPrice is derived from Price and
// Discount and is never set independently.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Quantity     int
	Price        decimal.Decimal
	Discount     decimal.Decimal
	SpecialPrice decimal.Decimal
	Image        string
	CategoryID   int64
	CategoryName string
}

// Reprice recomputes SpecialPrice from the current Price and Discount.
func (p *Product) Reprice() {
	p.SpecialPrice = SpecialPrice(p.Price, p.Discount)
}

// Sort fields accepted in page requests.
const (
	SortByID           = "productId"
	SortByName         = "productName"
	SortByDescription  = "description"
	SortByQuantity     = "quantity"
	SortByPrice        = "price"
	SortByDiscount     = "discount"
	SortBySpecialPrice = "specialPrice"
)

var sortFields = map[string]string{
	SortByID:           SortByID,
	"id":               SortByID,
	SortByName:         SortByName,
	"name":             SortByName,
	SortByDescription:  SortByDescription,
	SortByQuantity:     SortByQuantity,
	SortByPrice:        SortByPrice,
	SortByDiscount:     SortByDiscount,
	SortBySpecialPrice: SortBySpecialPrice,
	"special_price":    SortBySpecialPrice,
}

// CanonicalSortField resolves a caller-supplied sort field (API name or
// column name) to one of the SortBy constants.
func CanonicalSortField(field string) (string, bool) {
	f, ok := sortFields[field]
	return f, ok
}

// Repository defines persistence operations for products. Every returned
// Product has CategoryName populated.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, req page.Request) (page.Page[Product], error)
	ListByCategory(ctx context.Context, categoryID int64, req page.Request) (page.Page[Product], error)
	SearchByName(ctx context.Context, keyword string, req page.Request) (page.Page[Product], error)
	NamesInCategory(ctx context.Context, categoryID int64) ([]string, error)
	CountInCategory(ctx context.Context, categoryID int64) (int64, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
