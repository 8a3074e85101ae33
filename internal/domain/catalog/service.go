// Package catalog implements the catalog business rules on top of the
// category and product repositories: category CRUD, product CRUD, paged
// product listings and product image replacement.
package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shop-catalog/internal/domain/category"
	"github.com/xenking/shop-catalog/internal/domain/page"
	"github.com/xenking/shop-catalog/internal/domain/product"
)

// ErrNoExtension is returned by an ImageStore when the uploaded file name has
// no extension to carry over to the stored name.
var ErrNoExtension = errors.New("image file name has no extension")

// ImageStore persists uploaded product images.
type ImageStore interface {
	// SaveImage writes content into dir under a newly generated name that
	// keeps the extension of originalName, and returns that name.
	SaveImage(ctx context.Context, dir, originalName string, content io.Reader) (string, error)
}

// Config holds non-dependency settings of the Service.
type Config struct {
	// ImageDir is the directory uploaded product images are written to.
	ImageDir string
	// MaxPageSize caps the page size a caller may request. Zero means 100.
	MaxPageSize int
}

// Service encapsulates the catalog business logic.
type Service struct {
	categories category.Repository
	products   product.Repository
	images     ImageStore
	cfg        Config
}

// NewService creates a catalog Service with the required dependencies.
func NewService(
	cfg Config,
	categories category.Repository,
	products product.Repository,
	images ImageStore,
) *Service {
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &Service{
		categories: categories,
		products:   products,
		images:     images,
		cfg:        cfg,
	}
}

// GetAllCategories returns every category as a single, unpaginated page.
func (s *Service) GetAllCategories(ctx context.Context) (*CategoryResponse, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	content := make([]CategoryDTO, len(cats))
	for i, c := range cats {
		content[i] = toCategoryDTO(c)
	}

	all := page.New(page.Request{Size: len(content)}, content, int64(len(content)))
	return &CategoryResponse{
		Content:  all.Items,
		PageMeta: metaOf(all),
	}, nil
}

// CreateCategory persists a new category and returns it with its generated id.
func (s *Service) CreateCategory(ctx context.Context, dto CategoryDTO) (*CategoryDTO, error) {
	if err := validateCategory(dto); err != nil {
		return nil, err
	}

	c := category.Category{Name: dto.CategoryName}
	if err := s.categories.Create(ctx, &c); err != nil {
		return nil, errors.Wrap(err, "create category")
	}

	out := toCategoryDTO(c)
	return &out, nil
}

// UpdateCategory replaces the mutable fields of category id.
func (s *Service) UpdateCategory(ctx context.Context, dto CategoryDTO, id int64) (*CategoryDTO, error) {
	if err := validateCategory(dto); err != nil {
		return nil, err
	}

	c, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = dto.CategoryName
	if err := s.categories.Update(ctx, c); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, categoryNotFound(id)
		}
		return nil, errors.Wrapf(err, "update category %d", id)
	}

	out := toCategoryDTO(*c)
	return &out, nil
}

// DeleteCategory removes category id together with its products and returns
// a confirmation message.
func (s *Service) DeleteCategory(ctx context.Context, id int64) (string, error) {
	if _, err := s.getCategory(ctx, id); err != nil {
		return "", err
	}

	owned, err := s.products.CountInCategory(ctx, id)
	if err != nil {
		return "", errors.Wrapf(err, "count products of category %d", id)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return "", categoryNotFound(id)
		}
		return "", errors.Wrapf(err, "delete category %d", id)
	}

	if owned == 0 {
		return fmt.Sprintf("Category with categoryId: %d deleted successfully", id), nil
	}
	return fmt.Sprintf("Category with categoryId: %d deleted successfully along with %d product(s)", id, owned), nil
}

// AddProduct creates a product under category categoryID. It fails with a
// DuplicateError, without writing, when the category already holds a
// product with the same name.
func (s *Service) AddProduct(ctx context.Context, categoryID int64, dto ProductDTO) (*ProductDTO, error) {
	if err := validateProduct(dto); err != nil {
		return nil, err
	}

	c, err := s.getCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	names, err := s.products.NamesInCategory(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrapf(err, "list product names of category %d", categoryID)
	}
	for _, name := range names {
		if name == dto.ProductName {
			return nil, duplicateProduct(dto.ProductName)
		}
	}

	p := fromProductDTO(dto)
	p.Image = product.DefaultImage
	p.CategoryID = c.ID
	p.CategoryName = c.Name
	p.Reprice()

	if err := s.products.Create(ctx, &p); err != nil {
		if errors.Is(err, product.ErrDuplicateName) {
			return nil, duplicateProduct(dto.ProductName)
		}
		return nil, errors.Wrap(err, "create product")
	}

	out := toProductDTO(p)
	return &out, nil
}

// GetAllProducts returns one page of all products.
func (s *Service) GetAllProducts(ctx context.Context, req page.Request) (*ProductResponse, error) {
	req, err := s.validatePage(req)
	if err != nil {
		return nil, err
	}

	res, err := s.products.List(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return toProductResponse(res), nil
}

// SearchByCategory returns one page of the products of category categoryID,
// ordered as requested. An unknown category is reported before a malformed
// page request.
func (s *Service) SearchByCategory(ctx context.Context, categoryID int64, req page.Request) (*ProductResponse, error) {
	c, err := s.getCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	req, err = s.validatePage(req)
	if err != nil {
		return nil, err
	}

	res, err := s.products.ListByCategory(ctx, categoryID, req)
	if err != nil {
		return nil, errors.Wrapf(err, "list products of category %d", categoryID)
	}

	res = page.Map(res, func(p product.Product) product.Product {
		p.CategoryID = c.ID
		p.CategoryName = c.Name
		return p
	})
	return toProductResponse(res), nil
}

// SearchProductByKeyword returns one page of the products whose name
// contains keyword, ignoring case.
func (s *Service) SearchProductByKeyword(ctx context.Context, keyword string, req page.Request) (*ProductResponse, error) {
	req, err := s.validatePage(req)
	if err != nil {
		return nil, err
	}

	res, err := s.products.SearchByName(ctx, keyword, req)
	if err != nil {
		return nil, errors.Wrapf(err, "search products by %q", keyword)
	}
	return toProductResponse(res), nil
}

// UpdateProduct overwrites name, description, quantity, price and discount
// of product productID and recomputes its special price. Image and category
// are kept.
func (s *Service) UpdateProduct(ctx context.Context, dto ProductDTO, productID int64) (*ProductDTO, error) {
	if err := validateProduct(dto); err != nil {
		return nil, err
	}

	p, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	in := fromProductDTO(dto)
	p.Name = in.Name
	p.Description = in.Description
	p.Quantity = in.Quantity
	p.Price = in.Price
	p.Discount = in.Discount
	p.Reprice()

	if err := s.saveProduct(ctx, p); err != nil {
		return nil, err
	}

	out := toProductDTO(*p)
	return &out, nil
}

// DeleteProduct removes product productID and returns its last state.
func (s *Service) DeleteProduct(ctx context.Context, productID int64) (*ProductDTO, error) {
	p, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, productNotFound(productID)
		}
		return nil, errors.Wrapf(err, "delete product %d", productID)
	}

	out := toProductDTO(*p)
	return &out, nil
}

// UpdateProductImage stores content as the new image of product productID.
// The previous image file is left on disk.
func (s *Service) UpdateProductImage(ctx context.Context, productID int64, fileName string, content io.Reader) (*ProductDTO, error) {
	p, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.SaveImage(ctx, s.cfg.ImageDir, fileName, content)
	if err != nil {
		if errors.Is(err, ErrNoExtension) {
			return nil, &ValidationError{Field: "image", Reason: fmt.Sprintf("file name %q has no extension", fileName)}
		}
		return nil, &StorageError{Op: "store image", Err: err}
	}

	p.Image = stored
	if err := s.saveProduct(ctx, p); err != nil {
		return nil, err
	}

	out := toProductDTO(*p)
	return &out, nil
}

func (s *Service) getCategory(ctx context.Context, id int64) (*category.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, categoryNotFound(id)
		}
		return nil, errors.Wrapf(err, "get category %d", id)
	}
	return c, nil
}

func (s *Service) getProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, productNotFound(id)
		}
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	return p, nil
}

func (s *Service) saveProduct(ctx context.Context, p *product.Product) error {
	err := s.products.Update(ctx, p)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, product.ErrNotFound):
		return productNotFound(p.ID)
	case errors.Is(err, product.ErrDuplicateName):
		return duplicateProduct(p.Name)
	default:
		return errors.Wrapf(err, "update product %d", p.ID)
	}
}

func (s *Service) validatePage(req page.Request) (page.Request, error) {
	if req.Number < 0 {
		return req, &ValidationError{Field: "pageNo", Reason: "must not be negative"}
	}
	if req.Size < 1 || req.Size > s.cfg.MaxPageSize {
		return req, &ValidationError{Field: "pageSize", Reason: fmt.Sprintf("must be between 1 and %d", s.cfg.MaxPageSize)}
	}
	if req.OffsetOverflows() {
		return req, &ValidationError{Field: "pageNo", Reason: fmt.Sprintf("must be at most %d for page size %d", page.MaxNumber(req.Size), req.Size)}
	}
	field, ok := product.CanonicalSortField(req.SortBy)
	if !ok {
		return req, &ValidationError{Field: "sortBy", Reason: fmt.Sprintf("cannot sort by %q", req.SortBy)}
	}
	req.SortBy = field
	return req, nil
}

func validateCategory(dto CategoryDTO) error {
	if strings.TrimSpace(dto.CategoryName) == "" {
		return &ValidationError{Field: "categoryName", Reason: "must not be blank"}
	}
	return nil
}

func validateProduct(dto ProductDTO) error {
	switch {
	case strings.TrimSpace(dto.ProductName) == "":
		return &ValidationError{Field: "productName", Reason: "must not be blank"}
	case dto.Quantity < 0:
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	case dto.Quantity > product.MaxQuantity:
		return &ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be at most %d", product.MaxQuantity)}
	case dto.Price < 0:
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	case !decimal.NewFromFloat(dto.Price).Round(2).LessThan(product.PriceLimit):
		return &ValidationError{Field: "price", Reason: "must be less than " + product.PriceLimit.String()}
	case dto.Discount < 0 || dto.Discount > 100:
		return &ValidationError{Field: "discount", Reason: "must be between 0 and 100"}
	}
	return nil
}
