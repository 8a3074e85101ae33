package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/shop-catalog/internal/domain/category"
	"github.com/xenking/shop-catalog/internal/domain/page"
	"github.com/xenking/shop-catalog/internal/domain/product"
)

// CategoryDTO is the wire representation of a category.
type CategoryDTO struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName" binding:"required"`
}

// ProductDTO is the wire representation of a product. SpecialPrice, Image
// and the category fields are output only.
type ProductDTO struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName" binding:"required"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity" binding:"gte=0,lte=2147483647"`
	Price        float64 `json:"price" binding:"gte=0,lt=10000000000"`
	Discount     float64 `json:"discount" binding:"gte=0,lte=100"`
	SpecialPrice float64 `json:"specialPrice"`
	Image        string  `json:"image"`
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
}

// PageMeta describes the position of a response within the full result set.
type PageMeta struct {
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	LastPage      bool  `json:"lastPage"`
}

// CategoryResponse is a list of categories with page metadata.
type CategoryResponse struct {
	Content []CategoryDTO `json:"content"`
	PageMeta
}

// ProductResponse is one page of products with page metadata.
type ProductResponse struct {
	Content []ProductDTO `json:"content"`
	PageMeta
}

func toCategoryDTO(c category.Category) CategoryDTO {
	return CategoryDTO{
		CategoryID:   c.ID,
		CategoryName: c.Name,
	}
}

func toProductDTO(p product.Product) ProductDTO {
	return ProductDTO{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Description:  p.Description,
		Quantity:     p.Quantity,
		Price:        p.Price.InexactFloat64(),
		Discount:     p.Discount.InexactFloat64(),
		SpecialPrice: p.SpecialPrice.InexactFloat64(),
		Image:        p.Image,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}

// fromProductDTO copies the caller-controlled fields of dto into a new
// Product. Prices are rounded to cents, matching the NUMERIC(12,2) columns.
func fromProductDTO(dto ProductDTO) product.Product {
	return product.Product{
		Name:        dto.ProductName,
		Description: dto.Description,
		Quantity:    dto.Quantity,
		Price:       decimal.NewFromFloat(dto.Price).Round(2),
		Discount:    decimal.NewFromFloat(dto.Discount).Round(2),
	}
}

func metaOf[T any](p page.Page[T]) PageMeta {
	return PageMeta{
		PageNumber:    p.Number,
		PageSize:      p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
		LastPage:      p.IsLast(),
	}
}

func toProductResponse(p page.Page[product.Product]) *ProductResponse {
	dtos := page.Map(p, toProductDTO)
	return &ProductResponse{
		Content:  dtos.Items,
		PageMeta: metaOf(dtos),
	}
}
