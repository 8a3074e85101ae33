// Package handler exposes the catalog over HTTP with gin.
package handler

import (
	"context"
	"io"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
	"github.com/xenking/shop-catalog/internal/domain/page"
	"github.com/xenking/shop-catalog/pkg/httpmiddleware"
)

// CatalogService is the part of catalog.Service the controllers call.
type CatalogService interface {
	GetAllCategories(ctx context.Context) (*catalog.CategoryResponse, error)
	CreateCategory(ctx context.Context, dto catalog.CategoryDTO) (*catalog.CategoryDTO, error)
	UpdateCategory(ctx context.Context, dto catalog.CategoryDTO, id int64) (*catalog.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id int64) (string, error)
	AddProduct(ctx context.Context, categoryID int64, dto catalog.ProductDTO) (*catalog.ProductDTO, error)
	GetAllProducts(ctx context.Context, req page.Request) (*catalog.ProductResponse, error)
	SearchByCategory(ctx context.Context, categoryID int64, req page.Request) (*catalog.ProductResponse, error)
	SearchProductByKeyword(ctx context.Context, keyword string, req page.Request) (*catalog.ProductResponse, error)
	UpdateProduct(ctx context.Context, dto catalog.ProductDTO, productID int64) (*catalog.ProductDTO, error)
	DeleteProduct(ctx context.Context, productID int64) (*catalog.ProductDTO, error)
	UpdateProductImage(ctx context.Context, productID int64, fileName string, content io.Reader) (*catalog.ProductDTO, error)
}

var _ CatalogService = (*catalog.Service)(nil)

// PaginationDefaults fill page query parameters the caller left out.
type PaginationDefaults struct {
	PageNumber int
	PageSize   int
	SortBy     string
	SortDir    string
}

// Config holds non-dependency configuration for the Handler.
type Config struct {
	Pagination PaginationDefaults
	// ImageDir is the directory stored images are served from.
	ImageDir string
	// MaxUploadSize limits the multipart body of an image upload, in bytes.
	MaxUploadSize int64
}

// Handler implements the catalog REST controllers.
type Handler struct {
	catalog CatalogService
	cfg     Config
}

// NewHandler constructs a Handler delegating to svc.
func NewHandler(cfg Config, svc CatalogService) *Handler {
	registerJSONFieldNames.Do(useJSONFieldNames)
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = 10 << 20
	}
	return &Handler{
		catalog: svc,
		cfg:     cfg,
	}
}

// RegisterRoutes mounts every catalog route on router.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	public := router.Group("/public")
	{
		public.GET("/categories", h.ListCategories)
		public.POST("/categories", h.CreateCategory)
		public.PUT("/categories/:categoryId", h.UpdateCategory)
		public.GET("/categories/:categoryId/products", h.ListProductsByCategory)
		public.GET("/products", h.ListProducts)
		public.GET("/products/keyword/:keyword", h.SearchProducts)
	}

	admin := router.Group("/admin")
	{
		admin.DELETE("/categories/:categoryId", h.DeleteCategory)
		admin.POST("/categories/:categoryId/product", h.AddProduct)
		admin.PUT("/products/:productId", h.UpdateProduct)
		admin.DELETE("/products/:productId", h.DeleteProduct)
	}

	router.PUT("/products/:productId/image", h.UpdateProductImage)
	router.GET("/images/:name", h.ServeImage)
}

// NewRouter returns a gin engine serving the catalog under /api. Request
// logging and recovery are left to the surrounding middleware chain.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.ContextWithFallback = true
	r.MaxMultipartMemory = h.cfg.MaxUploadSize
	r.Use(func(c *gin.Context) {
		httpmiddleware.SetRoute(c.Request.Context(), c.FullPath())
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api"))
	return r
}

var registerJSONFieldNames sync.Once

// useJSONFieldNames makes validator report JSON field names, so binding
// errors name the field the client actually sent.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
}
