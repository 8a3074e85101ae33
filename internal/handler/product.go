package handler

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
	"github.com/xenking/shop-catalog/internal/storage/filestore"
)

// AddProduct handles POST /api/admin/categories/:categoryId/product.
func (h *Handler) AddProduct(c *gin.Context) {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		writeError(c, err)
		return
	}

	var dto catalog.ProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		writeError(c, bindError(err))
		return
	}

	res, err := h.catalog.AddProduct(c, categoryID, dto)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListProducts handles GET /api/public/products.
func (h *Handler) ListProducts(c *gin.Context) {
	req, err := h.pageRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.catalog.GetAllProducts(c, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListProductsByCategory handles GET /api/public/categories/:categoryId/products.
func (h *Handler) ListProductsByCategory(c *gin.Context) {
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		writeError(c, err)
		return
	}
	req, err := h.pageRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.catalog.SearchByCategory(c, categoryID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SearchProducts handles GET /api/public/products/keyword/:keyword. The
// result is sent with 302 Found, which existing clients expect.
func (h *Handler) SearchProducts(c *gin.Context) {
	req, err := h.pageRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.catalog.SearchProductByKeyword(c, c.Param("keyword"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusFound, res)
}

// UpdateProduct handles PUT /api/admin/products/:productId.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}

	var dto catalog.ProductDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		writeError(c, bindError(err))
		return
	}

	res, err := h.catalog.UpdateProduct(c, dto, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteProduct handles DELETE /api/admin/products/:productId.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.catalog.DeleteProduct(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateProductImage handles PUT /api/products/:productId/image. The image
// arrives as the multipart form field "image".
func (h *Handler) UpdateProductImage(c *gin.Context) {
	id, err := pathID(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadSize)
	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, &catalog.ValidationError{Field: "image", Reason: "upload exceeds the size limit"})
			return
		}
		writeError(c, &catalog.ValidationError{Field: "image", Reason: "multipart field is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, &catalog.StorageError{Op: "read upload", Err: err})
		return
	}
	defer func() { _ = f.Close() }()

	res, err := h.catalog.UpdateProductImage(c, id, fh.Filename, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ServeImage handles GET /api/images/:name.
func (h *Handler) ServeImage(c *gin.Context) {
	name := c.Param("name")
	f, err := filestore.Open(h.cfg.ImageDir, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(c, &catalog.NotFoundError{Resource: "Image", Field: "name", Value: name})
			return
		}
		writeError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		zctx.From(c.Request.Context()).Debug("Image not servable", zap.String("name", name), zap.Error(err))
		writeError(c, &catalog.NotFoundError{Resource: "Image", Field: "name", Value: name})
		return
	}
	http.ServeContent(c.Writer, c.Request, name, st.ModTime(), f)
}
