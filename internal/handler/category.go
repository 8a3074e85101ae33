package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
)

// ListCategories handles GET /api/public/categories.
func (h *Handler) ListCategories(c *gin.Context) {
	res, err := h.catalog.GetAllCategories(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateCategory handles POST /api/public/categories.
func (h *Handler) CreateCategory(c *gin.Context) {
	var dto catalog.CategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		writeError(c, bindError(err))
		return
	}

	res, err := h.catalog.CreateCategory(c, dto)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UpdateCategory handles PUT /api/public/categories/:categoryId.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := pathID(c, "categoryId")
	if err != nil {
		writeError(c, err)
		return
	}

	var dto catalog.CategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		writeError(c, bindError(err))
		return
	}

	res, err := h.catalog.UpdateCategory(c, dto, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteCategory handles DELETE /api/admin/categories/:categoryId and
// answers with a plain-text confirmation.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := pathID(c, "categoryId")
	if err != nil {
		writeError(c, err)
		return
	}

	msg, err := h.catalog.DeleteCategory(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, msg)
}
