package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
	"github.com/xenking/shop-catalog/internal/domain/page"
)

func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &catalog.ValidationError{Field: name, Reason: "must be a positive integer, got " + strconv.Quote(raw)}
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &catalog.ValidationError{Field: name, Reason: "must be an integer, got " + strconv.Quote(raw)}
	}
	return v, nil
}

func queryString(c *gin.Context, name, def string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return def
}

// pageRequest reads pageNo, pageSize, sortBy and sortDir, falling back to the
// configured defaults. Range checks are left to the service.
func (h *Handler) pageRequest(c *gin.Context) (page.Request, error) {
	d := h.cfg.Pagination

	number, err := queryInt(c, "pageNo", d.PageNumber)
	if err != nil {
		return page.Request{}, err
	}
	size, err := queryInt(c, "pageSize", d.PageSize)
	if err != nil {
		return page.Request{}, err
	}

	return page.NewRequest(
		number,
		size,
		queryString(c, "sortBy", d.SortBy),
		queryString(c, "sortDir", d.SortDir),
	), nil
}
