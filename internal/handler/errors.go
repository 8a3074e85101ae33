package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps a catalog error to its HTTP status.
func statusOf(err error) int {
	var (
		nfErr  *catalog.NotFoundError
		dupErr *catalog.DuplicateError
		vErr   *catalog.ValidationError
	)
	switch {
	case errors.As(err, &nfErr):
		return http.StatusNotFound
	case errors.As(err, &dupErr):
		return http.StatusConflict
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError aborts the request with the status and message err maps to.
// Server-side failures are logged and hidden from the client.
func writeError(c *gin.Context, err error) {
	code := statusOf(err)
	msg := err.Error()

	if code >= http.StatusInternalServerError {
		zctx.From(c.Request.Context()).Error("Request failed",
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		msg = http.StatusText(code)
		var sErr *catalog.StorageError
		if errors.As(err, &sErr) {
			msg = "failed to " + sErr.Op
		}
	}

	c.AbortWithStatusJSON(code, ErrorResponse{Code: code, Message: msg})
}

// bindError converts a gin binding failure into a ValidationError.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &catalog.ValidationError{Field: fe.Field(), Reason: describeTag(fe)}
	}
	return &catalog.ValidationError{Field: "body", Reason: err.Error()}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}
