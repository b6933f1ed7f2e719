package handler

import (
	"errors"
	"net/http"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/apierror"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindQuery binds query parameters into req and runs go-playground/validator
// tags. Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid query: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid query"))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps catalog errors to HTTP statuses. Anything unexpected is
// handed to middleware.ErrorHandler, which logs it and answers 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
	case errors.Is(err, catalog.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, apierror.New("Catalog temporarily unavailable"))
	default:
		_ = c.Error(err)
	}
}
