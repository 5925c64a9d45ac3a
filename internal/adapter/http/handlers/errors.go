package handlers

import (
	"errors"
	"net/http"

	"medrequest_xpto/internal/usecase"
	"medrequest_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid request payload", http.StatusBadRequest)
	errInvalidPrice   = pkg.NewDomainErrorSimple("INVALID_PRICE", "Price must be a positive amount", http.StatusBadRequest)
)

// mapError translates use case errors by kind. Specific codes are checked first.
func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrPriceNotConfigured):
		return pkg.NewDomainErrorSimple("PRICE_NOT_CONFIGURED", "No price configured for this product", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentAlreadyActive):
		return pkg.NewDomainErrorSimple("PAYMENT_ALREADY_PROCESSED", "A payment is already being processed for this request", http.StatusConflict)
	case errors.Is(err, usecase.ErrAttemptInProgress):
		return pkg.NewDomainErrorSimple("PAYMENT_IN_PROGRESS", "A payment with this idempotency key is still processing", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "The request was modified concurrently, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnauthorized):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", err.Error(), http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", err.Error(), http.StatusForbidden)
	case errors.Is(err, usecase.ErrNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidState):
		return pkg.NewDomainErrorSimple("INVALID_STATE", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("CONFLICT", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrExternalFailure):
		return pkg.NewDomainError("UPSTREAM_FAILURE", "An external service failed, try again later", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func abortWithError(c *gin.Context, err error) {
	appErr := mapError(err)
	_ = c.Error(appErr)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func abortWithAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
