package handlers

import (
	"net/http"

	request "medrequest_xpto/internal/adapter/http/dto/request"
	response "medrequest_xpto/internal/adapter/http/dto/response"
	"medrequest_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

// VerificationHandler serves the public document check printed as a QR code.
type VerificationHandler struct {
	usecase usecase.IVerificationUseCase
}

func NewVerificationHandler(uc usecase.IVerificationUseCase) *VerificationHandler {
	return &VerificationHandler{usecase: uc}
}

// @Summary  Public document verification
// @Tags     verification
// @Produce  json
// @Param    id path string true "Document ID"
// @Success  200 {object} response.VerificationPublicResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /verify/{id} [get]
func (h *VerificationHandler) GetPublic(c *gin.Context) {
	view, err := h.usecase.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPublicView(view))
}

// GetFull answers 401 for any wrong code, whether or not the document exists.
//
// @Summary  Full document verification with access code
// @Tags     verification
// @Accept   json
// @Produce  json
// @Param    id   path string                true "Document ID"
// @Param    body body request.VerifyRequest true "Access code"
// @Success  200 {object} response.VerificationFullResponse
// @Failure  401 {object} pkg.HTTPError
// @Router   /verify/{id} [post]
func (h *VerificationHandler) GetFull(c *gin.Context) {
	var payload request.VerifyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}

	view, err := h.usecase.GetFull(c.Request.Context(), c.Param("id"), payload.AccessCode)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromFullView(view))
}
