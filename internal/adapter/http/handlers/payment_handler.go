package handlers

import (
	"net/http"

	request "medrequest_xpto/internal/adapter/http/dto/request"
	response "medrequest_xpto/internal/adapter/http/dto/response"
	"medrequest_xpto/internal/adapter/http/middleware"
	"medrequest_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// PaymentHandler handles HTTP requests for payments and saved cards.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment charges the stored price of an approved request.
// A repeated Idempotency-Key returns the original payment with 200.
//
// @Summary  Create a payment
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key header string                       false "Correlation id"
// @Param    body            body   request.CreatePaymentRequest true  "Payment payload"
// @Success  201 {object} response.PaymentResponse
// @Success  200 {object} response.PaymentResponse "Replayed"
// @Failure  409 {object} pkg.HTTPError
// @Failure  502 {object} pkg.HTTPError
// @Security Bearer
// @Router   /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}

	res, err := h.usecase.CreatePayment(c.Request.Context(), middleware.ActorFrom(c), payload.ToInput(c.GetHeader(HeaderIdempotencyKey)))
	h.respondResult(c, res, err)
}

// @Summary  Pay with a saved card
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key header string                          false "Correlation id"
// @Param    body            body   request.SavedCardPaymentRequest true  "Payment payload"
// @Success  201 {object} response.PaymentResponse
// @Security Bearer
// @Router   /payments/saved-card [post]
func (h *PaymentHandler) PayWithSavedCard(c *gin.Context) {
	var payload request.SavedCardPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}

	res, err := h.usecase.PayWithSavedCard(c.Request.Context(), middleware.ActorFrom(c), payload.ToInput(c.GetHeader(HeaderIdempotencyKey)))
	h.respondResult(c, res, err)
}

// @Summary  Get a payment
// @Tags     payments
// @Produce  json
// @Param    id path string true "Payment ID"
// @Success  200 {object} response.PaymentResponse
// @Security Bearer
// @Router   /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// @Summary  List payments of a request
// @Tags     payments
// @Produce  json
// @Param    id path string true "Request ID"
// @Success  200 {array} response.PaymentResponse
// @Security Bearer
// @Router   /requests/{id}/payments [get]
func (h *PaymentHandler) ListByRequest(c *gin.Context) {
	list, err := h.usecase.ListByRequestID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(list))
}

// @Summary  Save a gateway card reference
// @Tags     cards
// @Accept   json
// @Produce  json
// @Param    body body request.SaveCardRequest true "Card reference"
// @Success  201 {object} response.SavedCardResponse
// @Security Bearer
// @Router   /cards [post]
func (h *PaymentHandler) SaveCard(c *gin.Context) {
	var payload request.SaveCardRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}

	card, err := h.usecase.SaveCard(c.Request.Context(), middleware.ActorFrom(c), payload.ToInput())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromSavedCard(card))
}

// @Summary  List saved cards of the caller
// @Tags     cards
// @Produce  json
// @Success  200 {array} response.SavedCardResponse
// @Security Bearer
// @Router   /cards [get]
func (h *PaymentHandler) ListCards(c *gin.Context) {
	cards, err := h.usecase.ListSavedCards(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSavedCards(cards))
}

func (h *PaymentHandler) respondResult(c *gin.Context, res usecase.PaymentResult, err error) {
	if err != nil {
		abortWithError(c, err)
		return
	}
	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, response.FromPaymentResult(res))
}
