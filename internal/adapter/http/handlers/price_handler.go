package handlers

import (
	"net/http"
	"strings"

	request "medrequest_xpto/internal/adapter/http/dto/request"
	response "medrequest_xpto/internal/adapter/http/dto/response"
	"medrequest_xpto/internal/adapter/http/middleware"
	"medrequest_xpto/internal/domain/entities"
	"medrequest_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	usecase usecase.IPriceUseCase
}

func NewPriceHandler(uc usecase.IPriceUseCase) *PriceHandler {
	return &PriceHandler{usecase: uc}
}

// @Summary  List stored prices
// @Tags     prices
// @Produce  json
// @Success  200 {array} response.PriceResponse
// @Security Bearer
// @Router   /prices [get]
func (h *PriceHandler) List(c *gin.Context) {
	list, err := h.usecase.ListPrices(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPrices(list))
}

// Set stores a price. It takes effect on the next restart.
//
// @Summary  Set a price (admin)
// @Tags     prices
// @Accept   json
// @Produce  json
// @Param    body body request.PriceRequest true "Price entry"
// @Success  200 {object} response.PriceResponse
// @Security Bearer
// @Router   /prices [put]
func (h *PriceHandler) Set(c *gin.Context) {
	var payload request.PriceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}
	price, err := payload.ResolvePrice()
	if err != nil {
		abortWithAppError(c, errInvalidPrice)
		return
	}

	entry, err := h.usecase.SetPrice(
		c.Request.Context(),
		middleware.ActorFrom(c),
		entities.RequestType(strings.ToLower(strings.TrimSpace(payload.ProductType))),
		strings.TrimSpace(payload.Subtype),
		price,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPrice(entry))
}
