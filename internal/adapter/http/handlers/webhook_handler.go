package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	request "medrequest_xpto/internal/adapter/http/dto/request"
	response "medrequest_xpto/internal/adapter/http/dto/response"
	"medrequest_xpto/internal/adapter/http/middleware"
	"medrequest_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

const HeaderSignature = "X-Signature"

// WebhookHandler receives Mercado Pago notifications. It has no actor: the gateway
// signature is the only credential.
type WebhookHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewWebhookHandler(uc usecase.IPaymentUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// Receive answers 200 for applied, duplicate and ignored notifications so the
// gateway stops retrying, and 5xx for retryable failures.
//
// @Summary  Mercado Pago webhook
// @Tags     webhooks
// @Accept   json
// @Produce  json
// @Param    X-Signature header string                 false "ts=...,v1=..."
// @Param    body        body   request.WebhookRequest false "Notification"
// @Success  200 {object} response.WebhookResponse
// @Failure  401 {object} pkg.HTTPError
// @Router   /webhooks/mercadopago [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithAppError(c, errInvalidPayload)
		return
	}

	var payload request.WebhookRequest
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			abortWithAppError(c, errInvalidPayload)
			return
		}
	}

	n := usecase.WebhookNotification{
		EventID:         payload.EventID(),
		Topic:           payload.ResolveTopic(),
		Action:          payload.Action,
		DataID:          payload.DataID(),
		SignatureHeader: c.GetHeader(HeaderSignature),
		RequestID:       c.GetHeader(middleware.HeaderRequestID),
	}
	if len(raw) > 0 {
		n.Payload = json.RawMessage(raw)
	}
	// Legacy IPN notifications carry everything in the query string.
	if n.DataID == "" {
		n.DataID = strings.TrimSpace(firstQuery(c, "data.id", "id"))
	}
	if n.Topic == "" {
		n.Topic = strings.TrimSpace(firstQuery(c, "type", "topic"))
	}

	res, err := h.usecase.ProcessWebhook(c.Request.Context(), n)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromWebhookResult(res))
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}
