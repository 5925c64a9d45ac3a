package routes

import (
	"medrequest_xpto/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathRequests = "/requests"
	PathPayments = "/payments"
	PathCards    = "/cards"
	PathPrices   = "/prices"
	PathVerify   = "/verify"
	PathWebhooks = "/webhooks"
)

func addRequestRoutes(rg *gin.RouterGroup, h *handlers.RequestHandler, payments *handlers.PaymentHandler) {
	requests := rg.Group(PathRequests)
	{
		requests.POST("", h.Submit)
		requests.GET("", h.List)
		requests.GET("/:id", h.Get)
		requests.GET("/:id/payments", payments.ListByRequest)
		requests.POST("/:id/reanalyze", h.Reanalyze)
		requests.POST("/:id/approve", h.Approve)
		requests.POST("/:id/reject", h.Reject)
		requests.POST("/:id/sign", h.Sign)
		requests.POST("/:id/deliver", h.Deliver)
		requests.POST("/:id/cancel", h.Cancel)
		requests.POST("/:id/consultation/accept", h.AcceptConsultation)
		requests.POST("/:id/consultation/start", h.StartConsultation)
		requests.POST("/:id/consultation/finish", h.FinishConsultation)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", h.CreatePayment)
		payments.POST("/saved-card", h.PayWithSavedCard)
		payments.GET("/:id", h.GetPayment)
	}

	cards := rg.Group(PathCards)
	{
		cards.POST("", h.SaveCard)
		cards.GET("", h.ListCards)
	}
}

func addPriceRoutes(rg *gin.RouterGroup, h *handlers.PriceHandler) {
	prices := rg.Group(PathPrices)
	{
		prices.GET("", h.List)
		prices.PUT("", h.Set)
	}
}

// Public: the QR code on the document and the gateway callback carry their own credentials.
func addVerificationRoutes(rg *gin.RouterGroup, h *handlers.VerificationHandler) {
	verify := rg.Group(PathVerify)
	{
		verify.GET("/:id", h.GetPublic)
		verify.POST("/:id", h.GetFull)
	}
}

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler) {
	rg.POST(PathWebhooks+"/mercadopago", h.Receive)
}
