package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "medrequest_xpto/docs"
	"medrequest_xpto/internal/adapter/http/handlers"
	"medrequest_xpto/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

type Handlers struct {
	Requests     *handlers.RequestHandler
	Payments     *handlers.PaymentHandler
	Webhooks     *handlers.WebhookHandler
	Verification *handlers.VerificationHandler
	Prices       *handlers.PriceHandler
}

type Options struct {
	Actor  middleware.ActorConfig
	Logger zerolog.Logger
}

// NewRouter builds the gin engine with middlewares, swagger, metrics and /v1 routes.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, opts)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addVerificationRoutes(v1, h.Verification)
	addWebhookRoutes(v1, h.Webhooks)

	// Rotas autenticadas
	private := v1.Group("", middleware.RequireActor())
	addRequestRoutes(private, h.Requests, h.Payments)
	addPaymentRoutes(private, h.Payments)
	addPriceRoutes(private, h.Prices)

	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, router http.Handler, port string, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", port).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setMiddlewares(router *gin.Engine, opts Options) {
	router.Use(middleware.Recovery(opts.Logger))
	router.Use(middleware.RequestMeta())
	router.Use(middleware.Metrics())
	router.Use(middleware.Actor(opts.Actor))
	router.Use(middleware.Logger(opts.Logger))
}
