package main

import (
	"context"
	"fmt"
	"time"

	"medrequest_xpto/internal/adapter/http/handlers"
	"medrequest_xpto/internal/adapter/http/middleware"
	"medrequest_xpto/internal/adapter/http/routes"
	"medrequest_xpto/internal/adapter/persistence/memory"
	"medrequest_xpto/internal/adapter/persistence/postgres"
	"medrequest_xpto/internal/adapter/persistence/repository"
	"medrequest_xpto/internal/config"
	"medrequest_xpto/internal/infrastructure/aigate"
	"medrequest_xpto/internal/infrastructure/database"
	"medrequest_xpto/internal/infrastructure/documents"
	"medrequest_xpto/internal/infrastructure/notification"
	"medrequest_xpto/internal/infrastructure/payments"
	"medrequest_xpto/internal/infrastructure/pricing"
	"medrequest_xpto/internal/infrastructure/signing"
	"medrequest_xpto/internal/infrastructure/storage"
	"medrequest_xpto/internal/infrastructure/video"
	"medrequest_xpto/internal/usecase"
	"medrequest_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
)

const analysisDrainTimeout = 10 * time.Second

type repositories struct {
	requests interfaces.IMedicalRequestRepository
	payments interfaces.IPaymentRepository
	attempts interfaces.IPaymentAttemptRepository
	events   interfaces.IWebhookEventRepository
	audit    interfaces.IAuditLogRepository
	cards    interfaces.ISavedCardRepository
	prices   interfaces.IPriceRepository
}

type app struct {
	Handlers routes.Handlers
	Actor    middleware.ActorConfig
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{}

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		c, err := database.NewAWSConfig(ctx, cfg)
		if err != nil {
			return aws.Config{}, err
		}
		awsCfg = &c
		return c, nil
	}

	repos, err := openRepositories(ctx, cfg, a, loadAWS, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	prices, err := loadPrices(ctx, cfg, repos.prices, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	docStorage, err := newDocumentStorage(cfg, loadAWS, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	gateway, err := payments.NewMercadoPagoGateway(payments.MercadoPagoOptions{
		AccessToken:   cfg.MercadoPagoAccessToken,
		WebhookSecret: cfg.MercadoPagoWebhookSecret,
		Mock:          cfg.PaymentGatewayMock,
	}, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	audit := usecase.NewAuditRecorder(repos.audit, logger)

	requestUC := usecase.NewRequestUseCase(usecase.RequestUseCaseDeps{
		Repo:     repos.requests,
		AIGate:   aigate.New(cfg.AIGateURL, cfg.AIGateAPIKey, cfg.AIGateTimeout, logger),
		Prices:   prices,
		Renderer: documents.NewTextRenderer(cfg.VerifyBaseURL),
		Signer:   signing.New(cfg.SigningSecret),
		Storage:  docStorage,
		Notifier: notification.NewLogSender(logger),
		Video:    video.NewStaticRoomProvider(cfg.VideoRoomBaseURL),
		Audit:    audit,
	}, usecase.RequestPolicy{
		AnalysisSync: cfg.AIAnalysisSync,
		AutoDeliver:  cfg.AutoDeliver,
	}, logger)
	// runs before the storage closers registered earlier
	a.closers = append(a.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), analysisDrainTimeout)
		defer cancel()
		if err := requestUC.Drain(ctx); err != nil {
			logger.Warn().Err(err).Msg("background analyses still running at shutdown")
		}
	})

	paymentUC := usecase.NewPaymentUseCase(usecase.PaymentUseCaseDeps{
		Repo:      repos.payments,
		Attempts:  repos.attempts,
		Events:    repos.events,
		Cards:     repos.cards,
		Requests:  repos.requests,
		Gateway:   gateway,
		Confirmer: requestUC,
		Audit:     audit,
	}, usecase.PaymentPolicy{WebhookClaimTTL: cfg.WebhookClaimTTL}, logger)

	a.Handlers = routes.Handlers{
		Requests:     handlers.NewRequestHandler(requestUC),
		Payments:     handlers.NewPaymentHandler(paymentUC),
		Webhooks:     handlers.NewWebhookHandler(paymentUC),
		Verification: handlers.NewVerificationHandler(usecase.NewVerificationUseCase(repos.requests, audit, logger)),
		Prices:       handlers.NewPriceHandler(usecase.NewPriceUseCase(repos.prices, audit, logger)),
	}
	a.Actor = middleware.ActorConfig{
		SigningKey:   []byte(cfg.JWTSecret),
		AllowHeaders: cfg.IsDev(),
	}
	return a, nil
}

func openRepositories(ctx context.Context, cfg *config.Config, a *app, loadAWS func() (aws.Config, error), logger zerolog.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn().Msg("using in-memory storage; data is lost on restart")
		s := memory.NewStore()
		return repositories{
			requests: s.Requests, payments: s.Payments, attempts: s.Attempts, events: s.Events,
			audit: s.Audit, cards: s.Cards, prices: s.Prices,
		}, nil

	case config.StoragePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns), int32(cfg.DBMinConns))
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, pool.Close)
		if err := database.MigratePostgres(ctx, pool); err != nil {
			return repositories{}, err
		}
		s := postgres.NewStore(pool)
		return repositories{
			requests: s.Requests, payments: s.Payments, attempts: s.Attempts, events: s.Events,
			audit: s.Audit, cards: s.Cards, prices: s.Prices,
		}, nil

	case config.StorageDynamoDB:
		awsCfg, err := loadAWS()
		if err != nil {
			return repositories{}, err
		}
		ddb := database.NewDynamoDBClient(awsCfg, cfg.DynamoDBEndpoint)
		names := database.TableNamesFromConfig(cfg)
		if cfg.IsDev() {
			if err := database.EnsureTables(ctx, ddb, names, logger); err != nil {
				return repositories{}, err
			}
		}
		return repositories{
			requests: repository.NewMedicalRequestDynamoRepository(ddb, names.Requests),
			payments: repository.NewPaymentDynamoRepository(ddb, names.Payments),
			attempts: repository.NewPaymentAttemptDynamoRepository(ddb, names.PaymentAttempts),
			events:   repository.NewWebhookEventDynamoRepository(ddb, names.WebhookEvents),
			audit:    repository.NewAuditLogDynamoRepository(ddb, names.AuditLogs),
			cards:    repository.NewSavedCardDynamoRepository(ddb, names.SavedCards),
			prices:   repository.NewPriceDynamoRepository(ddb, names.Prices),
		}, nil
	}
	return repositories{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}

// loadPrices builds the in-process table. Stored overrides win over PRICE_TABLE.
func loadPrices(ctx context.Context, cfg *config.Config, repo interfaces.IPriceRepository, logger zerolog.Logger) (*pricing.Table, error) {
	raw := cfg.PriceTable
	if raw == "" {
		raw = pricing.DefaultTable
	}
	base, err := pricing.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("PRICE_TABLE: %w", err)
	}
	if !cfg.PricesFromStore {
		return pricing.NewTable(base), nil
	}

	stored, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored prices: %w", err)
	}
	t := pricing.NewTable(base, stored)
	logger.Info().Int("entries", t.Len()).Int("overrides", len(stored)).Msg("price table loaded")
	return t, nil
}

func newDocumentStorage(cfg *config.Config, loadAWS func() (aws.Config, error), logger zerolog.Logger) (interfaces.IDocumentStorage, error) {
	if cfg.DocumentsBucket == "" {
		logger.Warn().Msg("DOCUMENTS_BUCKET not set; signed documents are kept in memory")
		return storage.NewMemoryStorage(cfg.DocumentsPublicBaseURL), nil
	}
	awsCfg, err := loadAWS()
	if err != nil {
		return nil, err
	}
	client := storage.NewS3Client(awsCfg, cfg.S3Endpoint)
	return storage.NewS3Storage(client, cfg.DocumentsBucket, cfg.DocumentsPublicBaseURL, logger), nil
}
