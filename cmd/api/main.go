package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"medrequest_xpto/internal/adapter/http/routes"
	"medrequest_xpto/internal/config"
	"medrequest_xpto/internal/infrastructure/database"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// @title           Medical Request Service API
// @version         1.0
// @description     Medical document requests: AI triage, payment, doctor review, signing and public verification.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	root := &cobra.Command{
		Use:           "medrequest",
		Short:         "Medical request service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{Use: "serve", Short: "Start the HTTP API", RunE: runServe},
		&cobra.Command{Use: "migrate", Short: "Create tables or apply the SQL schema for the configured storage driver", RunE: runMigrate},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	router := routes.NewRouter(svc.Handlers, routes.Options{
		Actor:  svc.Actor,
		Logger: logger,
	})
	return routes.Run(ctx, router, cfg.Port, logger)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		awsCfg, err := database.NewAWSConfig(ctx, cfg)
		if err != nil {
			return err
		}
		ddb := database.NewDynamoDBClient(awsCfg, cfg.DynamoDBEndpoint)
		return database.EnsureTables(ctx, ddb, database.TableNamesFromConfig(cfg), logger)
	case config.StoragePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns), int32(cfg.DBMinConns))
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := database.MigratePostgres(ctx, pool); err != nil {
			return err
		}
		logger.Info().Msg("postgres schema applied")
		return nil
	default:
		logger.Info().Str("driver", cfg.StorageDriver).Msg("nothing to migrate")
		return nil
	}
}

func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, newLogger(cfg), nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).With().Timestamp().Str("service", "medrequest").Logger()
	}
	return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).
		With().Timestamp().Str("service", "medrequest").Logger()
}

