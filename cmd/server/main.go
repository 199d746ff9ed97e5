package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/lesson_scheduler/internal/app"
	"github.com/Freeeeeet/lesson_scheduler/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("lesson scheduler: %v", err)
	}
}

func run() (err error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger, err := app.NewLogger(app.LoggerOptions{Environment: cfg.Environment, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, migrator.Close()) }()

	if err := migrator.Run(ctx); err != nil {
		return err
	}

	services := app.NewServices(pool, cfg, logger)

	scheduler := app.NewScheduler(services.Ledger, cfg.ReportInterval, logger.Named("scheduler"))
	scheduler.Start(ctx)

	logger.Info("Lesson scheduler started",
		zap.String("environment", cfg.Environment),
		zap.String("currency", cfg.Currency),
		zap.String("lesson_price", cfg.LessonPrice.StringFixed(2)),
	)

	<-ctx.Done()
	scheduler.Stop()

	logger.Info("Lesson scheduler stopped")
	return nil
}
