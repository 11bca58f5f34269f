// Command insights sends the monthly spending insight emails once and exits.
// Schedule it on the 1st of each month.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/insights"
	"github.com/mmynk/splitledger/internal/storage/backend"
	"github.com/mmynk/splitledger/pkg/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := backend.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return 1
	}
	defer store.Close()

	var mailer insights.Mailer = insights.LogMailer{}
	if cfg.Insights.MailEndpoint != "" {
		mailer = insights.NewHTTPMailer(cfg.Insights.MailEndpoint, cfg.Insights.MailAPIKey, cfg.Insights.Sender, cfg.Insights.MailTimeout)
	} else {
		slog.Warn("No mail endpoint configured, insights will only be logged")
	}

	job := insights.NewJob(store, insights.NewTemplateSummarizer(cfg.Insights.Currency), mailer,
		insights.WithLookback(time.Duration(cfg.Insights.LookbackDays)*24*time.Hour),
		insights.WithConcurrency(cfg.Insights.Concurrency),
	)

	report, err := job.Run(ctx, time.Now())
	if err != nil {
		slog.Error("Insights run failed", "error", err)
		return 1
	}
	if report.FailureCount > 0 {
		// Non-zero so the scheduler flags a partial run.
		return 2
	}
	return 0
}
