// Package insights sends each user a monthly summary of their spending.
//
// The job is run once a month by an external scheduler. Every user with at
// least one expense in the lookback window gets an email; users are handled
// concurrently and one user's failure never stops the batch.
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Store is the read access the job needs.
type Store interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]models.Expense, error)
}

// Summarizer turns a spending summary into an HTML email body.
type Summarizer interface {
	Summarize(ctx context.Context, s Summary) (string, error)
}

// Subject is the subject line of every insight email.
const Subject = "Your Monthly Spending Insights"

// Result is the outcome for one user.
type Result struct {
	UserID  string
	Success bool
	Error   string
}

// Report is the outcome of one run.
type Report struct {
	TotalUsers   int
	SuccessCount int
	FailureCount int
	Results      []Result
}

// Job generates and sends monthly insights.
type Job struct {
	store       Store
	summarizer  Summarizer
	mailer      Mailer
	lookback    time.Duration
	concurrency int
	logger      *slog.Logger
}

// Option configures a Job.
type Option func(*Job)

// WithLookback sets the window of expenses considered. Default 30 days.
func WithLookback(d time.Duration) Option {
	return func(j *Job) {
		if d > 0 {
			j.lookback = d
		}
	}
}

// WithConcurrency bounds how many users are processed at once. Default 4.
func WithConcurrency(n int) Option {
	return func(j *Job) {
		if n > 0 {
			j.concurrency = n
		}
	}
}

// WithLogger sets the job logger.
func WithLogger(logger *slog.Logger) Option {
	return func(j *Job) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// NewJob creates a Job.
func NewJob(store Store, summarizer Summarizer, mailer Mailer, opts ...Option) *Job {
	j := &Job{
		store:       store,
		summarizer:  summarizer,
		mailer:      mailer,
		lookback:    30 * 24 * time.Hour,
		concurrency: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run sends insights for the window ending at now. It fails when the user
// list cannot be loaded or ctx is canceled mid-run; per-user failures are
// reported in the Report.
func (j *Job) Run(ctx context.Context, now time.Time) (*Report, error) {
	users, err := j.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	from := now.Add(-j.lookback)
	// One slot per user; nil marks a skipped user.
	results := make([]*Result, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for i, user := range users {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = j.processUser(gctx, user, from, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("insights run interrupted: %w", err)
	}

	report := &Report{}
	for _, res := range results {
		if res == nil {
			continue
		}
		report.Results = append(report.Results, *res)
		if res.Success {
			report.SuccessCount++
		} else {
			report.FailureCount++
		}
	}
	report.TotalUsers = len(report.Results)

	j.logger.Info("Insights run finished",
		"total_users", report.TotalUsers,
		"success", report.SuccessCount,
		"failed", report.FailureCount,
	)
	return report, nil
}

// processUser returns nil when the user had no expenses in the window.
func (j *Job) processUser(ctx context.Context, user *models.User, from, to time.Time) *Result {
	expenses, err := j.store.ListExpenses(ctx, storage.ExpenseFilter{
		InvolvingID: user.ID,
		From:        from.Unix(),
		To:          to.Unix(),
	})
	if err != nil {
		return j.failed(user, fmt.Errorf("failed to list expenses: %w", err))
	}
	if len(expenses) == 0 {
		return nil
	}

	summary := Summarize(user, expenses, from, to)
	body, err := j.summarizer.Summarize(ctx, summary)
	if err != nil {
		return j.failed(user, fmt.Errorf("failed to summarize: %w", err))
	}

	email := Email{To: user.Email, Subject: Subject, HTML: body}
	if err := j.mailer.Send(ctx, email); err != nil {
		return j.failed(user, fmt.Errorf("failed to send: %w", err))
	}

	metrics.InsightResults.WithLabelValues("sent").Inc()
	j.logger.Debug("Insight sent", "user_id", user.ID, "expenses", summary.ExpenseCount)
	return &Result{UserID: user.ID, Success: true}
}

func (j *Job) failed(user *models.User, err error) *Result {
	metrics.InsightResults.WithLabelValues("failed").Inc()
	j.logger.Warn("Insight failed", "user_id", user.ID, "error", err)
	return &Result{UserID: user.ID, Error: err.Error()}
}
