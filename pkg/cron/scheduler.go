// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/brazillianlabs/poupazap/internal/domain/finance"
)

// Scheduler posts due scheduled expenses as regular transactions once a day.
type Scheduler struct {
	cron    *cron.Cron
	storage finance.Storage
	logger  *slog.Logger
}

// NewScheduler creates a new job scheduler.
func NewScheduler(storage finance.Storage, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:    c,
		storage: storage,
		logger:  logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Scheduled-expense posting: runs daily at 8:00 AM.
	_, err := s.cron.AddFunc("0 8 * * *", s.postDueExpenses)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the posting job (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.postDueExpenses()
}

// postDueExpenses records a transaction for every scheduled expense whose day
// of month is today.
func (s *Scheduler) postDueExpenses() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	day := time.Now().Day()
	due, err := s.storage.ListDueScheduledExpenses(ctx, day)
	if err != nil {
		s.logger.Error("failed to list due scheduled expenses", slog.Any("error", err))
		return
	}

	posted := 0
	for _, exp := range due {
		tx := &finance.Transaction{
			UserID:      exp.UserID,
			Type:        finance.TransactionExpense,
			AmountMinor: exp.AmountMinor,
			Category:    exp.Category,
			Description: "Despesa agendada",
		}
		if err := s.storage.AddTransaction(ctx, tx); err != nil {
			s.logger.Error("failed to post scheduled expense",
				slog.String("user", exp.UserID),
				slog.String("id", exp.ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		posted++
	}

	s.logger.Info("scheduled expenses posted",
		slog.Int("due", len(due)),
		slog.Int("posted", posted),
		slog.Int("day", day),
	)
}
