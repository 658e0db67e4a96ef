package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/brazillianlabs/poupazap/internal/domain/dialog"
	"github.com/brazillianlabs/poupazap/internal/domain/finance"
	"github.com/brazillianlabs/poupazap/internal/domain/nlu"
	"github.com/brazillianlabs/poupazap/internal/transcribe"
	"github.com/brazillianlabs/poupazap/pkg/config"
	"github.com/brazillianlabs/poupazap/pkg/cron"
	"github.com/brazillianlabs/poupazap/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	Storage     finance.Storage
	Parser      *nlu.Parser
	Machine     *dialog.Machine
	Scheduler   *cron.Scheduler
	Transcriber transcribe.Transcriber
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	deps.Storage = finance.NewPostgresRepository(deps.DB.Pool)

	locale := nlu.DefaultLocale()
	locale.ExpenseKeywords = cfg.Locale.ExpenseKeywords
	locale.IncomeKeywords = cfg.Locale.IncomeKeywords
	locale.GoalTriggerPhrase = cfg.Locale.GoalTriggerPhrase
	locale.DefaultCategory = cfg.Locale.DefaultCategory
	deps.Parser = nlu.NewParser(locale)

	deps.Machine = dialog.NewMachine(
		deps.Storage,
		deps.Parser,
		cfg.Locale.CurrencyCode,
		cfg.Locale.DefaultCategories,
		logger,
	)

	deps.Scheduler = cron.NewScheduler(deps.Storage, logger)
	deps.Transcriber = transcribe.Disabled{}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// Close releases all resources.
func (d *Dependencies) Close() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
