package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/crypto"
	"github.com/andy/countdown/internal/db"
	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/logging"
	"github.com/andy/countdown/internal/repository"
	"github.com/andy/countdown/internal/service"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *db.DB // nil when history is disabled

	EventRepo repository.EventRepository

	// State holders behind the countdown service
	Clock  *domain.Clock
	Buffer *domain.EditBuffer

	CountdownService service.CountdownService

	logCloser io.Closer
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Opening the log file
// 3. Opening the journal database (with the keyring password when encrypted)
// 4. Running migrations
// 5. Creating the clock, edit buffer and countdown service
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, logCloser, err := logging.Open(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		EventRepo: repository.NopEventRepo{},
		logCloser: logCloser,
	}

	if cfg.History.Enabled {
		database, err := openJournal(cfg.Database)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.DB = database
		a.EventRepo = repository.NewEventRepo(database)
	}

	a.Clock = domain.NewClock(domain.ClockOptions{
		Default:      cfg.Timer.Default,
		TickInterval: cfg.Timer.TickInterval,
		StopAtZero:   cfg.Timer.StopAtZero,
	})
	a.Buffer = domain.NewEditBuffer(cfg.Timer.Default)
	a.CountdownService = service.NewCountdownService(a.Clock, a.Buffer, a.EventRepo, logger)

	logger.Info("countdown initialized",
		slog.Int64("default", int64(cfg.Timer.Default)),
		slog.Duration("tick_interval", a.Clock.TickInterval()),
		slog.Bool("stop_at_zero", cfg.Timer.StopAtZero),
		slog.Bool("history", cfg.History.Enabled),
	)

	return a, nil
}

// openJournal opens and migrates the journal database
func openJournal(cfg config.DatabaseConfig) (*db.DB, error) {
	var (
		database *db.DB
		err      error
	)
	if cfg.Encrypted {
		password, perr := journalPassword()
		if perr != nil {
			return nil, perr
		}
		database, err = db.Open(cfg.Path, password)
	} else {
		database, err = db.OpenPlain(cfg.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

// journalPassword returns the stored key, prompting for a new one on first run
func journalPassword() (string, error) {
	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err == nil {
		return password, nil
	}

	fmt.Println("Setting up journal encryption for the first time...")
	password, err = promptForPassword()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}

	if err := keyring.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}
	if os.Getenv(crypto.EnvKey) != "" {
		fmt.Printf("Export %s in your shell profile to reuse this password.\n\n", crypto.EnvKey)
	}

	return password, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var firstErr error
	if a.DB != nil {
		firstErr = a.DB.Close()
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// promptForPassword prompts user for a new journal password (first run)
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your countdown history will be encrypted with a password.")
	fmt.Println("Set database.encrypted: false in the config to skip this.")
	fmt.Println()
	fmt.Print("Enter a password for journal encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", crypto.ErrEmptyPassword
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Journal encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
