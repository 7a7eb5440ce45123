package container

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"tululu/loader/internal/client"
	"tululu/loader/internal/config"
	"tululu/loader/internal/domain"
	"tululu/loader/internal/service"
	"tululu/loader/internal/storage"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.LibraryClient
	Storage storage.Storage
	Service *service.Service

	log *log.Logger
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	logger := log.New()
	logger.SetOutput(os.Stderr)

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger.SetLevel(level)

	libraryClient := client.NewLibraryClient(cfg.Library, logger.WithField("component", "client"))

	store, err := storage.NewFileStorage(
		cfg.Output.BooksDir,
		cfg.Output.ImagesDir,
		logger.WithField("component", "storage"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc := service.NewService(
		libraryClient,
		store,
		logger.WithField("component", "service"),
		cfg.Library.MaxAttempts,
		cfg.Library.RetryBackoff,
	)

	return &Container{
		Config:  cfg,
		Client:  libraryClient,
		Storage: store,
		Service: svc,
		log:     logger,
	}, nil
}

// Run downloads the whole identifier range and logs a final tally.
func (c *Container) Run(ctx context.Context, first, last int) error {
	outcomes, err := c.Service.Run(ctx, first, last)

	var saved, skipped, failed int
	for _, outcome := range outcomes {
		switch outcome.Kind {
		case domain.OutcomeSaved:
			saved++
		case domain.OutcomeSkipped:
			skipped++
		case domain.OutcomeFailed:
			failed++
		}
	}

	c.log.WithFields(log.Fields{
		"saved":   saved,
		"skipped": skipped,
		"failed":  failed,
	}).Info("run complete")

	return err
}
