package service

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	log "github.com/sirupsen/logrus"

	"tululu/loader/internal/client"
	"tululu/loader/internal/domain"
	"tululu/loader/internal/storage"
)

// Service walks an identifier range and drives every book through
// fetch -> availability check -> parse -> text download -> persist.
type Service struct {
	client  client.LibraryClient
	storage storage.Storage
	log     log.FieldLogger

	// maxAttempts bounds retries of transient failures; 0 keeps retrying
	// until the request succeeds. backoff is slept after a connection
	// failure; timeouts are retried immediately.
	maxAttempts uint
	backoff     time.Duration
}

func NewService(
	libraryClient client.LibraryClient,
	store storage.Storage,
	logger log.FieldLogger,
	maxAttempts uint,
	backoff time.Duration,
) *Service {
	return &Service{
		client:      libraryClient,
		storage:     store,
		log:         logger,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// Run processes every identifier from first to last inclusive, in ascending
// order, and returns one outcome per identifier. A failed book never aborts
// the range; only cancellation does, and then the outcomes collected so far
// are returned along with the context error.
func (s *Service) Run(ctx context.Context, first, last int) ([]domain.Outcome, error) {
	outcomes := make([]domain.Outcome, 0, last-first+1)

	for id := first; id <= last; id++ {
		outcome := s.AcquireBook(ctx, id)
		outcomes = append(outcomes, outcome)
		s.report(outcome)

		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}
	}

	return outcomes, nil
}

// AcquireBook resolves a single identifier to a terminal outcome.
func (s *Service) AcquireBook(ctx context.Context, id int) domain.Outcome {
	logger := s.log.WithField("book_id", id)

	page, err := s.fetchWithRetry(ctx, logger, "book page", func(ctx context.Context) (*client.FetchResult, error) {
		return s.client.GetBookPage(ctx, id)
	})
	if err != nil {
		return domain.Outcome{ID: id, Kind: domain.OutcomeFailed, Err: err}
	}
	if err := client.EnsureAvailable(page); err != nil {
		return domain.Outcome{ID: id, Kind: domain.OutcomeSkipped, Reason: "book page not found"}
	}

	book, err := s.client.ParseBook(page, id)
	if err != nil {
		return domain.Outcome{ID: id, Kind: domain.OutcomeFailed, Err: err}
	}

	text, err := s.fetchWithRetry(ctx, logger, "book text", func(ctx context.Context) (*client.FetchResult, error) {
		return s.client.DownloadText(ctx, id)
	})
	if err != nil {
		return domain.Outcome{ID: id, Kind: domain.OutcomeFailed, Book: book, Err: err}
	}
	if err := client.EnsureAvailable(text); err != nil {
		return domain.Outcome{ID: id, Kind: domain.OutcomeSkipped, Book: book, Reason: "text unavailable for this book"}
	}

	textPath, err := s.storage.SaveText(id, book.Title, text.Body)
	if err != nil {
		return domain.Outcome{ID: id, Kind: domain.OutcomeFailed, Book: book, Err: err}
	}

	// Covers get a single attempt.
	cover, err := s.client.DownloadCover(ctx, book.CoverURL)
	if err != nil {
		return domain.Outcome{ID: id, Kind: domain.OutcomeFailed, Book: book, TextPath: textPath, Err: err}
	}

	var coverPath string
	if client.EnsureAvailable(cover) != nil {
		logger.Warnf("cover %s redirected, keeping book without a cover", book.CoverURL)
	} else {
		coverPath, err = s.storage.SaveCover(book.CoverURL, cover.Body)
		if err != nil {
			return domain.Outcome{ID: id, Kind: domain.OutcomeFailed, Book: book, TextPath: textPath, Err: err}
		}
	}

	return domain.Outcome{
		ID:        id,
		Kind:      domain.OutcomeSaved,
		Book:      book,
		TextPath:  textPath,
		CoverPath: coverPath,
	}
}

type fetchFunc func(ctx context.Context) (*client.FetchResult, error)

// fetchWithRetry reissues a request for as long as it fails with a transient
// transport error. Connection failures wait out the backoff first, timeouts
// go again right away. Cancellation interrupts both the sleep and the loop.
func (s *Service) fetchWithRetry(ctx context.Context, logger log.FieldLogger, what string, fetch fetchFunc) (*client.FetchResult, error) {
	var res *client.FetchResult

	err := retry.Do(
		func() error {
			r, err := fetch(ctx)
			if err != nil {
				return err
			}
			res = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.maxAttempts),
		retry.RetryIf(func(err error) bool {
			var transient *client.TransientError
			return errors.As(err, &transient)
		}),
		retry.DelayType(func(_ uint, err error, _ *retry.Config) time.Duration {
			var transient *client.TransientError
			if errors.As(err, &transient) && transient.Kind == client.FailureTimeout {
				return 0
			}
			return s.backoff
		}),
		retry.OnRetry(func(attempt uint, err error) {
			logger.WithError(err).Errorf("fetching %s failed (attempt %d), retrying", what, attempt+1)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) report(outcome domain.Outcome) {
	logger := s.log.WithField("book_id", outcome.ID)

	switch outcome.Kind {
	case domain.OutcomeSaved:
		logger.WithFields(log.Fields{
			"title":  outcome.Book.Title,
			"author": outcome.Book.Author,
			"genres": outcome.Book.Genres,
			"text":   outcome.TextPath,
			"cover":  outcome.CoverPath,
		}).Info("book saved")
	case domain.OutcomeSkipped:
		logger.Info(outcome.Reason)
	case domain.OutcomeFailed:
		logger.WithError(outcome.Err).Error("book failed")
	}
}
