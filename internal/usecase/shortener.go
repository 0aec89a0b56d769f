package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vadimbarashkov/microservices/internal/entity"
)

type counterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

type urlRepository interface {
	Save(ctx context.Context, id int64, originalURL string) (*entity.URL, error)
	RetrieveByID(ctx context.Context, id int64) (*entity.URL, error)
	RetrieveByOriginalURL(ctx context.Context, originalURL string) (*entity.URL, error)
}

type urlCache interface {
	Get(ctx context.Context, id int64) (string, bool, error)
	Set(ctx context.Context, id int64, originalURL string) error
}

// ShortenerUseCase assigns short URLs to original URLs and resolves them back.
type ShortenerUseCase struct {
	counterRepo counterRepository
	urlRepo     urlRepository
	cache       urlCache
	logger      *slog.Logger
}

func NewShortenerUseCase(
	counterRepo counterRepository,
	urlRepo urlRepository,
	cache urlCache,
	logger *slog.Logger,
) *ShortenerUseCase {
	return &ShortenerUseCase{
		counterRepo: counterRepo,
		urlRepo:     urlRepo,
		cache:       cache,
		logger:      logger,
	}
}

// ShortenURL returns the URL record for originalURL, creating it with a freshly
// allocated short URL if the original URL has not been shortened before.
//
// Two concurrent calls for the same unseen URL may both allocate an id. The
// loser's insert hits the unique constraint on the original URL and the winner's
// record is returned; the loser's id is never handed out.
func (uc *ShortenerUseCase) ShortenURL(ctx context.Context, originalURL string) (*entity.URL, error) {
	const op = "usecase.ShortenerUseCase.ShortenURL"

	if err := entity.ValidateURL(originalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	url, err := uc.urlRepo.RetrieveByOriginalURL(ctx, originalURL)
	if err == nil {
		return url, nil
	}
	if !errors.Is(err, entity.ErrURLNotFound) {
		return nil, fmt.Errorf("%s: failed to look up url: %w", op, err)
	}

	id, err := uc.counterRepo.Next(ctx, entity.URLCounter)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to allocate short url: %w", op, err)
	}

	url, err = uc.urlRepo.Save(ctx, id, originalURL)
	if err != nil {
		if !errors.Is(err, entity.ErrURLExists) {
			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		url, err = uc.urlRepo.RetrieveByOriginalURL(ctx, originalURL)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to retrieve concurrently shortened url: %w", op, err)
		}
	}

	return url, nil
}

// ResolveShortURL returns the URL record mapped to the short URL id.
func (uc *ShortenerUseCase) ResolveShortURL(ctx context.Context, id int64) (*entity.URL, error) {
	const op = "usecase.ShortenerUseCase.ResolveShortURL"

	originalURL, ok, err := uc.cache.Get(ctx, id)
	if err != nil {
		uc.logger.Warn("failed to read url cache", slog.String("op", op), slog.Int64("id", id), slog.Any("err", err))
	}
	if ok {
		return &entity.URL{ID: id, OriginalURL: originalURL}, nil
	}

	url, err := uc.urlRepo.RetrieveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short url: %w", op, err)
	}

	if err := uc.cache.Set(ctx, url.ID, url.OriginalURL); err != nil {
		uc.logger.Warn("failed to write url cache", slog.String("op", op), slog.Int64("id", id), slog.Any("err", err))
	}

	return url, nil
}
