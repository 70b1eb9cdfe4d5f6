package setup

import (
	"context"
	"fmt"

	"github.com/itchan-dev/mediameta/backend/internal/handler"
	"github.com/itchan-dev/mediameta/backend/internal/service"
	"github.com/itchan-dev/mediameta/backend/internal/storage/pg"
	"github.com/itchan-dev/mediameta/shared/config"
	"github.com/itchan-dev/mediameta/shared/i18n"
	"github.com/itchan-dev/mediameta/shared/middleware/ratelimiter"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Config  *config.Config
	// Limits create, delete and probe per client IP
	WriteLimiter *ratelimiter.ClientRateLimiter
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	catalog, err := i18n.Load(cfg.Public.LocalesPath, cfg.Public.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	storage, err := pg.New(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	attachment := service.NewAttachment(storage, catalog)
	h := handler.New(attachment, cfg, storage, catalog.Locales())

	return &Dependencies{
		Storage:      storage,
		Handler:      h,
		Config:       cfg,
		WriteLimiter: NewWriteLimiter(cfg.Public),
	}, nil
}

func NewWriteLimiter(cfg config.Public) *ratelimiter.ClientRateLimiter {
	return ratelimiter.New(cfg.WriteRate, float64(cfg.WriteBurst), cfg.RateLimitTTL)
}
