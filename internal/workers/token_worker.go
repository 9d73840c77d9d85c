package workers

import (
	"context"
	"time"

	"adops_backend/internal/logger"
	"adops_backend/internal/repositories"
)

// TokenWorker removes refresh tokens that expired without ever being
// rotated or logged out.
type TokenWorker struct {
	users repositories.UserRepository
}

func NewTokenWorker(users repositories.UserRepository) *TokenWorker {
	return &TokenWorker{users: users}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.cleanExpiredTokens(ctx)
}

func (w *TokenWorker) cleanExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token worker stopped")
			return
		case <-ticker.C:
			if err := w.users.CleanExpiredRefreshTokens(); err != nil {
				logger.Error("Failed to clean expired refresh tokens", "error", err)
			}
		}
	}
}
