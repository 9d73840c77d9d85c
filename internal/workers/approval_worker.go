package workers

import (
	"context"
	"time"

	"adops_backend/internal/logger"
	"adops_backend/internal/repositories"
)

// ApprovalWorker expires approval requests that sat in pending for too
// long, so campaigns do not stay stuck in review forever.
type ApprovalWorker struct {
	approvals  repositories.ApprovalRepository
	expiryDays int
}

func NewApprovalWorker(approvals repositories.ApprovalRepository, expiryDays int) *ApprovalWorker {
	return &ApprovalWorker{
		approvals:  approvals,
		expiryDays: expiryDays,
	}
}

// Start launches the background loop.
func (w *ApprovalWorker) Start(ctx context.Context) {
	go w.expireStaleApprovals(ctx)
}

func (w *ApprovalWorker) expireStaleApprovals(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Approval worker stopped")
			return
		case <-ticker.C:
			cutoff := time.Now().AddDate(0, 0, -w.expiryDays)
			expired, err := w.approvals.ExpireOlderThan(cutoff)
			if err != nil {
				logger.Error("Failed to expire stale approvals", "error", err)
			} else if expired > 0 {
				logger.Info("Expired stale approval requests", "count", expired, "cutoff", cutoff)
			}
		}
	}
}
