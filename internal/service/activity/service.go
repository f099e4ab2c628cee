// Package activity records the append-only audit trail of user actions.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hallbook/internal/domain/models"
)

const defaultListLimit = 200

// Repository is the persistence surface the service depends on.
type Repository interface {
	Insert(ctx context.Context, e models.ActivityEntry) error
	List(ctx context.Context, limit int64) ([]models.ActivityEntry, error)
}

// Service appends and lists activity entries.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new activity service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Record appends one entry. Logging failures are reported to the caller's
// log only; an audit hiccup must never fail the user's action.
func (s *Service) Record(ctx context.Context, username, action, entity, entityID string) {
	e := models.ActivityEntry{
		ID:       uuid.NewString(),
		Username: username,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		At:       time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		s.logger.Error("failed recording activity entry",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err))
	}
}

// List returns the most recent entries, newest first.
func (s *Service) List(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
	if limit < 1 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, limit)
}
