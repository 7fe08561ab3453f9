package repository

import (
	"context"

	"github.com/andy/countdown/internal/domain"
)

// EventRepository stores the countdown journal
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	List(ctx context.Context, sessionID *string, limit int) ([]*domain.Event, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// NopEventRepo discards every event. Used when history is disabled.
type NopEventRepo struct{}

func (NopEventRepo) Create(ctx context.Context, event *domain.Event) error { return nil }

func (NopEventRepo) List(ctx context.Context, sessionID *string, limit int) ([]*domain.Event, error) {
	return nil, nil
}

func (NopEventRepo) DeleteAll(ctx context.Context) (int64, error) { return 0, nil }
