package notification

import (
	"context"
	"errors"
)

// ErrNotFound is returned for unknown notification ids.
var ErrNotFound = errors.New("notification: not found")

// Repository stores notifications most-recent-first.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) (*Notification, error)
	MarkAllRead(ctx context.Context, recipient string) (int, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Notification, error)
	ListByRecipient(ctx context.Context, name string) ([]*Notification, error)
}
