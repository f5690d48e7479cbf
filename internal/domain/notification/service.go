package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

// Service validates and timestamps notifications on the way in.
type Service struct {
	repo Repository
	ids  *idgen.Generator
	now  func() time.Time
}

func NewService(repo Repository, ids *idgen.Generator) *Service {
	return &Service{repo: repo, ids: ids, now: time.Now}
}

// Notify delivers a message. New notifications always start unread.
func (s *Service) Notify(ctx context.Context, n Notification) (*Notification, error) {
	if n.Recipient == "" {
		return nil, fmt.Errorf("recipient is required")
	}
	if n.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if n.Type == "" {
		n.Type = TypeSystem
	}
	if !validTypes[n.Type] {
		return nil, fmt.Errorf("invalid notification type: %s", n.Type)
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if !validPriorities[n.Priority] {
		return nil, fmt.Errorf("invalid priority: %s", n.Priority)
	}

	n.ID = s.ids.Next(idgen.PrefixNotification)
	n.Timestamp = s.now().Format(time.RFC3339)
	n.Read = false

	if err := s.repo.Create(ctx, &n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return &n, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) (*Notification, error) {
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead clears the unread flag for a recipient and reports how many
// rows changed.
func (s *Service) MarkAllRead(ctx context.Context, recipient string) (int, error) {
	if recipient == "" {
		return 0, fmt.Errorf("recipient is required")
	}
	return s.repo.MarkAllRead(ctx, recipient)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Notification, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListForRecipient(ctx context.Context, name string) ([]*Notification, error) {
	return s.repo.ListByRecipient(ctx, name)
}

// UnreadCount reports the recipient's badge number.
func (s *Service) UnreadCount(ctx context.Context, name string) (int, error) {
	rows, err := s.repo.ListByRecipient(ctx, name)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, row := range rows {
		if !row.Read {
			n++
		}
	}
	return n, nil
}
