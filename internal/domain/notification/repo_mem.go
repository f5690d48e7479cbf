package notification

import (
	"context"
	"sync"
)

// RepoMem is the in-memory Repository. New rows are prepended so listings
// read newest first.
type RepoMem struct {
	mu   sync.RWMutex
	rows []*Notification
}

func NewRepoMem() *RepoMem {
	return &RepoMem{}
}

func (r *RepoMem) Create(ctx context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.rows = append([]*Notification{&cp}, r.rows...)
	return nil
}

func (r *RepoMem) GetByID(ctx context.Context, id string) (*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *RepoMem) MarkRead(ctx context.Context, id string) (*Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.Read = true
			cp := *row
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *RepoMem) MarkAllRead(ctx context.Context, recipient string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, row := range r.rows {
		if row.Recipient == recipient && !row.Read {
			row.Read = true
			n++
		}
	}
	return n, nil
}

func (r *RepoMem) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *RepoMem) List(ctx context.Context) ([]*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Notification, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *RepoMem) ListByRecipient(ctx context.Context, name string) ([]*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Notification
	for _, row := range r.rows {
		if row.Recipient == name {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}
