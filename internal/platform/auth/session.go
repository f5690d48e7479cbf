package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// SessionStore mirrors the current session user into a single JSON file so a
// restarted process picks the session back up. One blob, no schema version.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Save writes the session user to disk.
func (s *SessionStore) Save(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Load restores the session user. A missing file means no session and is not
// an error; the bool result distinguishes the two.
func (s *SessionStore) Load() (User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("read session file: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, false, fmt.Errorf("decode session file: %w", err)
	}
	return u, true, nil
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Provider ties the credential store and session store together: it holds
// the current authenticated user (or none) and exposes login/logout/register.
type Provider struct {
	creds    *CredentialStore
	sessions *SessionStore

	mu      sync.RWMutex
	current *User
}

func NewProvider(creds *CredentialStore, sessions *SessionStore) *Provider {
	p := &Provider{creds: creds, sessions: sessions}
	if u, ok, err := sessions.Load(); err == nil && ok {
		p.current = &u
	}
	return p
}

// Login authenticates against the credential list. On success the user
// (password stripped) becomes the current session and is mirrored to disk.
// Failure is a bare false with no detail.
func (p *Provider) Login(email, password string) (User, bool) {
	u, ok := p.creds.Authenticate(email, password)
	if !ok {
		return User{}, false
	}
	p.mu.Lock()
	p.current = &u
	p.mu.Unlock()
	// Session file write failure does not fail the login; the in-memory
	// session is authoritative for this process.
	_ = p.sessions.Save(u)
	return u, true
}

// Register adds a credential tuple. The new user is not signed in.
func (p *Provider) Register(req RegisterRequest) (User, error) {
	return p.creds.Register(req)
}

// Logout clears the current session and the session file.
func (p *Provider) Logout() error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	return p.sessions.Clear()
}

// Current returns the session user, if any.
func (p *Provider) Current() (User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return User{}, false
	}
	return *p.current, true
}

// Users exposes the underlying account list (admin user management).
func (p *Provider) Users() []User { return p.creds.List() }

// DeleteUser removes an account by id.
func (p *Provider) DeleteUser(id string) bool { return p.creds.Delete(id) }
