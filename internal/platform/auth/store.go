package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

// ErrDuplicateEmail is returned by Register when the email is taken.
var ErrDuplicateEmail = fmt.Errorf("email already registered")

// RegisterRequest carries the fields a new account needs. Role-specific
// fields are optional and copied through to the profile.
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	Phone            string `json:"phone,omitempty"`
	Specialization   string `json:"specialization,omitempty"`
	LicenseNumber    string `json:"license_number,omitempty"`
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// CredentialStore holds the (email, password, profile) tuples authentication
// runs against. All access is mutex-guarded; credentials live only in memory.
type CredentialStore struct {
	mu    sync.RWMutex
	creds []credential
	ids   *idgen.Generator
}

// NewCredentialStore returns a store seeded with the demo accounts.
func NewCredentialStore(ids *idgen.Generator) *CredentialStore {
	s := &CredentialStore{ids: ids}
	for _, d := range DemoCredentials() {
		s.creds = append(s.creds, credential{User: d.User, Password: d.Password})
	}
	return s
}

// Authenticate returns the profile matching the email/password pair. The
// boolean result carries no detail: an unknown email and a wrong password
// are indistinguishable to the caller.
func (s *CredentialStore) Authenticate(email, password string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.creds {
		if c.Email == email && c.Password == password {
			return c.User, true
		}
	}
	return User{}, false
}

// Register appends a new credential tuple. It does not sign the user in.
func (s *CredentialStore) Register(req RegisterRequest) (User, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return User{}, fmt.Errorf("email, password and name are required")
	}
	if !ValidRole(req.Role) {
		return User{}, fmt.Errorf("invalid role: %s", req.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.creds {
		if c.Email == req.Email {
			return User{}, ErrDuplicateEmail
		}
	}

	u := User{
		ID:               s.ids.Next(idgen.PrefixUser),
		Email:            req.Email,
		Name:             req.Name,
		Role:             req.Role,
		Phone:            req.Phone,
		Specialization:   req.Specialization,
		LicenseNumber:    req.LicenseNumber,
		DateOfBirth:      req.DateOfBirth,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		CreatedAt:        time.Now().UTC(),
	}
	s.creds = append(s.creds, credential{User: u, Password: req.Password})
	return u, nil
}

// Delete removes the account with the given id. Removing an account does not
// touch any patient/doctor rows it may have provisioned.
func (s *CredentialStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.creds {
		if c.ID == id {
			s.creds = append(s.creds[:i], s.creds[i+1:]...)
			return true
		}
	}
	return false
}

// List returns every profile in registration order, passwords stripped.
func (s *CredentialStore) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.creds))
	for i, c := range s.creds {
		out[i] = c.User
	}
	return out
}
