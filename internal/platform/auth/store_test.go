package auth

import (
	"testing"

	"github.com/swasthtrack/clinic/internal/platform/idgen"
)

func newTestStore() *CredentialStore {
	return NewCredentialStore(idgen.NewFrom(0))
}

func TestAuthenticate_AllDemoAccounts(t *testing.T) {
	s := newTestStore()
	for _, d := range DemoCredentials() {
		u, ok := s.Authenticate(d.User.Email, d.Password)
		if !ok {
			t.Errorf("expected login to succeed for %s", d.User.Email)
			continue
		}
		if u.Email != d.User.Email || u.Name != d.User.Name || u.Role != d.User.Role {
			t.Errorf("profile mismatch for %s: got %+v", d.User.Email, u)
		}
	}
}

func TestAuthenticate_RejectsBadPairs(t *testing.T) {
	s := newTestStore()
	cases := []struct{ email, password string }{
		{"admin@swasthtrack.com", "wrong"},
		{"nobody@swasthtrack.com", "admin123"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, ok := s.Authenticate(tc.email, tc.password); ok {
			t.Errorf("expected login to fail for %q/%q", tc.email, tc.password)
		}
	}
}

func TestRegister_ThenLogin(t *testing.T) {
	s := newTestStore()
	u, err := s.Register(RegisterRequest{
		Email:    "new.patient@email.com",
		Password: "pass123",
		Name:     "New Patient",
		Role:     RolePatient,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" {
		t.Error("expected generated id")
	}

	got, ok := s.Authenticate("new.patient@email.com", "pass123")
	if !ok {
		t.Fatal("expected login to succeed after register")
	}
	if got.Name != "New Patient" {
		t.Errorf("expected registered profile, got %+v", got)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestStore()
	_, err := s.Register(RegisterRequest{
		Email: "admin@swasthtrack.com", Password: "x", Name: "Imposter", Role: RoleAdmin,
	})
	if err != ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	s := newTestStore()
	if _, err := s.Register(RegisterRequest{Email: "a@b.com", Role: RolePatient}); err == nil {
		t.Error("expected error for missing password and name")
	}
	if _, err := s.Register(RegisterRequest{Email: "a@b.com", Password: "x", Name: "A", Role: "superuser"}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestDelete_RemovesAccount(t *testing.T) {
	s := newTestStore()
	if !s.Delete("1") {
		t.Fatal("expected delete to succeed for seeded admin")
	}
	if _, ok := s.Authenticate("admin@swasthtrack.com", "admin123"); ok {
		t.Error("expected login to fail after delete")
	}
	if s.Delete("1") {
		t.Error("expected second delete to report not found")
	}
}
