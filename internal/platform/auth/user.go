package auth

import "time"

// Roles a session user can hold.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User is the session profile. Passwords never appear on this struct; they
// live only on the credential records inside the store.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	Phone            string    `json:"phone,omitempty"`
	Specialization   string    `json:"specialization,omitempty"`
	LicenseNumber    string    `json:"license_number,omitempty"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	Address          string    `json:"address,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleDoctor || role == RolePatient
}

// credential pairs a profile with its password inside the store.
type credential struct {
	User
	Password string
}

// DemoCredentials returns the built-in demo account list the store is
// seeded with. The passwords are intentionally plain text: this is a demo
// credential list, not a security boundary.
func DemoCredentials() []struct {
	User     User
	Password string
} {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []struct {
		User     User
		Password string
	}{
		{
			User: User{
				ID: "1", Email: "admin@swasthtrack.com", Name: "System Administrator",
				Role: RoleAdmin, Phone: "+1-555-0001", CreatedAt: created,
			},
			Password: "admin123",
		},
		{
			User: User{
				ID: "2", Email: "dr.smith@swasthtrack.com", Name: "Dr. Sarah Smith",
				Role: RoleDoctor, Phone: "+1-555-0002",
				Specialization: "Cardiology", LicenseNumber: "MD-001-2024",
				CreatedAt: created,
			},
			Password: "doctor123",
		},
		{
			User: User{
				ID: "3", Email: "john.doe@email.com", Name: "John Doe",
				Role: RolePatient, Phone: "+1-555-0003",
				DateOfBirth: "1985-06-15", Address: "123 Main St, Anytown, ST 12345",
				EmergencyContact: "+1-555-0004", CreatedAt: created,
			},
			Password: "patient123",
		},
	}
}
