package models

import "strings"

// UserRole represents the role reported by the remote API
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is the logged-in account as reported by the remote API
type User struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Role              UserRole `json:"role"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty"`
	PhoneNumber       string   `json:"phoneNumber,omitempty"`
}

// DisplayName returns the name, falling back to the email's local part
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// IsAdmin checks if user is an admin
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
