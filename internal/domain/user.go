package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	MobileNumber string
	Image        string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserSummary is the public projection used when a user is populated into
// another document.
type UserSummary struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	MobileNumber string
	Image        string
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MobileNumber: u.MobileNumber,
		Image:        u.Image,
	}
}
