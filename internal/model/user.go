package model

import "time"

// User is the stored account row. It carries the password hash and is never
// serialized; handlers respond with SafeUser.
type User struct {
	ID           string    `json:"-"`
	Email        string    `json:"-"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Owner returns the user's own ID; a user record is owned by itself.
func (u *User) Owner() string {
	return u.ID
}

// Safe projects the user onto its public fields.
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type SafeUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpdateUserRequest struct {
	Email *string `json:"email" binding:"omitempty,email,max=255"`
}
