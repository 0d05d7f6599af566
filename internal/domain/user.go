package domain

import (
	"time"

	"go-blog-api/internal/auth"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the token subject for this user.
func (u User) Identity() auth.Identity {
	return auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// NewUser is the input for creating a user. Password is plaintext.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Role     auth.Role
}

// UserChanges carries a partial update; nil fields are left untouched.
type UserChanges struct {
	Name     *string
	Email    *string
	Password *string
	Role     *auth.Role
}

func (c UserChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.Password == nil && c.Role == nil
}

// UserDeleted is the payload of user.deleted.
type UserDeleted struct {
	ID int64 `json:"id"`
}

// AvatarUpdated is the payload of user.avatar.updated.
type AvatarUpdated struct {
	ID     int64  `json:"id"`
	Avatar string `json:"avatar"`
}
