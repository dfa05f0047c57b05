package users

import "context"

// UserRepo is the get-by-key contract onto the external user store. The
// store is owned elsewhere; records are read once per login attempt.
// Implementations must treat the email key as case-insensitive and return
// ErrUserNotFound when no record exists.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}
