package sheets

import (
	"context"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
	"github.com/jrsteele09/go-inventory-server/users"
)

var _ users.UserRepo = (*UserStore)(nil)

// UserStore serves the get-by-key user lookup contract from the Users
// sheet. Rows are [email, role, passwordHash]; a row missing fields or
// naming an unknown role is a data-integrity fault, not a missing user.
type UserStore struct {
	client *Client
}

func NewUserStore(client *Client) *UserStore {
	return &UserStore{client: client}
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	vr, err := s.client.readRange(ctx, defaultUsersRange)
	if err != nil {
		return nil, err
	}

	key := users.NormalizeEmail(email)
	for _, row := range vr.Values {
		if len(row) == 0 || users.NormalizeEmail(row[0]) != key {
			continue
		}
		if len(row) < 3 || row[1] == "" || row[2] == "" {
			return nil, apperrors.Wrapf(apperrors.ErrMalformedRecord, "user row for %s is missing fields", key)
		}
		role, err := users.ParseRole(row[1])
		if err != nil {
			return nil, err
		}
		return &users.User{
			Email:        users.NormalizeEmail(row[0]),
			Role:         role,
			PasswordHash: row[2],
		}, nil
	}
	return nil, apperrors.ErrUserNotFound
}
