package fakeuserrepo

import (
	"context"
	"sync"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
	"github.com/jrsteele09/go-inventory-server/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users map[string]*users.User // keyed by normalized email
	lock  sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]*users.User),
	}
}

// Add seeds a record. The real store is written out of band, so the fake
// exposes this on the concrete type only, not on the UserRepo contract.
func (ur *FakeUserRepo) Add(user *users.User) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.users[users.NormalizeEmail(user.Email)] = user
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[users.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
