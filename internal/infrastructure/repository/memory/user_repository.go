package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/user"
)

type userRepository struct {
	d *data
}

func (r userRepository) Create(_ context.Context, item user.User) error {
	if _, ok := r.d.users[item.ID]; ok {
		return storage.ErrDuplicateKey
	}
	for _, existing := range r.d.users {
		if strings.EqualFold(existing.Email, item.Email) || existing.LicenseNumber == item.LicenseNumber {
			return storage.ErrDuplicateKey
		}
	}
	r.d.users[item.ID] = item

	return nil
}

func (r userRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	item, ok := r.d.users[userID]
	return item, ok, nil
}

func (r userRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	for _, item := range r.d.users {
		if strings.EqualFold(item.Email, email) {
			return item, true, nil
		}
	}

	return user.User{}, false, nil
}

func (r userRepository) GetByLicenseNumber(_ context.Context, licenseNumber string) (user.User, bool, error) {
	for _, item := range r.d.users {
		if item.LicenseNumber == licenseNumber {
			return item, true, nil
		}
	}

	return user.User{}, false, nil
}

func (r userRepository) UpdateRole(_ context.Context, userID string, role user.Role) error {
	item, ok := r.d.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	item.Role = role
	r.d.users[userID] = item

	return nil
}
