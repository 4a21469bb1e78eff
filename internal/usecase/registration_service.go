package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/V1TECKOR/interclub/internal/domain/club"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/domain/user"
	"github.com/V1TECKOR/interclub/internal/platform/id"
)

const minPasswordLength = 8

type RegisterUserInput struct {
	FirstName     string
	LastName      string
	Email         string
	LicenseNumber string
	Password      string
}

// RegistrationService creates users and resolves their club from the
// license-prefix map. Authentication itself lives outside this service.
type RegistrationService struct {
	store storage.Store
	ids   id.Generator
	now   func() time.Time
}

func NewRegistrationService(store storage.Store, ids id.Generator) *RegistrationService {
	return &RegistrationService{
		store: store,
		ids:   ids,
		now:   time.Now,
	}
}

func (s *RegistrationService) Register(ctx context.Context, input RegisterUserInput) (user.User, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.LicenseNumber = strings.TrimSpace(input.LicenseNumber)

	if input.Email == "" {
		return user.User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.LicenseNumber == "" {
		return user.User{}, fmt.Errorf("%w: license number is required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return user.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.ids.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	item := user.User{
		ID:            userID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		LicenseNumber: input.LicenseNumber,
		PasswordHash:  string(hash),
		Role:          user.RolePlayer,
		CreatedAt:     s.now().UTC(),
	}

	err = s.store.WithinTx(ctx, func(tx storage.Tx) error {
		if _, exists, err := tx.Users().GetByEmail(ctx, item.Email); err != nil {
			return fmt.Errorf("check email uniqueness: %w", err)
		} else if exists {
			return fmt.Errorf("%w: email %s is already registered", ErrConflict, item.Email)
		}
		if _, exists, err := tx.Users().GetByLicenseNumber(ctx, item.LicenseNumber); err != nil {
			return fmt.Errorf("check license uniqueness: %w", err)
		} else if exists {
			return fmt.Errorf("%w: license number %s is already registered", ErrConflict, item.LicenseNumber)
		}

		mappings, err := tx.Clubs().ListLicenseMappings(ctx)
		if err != nil {
			return fmt.Errorf("list license mappings: %w", err)
		}
		// No prefix match leaves the club unset; registration still succeeds.
		if clubID, ok := club.MatchLicense(mappings, item.LicenseNumber); ok {
			item.ClubID = clubID
		}

		if err := tx.Users().Create(ctx, item); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("%w: user already exists", ErrConflict)
			}
			return fmt.Errorf("create user: %w", err)
		}

		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	return item, nil
}
