package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item User) error
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByLicenseNumber(ctx context.Context, licenseNumber string) (User, bool, error)
	UpdateRole(ctx context.Context, userID string, role Role) error
}
