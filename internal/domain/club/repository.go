package club

import "context"

// Repository exposes club and license-mapping persistence operations.
type Repository interface {
	Create(ctx context.Context, item Club) error
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
	GetByName(ctx context.Context, name string) (Club, bool, error)

	CreateLicenseMapping(ctx context.Context, item LicenseMapping) error
	ListLicenseMappings(ctx context.Context) ([]LicenseMapping, error)
}
