package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/V1TECKOR/interclub/internal/domain/club"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
)

type clubRepository struct {
	d *data
}

func (r clubRepository) Create(_ context.Context, item club.Club) error {
	if _, ok := r.d.clubs[item.ID]; ok {
		return storage.ErrDuplicateKey
	}
	for _, existing := range r.d.clubs {
		if strings.EqualFold(existing.Name, item.Name) {
			return storage.ErrDuplicateKey
		}
	}
	r.d.clubs[item.ID] = item

	return nil
}

func (r clubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	item, ok := r.d.clubs[clubID]
	return item, ok, nil
}

func (r clubRepository) GetByName(_ context.Context, name string) (club.Club, bool, error) {
	for _, item := range r.d.clubs {
		if strings.EqualFold(item.Name, name) {
			return item, true, nil
		}
	}

	return club.Club{}, false, nil
}

func (r clubRepository) CreateLicenseMapping(_ context.Context, item club.LicenseMapping) error {
	if _, ok := r.d.licenseMappings[item.ID]; ok {
		return storage.ErrDuplicateKey
	}
	for _, existing := range r.d.licenseMappings {
		if existing.Prefix == item.Prefix {
			return storage.ErrDuplicateKey
		}
	}
	r.d.licenseMappings[item.ID] = item

	return nil
}

func (r clubRepository) ListLicenseMappings(_ context.Context) ([]club.LicenseMapping, error) {
	out := make([]club.LicenseMapping, 0, len(r.d.licenseMappings))
	for _, item := range r.d.licenseMappings {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })

	return out, nil
}
