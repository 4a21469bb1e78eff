package memory

import (
	"context"
	"sort"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/membership"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
)

type membershipRepository struct {
	d *data
}

func (r membershipRepository) Create(_ context.Context, item membership.Membership) error {
	key := pairKey(item.UserID, item.TeamID)
	if _, ok := r.d.memberships[key]; ok {
		return storage.ErrDuplicateKey
	}
	r.d.memberships[key] = item

	return nil
}

func (r membershipRepository) Get(_ context.Context, userID, teamID string) (membership.Membership, bool, error) {
	item, ok := r.d.memberships[pairKey(userID, teamID)]
	return item, ok, nil
}

func (r membershipRepository) Approve(_ context.Context, userID, teamID string, approvedAt time.Time) (bool, error) {
	key := pairKey(userID, teamID)
	item, ok := r.d.memberships[key]
	if !ok || item.Approved {
		return false, nil
	}
	item.Approved = true
	item.ApprovedAt = &approvedAt
	r.d.memberships[key] = item

	return true, nil
}

func (r membershipRepository) Delete(_ context.Context, userID, teamID string) (bool, error) {
	key := pairKey(userID, teamID)
	if _, ok := r.d.memberships[key]; !ok {
		return false, nil
	}
	delete(r.d.memberships, key)

	return true, nil
}

func (r membershipRepository) ListByTeam(_ context.Context, teamID string, approvedOnly bool) ([]membership.Membership, error) {
	var out []membership.Membership
	for _, item := range r.d.memberships {
		if item.TeamID != teamID {
			continue
		}
		if approvedOnly && !item.Approved {
			continue
		}
		out = append(out, item)
	}
	sortMemberships(out)

	return out, nil
}

func (r membershipRepository) ListByUser(_ context.Context, userID string) ([]membership.Membership, error) {
	var out []membership.Membership
	for _, item := range r.d.memberships {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sortMemberships(out)

	return out, nil
}

func sortMemberships(items []membership.Membership) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].RequestedAt.Equal(items[j].RequestedAt) {
			return items[i].RequestedAt.Before(items[j].RequestedAt)
		}
		return items[i].UserID < items[j].UserID
	})
}
