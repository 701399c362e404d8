// Package memory provides an in-process profile store used in standalone
// mode and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// ProfileStore is a map-backed profile.Repository.  Safe for concurrent use;
// upserts are last-writer-wins, matching the repository contract.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[common.ID]*profile.IntelligenceProfile
}

// NewProfileStore returns an empty store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[common.ID]*profile.IntelligenceProfile)}
}

// Get returns the stored profile, or ErrCodeProfileNotFound.
func (s *ProfileStore) Get(_ context.Context, listingID common.ID) (*profile.IntelligenceProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[listingID]
	if !ok {
		return nil, errors.New(errors.ErrCodeProfileNotFound, "profile not found").
			WithDetail(listingID.String())
	}
	return p.Clone(), nil
}

// Upsert stores a copy of the profile, replacing any previous record.
func (s *ProfileStore) Upsert(_ context.Context, p *profile.IntelligenceProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	cp := p.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ListingID] = cp
	return nil
}

// Delete removes the profile; deleting a missing profile is a no-op.
func (s *ProfileStore) Delete(_ context.Context, listingID common.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, listingID)
	return nil
}

// ListByOwner returns copies of every profile owned by ownerID.
func (s *ProfileStore) ListByOwner(_ context.Context, ownerID common.OwnerID) ([]*profile.IntelligenceProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*profile.IntelligenceProfile
	for _, p := range s.profiles {
		if p.OwnerID == ownerID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// ListByCity returns copies of every profile in the city; empty means all.
func (s *ProfileStore) ListByCity(_ context.Context, city string) ([]*profile.IntelligenceProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*profile.IntelligenceProfile
	for _, p := range s.profiles {
		if city == "" || p.City == city {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Len reports how many profiles are stored.
func (s *ProfileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
