package service

import (
	"errors"
	"fmt"
	"sync"

	"kyn/internal/models"
	"kyn/internal/repository"
)

// ErrNoFamilies means the profile has no memberships to select from
var ErrNoFamilies = errors.New("no family memberships")

// SelectionStore persists which family a profile currently has open.
// The SQL implementation lives in the repository package; an in-memory
// one backs tests.
type SelectionStore interface {
	Get(profileID int64) (int64, bool, error)
	Set(profileID, familyID int64) error
	Clear(profileID int64) error
}

// Switcher resolves and updates a profile's active family
type Switcher struct {
	store      SelectionStore
	familyRepo *repository.FamilyRepository
}

// NewSwitcher creates a new family switcher
func NewSwitcher(store SelectionStore, familyRepo *repository.FamilyRepository) *Switcher {
	return &Switcher{store: store, familyRepo: familyRepo}
}

// Selected resolves the profile's active family. A stored selection
// wins if the profile still belongs to that family; otherwise the
// first membership is used and persisted. Stale selections are cleaned
// up rather than surfaced.
func (s *Switcher) Selected(profileID int64) (*models.Membership, error) {
	memberships, err := s.familyRepo.ListMemberships(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return nil, ErrNoFamilies
	}

	storedID, ok, err := s.store.Get(profileID)
	if err != nil {
		return nil, err
	}
	if ok {
		for i := range memberships {
			if memberships[i].Family.ID == storedID {
				return &memberships[i], nil
			}
		}
		_ = s.store.Clear(profileID)
	}

	first := &memberships[0]
	if err := s.store.Set(profileID, first.Family.ID); err != nil {
		return nil, err
	}
	return first, nil
}

// Select makes familyID the profile's active family. The profile must
// belong to it.
func (s *Switcher) Select(profileID, familyID int64) (*models.Membership, error) {
	memberships, err := s.familyRepo.ListMemberships(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	for i := range memberships {
		if memberships[i].Family.ID == familyID {
			if err := s.store.Set(profileID, familyID); err != nil {
				return nil, err
			}
			return &memberships[i], nil
		}
	}
	return nil, ErrNotFamilyMember
}

// ClearSelection drops the profile's stored selection
func (s *Switcher) ClearSelection(profileID int64) error {
	return s.store.Clear(profileID)
}

// MemorySelectionStore is an in-memory SelectionStore for tests
type MemorySelectionStore struct {
	mu         sync.Mutex
	selections map[int64]int64
}

// NewMemorySelectionStore creates an empty in-memory selection store
func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{selections: make(map[int64]int64)}
}

func (m *MemorySelectionStore) Get(profileID int64) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	familyID, ok := m.selections[profileID]
	return familyID, ok, nil
}

func (m *MemorySelectionStore) Set(profileID, familyID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selections[profileID] = familyID
	return nil
}

func (m *MemorySelectionStore) Clear(profileID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.selections, profileID)
	return nil
}
