package service

import (
	"context"
	"fmt"
	"sync"
)

// descStore holds descriptions of previously checked projects so later
// submissions can be compared against them by project id.
type descStore struct {
	mu    sync.RWMutex
	descs map[string]string
}

func newDescStore() *descStore {
	return &descStore{descs: make(map[string]string)}
}

// Description resolves a prior-project id to its stored description.
func (s *descStore) Description(_ context.Context, projectID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	desc, ok := s.descs[projectID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProject, projectID)
	}
	return desc, nil
}

// Record stores a project description, replacing any previous one.
func (s *descStore) Record(projectID, description string) {
	if projectID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.descs[projectID] = description
}

// Count returns the number of stored project descriptions.
func (s *descStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.descs)
}
