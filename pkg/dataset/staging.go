package dataset

import (
	"sync"

	"github.com/agentstation/rootstock/pkg/errors"
)

// Staging is a concurrent safe map of staged sources awaiting review.
type Staging struct {
	mu     sync.RWMutex
	staged map[StagedID]*StagedSource
}

// NewStaging creates a new Staging map.
func NewStaging() *Staging {
	return &Staging{
		staged: make(map[StagedID]*StagedSource),
	}
}

// Get returns a staged source by id and whether it exists.
func (s *Staging) Get(id StagedID) (*StagedSource, bool) {
	s.mu.RLock()
	staged, ok := s.staged[id]
	s.mu.RUnlock()
	return staged, ok
}

// Set sets a staged source by id. Returns an error if it is nil.
func (s *Staging) Set(id StagedID, staged *StagedSource) error {
	if staged == nil {
		return errors.NewValidationError("staged source", nil, "cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged[id] = staged
	return nil
}

// Add adds a staged source, returning an error if it already exists.
func (s *Staging) Add(staged *StagedSource) error {
	if staged == nil {
		return errors.NewValidationError("staged source", nil, "cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.staged[staged.ID]; exists {
		return errors.WrapResource("add", "staged source", string(staged.ID), errors.ErrAlreadyExists)
	}

	s.staged[staged.ID] = staged
	return nil
}

// Delete removes a staged source by id. Returns an error if it doesn't
// exist.
func (s *Staging) Delete(id StagedID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.staged[id]; !exists {
		return errors.NewNotFoundError("staged source", string(id))
	}

	delete(s.staged, id)
	return nil
}

// Len returns the number of staged sources.
func (s *Staging) Len() int {
	s.mu.RLock()
	length := len(s.staged)
	s.mu.RUnlock()
	return length
}

// List returns a slice of all staged sources.
func (s *Staging) List() []*StagedSource {
	s.mu.RLock()
	staged := make([]*StagedSource, 0, len(s.staged))
	for _, ss := range s.staged {
		staged = append(staged, ss)
	}
	s.mu.RUnlock()
	return staged
}

// ForEach applies a function to each staged source. If the function
// returns false, iteration stops early.
func (s *Staging) ForEach(fn func(id StagedID, staged *StagedSource) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, ss := range s.staged {
		if !fn(id, ss) {
			break
		}
	}
}

// FindByXRef returns the staged source imported under the given xref.
func (s *Staging) FindByXRef(xref string) (*StagedSource, bool) {
	if xref == "" {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ss := range s.staged {
		if ss.XRef == xref {
			return ss, true
		}
	}
	return nil, false
}
