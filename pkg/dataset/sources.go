package dataset

import (
	"sync"

	"github.com/agentstation/rootstock/pkg/errors"
)

// Sources is a concurrent safe map of source records.
type Sources struct {
	mu      sync.RWMutex
	sources map[SourceID]*Source
}

// NewSources creates a new Sources map.
func NewSources() *Sources {
	return &Sources{
		sources: make(map[SourceID]*Source),
	}
}

// Get returns a source by id and whether it exists.
func (s *Sources) Get(id SourceID) (*Source, bool) {
	s.mu.RLock()
	src, ok := s.sources[id]
	s.mu.RUnlock()
	return src, ok
}

// Set sets a source by id. Returns an error if the source is nil.
func (s *Sources) Set(id SourceID, src *Source) error {
	if src == nil {
		return errors.NewValidationError("source", nil, "cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[id] = src
	return nil
}

// Add adds a source, returning an error if it already exists.
func (s *Sources) Add(src *Source) error {
	if src == nil {
		return errors.NewValidationError("source", nil, "cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sources[src.ID]; exists {
		return errors.WrapResource("add", "source", string(src.ID), errors.ErrAlreadyExists)
	}

	s.sources[src.ID] = src
	return nil
}

// Delete removes a source by id. Returns an error if it doesn't exist.
func (s *Sources) Delete(id SourceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sources[id]; !exists {
		return errors.NewNotFoundError("source", string(id))
	}

	delete(s.sources, id)
	return nil
}

// Exists checks if a source exists without returning it.
func (s *Sources) Exists(id SourceID) bool {
	s.mu.RLock()
	_, exists := s.sources[id]
	s.mu.RUnlock()
	return exists
}

// Len returns the number of sources.
func (s *Sources) Len() int {
	s.mu.RLock()
	length := len(s.sources)
	s.mu.RUnlock()
	return length
}

// List returns a slice of all sources.
func (s *Sources) List() []*Source {
	s.mu.RLock()
	sources := make([]*Source, 0, len(s.sources))
	for _, src := range s.sources {
		sources = append(sources, src)
	}
	s.mu.RUnlock()
	return sources
}

// ForEach applies a function to each source. If the function returns
// false, iteration stops early.
func (s *Sources) ForEach(fn func(id SourceID, src *Source) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, src := range s.sources {
		if !fn(id, src) {
			break
		}
	}
}

// FindByXRef returns the source imported under the given foreign xref.
func (s *Sources) FindByXRef(xref string) (*Source, bool) {
	if xref == "" {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, src := range s.sources {
		if src.XRef == xref {
			return src, true
		}
	}
	return nil, false
}

// FindByMatchKey returns the first source whose title/page/date identity
// matches the given key.
func (s *Sources) FindByMatchKey(key string) (*Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, src := range s.sources {
		if src.MatchKey() == key {
			return src, true
		}
	}
	return nil, false
}
