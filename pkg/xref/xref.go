// Package xref resolves foreign record identifiers from a genealogical
// interchange file to canonical dataset ids.
//
// Interchange files bracket record identifiers with @ delimiters ("@I1@").
// Different parsers strip or keep those delimiters, so the map stores both
// the normalized and the raw form of every registered identifier and lookups
// try the normalized form first. Entries are never overwritten once set:
// resolving the same foreign id twice within an import always yields the
// same canonical id, which every downstream dedup decision relies on.
package xref

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Map is a concurrent safe, append-only mapping from foreign identifiers
// to canonical dataset ids.
type Map struct {
	mu      sync.RWMutex
	entries map[string]string
}

// Option defines a function that configures a Map.
type Option func(*Map)

// WithEntries initializes the map with existing entries, normalizing keys.
func WithEntries(entries map[string]string) Option {
	return func(m *Map) {
		for k, v := range entries {
			m.entries[k] = v
			if n := Normalize(k); n != "" {
				if _, ok := m.entries[n]; !ok {
					m.entries[n] = v
				}
			}
		}
	}
}

// New creates a new cross-reference map with optional configuration.
func New(opts ...Option) *Map {
	m := &Map{
		entries: make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Normalize canonicalizes a foreign identifier: Unicode NFC, surrounding
// whitespace trimmed, and a single leading and trailing @ delimiter each
// stripped independently, so lopsided ids like "@I1" still normalize.
// Returns "" for identifiers that are empty after normalization.
func Normalize(foreign string) string {
	s := strings.TrimSpace(norm.NFC.String(foreign))
	s = strings.TrimPrefix(s, "@")
	s = strings.TrimSuffix(s, "@")
	return strings.TrimSpace(s)
}

// Register stores both the normalized and the raw form of foreign pointing
// at local. An existing mapping for the same key is never overwritten.
// It reports whether the normalized key was newly registered.
func (m *Map) Register(foreign, local string) bool {
	if foreign == "" || local == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	registered := false
	if n := Normalize(foreign); n != "" {
		if _, ok := m.entries[n]; !ok {
			m.entries[n] = local
			registered = true
		}
	}
	if _, ok := m.entries[foreign]; !ok {
		m.entries[foreign] = local
	}
	return registered
}

// Resolve returns the canonical id for a foreign identifier, trying the
// normalized form first and then the raw form.
func (m *Map) Resolve(foreign string) (string, bool) {
	if foreign == "" {
		return "", false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if n := Normalize(foreign); n != "" {
		if local, ok := m.entries[n]; ok {
			return local, true
		}
	}
	local, ok := m.entries[foreign]
	return local, ok
}

// Len returns the number of entries, counting raw and normalized forms.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Entries returns a copy of the underlying entries for serialization.
func (m *Map) Entries() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// Copy creates an independent copy of the map.
func (m *Map) Copy() *Map {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		entries[k] = v
	}
	return &Map{entries: entries}
}
