package dataset

import (
	"sync"

	"github.com/agentstation/rootstock/pkg/errors"
)

// Relations is a concurrent safe map of relation edges.
type Relations struct {
	mu        sync.RWMutex
	relations map[RelationID]*Relation
}

// NewRelations creates a new Relations map.
func NewRelations() *Relations {
	return &Relations{
		relations: make(map[RelationID]*Relation),
	}
}

// Get returns a relation by id and whether it exists.
func (r *Relations) Get(id RelationID) (*Relation, bool) {
	r.mu.RLock()
	rel, ok := r.relations[id]
	r.mu.RUnlock()
	return rel, ok
}

// Set sets a relation by id. Returns an error if the relation is nil.
func (r *Relations) Set(id RelationID, rel *Relation) error {
	if rel == nil {
		return errors.NewValidationError("relation", nil, "cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.relations[id] = rel
	return nil
}

// Add adds a relation, returning an error if it already exists.
func (r *Relations) Add(rel *Relation) error {
	if rel == nil {
		return errors.NewValidationError("relation", nil, "cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.relations[rel.ID]; exists {
		return errors.WrapResource("add", "relation", string(rel.ID), errors.ErrAlreadyExists)
	}

	r.relations[rel.ID] = rel
	return nil
}

// Delete removes a relation by id. Returns an error if it doesn't exist.
func (r *Relations) Delete(id RelationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.relations[id]; !exists {
		return errors.NewNotFoundError("relation", string(id))
	}

	delete(r.relations, id)
	return nil
}

// Len returns the number of relations.
func (r *Relations) Len() int {
	r.mu.RLock()
	length := len(r.relations)
	r.mu.RUnlock()
	return length
}

// List returns a slice of all relations.
func (r *Relations) List() []*Relation {
	r.mu.RLock()
	relations := make([]*Relation, 0, len(r.relations))
	for _, rel := range r.relations {
		relations = append(relations, rel)
	}
	r.mu.RUnlock()
	return relations
}

// ForEach applies a function to each relation. If the function returns
// false, iteration stops early.
func (r *Relations) ForEach(fn func(id RelationID, rel *Relation) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, rel := range r.relations {
		if !fn(id, rel) {
			break
		}
	}
}

// FindLive returns the first non-archived relation of the given type
// connecting a and b. Archived relations never match, so re-importing a
// family after a soft delete creates a fresh edge.
func (r *Relations) FindLive(typ RelationType, a, b PersonID) (*Relation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rel := range r.relations {
		if rel.Archived || rel.Type != typ {
			continue
		}
		if rel.Connects(a, b) {
			return rel, true
		}
	}
	return nil, false
}
