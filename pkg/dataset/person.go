// Package dataset defines the canonical genealogical dataset: people,
// relation edges, sources with citations, and the staging area for
// imported sources awaiting review. Collections are concurrency safe and
// the dataset as a whole supports deep copying so reconciliation can work
// on an isolated clone.
package dataset

import "strings"

// Person is one canonical individual record.
type Person struct {
	ID        PersonID   `json:"id" yaml:"id"`
	SeqNumber int        `json:"seq_number,omitempty" yaml:"seq_number,omitempty"`
	FirstName string     `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Sex       string     `json:"sex,omitempty" yaml:"sex,omitempty"`
	Note      string     `json:"note,omitempty" yaml:"note,omitempty"`
	Events    []Event    `json:"events,omitempty" yaml:"events,omitempty"`
	ParentIDs []PersonID `json:"parent_ids,omitempty" yaml:"parent_ids,omitempty"`
	ChildIDs  []PersonID `json:"child_ids,omitempty" yaml:"child_ids,omitempty"`
	SpouseID  PersonID   `json:"spouse_id,omitempty" yaml:"spouse_id,omitempty"`

	// XRef is the foreign cross-reference id the person was imported
	// under, kept for re-import matching. Empty for locally created people.
	XRef string `json:"xref,omitempty" yaml:"xref,omitempty"`
}

// Event is one dated life event on a person.
type Event struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	Type      string     `json:"type" yaml:"type"`
	Date      string     `json:"date,omitempty" yaml:"date,omitempty"`
	Place     string     `json:"place,omitempty" yaml:"place,omitempty"`
	SourceIDs []SourceID `json:"source_ids,omitempty" yaml:"source_ids,omitempty"`
}

// FullName returns "First Last" with whichever parts are present.
func (p *Person) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// HasParent reports whether id is already recorded as a parent.
func (p *Person) HasParent(id PersonID) bool {
	for _, pid := range p.ParentIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// HasChild reports whether id is already recorded as a child.
func (p *Person) HasChild(id PersonID) bool {
	for _, cid := range p.ChildIDs {
		if cid == id {
			return true
		}
	}
	return false
}

// AddParent records id as a parent if not already present.
func (p *Person) AddParent(id PersonID) {
	if id != "" && !p.HasParent(id) {
		p.ParentIDs = append(p.ParentIDs, id)
	}
}

// AddChild records id as a child if not already present.
func (p *Person) AddChild(id PersonID) {
	if id != "" && !p.HasChild(id) {
		p.ChildIDs = append(p.ChildIDs, id)
	}
}
