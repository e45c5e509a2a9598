package dataset

import "github.com/agentstation/utc"

// RelationType classifies a relation edge.
type RelationType string

// Relation types.
const (
	RelationParent RelationType = "parent"
	RelationSpouse RelationType = "spouse"
)

// Relation is one edge in the relation graph. Parent edges run from the
// parent to the child; spouse edges are unordered and matched in either
// direction.
type Relation struct {
	ID           RelationID   `json:"id" yaml:"id"`
	Type         RelationType `json:"type" yaml:"type"`
	FromPersonID PersonID     `json:"from_person_id" yaml:"from_person_id"`
	ToPersonID   PersonID     `json:"to_person_id" yaml:"to_person_id"`
	SourceIDs    []SourceID   `json:"source_ids,omitempty" yaml:"source_ids,omitempty"`
	Note         string       `json:"note,omitempty" yaml:"note,omitempty"`
	CreatedBy    string       `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	CreatedAt    utc.Time     `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	ModifiedAt   utc.Time     `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`

	// Archived relations are soft deleted. They stay in the dataset but
	// never satisfy an existence check during import, so a re-import of
	// the same family recreates the edge as a live relation.
	Archived bool `json:"archived,omitempty" yaml:"archived,omitempty"`
}

// Connects reports whether the relation links a and b, in either
// direction for spouse edges and from parent a to child b for parent
// edges.
func (r *Relation) Connects(a, b PersonID) bool {
	switch r.Type {
	case RelationSpouse:
		return (r.FromPersonID == a && r.ToPersonID == b) ||
			(r.FromPersonID == b && r.ToPersonID == a)
	default:
		return r.FromPersonID == a && r.ToPersonID == b
	}
}

// AddSourceIDs appends the given source ids, skipping duplicates and
// empty ids. Returns true if anything was added.
func (r *Relation) AddSourceIDs(ids ...SourceID) bool {
	added := false
	for _, id := range ids {
		if id == "" {
			continue
		}
		exists := false
		for _, have := range r.SourceIDs {
			if have == id {
				exists = true
				break
			}
		}
		if !exists {
			r.SourceIDs = append(r.SourceIDs, id)
			added = true
		}
	}
	return added
}
