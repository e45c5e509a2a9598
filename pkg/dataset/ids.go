package dataset

import "github.com/google/uuid"

// Typed identifiers for dataset records. IDs are opaque strings with a
// short record-kind prefix so logs and snapshots stay readable.
type (
	// PersonID identifies a person record.
	PersonID string
	// SourceID identifies a source record.
	SourceID string
	// CitationID identifies a citation record.
	CitationID string
	// RelationID identifies a relation edge.
	RelationID string
	// StagedID identifies a staged source awaiting review.
	StagedID string
)

// NewEventID generates a unique event id.
func NewEventID() string { return "event_" + uuid.NewString() }

// NewPersonID generates a unique person id.
func NewPersonID() PersonID { return PersonID("person_" + uuid.NewString()) }

// NewSourceID generates a unique source id.
func NewSourceID() SourceID { return SourceID("source_" + uuid.NewString()) }

// NewCitationID generates a unique citation id.
func NewCitationID() CitationID { return CitationID("citation_" + uuid.NewString()) }

// NewRelationID generates a unique relation id.
func NewRelationID() RelationID { return RelationID("relation_" + uuid.NewString()) }

// NewStagedID generates a unique staged-source id.
func NewStagedID() StagedID { return StagedID("staged_" + uuid.NewString()) }
