package reconcile

import "github.com/agentstation/rootstock/pkg/dataset"

// PersonChange records one person created or updated during an import.
type PersonChange struct {
	ID        dataset.PersonID `json:"id" yaml:"id"`
	SeqNumber int              `json:"seq_number" yaml:"seq_number"`
	Name      string           `json:"name" yaml:"name"`
}

// FamilyLink records how one imported family union resolved.
type FamilyLink struct {
	XRef      string             `json:"xref,omitempty" yaml:"xref,omitempty"`
	HusbandID dataset.PersonID   `json:"husband_id,omitempty" yaml:"husband_id,omitempty"`
	WifeID    dataset.PersonID   `json:"wife_id,omitempty" yaml:"wife_id,omitempty"`
	ChildIDs  []dataset.PersonID `json:"child_ids,omitempty" yaml:"child_ids,omitempty"`
}

// UnresolvedRef is one family member whose foreign id never resolved to a
// local person.
type UnresolvedRef struct {
	FamilyXRef string `json:"family_xref,omitempty" yaml:"family_xref,omitempty"`
	Role       string `json:"role" yaml:"role"`
	ForeignID  string `json:"foreign_id" yaml:"foreign_id"`
}

// Anomaly records a field that arrived in an unexpected shape and was
// coerced to text.
type Anomaly struct {
	Where string `json:"where" yaml:"where"`
	Field string `json:"field" yaml:"field"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Created lists everything a reconciliation run added to the dataset.
type Created struct {
	People   []PersonChange     `json:"people,omitempty" yaml:"people,omitempty"`
	Families []FamilyLink       `json:"families,omitempty" yaml:"families,omitempty"`
	Sources  []dataset.SourceID `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Updated lists entities an import enriched rather than created.
type Updated struct {
	People   []PersonChange `json:"people,omitempty" yaml:"people,omitempty"`
	Families []FamilyLink   `json:"families,omitempty" yaml:"families,omitempty"`
}

// Diagnostics carries the non-fatal problems an import ran into. They are
// returned as values for the caller to log or display, never raised.
type Diagnostics struct {
	Unresolved []UnresolvedRef `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Anomalies  []Anomaly       `json:"anomalies,omitempty" yaml:"anomalies,omitempty"`
}

// Result is the outcome of one reconciliation run: the new dataset
// snapshot plus reporting on what changed.
type Result struct {
	Dataset     *dataset.Dataset `json:"-" yaml:"-"`
	Created     Created          `json:"created" yaml:"created"`
	Updated     Updated          `json:"updated" yaml:"updated"`
	Diagnostics Diagnostics      `json:"diagnostics" yaml:"diagnostics"`
}

// resultBuilder accumulates reporting while the import phases run.
type resultBuilder struct {
	result *Result
}

func newResultBuilder(ds *dataset.Dataset) *resultBuilder {
	return &resultBuilder{result: &Result{Dataset: ds}}
}

func (b *resultBuilder) createdPerson(p *dataset.Person) {
	b.result.Created.People = append(b.result.Created.People, PersonChange{
		ID:        p.ID,
		SeqNumber: p.SeqNumber,
		Name:      p.FullName(),
	})
}

func (b *resultBuilder) updatedPerson(p *dataset.Person) {
	b.result.Updated.People = append(b.result.Updated.People, PersonChange{
		ID:        p.ID,
		SeqNumber: p.SeqNumber,
		Name:      p.FullName(),
	})
}

func (b *resultBuilder) createdFamily(link FamilyLink) {
	b.result.Created.Families = append(b.result.Created.Families, link)
}

func (b *resultBuilder) updatedFamily(link FamilyLink) {
	b.result.Updated.Families = append(b.result.Updated.Families, link)
}

func (b *resultBuilder) createdSource(id dataset.SourceID) {
	b.result.Created.Sources = append(b.result.Created.Sources, id)
}

func (b *resultBuilder) unresolved(familyXRef, role, foreignID string) {
	b.result.Diagnostics.Unresolved = append(b.result.Diagnostics.Unresolved, UnresolvedRef{
		FamilyXRef: familyXRef,
		Role:       role,
		ForeignID:  foreignID,
	})
}

func (b *resultBuilder) anomalies(anoms ...Anomaly) {
	b.result.Diagnostics.Anomalies = append(b.result.Diagnostics.Anomalies, anoms...)
}

func (b *resultBuilder) build() *Result {
	return b.result
}
