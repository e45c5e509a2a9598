package dataset

import "github.com/agentstation/rootstock/pkg/xref"

// Dataset is the full canonical dataset: people, relation edges, sources,
// the staging area, and the foreign-to-local cross-reference map built up
// by imports.
type Dataset struct {
	People    *People
	Relations *Relations
	Sources   *Sources
	Staging   *Staging
	XRefs     *xref.Map
}

// Option defines a function that configures a Dataset.
type Option func(*Dataset)

// WithPeople seeds the dataset with an existing people collection.
func WithPeople(people *People) Option {
	return func(d *Dataset) {
		if people != nil {
			d.People = people
		}
	}
}

// WithSources seeds the dataset with an existing sources collection.
func WithSources(sources *Sources) Option {
	return func(d *Dataset) {
		if sources != nil {
			d.Sources = sources
		}
	}
}

// New creates an empty dataset.
func New(opts ...Option) *Dataset {
	d := &Dataset{
		People:    NewPeople(),
		Relations: NewRelations(),
		Sources:   NewSources(),
		Staging:   NewStaging(),
		XRefs:     xref.New(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Copy returns a deep copy of the dataset. Mutating the copy never
// affects the original, so callers can reconcile against a clone and
// discard it on failure.
func (d *Dataset) Copy() *Dataset {
	if d == nil {
		return nil
	}

	out := New()

	d.People.ForEach(func(id PersonID, p *Person) bool {
		_ = out.People.Set(id, CopyPerson(p))
		return true
	})
	d.Relations.ForEach(func(id RelationID, r *Relation) bool {
		_ = out.Relations.Set(id, CopyRelation(r))
		return true
	})
	d.Sources.ForEach(func(id SourceID, s *Source) bool {
		_ = out.Sources.Set(id, CopySource(s))
		return true
	})
	d.Staging.ForEach(func(id StagedID, s *StagedSource) bool {
		_ = out.Staging.Set(id, CopyStagedSource(s))
		return true
	})
	out.XRefs = d.XRefs.Copy()

	return out
}
