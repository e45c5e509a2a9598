// Package reconcile merges mapped genealogical import data into a
// canonical dataset. One Apply call runs the full pipeline: person
// reconciliation, relation graph building, source and citation merging,
// source attachment and a final sanitize pass. The input dataset is never
// mutated; Apply works on a deep copy and returns it in the Result along
// with created/updated reporting and diagnostics.
package reconcile

import (
	"context"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/errors"
	"github.com/agentstation/rootstock/pkg/gedcom"
	"github.com/agentstation/rootstock/pkg/logging"
)

// Strategy selects how an import treats records whose foreign ids are
// already known to the dataset.
type Strategy string

// Import strategies.
const (
	// StrategyCreateAll merges into known records and creates the rest,
	// reporting everything it touched as created.
	StrategyCreateAll Strategy = "create-all"
	// StrategyMatchByXRef behaves the same but reports matched records
	// separately as updated.
	StrategyMatchByXRef Strategy = "match-by-xref"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyCreateAll || s == StrategyMatchByXRef
}

// DefaultEventCap bounds how many events a person accumulates across
// repeated imports; the newest events win.
const DefaultEventCap = 50

// DefaultCreatedBy tags relations created by an import.
const DefaultCreatedBy = "import"

// Reconciler applies mapped import data to dataset snapshots.
type Reconciler interface {
	// Apply merges mapped into a deep copy of ds and returns the result.
	Apply(ctx context.Context, ds *dataset.Dataset, mapped *gedcom.Mapped) (*Result, error)
}

// reconciler is the default Reconciler implementation.
type reconciler struct {
	strategy  Strategy
	eventCap  int
	createdBy string
}

// Compile-time interface check.
var _ Reconciler = (*reconciler)(nil)

// Option configures a Reconciler.
type Option func(*reconciler) error

// WithStrategy selects the import strategy.
func WithStrategy(s Strategy) Option {
	return func(r *reconciler) error {
		if !s.Valid() {
			return errors.NewValidationError("strategy", string(s), "unknown strategy")
		}
		r.strategy = s
		return nil
	}
}

// WithEventCap overrides the per-person event cap.
func WithEventCap(cap int) Option {
	return func(r *reconciler) error {
		if cap < 1 {
			return errors.NewValidationError("event cap", cap, "must be positive")
		}
		r.eventCap = cap
		return nil
	}
}

// WithCreatedBy sets the creator tag written on imported relations.
func WithCreatedBy(createdBy string) Option {
	return func(r *reconciler) error {
		if createdBy == "" {
			return errors.NewValidationError("created by", createdBy, "cannot be empty")
		}
		r.createdBy = createdBy
		return nil
	}
}

// New creates a Reconciler with optional configuration.
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		strategy:  StrategyCreateAll,
		eventCap:  DefaultEventCap,
		createdBy: DefaultCreatedBy,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Apply merges mapped import data into a deep copy of ds.
func (r *reconciler) Apply(ctx context.Context, ds *dataset.Dataset, mapped *gedcom.Mapped) (*Result, error) {
	if ds == nil {
		return nil, errors.NewValidationError("dataset", nil, "cannot be nil")
	}
	if mapped == nil {
		return nil, errors.NewValidationError("mapped", nil, "cannot be nil")
	}

	logger := logging.Ctx(ctx).With().
		Str("strategy", string(r.strategy)).
		Logger()

	out := ds.Copy()
	builder := newResultBuilder(out)

	r.reconcilePeople(out, mapped, builder)
	r.buildRelations(out, mapped, builder)
	r.reconcileSources(out, mapped, builder)
	r.attachSources(out, mapped)
	builder.anomalies(Sanitize(out)...)

	result := builder.build()
	logger.Info().
		Int("people_created", len(result.Created.People)).
		Int("people_updated", len(result.Updated.People)).
		Int("families", len(result.Created.Families)+len(result.Updated.Families)).
		Int("sources_created", len(result.Created.Sources)).
		Int("unresolved", len(result.Diagnostics.Unresolved)).
		Int("anomalies", len(result.Diagnostics.Anomalies)).
		Msg("import reconciled")

	return result, nil
}
