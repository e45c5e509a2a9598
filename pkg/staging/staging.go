// Package staging implements the non-destructive review path for
// imported sources. Export parks every mapped source and citation in the
// dataset's staging queue without touching the canonical catalog; Commit
// later merges one reviewed item into the catalog, optionally relocating
// its referenced media first.
package staging

import (
	"context"
	"regexp"

	"github.com/agentstation/utc"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/errors"
	"github.com/agentstation/rootstock/pkg/extract"
	"github.com/agentstation/rootstock/pkg/gedcom"
	"github.com/agentstation/rootstock/pkg/logging"
	"github.com/agentstation/rootstock/pkg/reconcile"
)

// MediaStore relocates an image reference into managed storage and
// returns the new reference.
type MediaStore interface {
	Relocate(ctx context.Context, ref string) (string, error)
}

// placeholderTitle matches generic titles some interchange files emit
// instead of a real source name.
var placeholderTitle = regexp.MustCompile(`(?i)^source$`)

// Export converts every mapped source and citation into staged sources on
// a copy of the dataset. The canonical catalog is not touched; anomalies
// from field coercion are returned alongside.
func Export(ds *dataset.Dataset, mapped *gedcom.Mapped) (*dataset.Dataset, []*dataset.StagedSource, []reconcile.Anomaly, error) {
	if ds == nil {
		return nil, nil, nil, errors.NewValidationError("dataset", nil, "cannot be nil")
	}
	if mapped == nil {
		return nil, nil, nil, errors.NewValidationError("mapped", nil, "cannot be nil")
	}

	out := ds.Copy()
	var staged []*dataset.StagedSource
	var anoms []reconcile.Anomaly

	for i := range mapped.Sources {
		entry := stageSource(&mapped.Sources[i], &anoms)
		_ = out.Staging.Set(entry.ID, entry)
		staged = append(staged, entry)
	}
	for i := range mapped.Citations {
		entry := stageCitation(&mapped.Citations[i], mapped, &anoms)
		_ = out.Staging.Set(entry.ID, entry)
		staged = append(staged, entry)
	}

	return out, staged, anoms, nil
}

// Options configures a Commit call.
type Options struct {
	// RelocateMedia copies each referenced image into managed storage
	// before the merge. Failures keep the original reference.
	RelocateMedia bool
	// Media performs the relocation; required when RelocateMedia is set.
	Media MediaStore
}

// CommitResult reports how a staged source landed in the catalog.
type CommitResult struct {
	Source  *dataset.Source
	Created bool
	Merged  bool
}

// Commit merges one staged source into the canonical catalog on a copy of
// the dataset and removes it from the staging queue. An unknown id
// returns a not-found error with no dataset mutation.
func Commit(ctx context.Context, ds *dataset.Dataset, id dataset.StagedID, opts Options) (*dataset.Dataset, *CommitResult, error) {
	if ds == nil {
		return nil, nil, errors.NewValidationError("dataset", nil, "cannot be nil")
	}

	entry, ok := ds.Staging.Get(id)
	if !ok {
		return nil, nil, errors.NewNotFoundError("staged source", string(id))
	}

	logger := logging.Ctx(ctx).With().Str("staged_id", string(id)).Logger()

	out := ds.Copy()
	inc := incomingFromStaged(entry)

	if opts.RelocateMedia && opts.Media != nil {
		relocated := make([]string, 0, len(inc.Images))
		for i, ref := range inc.Images {
			moved, err := opts.Media.Relocate(ctx, ref)
			if errors.IsCanceled(err) {
				// No point attempting the rest once the context is gone.
				logger.Warn().Err(err).Str("image", ref).Msg("media relocation canceled")
				relocated = append(relocated, inc.Images[i:]...)
				break
			}
			if err != nil || moved == "" {
				// best effort: keep the original reference
				logger.Warn().Err(err).Str("image", ref).Msg("media relocation failed")
				relocated = append(relocated, ref)
				continue
			}
			relocated = append(relocated, moved)
		}
		inc.Images = relocated
	}

	src, created, merged := reconcile.FindOrMergeSource(out, inc)
	src.AddImages(inc.Images...)

	_ = out.Staging.Delete(id)
	reconcile.Sanitize(out)

	logger.Info().
		Bool("created", created).
		Bool("merged", merged).
		Str("source_id", string(src.ID)).
		Msg("staged source committed")

	return out, &CommitResult{Source: src, Created: created, Merged: merged}, nil
}

// stageSource derives a staged entry from one mapped source.
func stageSource(ms *gedcom.Source, anoms *[]reconcile.Anomaly) *dataset.StagedSource {
	title := reconcile.CoerceText(ms.Title, "staging.sources", "title", anoms)
	archive := reconcile.CoerceText(ms.Archive, "staging.sources", "archive", anoms)
	images := reconcile.CoerceImages(ms.Media, "staging.sources", anoms)

	heur := extract.FromNode(ms.Raw, append([]string{title}, images...)...)
	if title == "" || placeholderTitle.MatchString(title) {
		switch {
		case ms.Raw != nil && heur.Title != "":
			title = heur.Title
		case ms.Raw != nil && ms.Raw.Value != "":
			title = ms.Raw.Value
		case len(images) > 0:
			title = images[0]
		}
	}
	if archive == "" {
		archive = heur.Archive
	}

	return &dataset.StagedSource{
		ID:           dataset.NewStagedID(),
		Title:        title,
		ArchiveGroup: reconcile.GroupOther,
		Archive:      archive,
		Volume:       heur.Volume,
		Page:         heur.Page,
		ImagePage:    heur.ImagePage,
		AID:          heur.AID,
		NAD:          heur.NAD,
		RAID:         heur.RAID,
		Date:         heur.Date,
		Trust:        heur.Trust,
		Images:       images,
		XRef:         ms.XRef,
		StagedAt:     utc.Now(),
	}
}

// stageCitation derives a staged entry from one mapped citation,
// borrowing the title of the source it cites when available.
func stageCitation(c *gedcom.Citation, mapped *gedcom.Mapped, anoms *[]reconcile.Anomaly) *dataset.StagedSource {
	images := reconcile.CoerceImages(c.Images, "staging.citations", anoms)

	var title string
	for i := range mapped.Sources {
		if c.SourceXRef != "" && mapped.Sources[i].XRef == c.SourceXRef {
			title = reconcile.CoerceText(mapped.Sources[i].Title, "staging.citations", "source_title", anoms)
			break
		}
	}

	heur := extract.FromNode(c.Raw, append([]string{title, c.Page, c.Note}, images...)...)
	if title == "" && c.Raw != nil {
		title = heur.Title
	}

	page := c.Page
	if page == "" {
		page = heur.Page
	}
	date := c.Date
	if date == "" {
		date = heur.Date
	}

	trust := reconcile.CoerceTrust(c.TrustRaw)
	if heur.AID != "" {
		trust = dataset.TrustMax
	}

	return &dataset.StagedSource{
		ID:           dataset.NewStagedID(),
		Title:        title,
		ArchiveGroup: reconcile.GroupOther,
		Archive:      heur.Archive,
		Volume:       heur.Volume,
		Page:         page,
		ImagePage:    heur.ImagePage,
		AID:          heur.AID,
		NAD:          heur.NAD,
		RAID:         heur.RAID,
		Date:         date,
		Trust:        trust,
		Note:         c.Note,
		Images:       images,
		XRef:         c.SourceXRef,
		StagedAt:     utc.Now(),
	}
}

// incomingFromStaged rebuilds the merge input shape from a staged entry,
// re-running the heuristics in case review edits exposed new fields.
func incomingFromStaged(s *dataset.StagedSource) reconcile.Incoming {
	inc := reconcile.Incoming{
		XRef:         s.XRef,
		Title:        s.Title,
		ArchiveGroup: reconcile.GroupOther,
		Archive:      s.Archive,
		Volume:       s.Volume,
		Page:         s.Page,
		ImagePage:    s.ImagePage,
		AID:          s.AID,
		NAD:          s.NAD,
		RAID:         s.RAID,
		Date:         s.Date,
		Trust:        s.Trust,
		Note:         s.Note,
		Images:       append([]string(nil), s.Images...),
	}

	if inc.AID == "" {
		heur := extract.FromText(s.Title + " " + s.Note)
		if heur.AID == "" {
			for _, img := range inc.Images {
				if aid := extract.ParseAID(img); aid != nil {
					heur.AID = aid.ID
					heur.ImagePage = aid.ImagePage
					heur.Page = aid.Page
					break
				}
			}
		}
		if heur.AID != "" {
			inc.AID = heur.AID
			if inc.ImagePage == "" {
				inc.ImagePage = heur.ImagePage
			}
			if inc.Page == "" {
				inc.Page = heur.Page
			}
			if inc.Archive == "" {
				inc.Archive = extract.ArchiveLabel
			}
		}
	}
	if inc.AID != "" {
		inc.Trust = dataset.TrustMax
	}

	return inc
}
