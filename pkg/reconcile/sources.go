package reconcile

import (
	"strings"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/extract"
	"github.com/agentstation/rootstock/pkg/gedcom"
)

// GroupOther is the archive group assigned to sources that arrive through
// an import rather than through the archive catalog.
const GroupOther = "Övrigt"

// Incoming is one source-shaped record heading into the catalog: an
// imported source, a citation promoted to a source, or a committed staged
// source. All fields are already coerced to text.
type Incoming struct {
	XRef         string
	Title        string
	ArchiveGroup string
	Archive      string
	Volume       string
	Page         string
	ImagePage    string
	AID          string
	NAD          string
	RAID         string
	Date         string
	Trust        dataset.Trust
	Note         string
	Images       []string
	Raw          *gedcom.Node
}

// FindOrMergeSource resolves incoming against the catalog and merges or
// creates. Resolution order: a registered foreign xref wins, then an
// exact title/page/date match, then a new source is created.
func FindOrMergeSource(ds *dataset.Dataset, inc Incoming) (src *dataset.Source, created, merged bool) {
	if local, ok := ds.XRefs.Resolve(inc.XRef); ok {
		if existing, ok := ds.Sources.Get(dataset.SourceID(local)); ok {
			return existing, false, mergeSourceFields(ds, existing, inc)
		}
	}

	if strings.TrimSpace(inc.Title) != "" {
		key := dataset.MatchKey(inc.Title, inc.Page, inc.Date)
		if existing, ok := ds.Sources.FindByMatchKey(key); ok {
			return existing, false, mergeSourceFields(ds, existing, inc)
		}
	}

	src = &dataset.Source{
		ID:           dataset.NewSourceID(),
		Title:        inc.Title,
		ArchiveGroup: inc.ArchiveGroup,
		Archive:      inc.Archive,
		Volume:       inc.Volume,
		Page:         inc.Page,
		ImagePage:    inc.ImagePage,
		AID:          inc.AID,
		NAD:          inc.NAD,
		RAID:         inc.RAID,
		Date:         inc.Date,
		Trust:        dataset.ClampTrust(inc.Trust),
		Note:         inc.Note,
		XRef:         inc.XRef,
	}
	src.AddImages(inc.Images...)
	_ = ds.Sources.Set(src.ID, src)
	if inc.XRef != "" {
		ds.XRefs.Register(inc.XRef, string(src.ID))
	}
	return src, true, false
}

// mergeSourceFields folds incoming into an existing source. The policy is
// additive: populated fields are never replaced, notes are appended,
// images unioned and trust only raised. The one exception is the archive
// group, which an incoming value always overwrites so a later import can
// re-classify where the source is grouped.
func mergeSourceFields(ds *dataset.Dataset, existing *dataset.Source, inc Incoming) bool {
	changed := false

	if inc.ArchiveGroup != "" && existing.ArchiveGroup != inc.ArchiveGroup {
		existing.ArchiveGroup = inc.ArchiveGroup
		changed = true
	}

	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" && v != "" {
			*dst = v
			changed = true
		}
	}
	fill(&existing.Title, inc.Title)
	fill(&existing.Archive, inc.Archive)
	fill(&existing.Volume, inc.Volume)
	fill(&existing.AID, inc.AID)
	fill(&existing.NAD, inc.NAD)
	fill(&existing.RAID, inc.RAID)
	fill(&existing.ImagePage, inc.ImagePage)
	fill(&existing.Date, inc.Date)
	fill(&existing.Page, inc.Page)

	if inc.Note != "" {
		switch {
		case existing.Note == "":
			existing.Note = inc.Note
			changed = true
		case !strings.Contains(existing.Note, inc.Note):
			existing.Note = existing.Note + "\n\n" + inc.Note
			changed = true
		}
	}

	if len(inc.Images) > 0 {
		before := len(existing.Images)
		existing.AddImages(inc.Images...)
		if len(existing.Images) != before {
			changed = true
		}
	}

	if incTrust := dataset.ClampTrust(inc.Trust); existing.Trust < incTrust {
		existing.Trust = incTrust
		changed = true
	}

	if inc.XRef != "" {
		ds.XRefs.Register(inc.XRef, string(existing.ID))
	}

	return changed
}

// reconcileSources merges mapped sources into the catalog, then attaches
// every mapped citation to its source, promoting orphan citations to
// sources of their own.
func (r *reconciler) reconcileSources(ds *dataset.Dataset, mapped *gedcom.Mapped, builder *resultBuilder) {
	var anoms []Anomaly

	for i := range mapped.Sources {
		inc := sourceIncoming(&mapped.Sources[i], &anoms)
		if src, created, _ := FindOrMergeSource(ds, inc); created {
			builder.createdSource(src.ID)
		}
	}

	for i := range mapped.Citations {
		c := &mapped.Citations[i]
		inc, citation := citationIncoming(c, mapped, &anoms)

		target, created, _ := FindOrMergeSource(ds, inc)
		if created {
			builder.createdSource(target.ID)
		}
		// citations are additive history, never deduplicated
		target.Citations = append(target.Citations, citation)
	}

	builder.anomalies(anoms...)
}

// sourceIncoming coerces one mapped source and backfills it from the
// text heuristics.
func sourceIncoming(ms *gedcom.Source, anoms *[]Anomaly) Incoming {
	title := CoerceText(ms.Title, "sources", "title", anoms)
	archive := CoerceText(ms.Archive, "sources", "archive", anoms)
	images := CoerceImages(ms.Media, "sources", anoms)

	heur := extract.FromNode(ms.Raw, append([]string{title}, images...)...)
	if title == "" {
		title = heur.Title
	}
	if archive == "" {
		archive = heur.Archive
	}

	return Incoming{
		XRef:         ms.XRef,
		Title:        title,
		ArchiveGroup: GroupOther,
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
		Raw:          ms.Raw,
	}
}

// citationIncoming coerces one mapped citation into the incoming shape
// for source resolution plus the citation record to append.
func citationIncoming(c *gedcom.Citation, mapped *gedcom.Mapped, anoms *[]Anomaly) (Incoming, dataset.Citation) {
	images := CoerceImages(c.Images, "citations", anoms)
	title := sourceTitleForXRef(mapped, c.SourceXRef, anoms)

	heur := extract.FromNode(c.Raw, append([]string{title, c.Page, c.Note}, images...)...)
	// Without a raw node heur.Title is just the joined search text, not a
	// usable source title.
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

	trust := CoerceTrust(c.TrustRaw)
	if heur.AID != "" {
		trust = dataset.TrustMax
	}

	inc := Incoming{
		XRef:         c.SourceXRef,
		Title:        title,
		ArchiveGroup: GroupOther,
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
		Raw:          c.Raw,
	}

	citation := dataset.Citation{
		ID:     dataset.NewCitationID(),
		Page:   page,
		Date:   date,
		Trust:  trust,
		Note:   c.Note,
		Images: images,
	}

	return inc, citation
}

// sourceTitleForXRef finds the title of the mapped source a citation
// points at.
func sourceTitleForXRef(mapped *gedcom.Mapped, xref string, anoms *[]Anomaly) string {
	if xref == "" {
		return ""
	}
	for i := range mapped.Sources {
		if mapped.Sources[i].XRef == xref {
			return CoerceText(mapped.Sources[i].Title, "citations", "source_title", anoms)
		}
	}
	return ""
}
