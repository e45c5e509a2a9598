package reconcile

import (
	"strings"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/extract"
)

// Sanitize is the final pass over the canonical source catalog. It is a
// total function: every source comes out with trimmed text fields, a
// non-empty archive group, a trust score inside the valid range, a
// deduplicated image list and fully-formed citations. Fixes worth
// operator attention are returned as anomalies.
func Sanitize(ds *dataset.Dataset) []Anomaly {
	var anoms []Anomaly
	if ds == nil {
		return nil
	}

	ds.Sources.ForEach(func(id dataset.SourceID, src *dataset.Source) bool {
		src.Title = strings.TrimSpace(src.Title)
		src.Archive = strings.TrimSpace(src.Archive)
		src.Volume = strings.TrimSpace(src.Volume)
		src.Page = strings.TrimSpace(src.Page)
		src.ImagePage = strings.TrimSpace(src.ImagePage)
		src.AID = strings.TrimSpace(src.AID)
		src.Date = strings.TrimSpace(src.Date)

		// Imported sources carry an explicit group; only sources that
		// predate grouping fall through to the provider default.
		if src.ArchiveGroup == "" {
			src.ArchiveGroup = extract.ArchiveLabel
		}

		if clamped := dataset.ClampTrust(src.Trust); clamped != src.Trust {
			record(&anoms, "sanitize", "trust", string(id))
			src.Trust = clamped
		}

		src.Images = dedupeStrings(src.Images)

		for i := range src.Citations {
			cit := &src.Citations[i]
			if cit.ID == "" {
				cit.ID = dataset.NewCitationID()
			}
			cit.Page = strings.TrimSpace(cit.Page)
			cit.Date = strings.TrimSpace(cit.Date)
			cit.Note = strings.TrimSpace(cit.Note)
			cit.Trust = dataset.ClampTrust(cit.Trust)
			cit.Images = dedupeStrings(cit.Images)
		}
		return true
	})

	return anoms
}

// dedupeStrings drops empties and duplicates, keeping first-seen order.
func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
