package dataset

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Trust grades how reliable a source is, from 0 (unvetted) to 4 (primary
// record with a directly verifiable image reference).
type Trust int

// Trust bounds.
const (
	TrustMin Trust = 0
	TrustMax Trust = 4
)

// ClampTrust forces t into the valid trust range.
func ClampTrust(t Trust) Trust {
	if t < TrustMin {
		return TrustMin
	}
	if t > TrustMax {
		return TrustMax
	}
	return t
}

// Source is one canonical source record with its derived citation fields.
type Source struct {
	ID           SourceID `json:"id" yaml:"id"`
	Title        string   `json:"title,omitempty" yaml:"title,omitempty"`
	ArchiveGroup string   `json:"archive_group,omitempty" yaml:"archive_group,omitempty"`
	Archive      string   `json:"archive,omitempty" yaml:"archive,omitempty"`
	Volume       string   `json:"volume,omitempty" yaml:"volume,omitempty"`
	Page         string   `json:"page,omitempty" yaml:"page,omitempty"`
	ImagePage    string   `json:"image_page,omitempty" yaml:"image_page,omitempty"`
	AID          string   `json:"aid,omitempty" yaml:"aid,omitempty"`
	NAD          string   `json:"nad,omitempty" yaml:"nad,omitempty"`
	RAID         string   `json:"raid,omitempty" yaml:"raid,omitempty"`
	Date         string   `json:"date,omitempty" yaml:"date,omitempty"`
	Trust        Trust    `json:"trust" yaml:"trust"`
	Note         string   `json:"note,omitempty" yaml:"note,omitempty"`
	Images       []string `json:"images,omitempty" yaml:"images,omitempty"`

	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// XRef is the foreign cross-reference id the source was imported
	// under, kept for re-import matching.
	XRef string `json:"xref,omitempty" yaml:"xref,omitempty"`
}

// Citation is one usage of a source, carrying the page-level detail the
// citing record supplied.
type Citation struct {
	ID     CitationID `json:"id" yaml:"id"`
	Page   string     `json:"page,omitempty" yaml:"page,omitempty"`
	Date   string     `json:"date,omitempty" yaml:"date,omitempty"`
	Trust  Trust      `json:"trust" yaml:"trust"`
	Note   string     `json:"note,omitempty" yaml:"note,omitempty"`
	Images []string   `json:"images,omitempty" yaml:"images,omitempty"`
}

// MatchKey returns the case-insensitive identity triple used for fuzzy
// source matching: title, page and date.
func (s *Source) MatchKey() string {
	return MatchKey(s.Title, s.Page, s.Date)
}

// MatchKey builds the case-insensitive title/page/date identity key used
// to match a source against an incoming record. Values are NFC normalized
// so composed and decomposed spellings of the same name compare equal.
func MatchKey(title, page, date string) string {
	fold := func(v string) string {
		return strings.ToLower(norm.NFC.String(strings.TrimSpace(v)))
	}
	return fold(title) + "\x00" + fold(page) + "\x00" + fold(date)
}

// AddImages appends image references, skipping duplicates and empties.
func (s *Source) AddImages(images ...string) {
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		exists := false
		for _, have := range s.Images {
			if have == img {
				exists = true
				break
			}
		}
		if !exists {
			s.Images = append(s.Images, img)
		}
	}
}
