package dataset

import "github.com/agentstation/utc"

// StagedSource is an imported source parked for review before it joins
// the canonical source list. It carries the same derived fields as a
// Source plus staging bookkeeping.
type StagedSource struct {
	ID           StagedID `json:"id" yaml:"id"`
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
	XRef         string   `json:"xref,omitempty" yaml:"xref,omitempty"`
	StagedAt     utc.Time `json:"staged_at,omitempty" yaml:"staged_at,omitempty"`
}

// Source converts the staged record into a canonical source with a fresh
// source id.
func (s *StagedSource) Source() *Source {
	return &Source{
		ID:           NewSourceID(),
		Title:        s.Title,
		ArchiveGroup: s.ArchiveGroup,
		Archive:      s.Archive,
		Volume:       s.Volume,
		Page:         s.Page,
		ImagePage:    s.ImagePage,
		AID:          s.AID,
		NAD:          s.NAD,
		RAID:         s.RAID,
		Date:         s.Date,
		Trust:        ClampTrust(s.Trust),
		Note:         s.Note,
		Images:       append([]string(nil), s.Images...),
		XRef:         s.XRef,
	}
}
