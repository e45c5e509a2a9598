package extract

import "regexp"

var (
	yearPattern = regexp.MustCompile(`\d{4}(?:-\d{4})?`)

	bildPattern = regexp.MustCompile(`(?i)Bild\D*(\d{1,5})`)

	// NAD identifiers like SE/MSA/01036 must never be mistaken for
	// slash-separated page numbers.
	nadPattern = regexp.MustCompile(`\b[A-Z]{2}/[^\s/]{2,}/\d{2,}\b`)

	markerPattern = regexp.MustCompile(`(?i)\b(?:sid|s|page|p)\b\.?\s*(\d{1,5})`)
	slashPattern  = regexp.MustCompile(`/\s*(\d{1,5})`)

	volumePattern = regexp.MustCompile(`([A-Za-z0-9ÅÄÖåäö.]{1,10}\s*:\s*\d{1,4})\s*(?:\((\d{4}(?:-\d{4})?)\))?`)
	spacePattern  = regexp.MustCompile(`\s+`)

	raidPattern = regexp.MustCompile(`(?i)(?:RA-bildid:\s*|sok\.riksarkivet\.se/bildvisning/)([A-Z0-9_]+)`)
)

// matchYear returns the first year or year-range in text.
func matchYear(text string) string {
	return yearPattern.FindString(text)
}

// matchPage extracts a page number from citation text. An explicit
// "Bild N" wins; otherwise "s N"/"sid N"/"p N"/"page N" markers are
// preferred, and a bare "/N" is accepted only when the text carries no
// NAD identifier.
func matchPage(text string) (page, nad string) {
	if m := bildPattern.FindStringSubmatch(text); m != nil {
		return m[1], nadPattern.FindString(text)
	}

	nad = nadPattern.FindString(text)
	if m := markerPattern.FindStringSubmatch(text); m != nil {
		return m[1], nad
	}
	if nad == "" {
		if m := slashPattern.FindStringSubmatch(text); m != nil {
			return m[1], ""
		}
	}
	return "", nad
}

// matchVolume extracts a volume code like "C:7" or "AIIa:211", plus an
// immediately following parenthesized year range if present.
func matchVolume(text string) (volume, date string) {
	m := volumePattern.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	return spacePattern.ReplaceAllString(m[1], ""), m[2]
}

// matchRAID extracts a Riksarkivet image id from an "RA-bildid:" label or
// a bildvisning URL.
func matchRAID(text string) string {
	if m := raidPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
