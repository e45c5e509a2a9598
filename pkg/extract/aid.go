package extract

import (
	"regexp"
	"strconv"
)

// AID is a parsed Arkiv Digital image identifier. The canonical form is
// v{volume}.b{image}.s{page}, where the image and page parts are
// optional.
type AID struct {
	ID        string
	ImagePage string
	Page      string
}

// aidPattern accepts canonical ids, URL tails like /aid/show/v264558.b1060.s99,
// and sloppy separators (v264558-b1060_s99).
var aidPattern = regexp.MustCompile(`(?i)v(\d{4,})(?:[.\-_:]?b(\d+))?(?:[.\-_:]?s(\d+))?`)

// ParseAID finds the first archive image identifier in text. Returns nil
// when none is present. The id is rebuilt in canonical dotted form and
// the image/page numbers are stripped of leading zeros.
func ParseAID(text string) *AID {
	if text == "" {
		return nil
	}

	m := aidPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	id := "v" + m[1]
	out := &AID{}
	if m[2] != "" {
		id += ".b" + m[2]
		out.ImagePage = trimZeros(m[2])
	}
	if m[3] != "" {
		id += ".s" + m[3]
		out.Page = trimZeros(m[3])
	}
	out.ID = id
	return out
}

func trimZeros(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return digits
	}
	return strconv.Itoa(n)
}
