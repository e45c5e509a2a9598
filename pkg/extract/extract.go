// Package extract derives structured citation fields from free-form
// source text: archive volume codes, image and book page numbers, year
// ranges, archive image identifiers and national archive references. The
// heuristics target the citation styles Swedish church-record providers
// emit, but degrade to empty fields on anything else.
package extract

import (
	"strings"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/gedcom"
)

// ArchiveLabel is the archive name assigned when text identifies the
// Arkiv Digital image provider.
const ArchiveLabel = "Arkiv Digital"

// Fields holds everything the heuristics could derive from one source
// node or text blob. Empty fields mean the heuristic found nothing.
type Fields struct {
	Title     string
	Archive   string
	Date      string
	Page      string
	Volume    string
	ImagePage string
	AID       string
	NAD       string
	RAID      string
	Trust     dataset.Trust
}

// titleTags are checked in child order; the first non-empty value wins.
var titleTags = []string{"TITL", "ABBR", "TEXT", "AUTH", "PUBL"}

// FromNode derives fields from a raw source node. The node's title-like
// children seed the text heuristics; extra strings (citation pages, image
// filenames) widen the AID search.
func FromNode(n *gedcom.Node, extra ...string) Fields {
	if n == nil {
		return FromText(strings.Join(extra, " "))
	}

	var title string
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		tag := strings.ToUpper(strings.TrimSpace(c.Tag))
		for _, want := range titleTags {
			if tag == want {
				if v := strings.TrimSpace(c.Value); v != "" {
					title = v
				}
				break
			}
		}
		if title != "" {
			break
		}
	}
	if title == "" {
		for _, c := range n.Children {
			if c == nil {
				continue
			}
			if v := strings.TrimSpace(c.Value); v != "" {
				title = v
				break
			}
		}
	}

	search := strings.Join(append([]string{title, n.Value}, extra...), " ")
	f := fromText(title, search)
	f.Title = title
	return f
}

// FromText derives fields from a free-form citation string.
func FromText(text string) Fields {
	text = strings.TrimSpace(text)
	f := fromText(text, text)
	f.Title = text
	return f
}

// fromText runs the heuristics: title carries the page-bearing citation,
// search is the wider blob scanned for dates, volumes and identifiers.
func fromText(title, search string) Fields {
	var f Fields

	if containsArchiveProvider(title) || containsArchiveProvider(search) {
		f.Archive = ArchiveLabel
	}

	f.Date = matchYear(search)
	f.Page, f.NAD = matchPage(title)
	f.RAID = matchRAID(search)

	if vol, date := matchVolume(search); vol != "" {
		f.Volume = vol
		if date != "" && f.Date == "" {
			f.Date = date
		}
	}

	if aid := ParseAID(search); aid != nil {
		f.AID = aid.ID
		f.ImagePage = aid.ImagePage
		if f.Page == "" {
			f.Page = aid.Page
		}
		if f.Archive == "" {
			f.Archive = ArchiveLabel
		}
		// a verifiable image id makes this a primary record
		f.Trust = dataset.TrustMax
	}

	return f
}

func containsArchiveProvider(text string) bool {
	return strings.Contains(strings.ToLower(text), "arkivdigital")
}
