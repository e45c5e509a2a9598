package gedcom

import "strings"

// Mapped is the full mapper output for one interchange file. Every record
// keeps its foreign cross-reference id so the reconciler can build an
// xref translation map.
type Mapped struct {
	People    []Person   `json:"people,omitempty" yaml:"people,omitempty"`
	Families  []Family   `json:"families,omitempty" yaml:"families,omitempty"`
	Sources   []Source   `json:"sources,omitempty" yaml:"sources,omitempty"`
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`
}

// Person is one mapped individual record.
type Person struct {
	XRef      string  `json:"xref" yaml:"xref"`
	FirstName string  `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Sex       string  `json:"sex,omitempty" yaml:"sex,omitempty"`
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`
	Events    []Event `json:"events,omitempty" yaml:"events,omitempty"`
	Raw       *Node   `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Event is one life event attached to a mapped person.
type Event struct {
	Type        string   `json:"type" yaml:"type"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	Place       string   `json:"place,omitempty" yaml:"place,omitempty"`
	SourceXRefs []string `json:"source_xrefs,omitempty" yaml:"source_xrefs,omitempty"`
}

// Family links people into a household. Husband, Wife and Children carry
// foreign xrefs that may or may not resolve against the people list.
type Family struct {
	XRef                string   `json:"xref" yaml:"xref"`
	Husband             string   `json:"husband,omitempty" yaml:"husband,omitempty"`
	Wife                string   `json:"wife,omitempty" yaml:"wife,omitempty"`
	Children            []string `json:"children,omitempty" yaml:"children,omitempty"`
	MarriageSourceXRefs []string `json:"marriage_source_xrefs,omitempty" yaml:"marriage_source_xrefs,omitempty"`
	Raw                 *Node    `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Source is one mapped source record. Title, Archive and Media come from
// loosely structured input and may decode as strings, numbers, lists or
// maps; coercion happens at the reconciliation boundary, never here.
type Source struct {
	XRef    string `json:"xref" yaml:"xref"`
	Title   any    `json:"title,omitempty" yaml:"title,omitempty"`
	Archive any    `json:"archive,omitempty" yaml:"archive,omitempty"`
	Media   []any  `json:"media,omitempty" yaml:"media,omitempty"`
	Raw     *Node  `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Citation is one mapped citation referring back to a source by xref.
type Citation struct {
	SourceXRef string `json:"source_xref" yaml:"source_xref"`
	Page       string `json:"page,omitempty" yaml:"page,omitempty"`
	Date       string `json:"date,omitempty" yaml:"date,omitempty"`
	TrustRaw   string `json:"trust_raw,omitempty" yaml:"trust_raw,omitempty"`
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`
	Images     []any  `json:"images,omitempty" yaml:"images,omitempty"`
	Raw        *Node  `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// FullName returns "First Last" with whichever parts are present.
func (p Person) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
