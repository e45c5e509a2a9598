// Package gedcom defines the mapped-input shapes consumed by the
// reconciliation engine. The low-level interchange parser lives elsewhere;
// this package models its output: typed records for people, families,
// sources and citations, each optionally carrying the raw parse-tree node
// it was derived from so downstream heuristics can recover fields the
// mapper missed.
package gedcom

import "strings"

// Node is a raw parse-tree node from the interchange file. Tags follow the
// interchange standard (INDI, FAM, SOUR, TITL, ABBR, ...).
type Node struct {
	Tag      string  `json:"tag" yaml:"tag"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	XRef     string  `json:"xref,omitempty" yaml:"xref,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Child returns the first child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c != nil && strings.EqualFold(c.Tag, tag) {
			return c
		}
	}
	return nil
}

// ChildValue returns the trimmed value of the first child with the given
// tag, or "".
func (n *Node) ChildValue(tag string) string {
	if c := n.Child(tag); c != nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// Text collects every textual value in the node and its subtree, joined by
// single spaces. Used by heuristics that scan a whole citation node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var parts []string
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur == nil {
			return
		}
		if v := strings.TrimSpace(cur.Value); v != "" {
			parts = append(parts, v)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
