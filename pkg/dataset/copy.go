package dataset

// CopyPerson returns a deep copy of a person.
func CopyPerson(p *Person) *Person {
	if p == nil {
		return nil
	}

	out := *p
	out.Events = make([]Event, len(p.Events))
	for i, ev := range p.Events {
		out.Events[i] = ev
		out.Events[i].SourceIDs = append([]SourceID(nil), ev.SourceIDs...)
	}
	out.ParentIDs = append([]PersonID(nil), p.ParentIDs...)
	out.ChildIDs = append([]PersonID(nil), p.ChildIDs...)
	return &out
}

// CopyRelation returns a deep copy of a relation.
func CopyRelation(r *Relation) *Relation {
	if r == nil {
		return nil
	}

	out := *r
	out.SourceIDs = append([]SourceID(nil), r.SourceIDs...)
	return &out
}

// CopySource returns a deep copy of a source, citations included.
func CopySource(s *Source) *Source {
	if s == nil {
		return nil
	}

	out := *s
	out.Images = append([]string(nil), s.Images...)
	out.Citations = make([]Citation, len(s.Citations))
	for i, c := range s.Citations {
		out.Citations[i] = c
		out.Citations[i].Images = append([]string(nil), c.Images...)
	}
	return &out
}

// CopyStagedSource returns a deep copy of a staged source.
func CopyStagedSource(s *StagedSource) *StagedSource {
	if s == nil {
		return nil
	}

	out := *s
	out.Images = append([]string(nil), s.Images...)
	return &out
}
