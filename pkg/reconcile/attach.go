package reconcile

import (
	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/gedcom"
)

// attachSources runs after people, relations and sources all exist: it
// resolves the source xrefs named on mapped events and family unions and
// unions them onto the matching event and relation records.
func (r *reconciler) attachSources(ds *dataset.Dataset, mapped *gedcom.Mapped) {
	for i := range mapped.People {
		r.attachEventSources(ds, &mapped.People[i])
	}
	for i := range mapped.Families {
		r.attachFamilySources(ds, &mapped.Families[i])
	}
}

// attachEventSources unions resolved source ids onto the person's events,
// matched by event position; mapped event order is preserved through
// person reconciliation.
func (r *reconciler) attachEventSources(ds *dataset.Dataset, mp *gedcom.Person) {
	personID := r.resolvePerson(ds, mp.XRef)
	if personID == "" {
		return
	}
	person, ok := ds.People.Get(personID)
	if !ok || len(person.Events) == 0 {
		return
	}

	// events merged by a re-import land at the tail of the person's list
	offset := len(person.Events) - len(mp.Events)
	if offset < 0 {
		offset = 0
	}

	for i, mev := range mp.Events {
		if len(mev.SourceXRefs) == 0 || offset+i >= len(person.Events) {
			continue
		}
		ev := &person.Events[offset+i]
		for _, sx := range mev.SourceXRefs {
			if sid := r.resolveSource(ds, sx); sid != "" {
				appendSourceID(&ev.SourceIDs, sid)
			}
		}
	}
}

// attachFamilySources unions marriage citation source ids onto the
// family's spouse relation and each child's parent relations.
func (r *reconciler) attachFamilySources(ds *dataset.Dataset, fam *gedcom.Family) {
	if len(fam.MarriageSourceXRefs) == 0 {
		return
	}

	var sourceIDs []dataset.SourceID
	for _, sx := range fam.MarriageSourceXRefs {
		if sid := r.resolveSource(ds, sx); sid != "" {
			sourceIDs = append(sourceIDs, sid)
		}
	}
	if len(sourceIDs) == 0 {
		return
	}

	husbandID := r.resolvePerson(ds, fam.Husband)
	wifeID := r.resolvePerson(ds, fam.Wife)

	if husbandID != "" && wifeID != "" {
		if rel, ok := ds.Relations.FindLive(dataset.RelationSpouse, husbandID, wifeID); ok {
			rel.AddSourceIDs(sourceIDs...)
		}
	}

	for _, cx := range fam.Children {
		childID := r.resolvePerson(ds, cx)
		if childID == "" {
			continue
		}
		for _, parentID := range []dataset.PersonID{husbandID, wifeID} {
			if parentID == "" {
				continue
			}
			if rel, ok := ds.Relations.FindLive(dataset.RelationParent, parentID, childID); ok {
				rel.AddSourceIDs(sourceIDs...)
			}
		}
	}
}

// resolveSource maps a foreign id to a source id, "" when unknown.
func (r *reconciler) resolveSource(ds *dataset.Dataset, foreign string) dataset.SourceID {
	if foreign == "" {
		return ""
	}
	local, ok := ds.XRefs.Resolve(foreign)
	if !ok {
		return ""
	}
	id := dataset.SourceID(local)
	if !ds.Sources.Exists(id) {
		return ""
	}
	return id
}

func appendSourceID(ids *[]dataset.SourceID, id dataset.SourceID) {
	for _, have := range *ids {
		if have == id {
			return
		}
	}
	*ids = append(*ids, id)
}
