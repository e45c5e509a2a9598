package reconcile

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/gedcom"
)

// buildRelations converts family unions into canonical relation edges and
// mirrored person pointers. Members that fail to resolve are reported as
// diagnostics; the rest of the union is still linked.
func (r *reconciler) buildRelations(ds *dataset.Dataset, mapped *gedcom.Mapped, builder *resultBuilder) {
	newPeople := make(map[dataset.PersonID]bool, len(builder.result.Created.People))
	for _, pc := range builder.result.Created.People {
		newPeople[pc.ID] = true
	}

	for i := range mapped.Families {
		fam := &mapped.Families[i]

		husbandID := r.resolvePerson(ds, fam.Husband)
		wifeID := r.resolvePerson(ds, fam.Wife)

		if fam.Husband != "" && husbandID == "" {
			builder.unresolved(fam.XRef, "husband", fam.Husband)
		}
		if fam.Wife != "" && wifeID == "" {
			builder.unresolved(fam.XRef, "wife", fam.Wife)
		}

		var childIDs []dataset.PersonID
		for _, cx := range fam.Children {
			if cid := r.resolvePerson(ds, cx); cid != "" {
				childIDs = append(childIDs, cid)
			} else {
				builder.unresolved(fam.XRef, "child", cx)
			}
		}

		if husbandID == "" && wifeID == "" && len(childIDs) == 0 {
			continue
		}

		if husbandID != "" && wifeID != "" {
			r.linkSpouses(ds, husbandID, wifeID)
		}
		for _, childID := range childIDs {
			r.linkChild(ds, childID, husbandID, wifeID)
		}

		link := FamilyLink{
			XRef:      fam.XRef,
			HusbandID: husbandID,
			WifeID:    wifeID,
			ChildIDs:  childIDs,
		}
		if r.strategy == StrategyMatchByXRef && !involvesNewPerson(link, newPeople) {
			builder.updatedFamily(link)
		} else {
			builder.createdFamily(link)
		}
	}
}

// resolvePerson maps a foreign id to a person id, "" when unknown.
func (r *reconciler) resolvePerson(ds *dataset.Dataset, foreign string) dataset.PersonID {
	if foreign == "" {
		return ""
	}
	local, ok := ds.XRefs.Resolve(foreign)
	if !ok {
		return ""
	}
	id := dataset.PersonID(local)
	if !ds.People.Exists(id) {
		return ""
	}
	return id
}

// linkSpouses sets mirrored spouse pointers and ensures exactly one live
// spouse relation between the pair.
func (r *reconciler) linkSpouses(ds *dataset.Dataset, a, b dataset.PersonID) {
	if pa, ok := ds.People.Get(a); ok {
		pa.SpouseID = b
	}
	if pb, ok := ds.People.Get(b); ok {
		pb.SpouseID = a
	}

	if _, exists := ds.Relations.FindLive(dataset.RelationSpouse, a, b); !exists {
		_ = ds.Relations.Add(r.newRelation(dataset.RelationSpouse, a, b))
	}
}

// linkChild appends resolved parents to the child's mirrored parent list
// and ensures one live parent relation per parent.
func (r *reconciler) linkChild(ds *dataset.Dataset, childID dataset.PersonID, parents ...dataset.PersonID) {
	child, ok := ds.People.Get(childID)
	if !ok {
		return
	}

	for _, parentID := range parents {
		if parentID == "" {
			continue
		}
		child.AddParent(parentID)
		if parent, ok := ds.People.Get(parentID); ok {
			parent.AddChild(childID)
		}
		if _, exists := ds.Relations.FindLive(dataset.RelationParent, parentID, childID); !exists {
			_ = ds.Relations.Add(r.newRelation(dataset.RelationParent, parentID, childID))
		}
	}
}

func (r *reconciler) newRelation(typ dataset.RelationType, from, to dataset.PersonID) *dataset.Relation {
	now := utc.Now()
	return &dataset.Relation{
		ID:           dataset.NewRelationID(),
		Type:         typ,
		FromPersonID: from,
		ToPersonID:   to,
		Note:         "Imported from interchange file",
		CreatedBy:    r.createdBy,
		CreatedAt:    now,
		ModifiedAt:   now,
	}
}

func involvesNewPerson(link FamilyLink, newPeople map[dataset.PersonID]bool) bool {
	if link.HusbandID != "" && newPeople[link.HusbandID] {
		return true
	}
	if link.WifeID != "" && newPeople[link.WifeID] {
		return true
	}
	for _, cid := range link.ChildIDs {
		if newPeople[cid] {
			return true
		}
	}
	return false
}
