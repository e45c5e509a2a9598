package reconcile

import (
	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/gedcom"
	"github.com/agentstation/rootstock/pkg/xref"
)

// reconcilePeople merges mapped people into the dataset. People whose
// foreign id already resolves are enriched in place; everyone else is
// created with the next free sequence number.
func (r *reconciler) reconcilePeople(ds *dataset.Dataset, mapped *gedcom.Mapped, builder *resultBuilder) {
	nextSeq := ds.People.MaxSeqNumber()

	// A duplicated foreign id in one import must never yield two people;
	// the first occurrence wins.
	seen := make(map[string]bool, len(mapped.People))

	for i := range mapped.People {
		mp := &mapped.People[i]
		key := xref.Normalize(mp.XRef)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		if local, ok := ds.XRefs.Resolve(mp.XRef); ok {
			if person, ok := ds.People.Get(dataset.PersonID(local)); ok {
				if r.mergePerson(person, mp) {
					switch r.strategy {
					case StrategyMatchByXRef:
						builder.updatedPerson(person)
					default:
						builder.createdPerson(person)
					}
				}
				continue
			}
		}

		nextSeq++
		person := r.buildPerson(mp, nextSeq)
		_ = ds.People.Set(person.ID, person)
		if mp.XRef != "" {
			ds.XRefs.Register(mp.XRef, string(person.ID))
		}
		builder.createdPerson(person)
	}
}

// mergePerson fills empty fields on an existing person and appends the
// mapped events, keeping the newest eventCap entries. Returns true if
// anything changed.
func (r *reconciler) mergePerson(person *dataset.Person, mp *gedcom.Person) bool {
	changed := false

	if person.FirstName == "" && mp.FirstName != "" {
		person.FirstName = mp.FirstName
		changed = true
	}
	if person.LastName == "" && mp.LastName != "" {
		person.LastName = mp.LastName
		changed = true
	}
	if person.Sex == "" && mp.Sex != "" {
		person.Sex = mp.Sex
		changed = true
	}
	if person.Note == "" && mp.Note != "" {
		person.Note = mp.Note
		changed = true
	}

	if len(mp.Events) > 0 {
		events := append(person.Events, buildEvents(mp.Events)...)
		if len(events) > r.eventCap {
			events = events[len(events)-r.eventCap:]
		}
		person.Events = events
		changed = true
	}

	return changed
}

func (r *reconciler) buildPerson(mp *gedcom.Person, seq int) *dataset.Person {
	return &dataset.Person{
		ID:        dataset.NewPersonID(),
		SeqNumber: seq,
		FirstName: mp.FirstName,
		LastName:  mp.LastName,
		Sex:       mp.Sex,
		Note:      mp.Note,
		Events:    buildEvents(mp.Events),
		XRef:      mp.XRef,
	}
}

func buildEvents(events []gedcom.Event) []dataset.Event {
	if len(events) == 0 {
		return nil
	}
	out := make([]dataset.Event, len(events))
	for i, ev := range events {
		out[i] = dataset.Event{
			ID:    dataset.NewEventID(),
			Type:  ev.Type,
			Date:  ev.Date,
			Place: ev.Place,
		}
	}
	return out
}
