package dataset

import (
	"maps"
	"sync"

	"github.com/agentstation/rootstock/pkg/errors"
)

// People is a concurrent safe map of person records.
type People struct {
	mu     sync.RWMutex
	people map[PersonID]*Person
}

// PeopleOption defines a function that configures a People instance.
type PeopleOption func(*People)

// WithPeopleCapacity sets the initial capacity of the people map.
func WithPeopleCapacity(capacity int) PeopleOption {
	return func(p *People) {
		p.people = make(map[PersonID]*Person, capacity)
	}
}

// WithPeopleMap initializes the map with existing people.
func WithPeopleMap(people map[PersonID]*Person) PeopleOption {
	return func(p *People) {
		if people != nil {
			p.people = make(map[PersonID]*Person, len(people))
			maps.Copy(p.people, people)
		}
	}
}

// NewPeople creates a new People map with optional configuration.
func NewPeople(opts ...PeopleOption) *People {
	p := &People{
		people: make(map[PersonID]*Person),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Get returns a person by id and whether it exists.
func (p *People) Get(id PersonID) (*Person, bool) {
	p.mu.RLock()
	person, ok := p.people[id]
	p.mu.RUnlock()
	return person, ok
}

// Set sets a person by id. Returns an error if person is nil.
func (p *People) Set(id PersonID, person *Person) error {
	if person == nil {
		return errors.NewValidationError("person", nil, "cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.people[id] = person
	return nil
}

// Add adds a person, returning an error if it already exists.
func (p *People) Add(person *Person) error {
	if person == nil {
		return errors.NewValidationError("person", nil, "cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.people[person.ID]; exists {
		return errors.WrapResource("add", "person", string(person.ID), errors.ErrAlreadyExists)
	}

	p.people[person.ID] = person
	return nil
}

// Delete removes a person by id. Returns an error if the person doesn't exist.
func (p *People) Delete(id PersonID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.people[id]; !exists {
		return errors.NewNotFoundError("person", string(id))
	}

	delete(p.people, id)
	return nil
}

// Exists checks if a person exists without returning it.
func (p *People) Exists(id PersonID) bool {
	p.mu.RLock()
	_, exists := p.people[id]
	p.mu.RUnlock()
	return exists
}

// Len returns the number of people.
func (p *People) Len() int {
	p.mu.RLock()
	length := len(p.people)
	p.mu.RUnlock()
	return length
}

// List returns a slice of all people.
func (p *People) List() []*Person {
	p.mu.RLock()
	people := make([]*Person, 0, len(p.people))
	for _, person := range p.people {
		people = append(people, person)
	}
	p.mu.RUnlock()
	return people
}

// Map returns a copy of the underlying map.
func (p *People) Map() map[PersonID]*Person {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make(map[PersonID]*Person, len(p.people))
	maps.Copy(result, p.people)
	return result
}

// ForEach applies a function to each person. If the function returns
// false, iteration stops early.
func (p *People) ForEach(fn func(id PersonID, person *Person) bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for id, person := range p.people {
		if !fn(id, person) {
			break
		}
	}
}

// FindByXRef returns the person imported under the given foreign xref.
func (p *People) FindByXRef(xref string) (*Person, bool) {
	if xref == "" {
		return nil, false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, person := range p.people {
		if person.XRef == xref {
			return person, true
		}
	}
	return nil, false
}

// MaxSeqNumber returns the highest sequence number in use, or 0.
func (p *People) MaxSeqNumber() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	max := 0
	for _, person := range p.people {
		if person.SeqNumber > max {
			max = person.SeqNumber
		}
	}
	return max
}
