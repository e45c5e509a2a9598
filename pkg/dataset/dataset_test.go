package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampTrust(t *testing.T) {
	tests := []struct {
		name string
		in   Trust
		want Trust
	}{
		{"below range", -3, 0},
		{"lower bound", 0, 0},
		{"mid range", 2, 2},
		{"upper bound", 4, 4},
		{"above range", 9, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampTrust(tt.in))
		})
	}
}

func TestMatchKey(t *testing.T) {
	// identity is case insensitive across all three parts
	a := MatchKey("Alanäs (Z) C:2", "Bild 104", "1879")
	b := MatchKey("alanäs (z) c:2", "bild 104", "1879")
	assert.Equal(t, a, b)

	// a differing page is a different source
	c := MatchKey("Alanäs (Z) C:2", "Bild 105", "1879")
	assert.NotEqual(t, a, c)

	// surrounding whitespace does not change identity
	d := MatchKey("  Alanäs (Z) C:2 ", "Bild 104", " 1879")
	assert.Equal(t, a, d)
}

func TestRelationConnects(t *testing.T) {
	parent := &Relation{Type: RelationParent, FromPersonID: "person_a", ToPersonID: "person_b"}
	assert.True(t, parent.Connects("person_a", "person_b"))
	assert.False(t, parent.Connects("person_b", "person_a"))

	spouse := &Relation{Type: RelationSpouse, FromPersonID: "person_a", ToPersonID: "person_b"}
	assert.True(t, spouse.Connects("person_a", "person_b"))
	assert.True(t, spouse.Connects("person_b", "person_a"))
	assert.False(t, spouse.Connects("person_a", "person_c"))
}

func TestRelationsFindLiveSkipsArchived(t *testing.T) {
	rels := NewRelations()
	archived := &Relation{
		ID:           NewRelationID(),
		Type:         RelationParent,
		FromPersonID: "person_a",
		ToPersonID:   "person_b",
		Archived:     true,
	}
	require.NoError(t, rels.Add(archived))

	_, found := rels.FindLive(RelationParent, "person_a", "person_b")
	assert.False(t, found)

	live := &Relation{
		ID:           NewRelationID(),
		Type:         RelationParent,
		FromPersonID: "person_a",
		ToPersonID:   "person_b",
	}
	require.NoError(t, rels.Add(live))

	got, found := rels.FindLive(RelationParent, "person_a", "person_b")
	require.True(t, found)
	assert.Equal(t, live.ID, got.ID)
}

func TestAddSourceIDsDeduplicates(t *testing.T) {
	rel := &Relation{ID: NewRelationID(), Type: RelationSpouse}

	assert.True(t, rel.AddSourceIDs("source_1", "source_2"))
	assert.False(t, rel.AddSourceIDs("source_1", ""))
	assert.Len(t, rel.SourceIDs, 2)
}

func TestDatasetCopyIsIndependent(t *testing.T) {
	d := New()
	person := &Person{ID: NewPersonID(), FirstName: "Anna", LastName: "Persdotter"}
	require.NoError(t, d.People.Add(person))
	src := &Source{ID: NewSourceID(), Title: "Alanäs (Z) C:2", Trust: 3, Images: []string{"a.jpg"}}
	require.NoError(t, d.Sources.Add(src))
	d.XRefs.Register("@I1@", string(person.ID))

	clone := d.Copy()

	clonedPerson, ok := clone.People.Get(person.ID)
	require.True(t, ok)
	clonedPerson.FirstName = "Brita"
	clonedSrc, ok := clone.Sources.Get(src.ID)
	require.True(t, ok)
	clonedSrc.Images = append(clonedSrc.Images, "b.jpg")
	clone.XRefs.Register("@I2@", "person_other")

	assert.Equal(t, "Anna", person.FirstName)
	assert.Equal(t, []string{"a.jpg"}, src.Images)
	_, resolved := d.XRefs.Resolve("@I2@")
	assert.False(t, resolved)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	d := New()
	person := &Person{ID: NewPersonID(), SeqNumber: 7, FirstName: "Olof", LastName: "Jonsson", XRef: "@I9@"}
	require.NoError(t, d.People.Add(person))
	src := &Source{
		ID:           NewSourceID(),
		Title:        "Alanäs (Z) C:2 (1860-1894)",
		ArchiveGroup: "Arkiv Digital",
		AID:          "v264558.b1060.s99",
		Trust:        4,
		Citations:    []Citation{{ID: NewCitationID(), Page: "Bild 104 / sid 99", Trust: 4}},
	}
	require.NoError(t, d.Sources.Add(src))
	rel := &Relation{ID: NewRelationID(), Type: RelationSpouse, FromPersonID: person.ID, ToPersonID: "person_x"}
	require.NoError(t, d.Relations.Add(rel))
	d.XRefs.Register("@I9@", string(person.ID))

	path := filepath.Join(t.TempDir(), "snapshots", "dataset.yaml")
	require.NoError(t, d.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	gotPerson, ok := loaded.People.Get(person.ID)
	require.True(t, ok)
	assert.Equal(t, 7, gotPerson.SeqNumber)
	assert.Equal(t, "Olof Jonsson", gotPerson.FullName())

	gotSrc, ok := loaded.Sources.Get(src.ID)
	require.True(t, ok)
	assert.Equal(t, Trust(4), gotSrc.Trust)
	require.Len(t, gotSrc.Citations, 1)
	assert.Equal(t, "Bild 104 / sid 99", gotSrc.Citations[0].Page)

	local, ok := loaded.XRefs.Resolve("@I9@")
	require.True(t, ok)
	assert.Equal(t, string(person.ID), local)
}
