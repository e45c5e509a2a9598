package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/gedcom"
)

func seededDataset(t *testing.T, src *dataset.Source) *dataset.Dataset {
	t.Helper()
	ds := dataset.New()
	require.NoError(t, ds.Sources.Set(src.ID, src))
	if src.XRef != "" {
		ds.XRefs.Register(src.XRef, string(src.ID))
	}
	return ds
}

func TestFindOrMergeSourceResolvesByXRefFirst(t *testing.T) {
	ds := seededDataset(t, &dataset.Source{
		ID:    "source_1",
		Title: "Alanäs (Z) C:2",
		XRef:  "@S1@",
	})

	src, created, _ := FindOrMergeSource(ds, Incoming{
		XRef:  "@S1@",
		Title: "A completely different title",
	})
	assert.False(t, created)
	assert.Equal(t, dataset.SourceID("source_1"), src.ID)
	assert.Equal(t, 1, ds.Sources.Len())
}

func TestFindOrMergeSourceResolvesByTitlePageDate(t *testing.T) {
	ds := seededDataset(t, &dataset.Source{
		ID:    "source_1",
		Title: "Alanäs (Z) C:2",
		Page:  "99",
		Date:  "1860-1894",
	})

	src, created, _ := FindOrMergeSource(ds, Incoming{
		Title: "ALANÄS (z) c:2",
		Page:  "99",
		Date:  "1860-1894",
	})
	assert.False(t, created, "title match is case-insensitive")
	assert.Equal(t, dataset.SourceID("source_1"), src.ID)

	other, created, _ := FindOrMergeSource(ds, Incoming{
		Title: "Alanäs (Z) C:2",
		Page:  "100",
		Date:  "1860-1894",
	})
	assert.True(t, created, "a different page is a different source")
	assert.NotEqual(t, src.ID, other.ID)
}

func TestMergeSourceIsAdditive(t *testing.T) {
	ds := seededDataset(t, &dataset.Source{
		ID:     "source_1",
		Title:  "Alanäs (Z) C:2",
		Page:   "99",
		Note:   "first import",
		Trust:  3,
		Images: []string{"a.jpg"},
		XRef:   "@S1@",
	})

	src, created, merged := FindOrMergeSource(ds, Incoming{
		XRef:   "@S1@",
		Title:  "A different title",
		Page:   "100",
		Volume: "C:2",
		Note:   "second import",
		Trust:  1,
		Images: []string{"a.jpg", "b.jpg"},
	})
	require.False(t, created)
	assert.True(t, merged)

	assert.Equal(t, "Alanäs (Z) C:2", src.Title, "populated fields are never replaced")
	assert.Equal(t, "99", src.Page)
	assert.Equal(t, "C:2", src.Volume, "empty fields are filled")
	assert.Equal(t, "first import\n\nsecond import", src.Note)
	assert.Equal(t, dataset.Trust(3), src.Trust, "trust never drops")
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, src.Images)
}

func TestMergeSourceArchiveGroupOverwrite(t *testing.T) {
	ds := seededDataset(t, &dataset.Source{
		ID:           "source_1",
		Title:        "Alanäs (Z) C:2",
		ArchiveGroup: "Kyrkoarkiv",
		XRef:         "@S1@",
	})

	src, _, merged := FindOrMergeSource(ds, Incoming{
		XRef:         "@S1@",
		ArchiveGroup: GroupOther,
	})
	assert.True(t, merged)
	assert.Equal(t, GroupOther, src.ArchiveGroup,
		"an incoming archive group re-classifies the source")
}

func TestMergeSourceSkipsDuplicateNote(t *testing.T) {
	ds := seededDataset(t, &dataset.Source{
		ID:   "source_1",
		Note: "Bild 104 / sid 99 plus context",
		XRef: "@S1@",
	})

	src, _, _ := FindOrMergeSource(ds, Incoming{
		XRef: "@S1@",
		Note: "Bild 104 / sid 99",
	})
	assert.Equal(t, "Bild 104 / sid 99 plus context", src.Note,
		"a note already contained in the existing note is not appended")
}

func TestApplyOrphanCitationWithoutNodeKeepsTitleEmpty(t *testing.T) {
	r := newTestReconciler(t)
	res := apply(t, r, dataset.New(), &gedcom.Mapped{
		Citations: []gedcom.Citation{
			{Page: "Bild 104 / sid 99", Note: "mentioned in passing"},
		},
	})

	require.Len(t, res.Created.Sources, 1)
	src, ok := res.Dataset.Sources.Get(res.Created.Sources[0])
	require.True(t, ok)

	assert.Empty(t, src.Title, "page and note text must not become a source title")
	require.Len(t, src.Citations, 1)
	assert.Equal(t, "Bild 104 / sid 99", src.Citations[0].Page)
}

func TestMergeSourceRaisesTrustOnly(t *testing.T) {
	ds := seededDataset(t, &dataset.Source{ID: "source_1", Trust: 1, XRef: "@S1@"})

	src, _, _ := FindOrMergeSource(ds, Incoming{XRef: "@S1@", Trust: 4})
	assert.Equal(t, dataset.TrustMax, src.Trust)

	src, _, merged := FindOrMergeSource(ds, Incoming{XRef: "@S1@", Trust: 0})
	assert.Equal(t, dataset.TrustMax, src.Trust)
	assert.False(t, merged, "a lower trust changes nothing")
}
