package staging_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rootstock/pkg/dataset"
	"github.com/agentstation/rootstock/pkg/errors"
	"github.com/agentstation/rootstock/pkg/extract"
	"github.com/agentstation/rootstock/pkg/gedcom"
	"github.com/agentstation/rootstock/pkg/staging"
)

type stubMedia struct {
	moved  map[string]string
	fail   map[string]bool
	cancel map[string]bool
	calls  int
	prefix string
}

func (s *stubMedia) Relocate(_ context.Context, ref string) (string, error) {
	s.calls++
	if s.cancel[ref] {
		return "", errors.ErrCanceled
	}
	if s.fail[ref] {
		return "", fmt.Errorf("copy %s: permission denied", ref)
	}
	moved := s.prefix + ref
	if s.moved == nil {
		s.moved = map[string]string{}
	}
	s.moved[ref] = moved
	return moved, nil
}

func TestExportStagesSourcesAndCitations(t *testing.T) {
	ds := dataset.New()
	mapped := &gedcom.Mapped{
		Sources: []gedcom.Source{
			{
				XRef:  "@S1@",
				Title: "Alanäs (Z) C:2 (1860-1894)",
			},
		},
		Citations: []gedcom.Citation{
			{
				SourceXRef: "@S1@",
				Page:       "Bild 104 / sid 99",
				TrustRaw:   "3",
			},
		},
	}

	out, staged, anoms, err := staging.Export(ds, mapped)
	require.NoError(t, err)
	require.Len(t, staged, 2)
	assert.Empty(t, anoms)

	assert.Equal(t, 2, out.Staging.Len())
	assert.Equal(t, 0, ds.Staging.Len(), "input dataset must stay untouched")
	assert.Equal(t, 0, out.Sources.Len(), "export never touches the catalog")

	src := staged[0]
	assert.Equal(t, "Alanäs (Z) C:2 (1860-1894)", src.Title)
	assert.Equal(t, "C:2", src.Volume)
	assert.Equal(t, "1860-1894", src.Date)
	assert.False(t, src.StagedAt.IsZero())

	cit := staged[1]
	assert.Equal(t, "Alanäs (Z) C:2 (1860-1894)", cit.Title, "citation borrows its source title")
	assert.Equal(t, "Bild 104 / sid 99", cit.Page)
	assert.Equal(t, dataset.Trust(3), cit.Trust)
}

func TestExportRescuesPlaceholderTitle(t *testing.T) {
	mapped := &gedcom.Mapped{
		Sources: []gedcom.Source{
			{
				XRef:  "@S1@",
				Title: "Source",
				Media: []any{"Alanäs v264558.b1060.s99.jpg"},
			},
		},
	}

	_, staged, _, err := staging.Export(dataset.New(), mapped)
	require.NoError(t, err)
	require.Len(t, staged, 1)

	assert.NotEqual(t, "Source", staged[0].Title)
	assert.Equal(t, "v264558.b1060.s99", staged[0].AID)
	assert.Equal(t, dataset.TrustMax, staged[0].Trust)
	assert.Equal(t, extract.ArchiveLabel, staged[0].Archive)
}

func TestCommitUnknownIDLeavesDatasetAlone(t *testing.T) {
	ds := dataset.New()
	require.NoError(t, ds.Staging.Set("staged_known", &dataset.StagedSource{
		ID:    "staged_known",
		Title: "Husförhörslängd",
	}))

	out, res, err := staging.Commit(context.Background(), ds, "staged_missing", staging.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Nil(t, out)
	assert.Nil(t, res)

	assert.Equal(t, 1, ds.Staging.Len())
	assert.Equal(t, 0, ds.Sources.Len())
}

func TestCommitCreatesSourceAndClearsQueue(t *testing.T) {
	ds := dataset.New()
	entry := &dataset.StagedSource{
		ID:     "staged_1",
		Title:  "Alanäs (Z) C:2 (1860-1894)",
		Volume: "C:2",
		Date:   "1860-1894",
		Trust:  2,
		XRef:   "@S1@",
		Images: []string{"alanas-104.jpg"},
	}
	require.NoError(t, ds.Staging.Set(entry.ID, entry))

	out, res, err := staging.Commit(context.Background(), ds, entry.ID, staging.Options{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Created)
	assert.False(t, res.Merged)

	assert.Equal(t, 0, out.Staging.Len())
	assert.Equal(t, 1, out.Sources.Len())
	assert.Equal(t, "Alanäs (Z) C:2 (1860-1894)", res.Source.Title)
	assert.Equal(t, []string{"alanas-104.jpg"}, res.Source.Images)

	local, ok := out.XRefs.Resolve("@S1@")
	require.True(t, ok)
	assert.Equal(t, string(res.Source.ID), local)

	assert.Equal(t, 1, ds.Staging.Len(), "input dataset must stay untouched")
}

func TestCommitMergesIntoExistingSource(t *testing.T) {
	ds := dataset.New()
	existing := &dataset.Source{
		ID:    "source_existing",
		Title: "Alanäs (Z) C:2 (1860-1894)",
		Trust: 1,
	}
	require.NoError(t, ds.Sources.Set(existing.ID, existing))
	ds.XRefs.Register("@S1@", string(existing.ID))

	entry := &dataset.StagedSource{
		ID:    "staged_1",
		Title: "Alanäs (Z) C:2 (1860-1894)",
		Date:  "1860-1894",
		Trust: 3,
		XRef:  "@S1@",
	}
	require.NoError(t, ds.Staging.Set(entry.ID, entry))

	out, res, err := staging.Commit(context.Background(), ds, entry.ID, staging.Options{})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.True(t, res.Merged)

	assert.Equal(t, 1, out.Sources.Len())
	assert.Equal(t, existing.ID, res.Source.ID)
	assert.Equal(t, "1860-1894", res.Source.Date)
	assert.Equal(t, dataset.Trust(3), res.Source.Trust)
}

func TestCommitRelocatesMedia(t *testing.T) {
	ds := dataset.New()
	entry := &dataset.StagedSource{
		ID:     "staged_1",
		Title:  "Husförhörslängd",
		Images: []string{"a.jpg", "b.jpg"},
	}
	require.NoError(t, ds.Staging.Set(entry.ID, entry))

	media := &stubMedia{prefix: "media/"}
	_, res, err := staging.Commit(context.Background(), ds, entry.ID, staging.Options{
		RelocateMedia: true,
		Media:         media,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, media.calls)
	assert.Equal(t, []string{"media/a.jpg", "media/b.jpg"}, res.Source.Images)
}

func TestCommitRelocationFailureKeepsOriginalReference(t *testing.T) {
	ds := dataset.New()
	entry := &dataset.StagedSource{
		ID:     "staged_1",
		Title:  "Husförhörslängd",
		Images: []string{"a.jpg", "b.jpg"},
	}
	require.NoError(t, ds.Staging.Set(entry.ID, entry))

	media := &stubMedia{prefix: "media/", fail: map[string]bool{"a.jpg": true}}
	_, res, err := staging.Commit(context.Background(), ds, entry.ID, staging.Options{
		RelocateMedia: true,
		Media:         media,
	})
	require.NoError(t, err, "a failed copy must not fail the commit")

	assert.Equal(t, []string{"a.jpg", "media/b.jpg"}, res.Source.Images)
	_, ok := ds.Staging.Get(entry.ID)
	assert.True(t, ok, "input dataset must stay untouched")
}

func TestCommitCanceledRelocationStopsEarly(t *testing.T) {
	ds := dataset.New()
	entry := &dataset.StagedSource{
		ID:     "staged_1",
		Title:  "Husförhörslängd",
		Images: []string{"a.jpg", "b.jpg"},
	}
	require.NoError(t, ds.Staging.Set(entry.ID, entry))

	media := &stubMedia{prefix: "media/", cancel: map[string]bool{"a.jpg": true}}
	_, res, err := staging.Commit(context.Background(), ds, entry.ID, staging.Options{
		RelocateMedia: true,
		Media:         media,
	})
	require.NoError(t, err, "cancellation during relocation must not fail the commit")

	assert.Equal(t, 1, media.calls, "remaining images must not be attempted")
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, res.Source.Images)
}

func TestCommitBackfillsArchiveIDFromImages(t *testing.T) {
	ds := dataset.New()
	entry := &dataset.StagedSource{
		ID:     "staged_1",
		Title:  "Husförhörslängd",
		Images: []string{"v264558.b1060.s99.jpg"},
	}
	require.NoError(t, ds.Staging.Set(entry.ID, entry))

	_, res, err := staging.Commit(context.Background(), ds, entry.ID, staging.Options{})
	require.NoError(t, err)

	assert.Equal(t, "v264558.b1060.s99", res.Source.AID)
	assert.Equal(t, "1060", res.Source.ImagePage)
	assert.Equal(t, "99", res.Source.Page)
	assert.Equal(t, dataset.TrustMax, res.Source.Trust)
	assert.Equal(t, extract.ArchiveLabel, res.Source.Archive)
}
