package hbapi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// fakeOps is a call-counting SiteOperations stub backed by canned responses.
type fakeOps struct {
	metadataCalls   int
	addTagCalls     int
	deleteTagCalls  int
	addDomainCalls  int
	setPrimaryCalls int
	deleteDomCalls  int
	deleteCalls     int

	metadata   []hbapi.MetadataRecord
	tags       hbapi.TagMap
	domainID   hbapi.ID
	setPrimary bool
	deleteDom  bool
	deleteTag  bool
	deleteSite bool

	err error
}

func (f *fakeOps) Metadata(ctx context.Context, id hbapi.ID) ([]hbapi.MetadataRecord, error) {
	f.metadataCalls++

	return f.metadata, f.err
}

func (f *fakeOps) AddTag(ctx context.Context, id hbapi.ID, tag string) (hbapi.TagMap, error) {
	f.addTagCalls++

	return f.tags, f.err
}

func (f *fakeOps) DeleteTag(ctx context.Context, id hbapi.ID, tagID hbapi.ID) (bool, error) {
	f.deleteTagCalls++

	return f.deleteTag, f.err
}

func (f *fakeOps) AddDomain(ctx context.Context, id hbapi.ID, hostname string) (hbapi.ID, error) {
	f.addDomainCalls++

	return f.domainID, f.err
}

func (f *fakeOps) SetPrimaryDomain(ctx context.Context, id hbapi.ID, domainID hbapi.ID) (bool, error) {
	f.setPrimaryCalls++

	return f.setPrimary, f.err
}

func (f *fakeOps) DeleteDomain(ctx context.Context, id hbapi.ID, domainID hbapi.ID) (bool, error) {
	f.deleteDomCalls++

	return f.deleteDom, f.err
}

func (f *fakeOps) Clone(ctx context.Context, name string, stackID hbapi.ID, sourceID hbapi.ID) (*hbapi.Site, error) {
	return nil, f.err
}

func (f *fakeOps) Delete(ctx context.Context, id hbapi.ID) (bool, error) {
	f.deleteCalls++

	return f.deleteSite, f.err
}

func oneMetadataRecord() []hbapi.MetadataRecord {
	return []hbapi.MetadataRecord{{
		SiteID: 1,
		Fields: map[string]interface{}{"php_version": "8.3", "region": "eu-central"},
		Tags: []hbapi.TagRecord{
			{ID: 7, Name: "production"},
		},
		Dom: []hbapi.DomainRecord{
			{ID: 5, Name: "blog.example.org", Primary: true, SiteID: 1},
			{ID: 6, Name: "www.example.org", Primary: false, SiteID: 1},
		},
	}}
}

func newTestSite(t *testing.T, ops *fakeOps) *hbapi.Site {
	t.Helper()

	site, err := hbapi.NewSite(ops, hbapi.SiteRecord{ID: 1, Name: "blog", StackID: 10})
	require.NoError(t, err)

	return site
}

func TestNewSite(t *testing.T) {
	t.Parallel()

	t.Run("requires operations", func(t *testing.T) {
		t.Parallel()

		_, err := hbapi.NewSite(nil, hbapi.SiteRecord{ID: 1})
		require.ErrorIs(t, err, hbapi.ErrNilOperations)
	})

	t.Run("exposes the record", func(t *testing.T) {
		t.Parallel()

		site := newTestSite(t, &fakeOps{})
		assert.Equal(t, hbapi.ID(1), site.ID())
		assert.Equal(t, "blog", site.Name())
		assert.Equal(t, hbapi.ID(10), site.StackID())
		assert.False(t, site.Deleted())
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestSite_ShadowFetch(t *testing.T) {
	t.Parallel()

	t.Run("one fetch serves metadata tags and domains", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord()}
		site := newTestSite(t, ops)

		ctx := context.Background()

		metadata, err := site.Metadata(ctx)
		require.NoError(t, err)
		assert.Equal(t, "8.3", metadata["php_version"])

		tags, err := site.Tags(ctx)
		require.NoError(t, err)
		assert.Equal(t, hbapi.TagMap{"production": 7}, tags)

		domains, err := site.Domains(ctx)
		require.NoError(t, err)
		require.Len(t, domains, 2)
		assert.True(t, domains["blog.example.org"].Primary)

		assert.Equal(t, 1, ops.metadataCalls)
	})

	t.Run("zero records is malformed", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: []hbapi.MetadataRecord{}}
		site := newTestSite(t, ops)

		_, err := site.Metadata(context.Background())
		assert.True(t, hbapi.IsMalformedResponse(err))
	})

	t.Run("multiple records is malformed", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: append(oneMetadataRecord(), oneMetadataRecord()...)}
		site := newTestSite(t, ops)

		_, err := site.Tags(context.Background())
		assert.True(t, hbapi.IsMalformedResponse(err))
	})

	t.Run("failed fetch is retried on the next access", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{err: hbapi.NewError(hbapi.ErrorKindRequestFailed, "boom")}
		site := newTestSite(t, ops)

		_, err := site.Metadata(context.Background())
		require.Error(t, err)

		ops.err = nil
		ops.metadata = oneMetadataRecord()

		_, err = site.Metadata(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, ops.metadataCalls)
	})

	t.Run("returned maps are copies", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord()}
		site := newTestSite(t, ops)

		tags, err := site.Tags(context.Background())
		require.NoError(t, err)

		tags["rogue"] = 99

		tags, err = site.Tags(context.Background())
		require.NoError(t, err)
		assert.NotContains(t, tags, "rogue")
	})
}

func TestSite_Tags(t *testing.T) {
	t.Parallel()

	t.Run("add replaces the local map wholesale", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{
			metadata: oneMetadataRecord(),
			tags:     hbapi.TagMap{"staging": 9},
		}
		site := newTestSite(t, ops)

		// Populate the shadow with the server's "production" tag first.
		_, err := site.Tags(context.Background())
		require.NoError(t, err)

		tags, err := site.AddTag(context.Background(), "staging")
		require.NoError(t, err)
		assert.Equal(t, hbapi.TagMap{"staging": 9}, tags)
		assert.Equal(t, 1, ops.addTagCalls)
	})

	t.Run("delete of an unknown tag is a no-op", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord()}
		site := newTestSite(t, ops)

		err := site.DeleteTag(context.Background(), "nonexistent")
		require.NoError(t, err)
		assert.Equal(t, 0, ops.deleteTagCalls)
	})

	t.Run("delete removes locally only when confirmed", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), deleteTag: false}
		site := newTestSite(t, ops)

		err := site.DeleteTag(context.Background(), "production")
		require.NoError(t, err)
		assert.Equal(t, 1, ops.deleteTagCalls)

		tags, err := site.Tags(context.Background())
		require.NoError(t, err)
		assert.Contains(t, tags, "production")
	})

	t.Run("confirmed delete removes the tag", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), deleteTag: true}
		site := newTestSite(t, ops)

		err := site.DeleteTag(context.Background(), "production")
		require.NoError(t, err)

		tags, err := site.Tags(context.Background())
		require.NoError(t, err)
		assert.NotContains(t, tags, "production")
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestSite_Domains(t *testing.T) {
	t.Parallel()

	t.Run("add records the returned id locally", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), domainID: 42}
		site := newTestSite(t, ops)

		dom, err := site.AddDomain(context.Background(), "shop.example.org")
		require.NoError(t, err)
		assert.Equal(t, hbapi.ID(42), dom.ID)
		assert.Equal(t, "shop.example.org", dom.Name)
		assert.False(t, dom.Primary)

		domains, err := site.Domains(context.Background())
		require.NoError(t, err)
		assert.Contains(t, domains, "shop.example.org")
	})

	t.Run("promoting the current primary is a local no-op", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), setPrimary: true}
		site := newTestSite(t, ops)

		err := site.SetPrimaryDomain(context.Background(), "blog.example.org")
		require.NoError(t, err)
		assert.Equal(t, 0, ops.setPrimaryCalls)
	})

	t.Run("promotion demotes the old primary", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), setPrimary: true}
		site := newTestSite(t, ops)

		err := site.SetPrimaryDomain(context.Background(), "www.example.org")
		require.NoError(t, err)
		assert.Equal(t, 1, ops.setPrimaryCalls)

		domains, err := site.Domains(context.Background())
		require.NoError(t, err)
		assert.True(t, domains["www.example.org"].Primary)
		assert.False(t, domains["blog.example.org"].Primary)

		// Repeating the call hits the no-op path.
		err = site.SetPrimaryDomain(context.Background(), "www.example.org")
		require.NoError(t, err)
		assert.Equal(t, 1, ops.setPrimaryCalls)
	})

	t.Run("promoting a detached hostname fails", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord()}
		site := newTestSite(t, ops)

		err := site.SetPrimaryDomain(context.Background(), "elsewhere.example.org")
		assert.True(t, hbapi.IsDomainNotFound(err))
	})

	t.Run("deleting an unknown hostname is a no-op", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord()}
		site := newTestSite(t, ops)

		err := site.DeleteDomain(context.Background(), "elsewhere.example.org")
		require.NoError(t, err)
		assert.Equal(t, 0, ops.deleteDomCalls)
	})

	t.Run("deleting the primary promotes a replacement first", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), setPrimary: true, deleteDom: true}
		site := newTestSite(t, ops)

		err := site.DeleteDomain(context.Background(), "blog.example.org")
		require.NoError(t, err)
		assert.Equal(t, 1, ops.setPrimaryCalls)
		assert.Equal(t, 1, ops.deleteDomCalls)

		domains, err := site.Domains(context.Background())
		require.NoError(t, err)
		require.Len(t, domains, 1)
		assert.True(t, domains["www.example.org"].Primary)
	})

	t.Run("deleting the only domain is rejected", func(t *testing.T) {
		t.Parallel()

		metadata := oneMetadataRecord()
		metadata[0].Dom = metadata[0].Dom[:1]

		ops := &fakeOps{metadata: metadata}
		site := newTestSite(t, ops)

		err := site.DeleteDomain(context.Background(), "blog.example.org")
		assert.True(t, hbapi.IsInvalidArgument(err))
		assert.Equal(t, 0, ops.deleteDomCalls)
	})

	t.Run("unconfirmed delete keeps the domain", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), deleteDom: false}
		site := newTestSite(t, ops)

		err := site.DeleteDomain(context.Background(), "www.example.org")
		require.NoError(t, err)

		domains, err := site.Domains(context.Background())
		require.NoError(t, err)
		assert.Contains(t, domains, "www.example.org")
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestSite_Delete(t *testing.T) {
	t.Parallel()

	t.Run("confirmed delete is terminal", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), deleteSite: true}
		site := newTestSite(t, ops)

		err := site.Delete(context.Background())
		require.NoError(t, err)
		assert.True(t, site.Deleted())

		_, err = site.Metadata(context.Background())
		assert.True(t, hbapi.IsSiteDeleted(err))

		_, err = site.AddTag(context.Background(), "late")
		assert.True(t, hbapi.IsSiteDeleted(err))

		err = site.DeleteDomain(context.Background(), "blog.example.org")
		assert.True(t, hbapi.IsSiteDeleted(err))

		err = site.Delete(context.Background())
		assert.True(t, hbapi.IsSiteDeleted(err))
		assert.Equal(t, 1, ops.deleteCalls)

		_, err = site.Clone(context.Background(), "copy", 10)
		assert.True(t, hbapi.IsSiteDeleted(err))
	})

	t.Run("unconfirmed delete keeps the site usable", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{metadata: oneMetadataRecord(), deleteSite: false}
		site := newTestSite(t, ops)

		err := site.Delete(context.Background())
		require.NoError(t, err)
		assert.False(t, site.Deleted())

		_, err = site.Metadata(context.Background())
		require.NoError(t, err)
	})

	t.Run("failed delete keeps the site usable", func(t *testing.T) {
		t.Parallel()

		ops := &fakeOps{
			metadata:   oneMetadataRecord(),
			deleteSite: true,
			err:        hbapi.NewError(hbapi.ErrorKindRequestFailed, "boom"),
		}
		site := newTestSite(t, ops)

		err := site.Delete(context.Background())
		require.Error(t, err)
		assert.False(t, site.Deleted())
	})
}
