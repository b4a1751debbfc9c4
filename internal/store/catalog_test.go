package store

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mmcdole/myreads/internal/domain"
	"github.com/mmcdole/myreads/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedCatalog(t *testing.T, ttl time.Duration) (*CachedCatalog, *mocks.MockCatalogService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	next := mocks.NewMockCatalogService(ctrl)
	cache, err := NewSearchStore("", "")
	require.NoError(t, err)
	return NewCachedCatalog(next, cache, ttl, nil), next
}

func TestCachedCatalogServesRepeatSearches(t *testing.T) {
	c, next := newCachedCatalog(t, time.Minute)
	ctx := context.Background()

	next.EXPECT().SearchByTerm(gomock.Any(), "dune").Return(sampleBooks(), nil).Times(1)

	first, err := c.SearchByTerm(ctx, "dune")
	require.NoError(t, err)
	second, err := c.SearchByTerm(ctx, "dune")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCachedCatalogRemembersNoResults(t *testing.T) {
	c, next := newCachedCatalog(t, time.Minute)
	ctx := context.Background()

	next.EXPECT().SearchByTerm(gomock.Any(), "zzz").Return(nil, domain.ErrNoResults).Times(1)

	_, err := c.SearchByTerm(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNoResults)
	_, err = c.SearchByTerm(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestCachedCatalogDoesNotCacheFailures(t *testing.T) {
	c, next := newCachedCatalog(t, time.Minute)
	ctx := context.Background()

	gomock.InOrder(
		next.EXPECT().SearchByTerm(gomock.Any(), "dune").Return(nil, domain.ErrServerOffline),
		next.EXPECT().SearchByTerm(gomock.Any(), "dune").Return(sampleBooks(), nil),
	)

	_, err := c.SearchByTerm(ctx, "dune")
	assert.ErrorIs(t, err, domain.ErrServerOffline)

	books, err := c.SearchByTerm(ctx, "dune")
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestCachedCatalogZeroTTLBypassesCache(t *testing.T) {
	c, next := newCachedCatalog(t, 0)
	ctx := context.Background()

	next.EXPECT().SearchByTerm(gomock.Any(), "dune").Return(sampleBooks(), nil).Times(2)

	_, err := c.SearchByTerm(ctx, "dune")
	require.NoError(t, err)
	_, err = c.SearchByTerm(ctx, "dune")
	require.NoError(t, err)
}

func TestCachedCatalogPassesThroughLibraryCalls(t *testing.T) {
	c, next := newCachedCatalog(t, time.Minute)
	ctx := context.Background()

	entries := []domain.LibraryEntry{{Book: domain.Book{ID: "1", Title: "Dune"}, Shelf: domain.ShelfRead}}
	next.EXPECT().ListLibrary(gomock.Any()).Return(entries, nil).Times(2)
	next.EXPECT().SetShelf(gomock.Any(), "1", domain.ShelfWantToRead).Return(nil)

	got, err := c.ListLibrary(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	_, err = c.ListLibrary(ctx)
	require.NoError(t, err)

	assert.NoError(t, c.SetShelf(ctx, "1", domain.ShelfWantToRead))
}
