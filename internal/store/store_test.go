package store

import (
	"testing"
	"time"

	"github.com/mmcdole/myreads/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Title: "Dune", Authors: []string{"Frank Herbert"}},
		{ID: "2", Title: "Emma", Authors: []string{"Jane Austen"}},
	}
}

func TestMemoryStore(t *testing.T) {
	s, err := NewSearchStore("", "https://example.com")
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.GetSearch("dune", time.Hour)
	assert.False(t, ok)

	require.NoError(t, s.SaveSearch("Dune", sampleBooks()))

	got, ok := s.GetSearch("Dune", time.Hour)
	require.True(t, ok)
	assert.Equal(t, sampleBooks(), got)

	s.InvalidateSearch("Dune")
	_, ok = s.GetSearch("Dune", time.Hour)
	assert.False(t, ok)
}

func TestSearchTermsAreExact(t *testing.T) {
	s, err := NewSearchStore(t.TempDir(), "https://example.com")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveSearch("art", sampleBooks()))

	for _, term := range []string{"Art", "ART", " art", "art "} {
		_, ok := s.GetSearch(term, time.Hour)
		assert.False(t, ok, "%q must not hit the entry for %q", term, "art")
	}
	_, ok := s.GetSearch("art", time.Hour)
	assert.True(t, ok)
}

func TestBoltStorePersists(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSearchStore(dir, "https://example.com")
	require.NoError(t, err)
	require.NoError(t, s.SaveSearch("dune", sampleBooks()))
	require.NoError(t, s.Close())

	reopened, err := NewSearchStore(dir, "https://example.com/")
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.GetSearch("dune", time.Hour)
	require.True(t, ok)
	assert.Equal(t, sampleBooks(), got)
}

func TestStoresAreScopedByServer(t *testing.T) {
	dir := t.TempDir()

	a, err := NewSearchStore(dir, "https://one.example.com")
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.SaveSearch("dune", sampleBooks()))

	b, err := NewSearchStore(dir, "https://two.example.com")
	require.NoError(t, err)
	defer b.Close()

	_, ok := b.GetSearch("dune", time.Hour)
	assert.False(t, ok)
}

func TestGetSearchExpires(t *testing.T) {
	s, err := NewSearchStore(t.TempDir(), "https://example.com")
	require.NoError(t, err)
	defer s.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	require.NoError(t, s.SaveSearch("dune", sampleBooks()))

	now = now.Add(5 * time.Minute)
	_, ok := s.GetSearch("dune", 10*time.Minute)
	assert.True(t, ok)

	now = now.Add(10 * time.Minute)
	_, ok = s.GetSearch("dune", 10*time.Minute)
	assert.False(t, ok)

	_, ok = s.GetSearch("dune", 0)
	assert.True(t, ok, "zero max age never expires")
}

func TestNoResultsAreCached(t *testing.T) {
	s, err := NewSearchStore("", "")
	require.NoError(t, err)

	require.NoError(t, s.SaveSearch("zzz", nil))
	got, ok := s.GetSearch("zzz", time.Hour)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestInvalidateAll(t *testing.T) {
	s, err := NewSearchStore(t.TempDir(), "https://example.com")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveSearch("dune", sampleBooks()))
	require.NoError(t, s.SaveSearch("emma", sampleBooks()))

	s.InvalidateAll()

	_, ok := s.GetSearch("dune", 0)
	assert.False(t, ok)
	_, ok = s.GetSearch("emma", 0)
	assert.False(t, ok)
}
