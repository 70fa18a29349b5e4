package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthikurao/portfolio/internal/contact"
)

func openTest(t *testing.T, now time.Time) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	s.now = func() time.Time { return now }
	return s
}

func TestHashIP(t *testing.T) {
	s := openTest(t, time.Now())
	a := s.HashIP("10.0.0.1")
	assert.Len(t, a, 16)
	assert.Equal(t, a, s.HashIP("10.0.0.1"))
	assert.NotEqual(t, a, s.HashIP("10.0.0.2"))
	assert.NotContains(t, a, "10.0.0.1")
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portfolio.db")
	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	visitors, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
}

func TestVisitorsAndCleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	s := openTest(t, now.Add(-400*24*time.Hour))
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "old", "/"))
	require.NoError(t, s.RecordSectionView(ctx, "1.1.1.1", "about"))

	s.now = func() time.Time { return now }
	require.NoError(t, s.RecordVisit(ctx, "2.2.2.2", "new", "/about"))

	visitors, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visitors, 2)
	assert.Equal(t, "new", visitors[0].UserAgent)
	assert.Equal(t, now, visitors[0].Timestamp)

	n, err := s.CleanupVisitors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	visitors, err = s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
}

func TestSectionViews(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, time.Now())
	for _, v := range []struct{ ip, id string }{
		{"a", "about"}, {"a", "about"}, {"b", "about"}, {"a", "projects"},
	} {
		require.NoError(t, s.RecordSectionView(ctx, v.ip, v.id))
	}

	views, err := s.SectionViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, []SectionView{
		{SectionID: "about", Views: 3, Visitors: 2},
		{SectionID: "projects", Views: 1, Visitors: 1},
	}, views)
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, time.Now())
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	first := contact.Submission{ID: "m1", Name: "Ada", Email: "ada@example.com", Message: "Hello there!", CreatedAt: created}
	second := contact.Submission{ID: "m2", Name: "Bob", Email: "bob@example.com", Message: "Second message", CreatedAt: created.Add(time.Hour)}
	require.NoError(t, s.SaveMessage(ctx, first, true))
	require.NoError(t, s.SaveMessage(ctx, second, false))
	assert.Error(t, s.SaveMessage(ctx, first, true), "duplicate id")

	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m2", msgs[0].ID)
	assert.False(t, msgs[0].Delivered)
	assert.True(t, msgs[1].Delivered)
	assert.Equal(t, created, msgs[1].CreatedAt)

	ok, err := s.DeleteMessage(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.DeleteMessage(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	s := openTest(t, now.Add(-3*24*time.Hour))
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))
	s.now = func() time.Time { return now }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))
	require.NoError(t, s.RecordVisit(ctx, "2.2.2.2", "ua", "/contact"))
	require.NoError(t, s.RecordSectionView(ctx, "2.2.2.2", "contact"))
	require.NoError(t, s.SaveMessage(ctx, contact.Submission{ID: "x", Name: "n", Email: "e", Message: "m", CreatedAt: now}, false))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalVisitors)
	assert.Equal(t, int64(2), stats.UniqueVisitors)
	assert.Equal(t, int64(2), stats.VisitorsToday)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
	assert.Equal(t, int64(1), stats.TotalMessages)
	assert.Equal(t, int64(1), stats.UndeliveredMessages)
	assert.Len(t, stats.SectionViews, 1)
	assert.Len(t, stats.RecentVisitors, 3)
}
