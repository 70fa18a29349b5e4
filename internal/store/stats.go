package store

import (
	"context"
	"fmt"
	"time"
)

type AdminStats struct {
	TotalVisitors       int64           `json:"total_visitors"`
	UniqueVisitors      int64           `json:"unique_visitors"`
	VisitorsToday       int64           `json:"visitors_today"`
	VisitorsThisWeek    int64           `json:"visitors_this_week"`
	TotalMessages       int64           `json:"total_messages"`
	UndeliveredMessages int64           `json:"undelivered_messages"`
	SectionViews        []SectionView   `json:"section_views"`
	RecentVisitors      []VisitorMetric `json:"recent_visitors"`
}

func (s *Store) Stats(ctx context.Context) (*AdminStats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats := &AdminStats{}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{stamp(today)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{stamp(now.Add(-7 * 24 * time.Hour))}},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM messages`, nil},
		{&stats.UndeliveredMessages, `SELECT COUNT(*) FROM messages WHERE delivered = 0`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	if stats.SectionViews, err = s.SectionViews(ctx); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}
