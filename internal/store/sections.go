package store

import (
	"context"
	"fmt"
)

type SectionView struct {
	SectionID string `json:"section_id"`
	Views     int64  `json:"views"`
	Visitors  int64  `json:"visitors"`
}

// RecordSectionView stores that a visitor scrolled a section into focus.
// Callers validate sectionID against the registry.
func (s *Store) RecordSectionView(ctx context.Context, ip, sectionID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO section_views (hashed_ip, section_id, timestamp) VALUES (?, ?, ?)`,
		s.HashIP(ip), sectionID, stamp(s.now()))
	if err != nil {
		return fmt.Errorf("record section view: %w", err)
	}
	return nil
}

func (s *Store) SectionViews(ctx context.Context) ([]SectionView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section_id, COUNT(*), COUNT(DISTINCT hashed_ip)
		FROM section_views
		GROUP BY section_id
		ORDER BY COUNT(*) DESC, section_id`)
	if err != nil {
		return nil, fmt.Errorf("query section views: %w", err)
	}
	defer rows.Close()

	var out []SectionView
	for rows.Next() {
		var v SectionView
		if err := rows.Scan(&v.SectionID, &v.Views, &v.Visitors); err != nil {
			return nil, fmt.Errorf("scan section view: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
