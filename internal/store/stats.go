package store

import (
	"context"
	"fmt"
	"time"
)

// Count is a label with its number of occurrences.
type Count struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalVisitors    int64   `json:"total_visitors"`
	UniqueVisitors   int64   `json:"unique_visitors"`
	VisitorsToday    int64   `json:"visitors_today"`
	VisitorsThisWeek int64   `json:"visitors_this_week"`
	Sections         []Count `json:"sections"`
	Actions          []Count `json:"actions"`
	Languages        []Count `json:"languages"`
	RecentVisitors   []Visit `json:"recent_visitors"`
}

// Stats summarizes the analytics tables as of now.
func (db *DB) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
	}
	for _, c := range counts {
		if err := db.conn.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}

	var err error
	if stats.Sections, err = db.groupCounts(ctx, `SELECT section, COUNT(*) FROM section_views GROUP BY section ORDER BY 2 DESC, 1`); err != nil {
		return nil, err
	}
	if stats.Actions, err = db.groupCounts(ctx, `SELECT action, COUNT(*) FROM cta_clicks GROUP BY action ORDER BY 2 DESC, 1`); err != nil {
		return nil, err
	}
	if stats.Languages, err = db.groupCounts(ctx, `SELECT COALESCE(lang, ''), COUNT(*) FROM visitors GROUP BY 1 ORDER BY 2 DESC, 1`); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = db.RecentVisits(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (db *DB) groupCounts(ctx context.Context, query string) ([]Count, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("group counts: %w", err)
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RecentVisits returns up to limit visits, newest first.
func (db *DB) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), COALESCE(lang, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Lang, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
