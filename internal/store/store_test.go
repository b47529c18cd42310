package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "portfolio.db"), "salt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHashIP(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	a := db.HashIP("203.0.113.7")
	if len(a) != 16 {
		t.Fatalf("len(hash) = %d, want 16", len(a))
	}
	if a != db.HashIP("203.0.113.7") {
		t.Fatal("hash not stable")
	}
	if a == db.HashIP("203.0.113.8") {
		t.Fatal("distinct IPs share a hash")
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	visits := []struct {
		ip   string
		lang string
		at   time.Time
	}{
		{"198.51.100.1", "en", now.Add(-time.Hour)},
		{"198.51.100.1", "en", now.Add(-2 * time.Hour)},
		{"198.51.100.2", "fr", now.Add(-3 * 24 * time.Hour)},
		{"198.51.100.3", "fr", now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := db.RecordVisit(ctx, v.ip, "test-agent", "/", v.lang, v.at); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}
	for _, s := range []string{"skills", "contact", "skills"} {
		if err := db.RecordSectionView(ctx, "view-1", s, now); err != nil {
			t.Fatalf("RecordSectionView: %v", err)
		}
	}
	if err := db.RecordAction(ctx, "view-1", "email", now); err != nil {
		t.Fatalf("RecordAction: %v", err)
	}

	stats, err := db.Stats(ctx, now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 4 {
		t.Fatalf("TotalVisitors = %d, want 4", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 3 {
		t.Fatalf("UniqueVisitors = %d, want 3", stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 2 {
		t.Fatalf("VisitorsToday = %d, want 2", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 3 {
		t.Fatalf("VisitorsThisWeek = %d, want 3", stats.VisitorsThisWeek)
	}
	if len(stats.Sections) != 2 || stats.Sections[0] != (Count{Label: "skills", Count: 2}) {
		t.Fatalf("Sections = %+v", stats.Sections)
	}
	if len(stats.Actions) != 1 || stats.Actions[0].Label != "email" {
		t.Fatalf("Actions = %+v", stats.Actions)
	}
	if len(stats.RecentVisitors) != 4 {
		t.Fatalf("len(RecentVisitors) = %d, want 4", len(stats.RecentVisitors))
	}
	if stats.RecentVisitors[0].HashedIP != db.HashIP("198.51.100.1") {
		t.Fatalf("newest visit = %+v", stats.RecentVisitors[0])
	}
}

func TestCleanup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	if err := db.RecordVisit(ctx, "192.0.2.1", "", "/", "en", now.AddDate(-2, 0, 0)); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if err := db.RecordSectionView(ctx, "old", "about", now.AddDate(-2, 0, 0)); err != nil {
		t.Fatalf("RecordSectionView: %v", err)
	}
	if err := db.RecordVisit(ctx, "192.0.2.2", "", "/", "en", now); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	removed, err := db.Cleanup(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	stats, err := db.Stats(ctx, now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 1 {
		t.Fatalf("TotalVisitors = %d, want 1", stats.TotalVisitors)
	}
}
