package export

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.sqlite3")

	meta := SQLiteMeta{
		Source:    "categories.csv",
		Tool:      "cld",
		CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	if err := WriteSQLite(path, sampleTree(), meta); err != nil {
		t.Fatalf("WriteSQLite failed: %v", err)
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		t.Fatalf("open exported database: %v", err)
	}
	defer db.Close()

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if total != 6 {
		t.Errorf("Expected 6 categories, got %d", total)
	}

	var path2, name string
	var depth, position int
	err = db.QueryRow(`
		SELECT name, depth, position, path FROM categories WHERE name = 'Lemon'
	`).Scan(&name, &depth, &position, &path2)
	if err != nil {
		t.Fatalf("query Lemon: %v", err)
	}
	if depth != 2 {
		t.Errorf("Expected Lemon at depth 2, got %d", depth)
	}
	if position != 1 {
		t.Errorf("Expected Lemon at position 1 under Citrus, got %d", position)
	}
	if path2 != "Fruit > Citrus > Lemon" {
		t.Errorf("Expected breadcrumb path, got %q", path2)
	}

	var parents int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories WHERE parent_id IS NULL`).Scan(&parents); err != nil {
		t.Fatalf("count top-level: %v", err)
	}
	if parents != 1 {
		t.Errorf("Expected 1 top-level category, got %d", parents)
	}

	var source string
	if err := db.QueryRow(`SELECT value FROM export_info WHERE key = 'source'`).Scan(&source); err != nil {
		t.Fatalf("query export_info: %v", err)
	}
	if source != "categories.csv" {
		t.Errorf("Expected source categories.csv, got %q", source)
	}
}

func TestWriteSQLite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.sqlite3")

	if err := WriteSQLite(path, sampleTree(), SQLiteMeta{}); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	// A second export must not collide with the first file's schema.
	if err := WriteSQLite(path, sampleTree(), SQLiteMeta{}); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
}

func TestWriteSQLite_EmptyTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sqlite3")

	if err := WriteSQLite(path, nil, SQLiteMeta{}); err != nil {
		t.Fatalf("WriteSQLite failed for nil root: %v", err)
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		t.Fatalf("open exported database: %v", err)
	}
	defer db.Close()

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected empty categories table, got %d rows", total)
	}
}
