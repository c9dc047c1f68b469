package export

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// SQLiteMeta is recorded in the export_info table alongside the
// categories.
type SQLiteMeta struct {
	Source    string
	Tool      string
	CreatedAt time.Time
}

// WriteSQLite writes the tree to a standalone database at path,
// replacing any existing file. Every category row carries its parent
// id, depth, sibling position, and full breadcrumb path, so the
// hierarchy can be queried without recursion.
func WriteSQLite(path string, root *model.Node, meta SQLiteMeta) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replace sqlite export: %w", err)
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	schema := `
	CREATE TABLE categories (
		id INTEGER PRIMARY KEY,
		parent_id INTEGER REFERENCES categories(id),
		depth INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		path TEXT NOT NULL
	);

	CREATE INDEX idx_categories_parent ON categories(parent_id);

	CREATE TABLE export_info (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO categories (id, parent_id, depth, position, name, path)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	nextID := 0
	var insert func(n *model.Node, parentID any, depth int, prefix []string) error
	insert = func(n *model.Node, parentID any, depth int, prefix []string) error {
		for pos, c := range n.Children {
			nextID++
			id := nextID
			childPath := append(append([]string(nil), prefix...), c.Name)
			if _, err := stmt.Exec(id, parentID, depth, pos, c.Name, model.JoinPath(childPath)); err != nil {
				return err
			}
			if err := insert(c, id, depth+1, childPath); err != nil {
				return err
			}
		}
		return nil
	}
	if root != nil {
		if err := insert(root, nil, 0, nil); err != nil {
			return fmt.Errorf("insert categories: %w", err)
		}
	}

	createdAt := meta.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	info := [][2]string{
		{"source", meta.Source},
		{"tool", meta.Tool},
		{"created_at", createdAt.Format(time.RFC3339)},
	}
	for _, kv := range info {
		if _, err := tx.Exec(`INSERT INTO export_info (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert export info: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
