//go:build cgosqlite

package export

import (
	_ "github.com/mattn/go-sqlite3"
)

const sqliteDriver = "sqlite3"
