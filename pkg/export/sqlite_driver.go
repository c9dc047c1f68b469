//go:build !cgosqlite

package export

import (
	_ "modernc.org/sqlite"
)

// The pure Go driver keeps cross-compilation simple; build with
// -tags cgosqlite to use mattn/go-sqlite3 instead.
const sqliteDriver = "sqlite"
