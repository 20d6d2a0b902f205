//go:build !sqlite_cgo

package orderrepo

// Default build: pure Go SQLite, no C toolchain needed.

import (
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by this build.
const DriverName = "sqlite"
