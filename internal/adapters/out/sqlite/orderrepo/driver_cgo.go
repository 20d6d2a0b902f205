//go:build sqlite_cgo

package orderrepo

// Built with -tags sqlite_cgo (and CGO_ENABLED=1): uses the C SQLite library.

import (
	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by this build.
const DriverName = "sqlite3"
