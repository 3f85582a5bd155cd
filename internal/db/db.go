package db

import "database/sql"

// DB wraps the shared sql.DB handle. It is constructed once during app
// startup and injected into whatever needs it; nothing reaches for a
// package-level connection.
type DB struct {
	*sql.DB
}
