// Package repository is the persistence gateway: parameterized SQL against
// PostgreSQL with explicit transactions for multi-write operations.
package repository

import "errors"

// ErrNoRowsAffected reports an update or delete that matched nothing.
var ErrNoRowsAffected = errors.New("no rows affected")
