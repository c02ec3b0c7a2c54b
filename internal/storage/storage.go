// Package storage provides the key/value persistence port used by the cart
// store and the order ledger. Values are opaque byte slices; callers own the
// encoding. Implementations must be safe for concurrent use.
package storage

import "errors"

// ErrNotFound is returned by Get when no value exists under the given key.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence port. Swapping implementations (in-memory for
// tests, files on disk, a database table) must not require changes in the
// stores built on top of it.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
