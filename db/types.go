// Package db defines the key/value store the ledger persists its checkpoints and accounts
// in. Every key lives in a namespace; backends store it as namespace|key.
package db

// DB is implemented by memorydb and badgerdb.
type DB interface {
	Type() string
	Set(namespace []byte, key []byte, value []byte) error
	Delete(namespace []byte, key []byte) error
	// Get reports false, without an error, for a missing key.
	Get(namespace []byte, key []byte) ([]byte, bool, error)
	Exist(namespace []byte, key []byte) (bool, error)
	// Iterator takes raw keys, see NamespaceRange.
	Iterator(start []byte, end []byte) Iterator
	NewTx() Transaction
	NewBulk() Bulk
	Close() error
}

// Transaction applies all of its writes at Commit or none of them.
type Transaction interface {
	Set(namespace []byte, key []byte, value []byte) error
	Delete(namespace []byte, key []byte) error
	Commit() error
	Discard()
}

// Bulk is for large deletes and imports. A backend may split it into several
// transactions, so a failed Flush can leave part of it applied.
type Bulk interface {
	Set(namespace []byte, key []byte, value []byte) error
	Delete(namespace []byte, key []byte) error
	Flush() error
	DiscardLast()
}

// Iterator walks a key range. Key returns the full namespace|key. Close releases what the
// iterator holds and may be called at any point, more than once.
type Iterator interface {
	Next() error
	Valid() bool
	Key() ([]byte, error)
	Value() ([]byte, error)
	Close()
}
