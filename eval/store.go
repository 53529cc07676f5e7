package eval

// StateStore is a byte-oriented key-value backend for persisting evaluation
// state across sessions. Snapshot encoding happens above it; implementations
// only move bytes.
type StateStore interface {
	// Set stores value under key. A nil value deletes the key.
	Set(key, value []byte) error

	// Get returns the value for key, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key []byte) error

	// All returns an iterator over every pair in undefined order.
	All() (Iterator, error)

	// Flush forces pending writes to durable storage.
	Flush() error

	// Close flushes and releases the store.
	Close() error
}

// Iterator provides an interface for iterating over key-value pairs
type Iterator interface {
	// Next advances the iterator to the next key-value pair
	// Returns true if a pair is available, false if iteration is complete
	Next() bool

	// Key returns the current key
	// Only valid after Next() returns true
	Key() []byte

	// Value returns the current value
	// Only valid after Next() returns true
	Value() []byte

	// Err returns any error encountered during iteration
	Err() error

	// Close releases resources associated with the iterator
	Close() error
}
