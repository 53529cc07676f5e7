// Package pebble persists evaluation state in a Pebble database. One
// database directory holds one snapshot; hosts typically keep it next to
// the scene file.
package pebble

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/lathehq/lathe/eval"
)

type pebbleStore struct {
	db *pebble.DB
}

// New opens (or creates) a store at dir.
func New(dir string) (eval.StateStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dir, err)
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) Set(k, v []byte) error {
	// Treat nil (==tombstone) as delete
	if v == nil {
		return s.db.Delete(k, &pebble.WriteOptions{})
	}
	return s.db.Set(k, v, &pebble.WriteOptions{Sync: false})
}

func (s *pebbleStore) Get(k []byte) ([]byte, error) {
	v, closer, err := s.db.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, eval.ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	res := make([]byte, len(v))
	copy(res, v)

	return res, nil
}

func (s *pebbleStore) Delete(k []byte) error {
	return s.db.Delete(k, &pebble.WriteOptions{})
}

func (s *pebbleStore) All() (eval.Iterator, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	return &pebbleIterator{iter: iter}, nil
}

func (s *pebbleStore) Flush() error {
	return s.db.Flush()
}

func (s *pebbleStore) Close() error {
	if err := s.db.Flush(); err != nil {
		return err
	}
	return s.db.Close()
}

// pebbleIterator wraps pebble.Iterator to implement eval.Iterator
type pebbleIterator struct {
	iter    *pebble.Iterator
	started bool
	valid   bool
	err     error
}

func (it *pebbleIterator) Next() bool {
	if it.err != nil {
		return false
	}

	if !it.started {
		it.started = true
		it.valid = it.iter.First()
	} else {
		it.valid = it.iter.Next()
	}

	if !it.valid {
		it.err = it.iter.Error()
		return false
	}

	return true
}

func (it *pebbleIterator) Key() []byte {
	if !it.valid {
		return nil
	}
	// Make a copy to avoid data races
	key := it.iter.Key()
	result := make([]byte, len(key))
	copy(result, key)
	return result
}

func (it *pebbleIterator) Value() []byte {
	if !it.valid {
		return nil
	}
	// Make a copy to avoid data races
	value, err := it.iter.ValueAndErr()
	if err != nil {
		it.err = err
		return nil
	}
	result := make([]byte, len(value))
	copy(result, value)
	return result
}

func (it *pebbleIterator) Err() error {
	return it.err
}

func (it *pebbleIterator) Close() error {
	return it.iter.Close()
}

var _ = eval.StateStore(&pebbleStore{})
