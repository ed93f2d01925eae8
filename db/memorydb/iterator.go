package memorydb

import (
	"bytes"
	"errors"
	"sort"

	"github.com/celer-network/go-ledger/db"
)

var errInvalidIterator = errors.New("invalid iterator")

type entry struct {
	key   []byte
	value []byte
}

// Iterator walks a snapshot taken when it was created; later writes are not visible.
type Iterator struct {
	entries []entry
	cursor  int
}

func inRange(key []byte, start []byte, end []byte, reverse bool) bool {
	if reverse {
		return (start == nil || bytes.Compare(key, start) <= 0) && (end == nil || bytes.Compare(key, end) > 0)
	}
	return bytes.Compare(key, start) >= 0 && (end == nil || bytes.Compare(key, end) < 0)
}

// Iterator walks keys from start towards end, exclusive. It runs in reverse when start
// sorts after end.
func (db *DB) Iterator(start []byte, end []byte) db.Iterator {
	reverse := bytes.Compare(start, end) == 1

	db.lock.RLock()
	var entries []entry
	for key, value := range db.db {
		if k := []byte(key); inRange(k, start, end, reverse) {
			entries = append(entries, entry{key: k, value: value})
		}
	}
	db.lock.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		less := bytes.Compare(entries[i].key, entries[j].key) < 0
		if reverse {
			return !less
		}
		return less
	})
	return &Iterator{entries: entries}
}

func (iter *Iterator) Next() error {
	if !iter.Valid() {
		return errInvalidIterator
	}
	iter.cursor++
	return nil
}

func (iter *Iterator) Valid() bool {
	return iter.cursor < len(iter.entries)
}

func (iter *Iterator) Key() ([]byte, error) {
	if !iter.Valid() {
		return nil, errInvalidIterator
	}
	return append([]byte{}, iter.entries[iter.cursor].key...), nil
}

func (iter *Iterator) Value() ([]byte, error) {
	if !iter.Valid() {
		return nil, errInvalidIterator
	}
	return append([]byte{}, iter.entries[iter.cursor].value...), nil
}

// Close drops the snapshot; the iterator is invalid afterwards.
func (iter *Iterator) Close() {
	iter.entries = nil
	iter.cursor = 0
}
