package memorydb

// Bulk is a Transaction without a size limit; the map never needs to split it.
type Bulk struct {
	batch
}

func (bulk *Bulk) Set(namespace []byte, key []byte, value []byte) error {
	return bulk.set(namespace, key, value)
}

func (bulk *Bulk) Delete(namespace []byte, key []byte) error {
	return bulk.delete(namespace, key)
}

func (bulk *Bulk) Flush() error {
	return bulk.commit()
}

func (bulk *Bulk) DiscardLast() {
	bulk.discard()
}
