package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/chainswap/errors"
)

// DefaultFreeListSize is the number of btree nodes kept for reuse by all
// cache layers created from one root.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable adds a btree cache wrap to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a store without persistence. Executors and tests use it
// as the committed state when no database is configured.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// ShowOpser returns an ordered list of all operations performed
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore returns a store together with a view of every operation
// written through it.
func LogableStore() (CacheableKVStore, ShowOpser) {
	e := EmptyKVStore{}
	b := NewNonAtomicBatch(e)
	return NewBTreeCacheWrap(e, b, nil), b
}

// BTreeCacheWrap is the scratch pad a transaction runs against. Reads see
// the cached writes first and fall back to the wrapped store. Writes reach
// the wrapped store only through the batch, when Write is called, so a
// discarded wrap leaves no trace.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap creates a cache over kv that writes into batch.
// free may be nil. Pass the list of a parent layer to share its nodes.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another cache on top of this one. The new layer writes
// into this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all cached operations to the wrapped store and empties
// the cache. The cache is emptied even if the flush fails.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	if err != nil {
		return errors.Wrap(err, "write cache")
	}
	return nil
}

// Discard drops all cached operations.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
	if d, ok := b.batch.(discarder); ok {
		d.discard()
	}
}

type discarder interface {
	discard()
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	key, value = clone(key), clone(value)
	b.bt.ReplaceOrInsert(setItem{bkey{key}, value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	key = clone(key)
	b.bt.ReplaceOrInsert(deletedItem{bkey{key}})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	value, cached, err := b.lookup(key)
	if err != nil || cached {
		return value, err
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	value, cached, err := b.lookup(key)
	if err != nil {
		return false, err
	}
	if cached {
		return value != nil, nil
	}
	return b.back.Has(key)
}

// lookup returns the cached value of a key. cached is false when this layer
// never touched the key. A deleted key is cached with a nil value.
func (b BTreeCacheWrap) lookup(key []byte) (value []byte, cached bool, err error) {
	switch it := b.bt.Get(bkey{key}).(type) {
	case nil:
		return nil, false, nil
	case setItem:
		// Set values are never nil so that Has can tell them from
		// deletions.
		if it.value == nil {
			return []byte{}, true, nil
		}
		return it.value, true, nil
	case deletedItem:
		return nil, true, nil
	default:
		return nil, false, errors.Wrapf(errors.ErrDatabase, "unknown cache item %T", it)
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}

// keyer is implemented by every item stored in the btree.
type keyer interface {
	Key() []byte
}

// bkey is both the query item and the base of stored items.
type bkey struct {
	key []byte
}

var (
	_ keyer      = bkey{}
	_ btree.Item = bkey{}
)

func (k bkey) Key() []byte {
	return k.key
}

func (k bkey) Less(item btree.Item) bool {
	return bytes.Compare(k.key, item.(keyer).Key()) < 0
}

type deletedItem struct {
	bkey
}

type setItem struct {
	bkey
	value []byte
}
