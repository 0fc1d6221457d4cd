/*
Package bolt provides a persistent CommitKVStore backed by a single bbolt
database file. All writes reach the file through a batch that is applied in
one bbolt update transaction, so a cache wrap is written atomically or not
at all.
*/
package bolt

import (
	"time"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/store"
	bolt "go.etcd.io/bbolt"
)

var bucketState = []byte("state")

// Store is a KVStore persisted in a bbolt file.
type Store struct {
	db *bolt.DB
}

var _ chainswap.CommitKVStore = (*Store)(nil)

// Open returns a store using the database file at given path. The file is
// created if it does not exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open bbolt %q: %s", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create bucket: %s", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns a copy of the value stored under given key or nil.
func (s *Store) Get(key []byte) ([]byte, error) {
	var res []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Values returned by bbolt are only valid during the
		// transaction.
		if v := tx.Bucket(bucketState).Get(key); v != nil {
			res = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

// Has returns true if a value is stored under given key.
func (s *Store) Has(key []byte) (bool, error) {
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		ok = tx.Bucket(bucketState).Get(key) != nil
		return nil
	})
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Set writes a single value in its own transaction.
func (s *Store) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

// Delete removes a single value in its own transaction.
func (s *Store) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// NewBatch returns a batch that applies all its operations in a single
// bbolt transaction.
func (s *Store) NewBatch() chainswap.Batch {
	return &batch{db: s.db}
}

// CacheWrap returns a scratch pad that is flushed to the file in one
// transaction when written.
func (s *Store) CacheWrap() chainswap.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

type batch struct {
	db  *bolt.DB
	ops []chainswap.Op
}

func (b *batch) Set(key, value []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrDatabase, "empty key")
	}
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrDatabase, "empty key")
	}
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

func (b *batch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		for _, op := range b.ops {
			if err := op.Apply(bucketWriter{bucket}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	b.ops = nil
	return nil
}

func (b *batch) ShowOps() []chainswap.Op {
	return b.ops
}

// bucketWriter adapts a bbolt bucket to the SetDeleter interface.
type bucketWriter struct {
	b *bolt.Bucket
}

func (w bucketWriter) Set(key, value []byte) error {
	return w.b.Put(key, value)
}

func (w bucketWriter) Delete(key []byte) error {
	return w.b.Delete(key)
}
