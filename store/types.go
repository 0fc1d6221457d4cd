// nolint
package store

import "github.com/iov-one/chainswap"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = chainswap.ReadOnlyKVStore
type SetDeleter = chainswap.SetDeleter
type KVStore = chainswap.KVStore
type Batch = chainswap.Batch
type Op = chainswap.Op
type CacheableKVStore = chainswap.CacheableKVStore
type KVCacheWrap = chainswap.KVCacheWrap
type CommitKVStore = chainswap.CommitKVStore
