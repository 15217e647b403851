package store

import voucherx "github.com/vx-one/voucherx"

// Move references for all storage types into this package for shorter names
// everywhere.

type ReadOnlyKVStore = voucherx.ReadOnlyKVStore
type KVStore = voucherx.KVStore
type Iterator = voucherx.Iterator
type Batch = voucherx.Batch
type SetDeleter = voucherx.SetDeleter
type CacheableKVStore = voucherx.CacheableKVStore
type KVCacheWrap = voucherx.KVCacheWrap
