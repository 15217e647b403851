package orm

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	voucherx.Persistent
	Validate() error
	Copy() Model
}

// ModelBucket is implemented by buckets that operate on Models rather than
// raw bytes. Each bucket is identified by a short name that namespaces all
// keys it writes, so many buckets can share one KVStore.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is done
	// by the primary key. The result is loaded into the given destination
	// model. This method returns ErrNotFound if the entity does not exist
	// in the database.
	One(db voucherx.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if an entity with given primary key exists.
	Has(db voucherx.ReadOnlyKVStore, key []byte) (bool, error)

	// Put saves given model in the database under the provided key. The
	// model is validated before it is persisted.
	Put(db voucherx.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db voucherx.KVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket that namespaces all keys with the
// given bucket name.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
	}
}

// isBucketName enforces a short lowercase name, so key layout stays
// predictable across all buckets.
func isBucketName(name string) bool {
	if len(name) < 3 || len(name) > 10 {
		return false
	}
	for _, c := range name {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

type modelBucket struct {
	prefix []byte
}

var _ ModelBucket = (*modelBucket)(nil)

func (b *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte(nil), b.prefix...), key...)
}

func (b *modelBucket) One(db voucherx.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

func (b *modelBucket) Has(db voucherx.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.dbKey(key))
}

func (b *modelBucket) Put(db voucherx.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	if err := db.Set(b.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (b *modelBucket) Delete(db voucherx.KVStore, key []byte) error {
	dbKey := b.dbKey(key)
	ok, err := db.Has(dbKey)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "cannot delete")
	}
	return db.Delete(dbKey)
}
