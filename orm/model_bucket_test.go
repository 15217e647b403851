package orm

import (
	"encoding/binary"
	"testing"

	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/store"
)

// counter is a minimal model used to exercise the bucket.
type counter struct {
	Count uint64
}

func (c *counter) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, c.Count)
	return raw, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrInput, "invalid length %d", len(raw))
	}
	c.Count = binary.LittleEndian.Uint64(raw)
	return nil
}

func (c *counter) Validate() error {
	return nil
}

func (c *counter) Copy() Model {
	cpy := *c
	return &cpy
}

func TestModelBucketPutAndOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	if err := b.Put(db, []byte("a"), &counter{Count: 5}); err != nil {
		t.Fatalf("put: %s", err)
	}

	var got counter
	if err := b.One(db, []byte("a"), &got); err != nil {
		t.Fatalf("one: %s", err)
	}
	if got.Count != 5 {
		t.Fatalf("want 5, got %d", got.Count)
	}

	if err := b.One(db, []byte("unknown"), &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestModelBucketNamespacing(t *testing.T) {
	db := store.MemStore()
	first := NewModelBucket("aaa")
	second := NewModelBucket("bbb")

	if err := first.Put(db, []byte("k"), &counter{Count: 1}); err != nil {
		t.Fatalf("put: %s", err)
	}

	var got counter
	if err := second.One(db, []byte("k"), &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("buckets must not share keys, got %+v", err)
	}
}

func TestModelBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	if err := b.Delete(db, []byte("a")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}

	if err := b.Put(db, []byte("a"), &counter{Count: 1}); err != nil {
		t.Fatalf("put: %s", err)
	}
	if err := b.Delete(db, []byte("a")); err != nil {
		t.Fatalf("delete: %s", err)
	}
	ok, err := b.Has(db, []byte("a"))
	if err != nil {
		t.Fatalf("has: %s", err)
	}
	if ok {
		t.Fatal("entity must be gone after delete")
	}
}

func TestModelBucketRejectsEmptyKey(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	if err := b.Put(db, nil, &counter{}); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty key error, got %+v", err)
	}
}

func TestNewModelBucketRejectsBadName(t *testing.T) {
	for _, name := range []string{"", "ab", "UPPER", "with space", "waytoolongname"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("bucket name %q must panic", name)
				}
			}()
			NewModelBucket(name)
		}()
	}
}
