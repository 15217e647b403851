package store

import (
	"bytes"
	"testing"

	"github.com/vx-one/voucherx/errors"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("hello"), []byte("world")

	if err := db.Set(k, v); err != nil {
		t.Fatalf("set: %s", err)
	}
	got, err := db.Get(k)
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	if !bytes.Equal(got, v) {
		t.Fatalf("want %q, got %q", v, got)
	}
	has, err := db.Has(k)
	if err != nil || !has {
		t.Fatalf("want key present, has=%v err=%v", has, err)
	}

	if err := db.Delete(k); err != nil {
		t.Fatalf("delete: %s", err)
	}
	got, err = db.Get(k)
	if err != nil {
		t.Fatalf("get after delete: %s", err)
	}
	if got != nil {
		t.Fatalf("want nil after delete, got %q", got)
	}
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("set: %s", err)
	}

	// Discarded writes must not be visible in the parent.
	cache := db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("set: %s", err)
	}
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("delete: %s", err)
	}
	cache.Discard()

	assertValue(t, db, "a", "1")
	assertValue(t, db, "b", "")

	// Written changes must be visible in the parent.
	cache = db.CacheWrap()
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("set: %s", err)
	}
	if err := cache.Delete([]byte("a")); err != nil {
		t.Fatalf("delete: %s", err)
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("write: %s", err)
	}

	assertValue(t, db, "a", "")
	assertValue(t, db, "b", "2")
}

func TestCacheWrapShadowsParentReads(t *testing.T) {
	db := MemStore()
	if err := db.Set([]byte("a"), []byte("old")); err != nil {
		t.Fatalf("set: %s", err)
	}

	cache := db.CacheWrap()
	if err := cache.Set([]byte("a"), []byte("new")); err != nil {
		t.Fatalf("set: %s", err)
	}

	assertValue(t, cache, "a", "new")
	assertValue(t, db, "a", "old")
}

func TestIteratorMergesCacheAndParent(t *testing.T) {
	db := MemStore()
	for _, kv := range [][2]string{{"a", "1"}, {"c", "3"}, {"d", "4"}} {
		if err := db.Set([]byte(kv[0]), []byte(kv[1])); err != nil {
			t.Fatalf("set: %s", err)
		}
	}

	cache := db.CacheWrap()
	// New key, overwrite, and delete, all within the cache layer.
	if err := cache.Set([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("set: %s", err)
	}
	if err := cache.Set([]byte("c"), []byte("three")); err != nil {
		t.Fatalf("set: %s", err)
	}
	if err := cache.Delete([]byte("d")); err != nil {
		t.Fatalf("delete: %s", err)
	}

	it, err := cache.Iterator(nil, nil)
	if err != nil {
		t.Fatalf("iterator: %s", err)
	}
	defer it.Release()

	want := [][2]string{{"a", "1"}, {"b", "2"}, {"c", "three"}}
	for _, pair := range want {
		k, v, err := it.Next()
		if err != nil {
			t.Fatalf("next: %s", err)
		}
		if string(k) != pair[0] || string(v) != pair[1] {
			t.Fatalf("want %q=%q, got %q=%q", pair[0], pair[1], k, v)
		}
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator done, got %+v", err)
	}
}

func TestReverseIterator(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c"} {
		if err := db.Set([]byte(k), []byte(k)); err != nil {
			t.Fatalf("set: %s", err)
		}
	}

	it, err := db.ReverseIterator(nil, nil)
	if err != nil {
		t.Fatalf("reverse iterator: %s", err)
	}
	defer it.Release()

	for _, want := range []string{"c", "b", "a"} {
		k, _, err := it.Next()
		if err != nil {
			t.Fatalf("next: %s", err)
		}
		if string(k) != want {
			t.Fatalf("want %q, got %q", want, k)
		}
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator done, got %+v", err)
	}
}

func assertValue(t *testing.T, db ReadOnlyKVStore, key, want string) {
	t.Helper()
	got, err := db.Get([]byte(key))
	if err != nil {
		t.Fatalf("get %q: %s", key, err)
	}
	if string(got) != want {
		t.Fatalf("key %q: want %q, got %q", key, want, got)
	}
}
