package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/vx-one/voucherx/errors"
)

// cacheIter merges the materialized cache items with the backing store
// iterator. Cache entries shadow the parent for equal keys, and deleted
// markers drop the key from the combined view entirely.
type cacheIter struct {
	items   []btree.Item
	parent  Iterator
	pkey    []byte
	pvalue  []byte
	pdone   bool
	reverse bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(items []btree.Item, parent Iterator, reverse bool) (*cacheIter, error) {
	it := &cacheIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.advanceParent(); err != nil {
		it.Release()
		return nil, err
	}
	return it, nil
}

func (it *cacheIter) advanceParent() error {
	key, value, err := it.parent.Next()
	switch {
	case err == nil:
		it.pkey, it.pvalue = key, value
		return nil
	case errors.ErrIteratorDone.Is(err):
		it.pdone = true
		return nil
	default:
		return err
	}
}

// cacheFirst returns true when the head cache item comes before (in
// iteration order) or at the same position as the parent cursor.
func (it *cacheIter) cacheFirst() bool {
	if len(it.items) == 0 {
		return false
	}
	if it.pdone {
		return true
	}
	cmp := bytes.Compare(it.items[0].(keyer).Key(), it.pkey)
	if it.reverse {
		return cmp >= 0
	}
	return cmp <= 0
}

// Next returns the next key-value pair of the merged view, or
// ErrIteratorDone when both sources are exhausted.
func (it *cacheIter) Next() (key, value []byte, err error) {
	for {
		if len(it.items) == 0 && it.pdone {
			return nil, nil, errors.ErrIteratorDone
		}

		if !it.cacheFirst() {
			key, value = it.pkey, it.pvalue
			if err := it.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}

		item := it.items[0]
		it.items = it.items[1:]
		itemKey := item.(keyer).Key()

		// Shadowed parent entry must be skipped as well.
		if !it.pdone && bytes.Equal(itemKey, it.pkey) {
			if err := it.advanceParent(); err != nil {
				return nil, nil, err
			}
		}

		switch t := item.(type) {
		case setItem:
			return itemKey, t.value, nil
		case deletedItem:
			continue
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", item)
		}
	}
}

// Release frees the parent iterator and the cached items.
func (it *cacheIter) Release() {
	it.items = nil
	it.parent.Release()
}
