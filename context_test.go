package voucherx_test

import (
	"context"
	"testing"
	"time"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/voucherxtest/assert"
)

func TestContextBlockTime(t *testing.T) {
	bg := context.Background()

	if _, err := voucherx.BlockTime(bg); err == nil {
		t.Fatal("want an error when block time is not set")
	}

	now := time.Date(2019, time.May, 5, 12, 30, 45, 987654321, time.UTC)
	ctx := voucherx.WithBlockTime(bg, now)

	got, err := voucherx.BlockTime(ctx)
	assert.Nil(t, err)

	// Always truncated to seconds precision.
	assert.Equal(t, now.Truncate(time.Second), got)
}

func TestContextIsExpired(t *testing.T) {
	now := time.Now()
	ctx := voucherx.WithBlockTime(context.Background(), now)

	past := voucherx.AsUnixTime(now.Add(-time.Hour))
	future := voucherx.AsUnixTime(now.Add(time.Hour))

	assert.Equal(t, true, voucherx.IsExpired(ctx, past))
	assert.Equal(t, false, voucherx.IsExpired(ctx, future))

	// Expiration is inclusive of "now".
	assert.Equal(t, true, voucherx.IsExpired(ctx, voucherx.AsUnixTime(now)))
}

func TestContextHeightAndChainID(t *testing.T) {
	bg := context.Background()

	if _, ok := voucherx.GetHeight(bg); ok {
		t.Fatal("want no height on an empty context")
	}
	ctx := voucherx.WithHeight(bg, 42)
	height, ok := voucherx.GetHeight(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(42), height)

	assert.Panics(t, func() { voucherx.GetChainID(bg) })
	ctx = voucherx.WithChainID(ctx, "test-chain")
	assert.Equal(t, "test-chain", voucherx.GetChainID(ctx))
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()

	// Without a logger configured a default is returned.
	if voucherx.GetLogger(bg) == nil {
		t.Fatal("want a default logger")
	}

	ctx := voucherx.WithLogger(bg, voucherx.DefaultLogger)
	assert.Equal(t, voucherx.DefaultLogger, voucherx.GetLogger(ctx))
}
