package voucherx

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/vx-one/voucherx/errors"
)

// Context is just an alias for the standard implementation. We use functions
// to extract data from it, to avoid implicit coupling between packages.
// Each extension, such as auth, may add its own keys to enrich the context
// with request-specific data.
type Context = context.Context

// DefaultLogger is used for all contexts that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

type contextKey int // local to the voucherx module

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
	contextKeyTime
)

// WithHeight sets the block height into the Context.
func WithHeight(ctx Context, height int64) Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height, ok is false if no height set
// in this Context.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id into the Context.
func WithChainID(ctx Context, chainID string) Context {
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id from the context. Panics if chain id is
// not present, as the request environment must always set it.
func GetChainID(ctx Context) string {
	val, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("chain id is not in context")
	}
	return val
}

// WithLogger sets the logger on the Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger stored in the Context, or a DefaultLogger if
// none set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithBlockTime sets the block time into the Context. Time is always
// truncated to seconds precision, the resolution every persisted timestamp
// uses.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t.UTC().Truncate(time.Second))
}

// BlockTime returns the time of the request execution. This is the
// deterministic "now" every handler must use instead of time.Now.
func BlockTime(ctx Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	return val, nil
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the context. Context "now" should come from the
// execution environment and not from the local clock, to be deterministic.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic(err)
	}
	return t.Time().Before(now) || t.Time().Equal(now)
}
