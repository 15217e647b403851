package voucherx

import "encoding/json"

// Handler is a core engine that can process a few specific messages.
// This could represent "create a listing", or "refund a bid".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a request. It is
// its own interface to allow better type controls in decorators.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a request.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of the
// caller's dispatch table. The dispatch table itself lives outside of this
// module.
type Registry interface {
	// Handle assigns given handler to handle processing of every message
	// of provided type. Registering a handler for a message more than once
	// is a programming error.
	Handle(msg Msg, h Handler)
}

// CheckResult captures any non-error response from validating a request
// without executing it.
type CheckResult struct {
	// Data is a machine-parseable return value, like an id.
	Data []byte

	// Log is human readable data.
	Log string

	// GasAllocated is the maximum units of work we allow this request to
	// perform.
	GasAllocated int64
}

// DeliverResult captures any non-error response from executing a request.
type DeliverResult struct {
	// Data is a machine-parseable return value, like an id.
	Data []byte

	// Log is human readable data.
	Log string
}

// Options are the runtime configuration options. Each extension can look up
// its key and parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the
// json into the given obj. Returns an error if it cannot parse. Noop and no
// error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
