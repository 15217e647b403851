/*
Package errors implements custom error interfaces for voucherx.

The idea is to reuse a small set of root errors that are registered,
together with a numeric code, during package initialization. All errors
created during runtime wrap one of the root errors, adding context but
keeping the root as the error kind. This allows testing errors by kind
(the Is method) and reporting a stable code to the caller no matter how
many layers of wrapping were applied.

Extensions register their own root errors in their reserved code range,
using the same Register function.
*/
package errors
