/*
Package custody implements program-controlled holding accounts.

A custody account address is derived from a tag, a list of seeds and a one
byte nonce. The nonce is discovered at creation time as the highest value
whose derived address is still free, and is stored on the owning record so
the derivation can be replayed later. Withdrawing from or closing a custody
account requires presenting the full derivation again; if the re-derived
address does not match, the request is rejected. This makes the funds and
vouchers parked in custody reachable only through the extension that knows
the derivation, never through a plain signature.
*/
package custody
