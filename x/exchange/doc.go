/*
Package exchange implements an escrow based marketplace for vouchers.

An owner lists a voucher at a fixed price, moving it into a custody account
until the listing is fulfilled or cancelled. A buyer can instead place a
bid, escrowing the offered funds the same way. Settlement is atomic within
a request: the payment is split between the seller and the fee destination
and the voucher changes holder, or nothing happens at all.

A sale leaves a durable per-voucher record. Bids that outlive a sale are
unwound in two phases: the registry authority marks them for refund, then
each bidder reclaims their escrowed funds in a request of their own. This
avoids iterating an unbounded set of competing bids inside a settlement.
*/
package exchange
