/*
Package voucher implements a registry of unique, quantity-one assets.

Every voucher is identified by a 32 byte ID and held by exactly one address
at a time. The Controller issues new vouchers and transfers them between
holders, enforcing that only the current holder can give a voucher away.
The exchange extension builds listings and bids on top of this registry.
*/
package voucher
