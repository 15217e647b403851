/*
Package voucherx defines the common contracts shared by the voucher
exchange: addresses and conditions, messages and transactions, handlers,
and the key-value store interfaces that every extension builds upon.

The actual business logic lives in subpackages:

  x/exchange - listings, bids, settlement, refunds
  x/custody  - program-derived holding accounts
  x/cash     - payment wallets
  x/voucher  - unique asset registry

orm and store provide generic persistence, errors the error vocabulary.
The packages are wired together by the caller that dispatches requests;
nothing in this module starts servers or schedules work on its own.
*/
package voucherx
