/*
Package cash defines a simple wallet ledger.

Each wallet is stored under an address and holds a normalized set of coins.
The Controller moves and issues coins between wallets and is the funds
backend used by the custody ledger and the exchange settlement engine. A
SendMsg handler exposes direct wallet-to-wallet transfers.
*/
package cash
