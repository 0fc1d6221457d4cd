/*
Package cash keeps token wallets.

There is no logic in the coins, except that the balance of any coin may not
go below zero and may not overflow. Thus, this implementation is referred
to as cash. Simple and safe.

A wallet holds any number of currencies. Wallets of key holders are keyed
by their public key, wallets controlled by an extension (a swap vault, a
per swap reserve) are keyed by the address of a Condition. The native
currency used for storage and security deposits is just another ticker.
*/
package cash
