/*
Package swap implements cross chain atomic swap escrows.

An offerer locks tokens in a swap that a claimer can take by satisfying
its lock. Depending on the kind of the swap the lock is either a hash
preimage (HTLC) or a proof that a payment was made on a Bitcoin like
settlement chain (Chain, ChainNonced and ChainTxhash). Transaction
inclusion is attested by the relay program and checked using the x/relay
package.

If the swap is not claimed, the offerer can refund it either
cooperatively, presenting a refund message signed by the claimer, or
unilaterally once the swap has expired. The expiry is a Unix timestamp or
a settlement chain block height, whichever the value can represent.

Every swap reserves a native deposit funded by its initializer. Once the
swap is settled the reserve pays either the watchtower bounty or the
security deposit, never both, and the remainder goes back to the
initializer. Counterparties using the internal balance ledger accumulate
reputation counters for every settled swap.
*/
package swap
