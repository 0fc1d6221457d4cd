/*
Package btc decodes raw settlement chain transactions and builds the values
that swaps commit to.

ParseTx reads only what the escrow engine needs from a legacy (non-segwit)
transaction: the version, the sequence field of the inputs, a single
selected output and the locktime. Every read is bounds checked, so a
truncated or otherwise malformed transaction results in an error and never
in a panic.
*/
package btc
