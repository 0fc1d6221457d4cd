/*
Package relay checks attestations of a settlement chain relay.

A claim of a chain swap and a timeout refund of a height locked swap carry an
Instruction addressed to the relay program. The Checker validates that the
instruction attests exactly the fact the caller needs (a transaction with a
number of confirmations, or a comparison against the chain height) and then
asks the relay backend to confirm that fact.
*/
package relay
