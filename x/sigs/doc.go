/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

Every signer is identified by its ed25519 public key, which is also its
address. A per signer sequence must be included in each signature and is
incremented once the signature is accepted.
*/
package sigs
