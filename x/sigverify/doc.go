/*
Package sigverify checks ed25519 signature verification instructions.

An instruction carries exactly one signature in the layout of the ed25519
signature verification program: a 16 byte header followed by the public
key, the signature and the signed 32 byte message digest. The Checker
requires the instruction to be addressed to the configured program, to have
that exact shape and to attest the expected signer and digest. The
signature itself is verified as well.
*/
package sigverify
