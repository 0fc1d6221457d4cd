/*
Package x contains the shared building blocks of the extensions.

Extensions implement the handlers and decorators that make up the
application. Code that more than one extension depends on, such as the
authentication contract and the coin arithmetic, lives here so that the
extensions do not import each other.

Use package qualified names and avoid stutter, for example
`swap.ClaimMsg` rather than `swap.SwapClaimMsg`.
*/
package x
