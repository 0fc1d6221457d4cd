/*
Package app contains the pieces that turn the extension handlers into
a running engine: the message router, the decorator chain, the
transaction format with its codec, genesis loading and the executor that
applies transactions to the committed store.

The executor is the only writer. Every transaction is delivered against
a cache wrap of the committed store that is written only if the handler
succeeds, so a failed call never leaves partial state behind.
*/
package app
