/*
Package server exposes the swap engine over HTTP.

Transactions are submitted as amino JSON to /v1/tx and applied by the
executor. State is read back through the query endpoints. Errors are
returned as {"code": uint32, "log": string} where the code is the
registered error code and the log is redacted unless debug is enabled.
*/
package server
