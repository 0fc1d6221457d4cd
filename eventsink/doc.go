/*
Package eventsink publishes the events of applied transactions to off
chain observers such as watchtowers and indexers.

A Sink receives one Batch per applied transaction, after the state change
was committed. Publishing is best effort: the executor logs sink failures
but never reverts a committed transaction because of them.
*/
package eventsink
