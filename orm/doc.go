/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are serialized with the amino codec the bucket was created with.
* Easy queries for one model by its primary key.
*/
package orm
