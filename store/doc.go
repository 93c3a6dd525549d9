/*
Package store implements mmr.Store: the keyed persistence capability the
mmr package reads and writes node hashes and counters through.

Memory is an in-process map, useful for tests and for accumulators that
never outlive one process. Postgres and Blob back onto
github.com/lib/pq and github.com/Azure/azure-sdk-for-go/sdk/storage/azblob
respectively, for deployments that need the accumulator to survive process
restarts or to be read from multiple processes. BloomAccelerated wraps any
Store with an in-memory filter that answers "definitely not present" for
node hashes without a round trip to the backing store.
*/
package store
