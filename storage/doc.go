// Package storage defines the optional persistent vector cache the matcher
// consults before computing taxonomy embeddings. The badger subpackage
// provides the BadgerDB-backed implementation; the matcher itself only
// depends on the VectorCache interface and works without any cache at all.
package storage
