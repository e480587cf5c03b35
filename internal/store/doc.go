// Package store provides file-based persistence for the session core.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. Writes go through a temp file and an
// atomic rename. All methods are concurrency-safe via internal locking.
//
// The package includes:
//   - Instance tags (InstanceTagFileStore)
package store
