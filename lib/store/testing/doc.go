// Package testing provides a reusable conformance test suite for
// store.IBackingStore implementations. Implementations call
// RunBackingStoreTests from their own test file with a factory that
// creates a fresh store per subtest.
package testing
