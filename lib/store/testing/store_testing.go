package testing

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/sstate/lib/store"
)

// StoreFactory is a function that creates a new instance of an
// IBackingStore implementation
type StoreFactory func() store.IBackingStore

// RunBackingStoreTests runs a comprehensive test suite for an
// IBackingStore implementation.
func RunBackingStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("WriteAndLoad", func(t *testing.T) {
			testWriteAndLoad(t, factory())
		})

		t.Run("DeltaWrite", func(t *testing.T) {
			testDeltaWrite(t, factory())
		})

		t.Run("DeleteItems", func(t *testing.T) {
			testDeleteItems(t, factory())
		})

		t.Run("DeleteSession", func(t *testing.T) {
			testDeleteSession(t, factory())
		})

		t.Run("HasSession", func(t *testing.T) {
			testHasSession(t, factory())
		})

		t.Run("SessionIsolation", func(t *testing.T) {
			testSessionIsolation(t, factory())
		})

		t.Run("BlobOwnership", func(t *testing.T) {
			testBlobOwnership(t, factory())
		})

		t.Run("ConcurrentSessions", func(t *testing.T) {
			testConcurrentSessions(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testWriteAndLoad(t *testing.T, s store.IBackingStore) {
	items, err := s.LoadSession("missing")
	if err != nil {
		t.Fatalf("LoadSession of missing session failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty map for missing session, got %d items", len(items))
	}

	want := map[string][]byte{
		"cart":   []byte("cart-blob"),
		"visits": []byte("visits-blob"),
	}
	if err := s.WriteItems("sess-1", want); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	items, err = s.LoadSession("sess-1")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if len(items) != len(want) {
		t.Errorf("Expected %d items, got %d", len(want), len(items))
	}
	for key, blob := range want {
		if !bytes.Equal(items[key], blob) {
			t.Errorf("Expected %q for key %s, got %q", blob, key, items[key])
		}
	}
}

func testDeltaWrite(t *testing.T, s store.IBackingStore) {
	if err := s.WriteItems("sess-1", map[string][]byte{
		"a": []byte("a1"),
		"b": []byte("b1"),
	}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	// A delta write updates only the keys it names.
	if err := s.WriteItems("sess-1", map[string][]byte{"b": []byte("b2")}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	items, err := s.LoadSession("sess-1")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if !bytes.Equal(items["a"], []byte("a1")) {
		t.Errorf("Expected untouched key a=a1, got %q", items["a"])
	}
	if !bytes.Equal(items["b"], []byte("b2")) {
		t.Errorf("Expected updated key b=b2, got %q", items["b"])
	}
}

func testDeleteItems(t *testing.T, s store.IBackingStore) {
	if err := s.WriteItems("sess-1", map[string][]byte{
		"a": []byte("a1"),
		"b": []byte("b1"),
	}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	// Deleting an unknown key alongside a stored one must not fail.
	if err := s.DeleteItems("sess-1", []string{"a", "unknown"}); err != nil {
		t.Fatalf("DeleteItems failed: %v", err)
	}
	if err := s.DeleteItems("missing", []string{"a"}); err != nil {
		t.Fatalf("DeleteItems on missing session failed: %v", err)
	}

	items, err := s.LoadSession("sess-1")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if _, ok := items["a"]; ok {
		t.Errorf("Expected key a to be deleted")
	}
	if !bytes.Equal(items["b"], []byte("b1")) {
		t.Errorf("Expected key b to survive, got %q", items["b"])
	}
}

func testDeleteSession(t *testing.T, s store.IBackingStore) {
	if err := s.WriteItems("sess-1", map[string][]byte{"a": []byte("a1")}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}
	if err := s.DeleteSession("sess-1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if err := s.DeleteSession("missing"); err != nil {
		t.Fatalf("DeleteSession on missing session failed: %v", err)
	}

	items, err := s.LoadSession("sess-1")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items after DeleteSession, got %d", len(items))
	}
}

func testHasSession(t *testing.T, s store.IBackingStore) {
	ok, err := s.HasSession("sess-1")
	if err != nil {
		t.Fatalf("HasSession failed: %v", err)
	}
	if ok {
		t.Errorf("Expected HasSession=false before any write")
	}

	if err := s.WriteItems("sess-1", map[string][]byte{"a": []byte("a1")}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	ok, err = s.HasSession("sess-1")
	if err != nil {
		t.Fatalf("HasSession failed: %v", err)
	}
	if !ok {
		t.Errorf("Expected HasSession=true after write")
	}

	if err := s.DeleteItems("sess-1", []string{"a"}); err != nil {
		t.Fatalf("DeleteItems failed: %v", err)
	}

	ok, err = s.HasSession("sess-1")
	if err != nil {
		t.Fatalf("HasSession failed: %v", err)
	}
	if ok {
		t.Errorf("Expected HasSession=false after all items deleted")
	}
}

func testSessionIsolation(t *testing.T, s store.IBackingStore) {
	if err := s.WriteItems("sess-1", map[string][]byte{"a": []byte("one")}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}
	if err := s.WriteItems("sess-2", map[string][]byte{"a": []byte("two")}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}
	if err := s.DeleteSession("sess-1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	items, err := s.LoadSession("sess-2")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if !bytes.Equal(items["a"], []byte("two")) {
		t.Errorf("Expected sess-2 to be unaffected, got %q", items["a"])
	}
}

func testBlobOwnership(t *testing.T, s store.IBackingStore) {
	blob := []byte("original")
	if err := s.WriteItems("sess-1", map[string][]byte{"a": blob}); err != nil {
		t.Fatalf("WriteItems failed: %v", err)
	}

	// Mutating the caller's slice after the write must not change the
	// stored blob.
	blob[0] = 'X'

	items, err := s.LoadSession("sess-1")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if !bytes.Equal(items["a"], []byte("original")) {
		t.Errorf("Store aliases the caller's blob: got %q", items["a"])
	}

	// Same the other way around: mutating a loaded blob must not change
	// what a second load returns.
	items["a"][0] = 'Y'

	again, err := s.LoadSession("sess-1")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if !bytes.Equal(again["a"], []byte("original")) {
		t.Errorf("Loaded blob aliases store state: got %q", again["a"])
	}
}

func testConcurrentSessions(t *testing.T, s store.IBackingStore) {
	const (
		numSessions = 8
		numItems    = 50
	)

	var wg sync.WaitGroup
	for i := 0; i < numSessions; i++ {
		wg.Add(1)
		go func(session int) {
			defer wg.Done()
			id := fmt.Sprintf("sess-%d", session)
			for j := 0; j < numItems; j++ {
				key := fmt.Sprintf("key-%d", j)
				value := []byte(fmt.Sprintf("value-%d-%d", session, j))
				if err := s.WriteItems(id, map[string][]byte{key: value}); err != nil {
					t.Errorf("WriteItems failed: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < numSessions; i++ {
		id := fmt.Sprintf("sess-%d", i)
		items, err := s.LoadSession(id)
		if err != nil {
			t.Fatalf("LoadSession failed: %v", err)
		}
		if len(items) != numItems {
			t.Errorf("Expected %d items in %s, got %d", numItems, id, len(items))
		}
	}
}
