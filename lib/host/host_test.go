package host

import (
	"reflect"
	"sync"
	"testing"

	"github.com/ValentinKolb/sstate/lib/codec"
	"github.com/ValentinKolb/sstate/lib/store"
	"github.com/ValentinKolb/sstate/lib/store/mstore"
)

// recordingStore wraps a backing store and records the deltas it receives,
// so tests can assert that only changed keys hit the store.
type recordingStore struct {
	store.IBackingStore

	mu      sync.Mutex
	writes  []map[string][]byte
	deletes [][]string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{IBackingStore: mstore.NewMemoryStore()}
}

func (r *recordingStore) WriteItems(id string, items map[string][]byte) error {
	r.mu.Lock()
	r.writes = append(r.writes, items)
	r.mu.Unlock()
	return r.IBackingStore.WriteItems(id, items)
}

func (r *recordingStore) DeleteItems(id string, keys []string) error {
	r.mu.Lock()
	r.deletes = append(r.deletes, keys)
	r.mu.Unlock()
	return r.IBackingStore.DeleteItems(id, keys)
}

func TestLoadModifySaveCycle(t *testing.T) {
	backing := newRecordingStore()
	sessions := NewSessionHost(backing, codec.NewGOBCodec())

	// First request: fresh session, two keys.
	col, err := sessions.Load("s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if col.Dirty() {
		t.Fatal("Expected freshly loaded session to be clean")
	}

	col.Set("visits", 1)
	col.Set("name", "gopher")

	if err := sessions.Save("s1", col); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if col.Dirty() {
		t.Errorf("Expected save to reset the dirty state")
	}
	if len(backing.writes) != 1 || len(backing.writes[0]) != 2 {
		t.Fatalf("Expected one write with 2 items, got %v", backing.writes)
	}

	// Second request: values come back hydrated with their types intact.
	col, err = sessions.Load("s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if count := col.Count(); count != 2 {
		t.Fatalf("Expected 2 hydrated keys, got %d", count)
	}
	v, err := col.Get("visits")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != 1 {
		t.Errorf("Expected visits=1, got %v (%T)", v, v)
	}
}

func TestSaveWritesOnlyTheDelta(t *testing.T) {
	backing := newRecordingStore()
	sessions := NewSessionHost(backing, codec.NewGOBCodec())

	col, err := sessions.Load("s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	col.Set("a", 1)
	col.Set("b", 2)
	col.Set("c", 3)
	if err := sessions.Save("s1", col); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Next request touches one key and deletes another; only those two
	// may reach the store.
	col, err = sessions.Load("s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	col.Set("b", 20)
	if _, err := col.Get("c"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	col.Remove("c")
	if err := sessions.Save("s1", col); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if len(backing.writes) != 2 {
		t.Fatalf("Expected 2 writes, got %d", len(backing.writes))
	}
	delta := backing.writes[1]
	if len(delta) != 1 {
		t.Errorf("Expected single-key delta, got %d keys", len(delta))
	}
	if _, ok := delta["b"]; !ok {
		t.Errorf("Expected delta to contain key b, got %v", delta)
	}
	if len(backing.deletes) != 1 || !reflect.DeepEqual(backing.deletes[0], []string{"c"}) {
		t.Errorf("Expected deletion of [c], got %v", backing.deletes)
	}

	// Third request sees the merged state.
	col, err = sessions.Load("s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if keys := col.Keys(); len(keys) != 2 {
		t.Errorf("Expected keys a and b to remain, got %v", keys)
	}
	if v, _ := col.Get("b"); v != 20 {
		t.Errorf("Expected b=20, got %v", v)
	}
}

func TestSaveSkipsCleanSession(t *testing.T) {
	backing := newRecordingStore()
	sessions := NewSessionHost(backing, codec.NewGOBCodec())

	col, err := sessions.Load("s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := sessions.Save("s1", col); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if len(backing.writes) != 0 || len(backing.deletes) != 0 {
		t.Errorf("Expected clean save to skip the store, got writes=%v deletes=%v",
			backing.writes, backing.deletes)
	}
}

func TestDestroyRemovesSession(t *testing.T) {
	backing := newRecordingStore()
	sessions := NewSessionHost(backing, codec.NewGOBCodec())

	col, err := sessions.Load("s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	col.Set("a", 1)
	if err := sessions.Save("s1", col); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := sessions.Destroy("s1"); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}

	ok, err := backing.HasSession("s1")
	if err != nil {
		t.Fatalf("HasSession failed: %v", err)
	}
	if ok {
		t.Errorf("Expected session to be gone after Destroy")
	}
}
