package mstore

import (
	"github.com/ValentinKolb/sstate/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
)

type storeImpl struct {
	sessions *xsync.MapOf[string, *xsync.MapOf[string, []byte]]
}

// NewMemoryStore creates a new in-memory backing store instance. Sessions
// live entirely in process memory and are lost on restart.
func NewMemoryStore() store.IBackingStore {
	return &storeImpl{
		sessions: xsync.NewMapOf[string, *xsync.MapOf[string, []byte]](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) LoadSession(id string) (map[string][]byte, error) {
	items := make(map[string][]byte)
	blobs, ok := s.sessions.Load(id)
	if !ok {
		return items, nil
	}
	blobs.Range(func(key string, blob []byte) bool {
		items[key] = cloneBlob(blob)
		return true
	})
	return items, nil
}

func (s *storeImpl) WriteItems(id string, items map[string][]byte) error {
	blobs, _ := s.sessions.LoadOrCompute(id, func() *xsync.MapOf[string, []byte] {
		return xsync.NewMapOf[string, []byte]()
	})
	for key, blob := range items {
		// Copy so the store owns its blobs and later caller-side reuse
		// of the slice cannot corrupt persisted state.
		blobs.Store(key, cloneBlob(blob))
	}
	return nil
}

func (s *storeImpl) DeleteItems(id string, keys []string) error {
	blobs, ok := s.sessions.Load(id)
	if !ok {
		return nil
	}
	for _, key := range keys {
		blobs.Delete(key)
	}
	return nil
}

func (s *storeImpl) DeleteSession(id string) error {
	s.sessions.Delete(id)
	return nil
}

func (s *storeImpl) HasSession(id string) (bool, error) {
	blobs, ok := s.sessions.Load(id)
	if !ok {
		return false, nil
	}
	return blobs.Size() > 0, nil
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

func cloneBlob(blob []byte) []byte {
	if blob == nil {
		return nil
	}
	clone := make([]byte, len(blob))
	copy(clone, blob)
	return clone
}
