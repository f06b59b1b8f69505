package host

import (
	"fmt"

	"github.com/ValentinKolb/sstate/lib/codec"
	"github.com/ValentinKolb/sstate/lib/session"
	"github.com/ValentinKolb/sstate/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("host")

// Counters for monitoring session traffic. Exposed through the default
// metrics set; applications serve them via metrics.WritePrometheus.
var (
	metricSessionLoads  = metrics.NewCounter(`sstate_session_loads_total`)
	metricSessionSaves  = metrics.NewCounter(`sstate_session_saves_total`)
	metricSavesSkipped  = metrics.NewCounter(`sstate_session_saves_skipped_total`)
	metricItemsWritten  = metrics.NewCounter(`sstate_session_items_written_total`)
	metricItemsDeleted  = metrics.NewCounter(`sstate_session_items_deleted_total`)
	metricSessionsEnded = metrics.NewCounter(`sstate_sessions_destroyed_total`)
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// ISessionHost loads session collections from a backing store and writes
// their changes back. One Load/Save pair brackets one request: Load
// hydrates a fresh collection, the application mutates it, Save persists
// exactly the delta the collection tracked and resets its dirty state.
type ISessionHost interface {
	// Load returns a new collection hydrated with every blob stored for
	// the session. The returned collection is not dirty.
	Load(id string) (col session.ICollection, err error)
	// Save writes the collection's modified keys, deletes its deleted
	// keys and resets the dirty state. A collection that is not dirty is
	// not written at all.
	Save(id string, col session.ICollection) (err error)
	// Destroy removes the session and all its items from the backing
	// store.
	Destroy(id string) (err error)
}

// NewSessionHost creates a session host on top of the given backing store
// and codec. The codec must be the same one the stored blobs were written
// with.
func NewSessionHost(backing store.IBackingStore, c codec.ICodec) ISessionHost {
	return &hostImpl{
		backing: backing,
		codec:   c,
	}
}

type hostImpl struct {
	backing store.IBackingStore
	codec   codec.ICodec
}

// --------------------------------------------------------------------------
// Interface Methods (docu see host.ISessionHost)
// --------------------------------------------------------------------------

func (h *hostImpl) Load(id string) (session.ICollection, error) {
	items, err := h.backing.LoadSession(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	col := session.NewCollection(h.codec)
	for key, blob := range items {
		col.Hydrate(key, blob)
	}

	metricSessionLoads.Inc()
	Logger.Debugf("loaded session %s with %d item(s)", id, len(items))
	return col, nil
}

func (h *hostImpl) Save(id string, col session.ICollection) error {
	if !col.Dirty() {
		metricSavesSkipped.Inc()
		Logger.Debugf("session %s not dirty, skipping save", id)
		return nil
	}

	modified := col.ModifiedKeys()
	deleted := col.DeletedKeys()

	if len(modified) > 0 {
		blobs := make(map[string][]byte, len(modified))
		for _, key := range modified {
			value, err := col.Get(key)
			if err != nil {
				return fmt.Errorf("failed to read modified key %q of session %s: %w", key, id, err)
			}
			blob, err := h.codec.Serialize(value)
			if err != nil {
				return fmt.Errorf("failed to serialize key %q of session %s: %w", key, id, err)
			}
			blobs[key] = blob
		}
		if err := h.backing.WriteItems(id, blobs); err != nil {
			return fmt.Errorf("failed to write session %s: %w", id, err)
		}
		metricItemsWritten.Add(len(blobs))
	}

	if len(deleted) > 0 {
		if err := h.backing.DeleteItems(id, deleted); err != nil {
			return fmt.Errorf("failed to delete keys of session %s: %w", id, err)
		}
		metricItemsDeleted.Add(len(deleted))
	}

	col.SetDirty(false)

	metricSessionSaves.Inc()
	Logger.Debugf("saved session %s (%d written, %d deleted)", id, len(modified), len(deleted))
	return nil
}

func (h *hostImpl) Destroy(id string) error {
	if err := h.backing.DeleteSession(id); err != nil {
		return fmt.Errorf("failed to destroy session %s: %w", id, err)
	}
	metricSessionsEnded.Inc()
	Logger.Infof("destroyed session %s", id)
	return nil
}
