package session

import (
	"fmt"
	"sync"
)

// --------------------------------------------------------------------------
// Item Type
// --------------------------------------------------------------------------

// item holds one session entry. While an item exists, at least one of
// value or serialized is set. A freshly hydrated item has only serialized
// set; value==nil is the not-yet-materialized placeholder. Once value is
// set it takes precedence for all reads and serialized becomes stale (it
// is kept but never consulted again unless re-hydrated).
type item struct {
	key        string // canonical casing
	value      any    // materialized value, nil = not materialized
	serialized []byte // raw blob as loaded from the backing store
}

// --------------------------------------------------------------------------
// Collection Implementation
// --------------------------------------------------------------------------

// collectionImpl implements ICollection with a single ordered container of
// items plus a position index, so there is no second container that could
// drift out of alignment. One mutex covers the items, the key resolver and
// the change set, making every ICollection operation safe against
// concurrent calls (in particular against two reads of different keys
// racing to materialize lazily).
type collectionImpl struct {
	mu       sync.Mutex
	dec      IDeserializer
	items    []*item
	pos      map[string]int // canonical key -> index into items
	resolver keyResolver
	changes  changeSet
}

// NewCollection creates an empty session collection that uses dec to
// materialize hydrated values on first read.
func NewCollection(dec IDeserializer) ICollection {
	return &collectionImpl{
		dec:      dec,
		pos:      make(map[string]int),
		resolver: newKeyResolver(),
		changes:  newChangeSet(),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see session.ICollection)
// --------------------------------------------------------------------------

func (c *collectionImpl) Get(name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.resolver.resolve(name)
	i, ok := c.pos[key]
	if !ok {
		return nil, nil
	}
	return c.getLocked(i)
}

func (c *collectionImpl) GetAt(index int) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIndexLocked(index); err != nil {
		return nil, err
	}
	return c.getLocked(index)
}

func (c *collectionImpl) Set(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.resolver.resolve(name)
	c.setLocked(key, value)
}

func (c *collectionImpl) SetAt(index int, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIndexLocked(index); err != nil {
		return err
	}
	c.setLocked(c.items[index].key, value)
	return nil
}

func (c *collectionImpl) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.resolver.resolve(name)
	if i, ok := c.pos[key]; ok {
		c.removeLocked(i)
	}
}

func (c *collectionImpl) RemoveAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIndexLocked(index); err != nil {
		return err
	}
	c.removeLocked(index)
	return nil
}

func (c *collectionImpl) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		c.changes.markDeleted(it.key)
	}
	c.items = nil
	c.pos = make(map[string]int)
}

func (c *collectionImpl) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

func (c *collectionImpl) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, len(c.items))
	for i, it := range c.items {
		keys[i] = it.key
	}
	return keys
}

func (c *collectionImpl) Hydrate(name string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.resolver.resolve(name)
	if i, ok := c.pos[key]; ok {
		// Re-hydration resets the materialized slot, so the next read
		// goes through the codec again.
		c.items[i].serialized = data
		c.items[i].value = nil
		return
	}
	c.pos[key] = len(c.items)
	c.items = append(c.items, &item{key: key, serialized: data})
}

func (c *collectionImpl) ModifiedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.changes.modifiedKeys()
}

func (c *collectionImpl) DeletedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.changes.deletedKeys()
}

func (c *collectionImpl) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.changes.dirty()
}

func (c *collectionImpl) SetDirty(dirty bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dirty {
		c.changes.force()
	} else {
		c.changes.reset()
	}
}

// --------------------------------------------------------------------------
// Internal Helpers (must be called with c.mu held)
// --------------------------------------------------------------------------

// getLocked materializes and returns the value at index i. The codec runs
// under the collection mutex, which guarantees it is invoked at most once
// per key even under concurrent reads.
func (c *collectionImpl) getLocked(i int) (any, error) {
	it := c.items[i]
	if it.value == nil {
		if it.serialized == nil {
			return nil, nil
		}
		value, err := c.dec.Deserialize(it.serialized)
		if err != nil {
			return nil, &Error{
				Code: RetCDeserializationFailed,
				Msg:  fmt.Sprintf("failed to deserialize value for key %q", it.key),
				Err:  err,
			}
		}
		it.value = value
	}
	if !isImmutableValue(it.value) {
		// The caller may hold on to the returned reference and mutate it
		// without ever calling Set, so the key counts as modified now.
		c.changes.markModified(it.key)
	}
	return it.value, nil
}

func (c *collectionImpl) setLocked(key string, value any) {
	c.changes.markModified(key)
	if i, ok := c.pos[key]; ok {
		// The serialized slot is left untouched: it is stale from here
		// on because the materialized value takes precedence on read.
		c.items[i].value = value
		return
	}
	c.pos[key] = len(c.items)
	c.items = append(c.items, &item{key: key, value: value})
}

// removeLocked deletes the item at index i. Deletion is only recorded as
// a change when the materialized slot holds a value: a key that was
// hydrated but never read was never exposed to the caller, so its removal
// produces no deletion signal (see doc.go).
func (c *collectionImpl) removeLocked(i int) {
	it := c.items[i]
	if j, ok := c.pos[it.key]; !ok || j != i {
		// The position index and the item container disagree. This can
		// only happen if the mutex discipline was broken and leaves the
		// collection in an undefined state.
		panic(fmt.Sprintf("session: item index desynchronized for key %q", it.key))
	}
	if it.value != nil {
		c.changes.markDeleted(it.key)
	}
	delete(c.pos, it.key)
	c.items = append(c.items[:i], c.items[i+1:]...)
	for j := i; j < len(c.items); j++ {
		c.pos[c.items[j].key] = j
	}
}

func (c *collectionImpl) checkIndexLocked(index int) error {
	if index < 0 || index >= len(c.items) {
		return NewError(RetCIndexOutOfRange, fmt.Sprintf("index %d out of range [0, %d)", index, len(c.items)))
	}
	return nil
}
