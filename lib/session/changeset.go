package session

import "sort"

// --------------------------------------------------------------------------
// Change Set
// --------------------------------------------------------------------------

// changeSet tracks which canonical keys were modified or deleted since the
// last reset. The two sets are mutually exclusive: marking a key in one
// removes it from the other. The dirty flag is derived (non-empty sets)
// but can additionally be forced true without touching either set.
//
// Thread-safety: not synchronized on its own; the owning collection's
// mutex covers all access.
type changeSet struct {
	modified map[string]struct{}
	deleted  map[string]struct{}
	forced   bool
}

func newChangeSet() changeSet {
	return changeSet{
		modified: make(map[string]struct{}),
		deleted:  make(map[string]struct{}),
	}
}

// markModified records key as added/changed, withdrawing a pending
// deletion for the same key if present.
func (c *changeSet) markModified(key string) {
	delete(c.deleted, key)
	c.modified[key] = struct{}{}
}

// markDeleted records key as deleted, withdrawing a pending modification
// for the same key if present.
func (c *changeSet) markDeleted(key string) {
	delete(c.modified, key)
	c.deleted[key] = struct{}{}
}

func (c *changeSet) dirty() bool {
	return c.forced || len(c.modified) > 0 || len(c.deleted) > 0
}

// force sets the dirty flag without touching either set.
func (c *changeSet) force() {
	c.forced = true
}

// reset clears both sets and the forced flag (commit-and-reset).
func (c *changeSet) reset() {
	c.modified = make(map[string]struct{})
	c.deleted = make(map[string]struct{})
	c.forced = false
}

func (c *changeSet) modifiedKeys() []string {
	return sortedKeys(c.modified)
}

func (c *changeSet) deletedKeys() []string {
	return sortedKeys(c.deleted)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
