package session

import "strings"

// --------------------------------------------------------------------------
// Key Resolver
// --------------------------------------------------------------------------

// keyResolver funnels all casing variants of a key to one canonical
// casing, chosen when the key is first seen. The table is append-only for
// the lifetime of the collection: entries survive even after the key is
// removed, so a key deleted as "Foo" and re-added as "FOO" keeps the
// casing "Foo". Bounded growth is acceptable for a session-scoped,
// short-lived collection.
//
// Thread-safety: not synchronized on its own; the owning collection's
// mutex covers all access.
type keyResolver struct {
	canonical map[string]string // uppercased form -> first-seen casing
}

func newKeyResolver() keyResolver {
	return keyResolver{
		canonical: make(map[string]string),
	}
}

// resolve returns the canonical casing for name, registering name itself
// as canonical if its uppercased form has not been seen before.
func (r *keyResolver) resolve(name string) string {
	upper := strings.ToUpper(name)
	if key, ok := r.canonical[upper]; ok {
		return key
	}
	r.canonical[upper] = name
	return name
}
