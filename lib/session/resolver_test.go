package session

import "testing"

func TestResolverFirstSeenCasingWins(t *testing.T) {
	r := newKeyResolver()

	if key := r.resolve("Foo"); key != "Foo" {
		t.Errorf("Expected first resolve to return the name unchanged, got %s", key)
	}
	if key := r.resolve("FOO"); key != "Foo" {
		t.Errorf("Expected canonical casing Foo, got %s", key)
	}
	if key := r.resolve("foo"); key != "Foo" {
		t.Errorf("Expected canonical casing Foo, got %s", key)
	}

	// A different key is unaffected.
	if key := r.resolve("bar"); key != "bar" {
		t.Errorf("Expected bar, got %s", key)
	}
}

func TestResolverEntriesSurviveForCollectionLifetime(t *testing.T) {
	col, _ := newTestCollection()

	// The normalization table is append-only: deleting a key keeps its
	// canonical casing for any later re-add.
	col.Set("CamelCase", 1)
	col.Remove("camelcase")
	col.Set("CAMELCASE", 2)

	if keys := col.Keys(); len(keys) != 1 || keys[0] != "CamelCase" {
		t.Errorf("Expected re-added key to keep casing CamelCase, got %v", keys)
	}
}
