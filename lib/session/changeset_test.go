package session

import (
	"reflect"
	"testing"
)

func TestChangeSetTransitions(t *testing.T) {
	cs := newChangeSet()

	cs.markModified("a")
	cs.markDeleted("a")

	if mod := cs.modifiedKeys(); len(mod) != 0 {
		t.Errorf("Expected markDeleted to remove a from modified, got %v", mod)
	}
	if del := cs.deletedKeys(); !reflect.DeepEqual(del, []string{"a"}) {
		t.Errorf("Expected deleted [a], got %v", del)
	}

	cs.markModified("a")

	if del := cs.deletedKeys(); len(del) != 0 {
		t.Errorf("Expected markModified to remove a from deleted, got %v", del)
	}
	if mod := cs.modifiedKeys(); !reflect.DeepEqual(mod, []string{"a"}) {
		t.Errorf("Expected modified [a], got %v", mod)
	}
}

func TestChangeSetDirtyDerivation(t *testing.T) {
	cs := newChangeSet()

	if cs.dirty() {
		t.Errorf("Expected fresh change set to be clean")
	}

	cs.markModified("a")
	if !cs.dirty() {
		t.Errorf("Expected dirty after markModified")
	}

	cs.reset()
	if cs.dirty() {
		t.Errorf("Expected clean after reset")
	}

	cs.markDeleted("b")
	if !cs.dirty() {
		t.Errorf("Expected dirty after markDeleted")
	}

	cs.reset()
	cs.force()
	if !cs.dirty() {
		t.Errorf("Expected dirty after force")
	}
	if len(cs.modifiedKeys()) != 0 || len(cs.deletedKeys()) != 0 {
		t.Errorf("Expected force to leave both sets empty")
	}

	cs.reset()
	if cs.dirty() {
		t.Errorf("Expected reset to clear the forced flag")
	}
}

func TestChangeSetKeysAreSorted(t *testing.T) {
	cs := newChangeSet()

	cs.markModified("z")
	cs.markModified("a")
	cs.markModified("m")

	if mod := cs.modifiedKeys(); !reflect.DeepEqual(mod, []string{"a", "m", "z"}) {
		t.Errorf("Expected sorted keys [a m z], got %v", mod)
	}
}
