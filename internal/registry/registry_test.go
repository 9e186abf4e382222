package registry

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

func TestBuiltinVariants(t *testing.T) {
	list := List()
	if len(list) < 4 {
		t.Fatalf("List() returned %d variants, want at least 4", len(list))
	}

	for i := 1; i < len(list); i++ {
		if list[i-1].Config.BoardSize > list[i].Config.BoardSize {
			t.Errorf("List() not sorted by board size: %s before %s", list[i-1].ID, list[i].ID)
		}
	}

	classic, err := Lookup(DefaultID)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", DefaultID, err)
	}
	if classic.Config != engine.DefaultGameConfig() {
		t.Errorf("classic config = %+v", classic.Config)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); err == nil {
		t.Error("Lookup() of unknown variant should fail")
	}
	if Exists("nope") {
		t.Error("Exists() of unknown variant should be false")
	}
}

func TestRegisterAppliesDefaults(t *testing.T) {
	Register(Variant{ID: "test_defaults", Title: "Defaults"})
	v, err := Lookup("test_defaults")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if v.Config != engine.DefaultGameConfig() {
		t.Errorf("Config = %+v, want defaults", v.Config)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() of a duplicate ID should panic")
		}
	}()
	Register(Variant{ID: DefaultID})
}
