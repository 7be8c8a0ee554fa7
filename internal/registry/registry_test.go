package registry

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/autoloader/manifest"
)

func entry(id, path string) manifest.DefinitionFile {
	return manifest.DefinitionFile{Definition: manifest.Definition{ID: id, Kind: manifest.KindPackage}, Path: path}
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New()
	if err := reg.Register(entry("acme/widget", "a.yaml")); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, ok := reg.Lookup("acme/widget")
	if !ok || got.Path != "a.yaml" {
		t.Fatalf("lookup returned %+v, %v", got, ok)
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Fatalf("unexpected entry for missing id")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := New()
	if err := reg.Register(entry("acme/widget", "a.yaml")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(entry("acme/widget", "b.yaml")); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if err := reg.Register(entry("", "c.yaml")); err == nil {
		t.Fatalf("expected empty id error")
	}
}

func TestRegisterAllRollsBack(t *testing.T) {
	reg := New()
	if err := reg.Register(entry("acme/gadget", "old.yaml")); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := reg.RegisterAll([]manifest.DefinitionFile{
		entry("acme/widget", "new.yaml#1"),
		entry("acme/gadget", "new.yaml#2"),
	})
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if diff := cmp.Diff([]string{"acme/gadget"}, reg.IDs()); diff != "" {
		t.Fatalf("registry should be untouched (-want +got):\n%s", diff)
	}
}

func TestEntriesSorted(t *testing.T) {
	reg := New()
	for _, id := range []string{"c", "a", "b"} {
		if err := reg.Register(entry(id, id+".toml")); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}
	var ids []string
	for _, e := range reg.Entries() {
		ids = append(ids, e.Definition.ID)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Fatalf("entries order (-want +got):\n%s", diff)
	}
	if reg.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", reg.Len())
	}
}

func TestConcurrentRegister(t *testing.T) {
	reg := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = reg.Register(entry(string(rune('a'+i%26))+"/pkg", "m.yaml"))
			_ = reg.IDs()
		}(i)
	}
	wg.Wait()
	if reg.Len() != 26 {
		t.Fatalf("expected 26 distinct ids, got %d", reg.Len())
	}
}
