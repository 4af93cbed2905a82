package lsp

import (
	"sync"
	"testing"
)

const testURI = "file:///tmp/dusk.hcl"

func TestDocumentStore_OpenAnalyzes(t *testing.T) {
	store := NewDocumentStore()

	result := store.Open(testURI, 1, "palette {\n  red = rgb(255, 0, 0)\n}\n")
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	doc, ok := store.Get(testURI)
	if !ok {
		t.Fatal("document not found after opening")
	}
	if doc.Version != 1 || doc.Result != result {
		t.Errorf("stored document = %+v, want version 1 and the returned result", doc)
	}
	if len(doc.Result.Colors) != 1 {
		t.Errorf("got %d colors, want 1", len(doc.Result.Colors))
	}
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()
	store.Open(testURI, 1, "palette {}\n")

	result := store.Update(testURI, 2, "palette {\n  red = rgb(300, 0, 0)\n}\n")
	if len(result.Diagnostics) == 0 {
		t.Error("expected diagnostics for out-of-range channel")
	}

	doc, _ := store.Get(testURI)
	if doc.Version != 2 {
		t.Errorf("version = %d, want 2", doc.Version)
	}
}

func TestDocumentStore_StaleUpdateIgnored(t *testing.T) {
	store := NewDocumentStore()
	store.Open(testURI, 5, "palette {}\n")
	store.Update(testURI, 3, "stale")

	doc, _ := store.Get(testURI)
	if doc.Content != "palette {}\n" || doc.Version != 5 {
		t.Errorf("stale update applied: %+v", doc)
	}
}

func TestDocumentStore_Close(t *testing.T) {
	store := NewDocumentStore()
	store.Open(testURI, 1, "palette {}\n")
	store.Close(testURI)

	if _, ok := store.Get(testURI); ok {
		t.Error("document still present after close")
	}
}

func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	store.Open(testURI, 0, "palette {}\n")

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Update(testURI, int32(n), "palette {}\n")
			store.Get(testURI)
		}(i)
	}
	wg.Wait()

	doc, ok := store.Get(testURI)
	if !ok {
		t.Fatal("document not found after concurrent updates")
	}
	if doc.Version != 9 {
		t.Errorf("version = %d, want the newest (9)", doc.Version)
	}
}
