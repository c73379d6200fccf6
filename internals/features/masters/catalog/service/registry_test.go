package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sponsorku_backend/internals/features/masters/catalog/model"
	helper "sponsorku_backend/internals/helpers"
)

type stubLoader struct {
	data map[string][]Entry
	err  error
}

func (s *stubLoader) LoadMasters(context.Context) (map[string][]Entry, error) {
	return s.data, s.err
}

func intp(i int) *int { return &i }

func TestRegistryRefreshSwapsSnapshot(t *testing.T) {
	loader := &stubLoader{data: map[string][]Entry{
		model.TableEventCategories: {{ID: 1, Name: "Technology"}},
	}}
	r := NewRegistry(loader)

	if r.Snapshot().Has(model.TableEventCategories, 1) {
		t.Fatal("empty registry should not know id 1")
	}
	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := r.Snapshot()
	if !before.Has(model.TableEventCategories, 1) {
		t.Fatal("refresh should load id 1")
	}

	loader.data = map[string][]Entry{
		model.TableEventCategories: {{ID: 1, Name: "Technology"}, {ID: 2, Name: "Music"}},
	}
	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if before.Has(model.TableEventCategories, 2) {
		t.Fatal("old snapshot must stay immutable")
	}
	if got := r.Snapshot().Name(model.TableEventCategories, intp(2)); got != "Music" {
		t.Fatalf("name = %q", got)
	}
}

func TestRegistryRefreshFailureKeepsOldSnapshot(t *testing.T) {
	loader := &stubLoader{data: map[string][]Entry{model.TableSponsorScopes: {{ID: 3, Name: "Local"}}}}
	r := NewRegistry(loader)
	_, _ = r.Refresh(context.Background())

	loader.err = errors.New("db down")
	if _, err := r.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !r.Snapshot().Has(model.TableSponsorScopes, 3) {
		t.Fatal("snapshot should survive failed refresh")
	}
}

func TestSnapshotCheckRefs(t *testing.T) {
	s := NewSnapshot(map[string][]Entry{
		model.TableEventSizes: {{ID: 1, Name: "Small"}},
	}, time.Time{})

	if err := s.CheckRefs(Ref{Table: model.TableEventSizes, Field: "size_id", ID: intp(1)}, Ref{Table: model.TableEventModes, Field: "mode_id"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := s.CheckRefs(Ref{Table: model.TableEventSizes, Field: "size_id", ID: intp(9)})
	if helper.StatusOf(err) != 400 {
		t.Fatalf("want 400, got %v", err)
	}
	if got := s.List(model.TableEventModes); got == nil || len(got) != 0 {
		t.Fatalf("missing table should list empty, got %v", got)
	}
}

func TestRegistryConcurrentReaders(t *testing.T) {
	loader := &stubLoader{data: map[string][]Entry{model.TableSponsorTypes: {{ID: 1, Name: "Produk"}}}}
	r := NewRegistry(loader)
	_, _ = r.Refresh(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Snapshot().List(model.TableSponsorTypes)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		_, _ = r.Refresh(context.Background())
	}
	wg.Wait()
}
