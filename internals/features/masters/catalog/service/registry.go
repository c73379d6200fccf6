package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"sponsorku_backend/internals/features/masters/catalog/model"
	helper "sponsorku_backend/internals/helpers"
)

/*
Registry menyimpan snapshot master (immutable) di memori.
Snapshot hanya diganti lewat Refresh (startup & endpoint admin).
Pembaca tidak pernah melihat snapshot setengah jadi.
*/

type Entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Snapshot struct {
	lists    map[string][]Entry
	names    map[string]map[int]string
	LoadedAt time.Time
}

func NewSnapshot(data map[string][]Entry, at time.Time) *Snapshot {
	s := &Snapshot{
		lists:    make(map[string][]Entry, len(data)),
		names:    make(map[string]map[int]string, len(data)),
		LoadedAt: at,
	}
	for table, entries := range data {
		cp := append([]Entry(nil), entries...)
		s.lists[table] = cp
		idx := make(map[int]string, len(cp))
		for _, e := range cp {
			idx[e.ID] = e.Name
		}
		s.names[table] = idx
	}
	return s
}

// List: salinan entri satu tabel (tidak pernah nil)
func (s *Snapshot) List(table string) []Entry {
	out := append([]Entry(nil), s.lists[table]...)
	if out == nil {
		out = []Entry{}
	}
	return out
}

func (s *Snapshot) Has(table string, id int) bool {
	_, ok := s.names[table][id]
	return ok
}

func (s *Snapshot) Name(table string, id *int) string {
	if id == nil {
		return ""
	}
	return s.names[table][*id]
}

// Entry: {id,name} untuk response, nil kalau id nil
func (s *Snapshot) Entry(table string, id *int) *Entry {
	if id == nil {
		return nil
	}
	return &Entry{ID: *id, Name: s.names[table][*id]}
}

// Ref: satu referensi FK ke master untuk divalidasi
type Ref struct {
	Table string
	Field string
	ID    *int
}

// CheckRefs: nil ID dilewati, ID tak dikenal → 400
func (s *Snapshot) CheckRefs(refs ...Ref) error {
	for _, r := range refs {
		if r.ID == nil {
			continue
		}
		if !s.Has(r.Table, *r.ID) {
			return helper.ErrValidation(fmt.Sprintf("%s tidak valid", r.Field))
		}
	}
	return nil
}

/* =======================================================================
   Registry
======================================================================= */

type Loader interface {
	LoadMasters(ctx context.Context) (map[string][]Entry, error)
}

type Registry struct {
	loader Loader
	snap   atomic.Pointer[Snapshot]
	now    func() time.Time
}

func NewRegistry(loader Loader) *Registry {
	r := &Registry{loader: loader, now: time.Now}
	r.snap.Store(NewSnapshot(nil, time.Time{}))
	return r
}

// NewStaticRegistry: registry dengan snapshot tetap (test)
func NewStaticRegistry(data map[string][]Entry) *Registry {
	r := &Registry{now: time.Now}
	r.snap.Store(NewSnapshot(data, time.Now()))
	return r
}

func (r *Registry) Snapshot() *Snapshot {
	return r.snap.Load()
}

// Refresh: baca ulang semua tabel lalu tukar snapshot secara atomik.
// Kalau loader gagal snapshot lama tetap dipakai.
func (r *Registry) Refresh(ctx context.Context) (*Snapshot, error) {
	if r.loader == nil {
		return r.Snapshot(), nil
	}
	data, err := r.loader.LoadMasters(ctx)
	if err != nil {
		return nil, err
	}
	s := NewSnapshot(data, r.now())
	r.snap.Store(s)

	total := 0
	for _, v := range data {
		total += len(v)
	}
	log.Info().Int("entries", total).Msg("[CATALOG] snapshot refreshed")
	return s, nil
}

/* =======================================================================
   GORM loader
======================================================================= */

type GormLoader struct {
	DB *gorm.DB
}

func (l GormLoader) LoadMasters(ctx context.Context) (map[string][]Entry, error) {
	out := make(map[string][]Entry, len(model.AllTables))
	for _, table := range model.AllTables {
		var rows []model.Master
		if err := l.DB.WithContext(ctx).Table(table).Order("id ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load %s: %w", table, err)
		}
		entries := make([]Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, Entry{ID: row.ID, Name: row.Name})
		}
		out[table] = entries
	}
	return out, nil
}
