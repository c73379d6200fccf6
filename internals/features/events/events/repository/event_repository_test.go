package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sponsorku_backend/internals/features/events/events/model"
)

// dryRunDB: gorm postgres tanpa koneksi, SQL UPDATE terakhir ditangkap.
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=x dbname=x sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	var captured string
	if err := db.Callback().Update().After("gorm:update").Register("test:capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	}); err != nil {
		t.Fatal(err)
	}
	return db, &captured
}

func TestUpdateEventWritesOnlyPatchColumns(t *testing.T) {
	db, sql := dryRunDB(t)
	repo := NewEventRepository(db)

	// hasil baca lama: fast-track masih false
	ev := &model.EventModel{
		EventID:        uuid.New(),
		EventEOID:      uuid.New(),
		EventName:      "Nama Baru",
		EventStartTime: time.Now().Add(48 * time.Hour),
		EventEndTime:   time.Now().Add(50 * time.Hour),
	}
	if err := repo.UpdateEvent(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	got := *sql
	if !strings.HasPrefix(got, `UPDATE "events" SET`) {
		t.Fatalf("unexpected sql: %s", got)
	}
	for _, col := range []string{"event_is_fasttrack", "event_eo_id", "event_created_at", "event_image_url", "event_proposal_url"} {
		if strings.Contains(got, `"`+col+`"`) {
			t.Errorf("UPDATE must not write %s: %s", col, got)
		}
	}
	for _, col := range []string{"event_name", "event_start_time", "event_end_time", "event_category_id", "event_updated_at"} {
		if !strings.Contains(got, `"`+col+`"`) {
			t.Errorf("UPDATE should write %s: %s", col, got)
		}
	}
	if !strings.Contains(got, `WHERE "event_id" = `) {
		t.Fatalf("UPDATE must target the event row: %s", got)
	}
}
