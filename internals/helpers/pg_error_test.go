package helper

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestPGAppError(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		conflictMsg string
		wantStatus  int
		wantMsg     string
	}{
		{"pgx fk violation", &pgconn.PgError{Code: "23503"}, "", http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."},
		{"wrapped fk violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), "", http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."},
		{"pq unique violation", &pq.Error{Code: "23505"}, "Sudah ada", http.StatusConflict, "Sudah ada"},
		{"unique without custom message", &pgconn.PgError{Code: "23505"}, "", http.StatusConflict, "Data duplikat (unique violation)."},
		{"check violation", &pgconn.PgError{Code: "23514"}, "", http.StatusBadRequest, "Data tidak memenuhi constraint."},
		{"plain error", errors.New("connection reset"), "", http.StatusInternalServerError, "Gagal simpan"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ae := PGAppError(tc.err, tc.conflictMsg, "Gagal simpan")
			if ae.Status != tc.wantStatus {
				t.Fatalf("status: want %d, got %d", tc.wantStatus, ae.Status)
			}
			if ae.Message != tc.wantMsg {
				t.Fatalf("message: want %q, got %q", tc.wantMsg, ae.Message)
			}
		})
	}
}

func TestPGAppErrorKeepsCauseOnInternal(t *testing.T) {
	cause := errors.New("connection reset")
	ae := PGAppError(cause, "", "")
	if !errors.Is(ae, cause) {
		t.Fatal("cause should be unwrappable")
	}
	if ae.Message != "Database error" {
		t.Fatalf("default message, got %q", ae.Message)
	}
}
