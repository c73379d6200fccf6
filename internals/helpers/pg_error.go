package helper

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// pgCode: ambil SQLSTATE dari error pgx maupun lib/pq
func pgCode(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsDuplicateKey: cek pelanggaran unique Postgres (SQLSTATE 23505).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if pgCode(err) == pgUniqueViolation {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, pgUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgCode(err) == pgForeignKeyViolation {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

// MapPGError: 23505 → 409, 23503/23514 → 400, sisanya 500
func MapPGError(err error) (int, string) {
	switch {
	case IsDuplicateKey(err):
		return http.StatusConflict, "Data duplikat (unique violation)."
	case IsForeignKeyViolation(err):
		return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
	case pgCode(err) == pgCheckViolation:
		return http.StatusBadRequest, "Data tidak memenuhi constraint."
	}
	return http.StatusInternalServerError, "Database error"
}

// PGAppError: bungkus error DB jadi AppError sesuai MapPGError.
// conflictMsg / internalMsg kosong → pesan default MapPGError.
func PGAppError(err error, conflictMsg, internalMsg string) *AppError {
	status, msg := MapPGError(err)
	switch status {
	case http.StatusConflict:
		if conflictMsg != "" {
			msg = conflictMsg
		}
		return ErrConflict(msg)
	case http.StatusBadRequest:
		return ErrValidation(msg)
	}
	if internalMsg != "" {
		msg = internalMsg
	}
	return ErrInternal(msg, err)
}
