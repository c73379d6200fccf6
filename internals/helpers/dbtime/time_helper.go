// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

// Format yang diterima dari client (urut dari paling spesifik)
var acceptedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexible: parse string waktu dari body/query. Tanpa zona → dianggap UTC.
func ParseFlexible(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("waktu kosong")
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("format waktu tidak valid: %q", s)
}

// ParseRangeBound: untuk filter ?from= / ?to=.
// Kalau hanya tanggal (YYYY-MM-DD) dan endOfDay=true → 23:59:59.999 hari itu.
func ParseRangeBound(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := ParseFlexible(s)
	if err != nil {
		return nil, err
	}
	if endOfDay && len(s) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

// NowUTC dipisah supaya gampang diganti di test
var NowUTC = func() time.Time { return time.Now().UTC() }
