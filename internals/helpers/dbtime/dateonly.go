package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateOnly: kolom DATE di Postgres, kunci komposit absensi (class_id, date).
// Selalu dinormalisasi ke tengah malam UTC supaya perbandingan kunci stabil.
type DateOnly struct{ time.Time }

// FromTime: bikin DateOnly dari time.Time (buang jam & zona)
func FromTime(t time.Time) DateOnly {
	return DateOnly{
		Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// ParseDate: bikin DateOnly dari string "YYYY-MM-DD"
func ParseDate(s string) (DateOnly, error) {
	var d DateOnly
	return d, d.parse(s)
}

// Scan: terima time.Time atau string "YYYY-MM-DD"
func (d *DateOnly) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*d = FromTime(x)
		return nil
	case []byte:
		return d.parse(string(x))
	case string:
		return d.parse(x)
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("dateonly: unsupported Scan type %T", v)
	}
}

func (d *DateOnly) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		// toleran terhadap timestamp penuh, ambil bagian tanggalnya
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = FromTime(t)
	return nil
}

// Value: kirim "YYYY-MM-DD" agar Postgres DATE paham
func (d DateOnly) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Format("2006-01-02"), nil
}

func (d DateOnly) String() string { return d.Format("2006-01-02") }

// Equal membandingkan dua kunci tanggal tanpa peduli zona asal.
func (d DateOnly) Equal(other DateOnly) bool {
	return d.Format("2006-01-02") == other.Format("2006-01-02")
}

// JSON codec biar konsisten "YYYY-MM-DD"
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	return d.parse(s)
}
