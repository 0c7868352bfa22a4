package service

import (
	"errors"
	"strings"
)

// Kategori error submit: (1) validasi pra-I/O, (2) read, (3) write.
// Controller yang memetakan ke status HTTP; service tidak menyentuh fiber.
var (
	ErrInvalidKey       = errors.New("class_id dan date wajib diisi")
	ErrEmptyRoster      = errors.New("roster kosong")
	ErrInvalidMark      = errors.New("status absensi tidak dikenal")
	ErrDuplicateStudent = errors.New("murid yang sama muncul lebih dari sekali di roster")
	ErrClassNotFound    = errors.New("kelas tidak ditemukan")
	ErrRecordNotFound   = errors.New("attendance record tidak ditemukan")
	ErrStaleRevision    = errors.New("expected_revision basi; muat ulang data lalu submit lagi")
	ErrDuplicateRecord  = errors.New("record untuk (kelas, tanggal) ini sedang dibuat oleh submit lain")
)

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
