package model

import (
	"time"

	"github.com/google/uuid"

	"kursusku_backend/internals/helpers/dbtime"
)

/* =========================
   Enums (selaras dgn DB)
========================= */

// EntryMark: status final satu murid dalam satu record absensi.
// "" (pending) adalah state transient di sisi klien dan TIDAK PERNAH disimpan.
type EntryMark string

const (
	EntryMarkOnTime   EntryMark = "on-time"
	EntryMarkLate     EntryMark = "late"
	EntryMarkAbsent   EntryMark = "absent"
	EntryMarkReserved EntryMark = "reserved"
	EntryMarkTutored  EntryMark = "tutored"
	EntryMarkPending  EntryMark = "" // transient, di-filter normalizer
)

func (m EntryMark) Valid() bool {
	switch m {
	case EntryMarkOnTime, EntryMarkLate, EntryMarkAbsent, EntryMarkReserved, EntryMarkTutored:
		return true
	default:
		return false
	}
}

// Final: mark konkret yang boleh dipersist (pending = belum final)
func (m EntryMark) Final() bool { return m.Valid() }

// CountsAsPresent: on-time & late sama-sama dihitung hadir
func (m EntryMark) CountsAsPresent() bool {
	return m == EntryMarkOnTime || m == EntryMarkLate
}

/* =========================================
   Model: attendance_entries
   Anak dari attendance_records; set entri SELALU diganti utuh
   (delete-all + insert-all) tiap re-submit kunci yang sama.
========================================= */

type AttendanceEntryModel struct {
	// PK
	AttendanceEntryID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_entry_id" json:"attendance_entry_id"`

	// Induk; satu murid maksimal satu entri per record (uq_attendance_entries_record_student)
	AttendanceEntryRecordID uuid.UUID `gorm:"type:uuid;not null;column:attendance_entry_record_id;index;uniqueIndex:uq_attendance_entries_record_student,priority:1" json:"attendance_entry_record_id"`

	// Denormalisasi konteks (ikut distempel saat replace)
	AttendanceEntryClassID       uuid.UUID       `gorm:"type:uuid;not null;column:attendance_entry_class_id;index:idx_attendance_entry_student_class" json:"attendance_entry_class_id"`
	AttendanceEntryClassName     string          `gorm:"type:varchar(160);not null;column:attendance_entry_class_name" json:"attendance_entry_class_name"`
	AttendanceEntryDate          dbtime.DateOnly `gorm:"type:date;not null;column:attendance_entry_date" json:"attendance_entry_date"`
	AttendanceEntrySessionNumber *int            `gorm:"column:attendance_entry_session_number" json:"attendance_entry_session_number,omitempty"`
	AttendanceEntrySessionID     *string         `gorm:"type:varchar(64);column:attendance_entry_session_id" json:"attendance_entry_session_id,omitempty"`

	// Murid (snapshot)
	AttendanceEntryStudentID   uuid.UUID `gorm:"type:uuid;not null;column:attendance_entry_student_id;index:idx_attendance_entry_student_class;uniqueIndex:uq_attendance_entries_record_student,priority:2" json:"attendance_entry_student_id"`
	AttendanceEntryStudentName string    `gorm:"type:varchar(160);not null;column:attendance_entry_student_name" json:"attendance_entry_student_name"`
	AttendanceEntryStudentCode string    `gorm:"type:varchar(40);not null;column:attendance_entry_student_code" json:"attendance_entry_student_code"`

	// Mark final (pending tidak pernah sampai sini)
	AttendanceEntryStatus EntryMark `gorm:"type:varchar(16);not null;column:attendance_entry_status" json:"attendance_entry_status"`

	// Detail opsional
	AttendanceEntryNote               *string  `gorm:"type:text;column:attendance_entry_note" json:"attendance_entry_note,omitempty"`
	AttendanceEntryHomeworkCompletion *int     `gorm:"column:attendance_entry_homework_completion" json:"attendance_entry_homework_completion,omitempty"`
	AttendanceEntryTestName           *string  `gorm:"type:varchar(160);column:attendance_entry_test_name" json:"attendance_entry_test_name,omitempty"`
	AttendanceEntryTestScore          *float64 `gorm:"column:attendance_entry_test_score" json:"attendance_entry_test_score,omitempty"`
	AttendanceEntryBonusPoints        *float64 `gorm:"column:attendance_entry_bonus_points" json:"attendance_entry_bonus_points,omitempty"`
	AttendanceEntryPunctuality        *string  `gorm:"type:varchar(40);column:attendance_entry_punctuality" json:"attendance_entry_punctuality,omitempty"`

	// Audit
	AttendanceEntryCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:attendance_entry_created_at" json:"attendance_entry_created_at"`
	AttendanceEntryUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:attendance_entry_updated_at" json:"attendance_entry_updated_at"`
}

func (AttendanceEntryModel) TableName() string { return "attendance_entries" }
