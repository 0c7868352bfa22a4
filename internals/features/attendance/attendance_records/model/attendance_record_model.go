package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kursusku_backend/internals/helpers/dbtime"
)

/* =========================
   Enums (selaras dgn DB)
========================= */

type RecordStatus string

const (
	RecordStatusRecorded    RecordStatus = "recorded"
	RecordStatusNotRecorded RecordStatus = "not-recorded"
)

/* =========================================
   Model: attendance_records
   Satu baris per (class_id, date) — kunci komposit ini unik
   di antara baris hidup (partial unique index, lihat migrate).
========================================= */

type AttendanceRecordModel struct {
	// PK
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	// Kunci komposit
	AttendanceRecordClassID uuid.UUID       `gorm:"type:uuid;not null;column:attendance_record_class_id;index:idx_attendance_record_key" json:"attendance_record_class_id"`
	AttendanceRecordDate    dbtime.DateOnly `gorm:"type:date;not null;column:attendance_record_date;index:idx_attendance_record_key" json:"attendance_record_date"`

	// Snapshot kelas saat submit (denormalisasi, bukan join source-of-truth)
	AttendanceRecordClassName     string            `gorm:"type:varchar(160);not null;column:attendance_record_class_name" json:"attendance_record_class_name"`
	AttendanceRecordClassSnapshot datatypes.JSONMap `gorm:"type:jsonb;column:attendance_record_class_snapshot" json:"attendance_record_class_snapshot,omitempty"`

	// Meta sesi (opsional)
	AttendanceRecordSessionNumber *int    `gorm:"column:attendance_record_session_number" json:"attendance_record_session_number,omitempty"`
	AttendanceRecordSessionID     *string `gorm:"type:varchar(64);column:attendance_record_session_id" json:"attendance_record_session_id,omitempty"`

	// Rekap turunan — jangan diedit manual, selalu dihitung ulang dari roster final
	AttendanceRecordTotalStudents int `gorm:"not null;default:0;column:attendance_record_total_students" json:"attendance_record_total_students"`
	AttendanceRecordPresentCount  int `gorm:"not null;default:0;column:attendance_record_present_count" json:"attendance_record_present_count"`
	AttendanceRecordAbsentCount   int `gorm:"not null;default:0;column:attendance_record_absent_count" json:"attendance_record_absent_count"`
	AttendanceRecordReservedCount int `gorm:"not null;default:0;column:attendance_record_reserved_count" json:"attendance_record_reserved_count"`
	AttendanceRecordTutoredCount  int `gorm:"not null;default:0;column:attendance_record_tutored_count" json:"attendance_record_tutored_count"`

	// Lifecycle
	AttendanceRecordStatus RecordStatus `gorm:"type:varchar(20);not null;default:'not-recorded';column:attendance_record_status" json:"attendance_record_status"`

	// Optimistic concurrency: naik 1 tiap submit; submit dengan expected_revision
	// basi ditolak, bukan last-write-wins diam-diam.
	AttendanceRecordRevision int `gorm:"not null;default:0;column:attendance_record_revision" json:"attendance_record_revision"`

	// Audit
	AttendanceRecordCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_record_created_at" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_record_updated_at" json:"attendance_record_updated_at"`
	AttendanceRecordDeletedAt gorm.DeletedAt `gorm:"column:attendance_record_deleted_at;index" json:"attendance_record_deleted_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
