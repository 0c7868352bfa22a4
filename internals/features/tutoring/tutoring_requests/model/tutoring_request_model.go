package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/helpers/dbtime"
)

/* =========================
   Enums (selaras dgn DB)
========================= */

type TutoringStatus string

const (
	TutoringStatusUnscheduled TutoringStatus = "unscheduled"
	TutoringStatusScheduled   TutoringStatus = "scheduled"
	TutoringStatusDone        TutoringStatus = "done"
	TutoringStatusCanceled    TutoringStatus = "canceled"
)

func (s TutoringStatus) Valid() bool {
	switch s {
	case TutoringStatusUnscheduled, TutoringStatusScheduled, TutoringStatusDone, TutoringStatusCanceled:
		return true
	default:
		return false
	}
}

/* =========================================
   Model: tutoring_requests
   Dibuat otomatis oleh dispatcher tiap ada murid absen.
========================================= */

type TutoringRequestModel struct {
	// PK
	TutoringRequestID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:tutoring_request_id" json:"tutoring_request_id"`

	// Murid & kelas (snapshot)
	TutoringRequestStudentID   uuid.UUID `gorm:"type:uuid;not null;column:tutoring_request_student_id;index:idx_tutoring_request_absence" json:"tutoring_request_student_id"`
	TutoringRequestStudentName string    `gorm:"type:varchar(160);not null;column:tutoring_request_student_name" json:"tutoring_request_student_name"`
	TutoringRequestClassID     uuid.UUID `gorm:"type:uuid;not null;column:tutoring_request_class_id;index:idx_tutoring_request_absence" json:"tutoring_request_class_id"`
	TutoringRequestClassName   string    `gorm:"type:varchar(160);not null;column:tutoring_request_class_name" json:"tutoring_request_class_name"`

	// Tanggal absen yang memicu request ini
	TutoringRequestAbsentDate dbtime.DateOnly `gorm:"type:date;not null;column:tutoring_request_absent_date;index:idx_tutoring_request_absence" json:"tutoring_request_absent_date"`

	TutoringRequestStatus TutoringStatus `gorm:"type:varchar(16);not null;default:'unscheduled';column:tutoring_request_status" json:"tutoring_request_status"`
	TutoringRequestNote   *string        `gorm:"type:text;column:tutoring_request_note" json:"tutoring_request_note,omitempty"`

	// Audit
	TutoringRequestCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:tutoring_request_created_at" json:"tutoring_request_created_at"`
	TutoringRequestUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:tutoring_request_updated_at" json:"tutoring_request_updated_at"`
	TutoringRequestDeletedAt gorm.DeletedAt `gorm:"column:tutoring_request_deleted_at;index" json:"tutoring_request_deleted_at,omitempty"`
}

func (TutoringRequestModel) TableName() string { return "tutoring_requests" }
