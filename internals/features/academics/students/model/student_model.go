package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums (selaras dgn DB)
========================= */

type StudentStatus string

const (
	StudentStatusActive       StudentStatus = "active"
	StudentStatusDebt         StudentStatus = "debt"
	StudentStatusContractDebt StudentStatus = "contract-debt"
	StudentStatusReserved     StudentStatus = "reserved"
	StudentStatusDropped      StudentStatus = "dropped"
	StudentStatusTrial        StudentStatus = "trial"
	StudentStatusExpiredFee   StudentStatus = "expired-fee"
)

func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusDebt, StudentStatusContractDebt,
		StudentStatusReserved, StudentStatusDropped, StudentStatusTrial,
		StudentStatusExpiredFee:
		return true
	default:
		return false
	}
}

/* =========================================
   Model: students (irisan billing)
========================================= */

type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	// Identitas
	StudentName  string  `gorm:"type:varchar(160);not null;column:student_name" json:"student_name"`
	StudentCode  string  `gorm:"type:varchar(40);not null;uniqueIndex;column:student_code" json:"student_code"`
	StudentPhone *string `gorm:"type:varchar(32);column:student_phone" json:"student_phone,omitempty"`

	// Relasi kelas aktif (sumber hitung attended_sessions)
	StudentClassID *uuid.UUID `gorm:"type:uuid;column:student_class_id;index" json:"student_class_id,omitempty"`

	// Kuota & counter billing.
	// attended_sessions SELALU hasil recount dari attendance_entries,
	// bukan akumulasi increment — jangan diedit manual.
	StudentRegisteredSessions int `gorm:"not null;default:0;column:student_registered_sessions" json:"student_registered_sessions"`
	StudentAttendedSessions   int `gorm:"not null;default:0;column:student_attended_sessions" json:"student_attended_sessions"`
	StudentRemainingSessions  int `gorm:"not null;default:0;column:student_remaining_sessions" json:"student_remaining_sessions"`

	// State machine billing: active → debt satu arah, dikawal DebtRecalcService
	StudentStatus        StudentStatus `gorm:"type:varchar(20);not null;default:'active';column:student_status" json:"student_status"`
	StudentDebtStartedAt *time.Time    `gorm:"type:timestamptz;column:student_debt_started_at" json:"student_debt_started_at,omitempty"`
	StudentDebtSessions  int           `gorm:"not null;default:0;column:student_debt_sessions" json:"student_debt_sessions"`

	// Audit
	StudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:student_updated_at" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }
