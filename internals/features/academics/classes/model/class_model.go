package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* =========================================
   Model: classes
========================================= */

type ClassModel struct {
	// PK
	ClassID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`

	// Identitas kelas
	ClassName string `gorm:"type:varchar(160);not null;column:class_name" json:"class_name"`
	ClassCode string `gorm:"type:varchar(40);not null;uniqueIndex;column:class_code" json:"class_code"`

	// Jadwal ringkas (mis. ["mon","wed","fri"])
	ClassMeetingDays pq.StringArray `gorm:"type:text[];column:class_meeting_days" json:"class_meeting_days,omitempty"`

	// Total pertemuan dalam kurikulum kelas (untuk session_number)
	ClassSessionTotal int `gorm:"not null;default:0;column:class_session_total" json:"class_session_total"`

	ClassNote *string `gorm:"type:text;column:class_note" json:"class_note,omitempty"`

	// Audit
	ClassCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:class_updated_at" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }
