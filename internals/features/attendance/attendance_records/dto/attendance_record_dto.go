package dto

import (
	"strings"

	"github.com/google/uuid"

	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
)

/* ========================================================
   Request: submit roster absensi satu kelas satu tanggal
   ======================================================== */

type RosterEntryRequest struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	StudentName string    `json:"student_name" validate:"required,max=160"`
	StudentCode string    `json:"student_code" validate:"required,max=40"`

	// "" = pending (belum ditandai) → tidak dipersist, tidak dihitung
	Status attendanceModel.EntryMark `json:"status" validate:"omitempty,oneof=on-time late absent reserved tutored"`

	Note               *string  `json:"note,omitempty" validate:"omitempty,max=2000"`
	HomeworkCompletion *int     `json:"homework_completion,omitempty" validate:"omitempty,min=0,max=100"`
	TestName           *string  `json:"test_name,omitempty" validate:"omitempty,max=160"`
	TestScore          *float64 `json:"test_score,omitempty"`
	BonusPoints        *float64 `json:"bonus_points,omitempty"`
	Punctuality        *string  `json:"punctuality,omitempty" validate:"omitempty,max=40"`
}

type SubmitAttendanceRequest struct {
	ClassID uuid.UUID `json:"class_id" validate:"required"`
	Date    string    `json:"date" validate:"required,datetime=2006-01-02"`

	SessionNumber *int    `json:"session_number,omitempty" validate:"omitempty,min=1"`
	SessionID     *string `json:"session_id,omitempty" validate:"omitempty,max=64"`

	// Optimistic concurrency: kalau diisi dan tidak sama dengan revision
	// record saat ini, submit ditolak (409) alih-alih overwrite diam-diam.
	ExpectedRevision *int `json:"expected_revision,omitempty" validate:"omitempty,min=0"`

	Roster []RosterEntryRequest `json:"roster" validate:"required,min=1,dive"`
}

func (r *SubmitAttendanceRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	for i := range r.Roster {
		e := &r.Roster[i]
		e.StudentName = strings.TrimSpace(e.StudentName)
		e.StudentCode = strings.TrimSpace(e.StudentCode)
		e.Status = attendanceModel.EntryMark(strings.TrimSpace(string(e.Status)))
		if e.Note != nil {
			v := strings.TrimSpace(*e.Note)
			if v == "" {
				e.Note = nil
			} else {
				e.Note = &v
			}
		}
		if e.Punctuality != nil {
			v := strings.TrimSpace(*e.Punctuality)
			if v == "" {
				e.Punctuality = nil
			} else {
				e.Punctuality = &v
			}
		}
	}
}

/* ========================================================
   Responses
   ======================================================== */

type AttendanceRecordResponse struct {
	Record   attendanceModel.AttendanceRecordModel  `json:"record"`
	Entries  []attendanceModel.AttendanceEntryModel `json:"entries,omitempty"`
	Warnings []SideEffectWarning                    `json:"warnings,omitempty"`
}

// SideEffectWarning: satu efek samping per murid yang gagal (non-fatal).
type SideEffectWarning struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Stage       string    `json:"stage"` // debt-recalc | tutoring-dispatch
	Reason      string    `json:"reason"`
}
