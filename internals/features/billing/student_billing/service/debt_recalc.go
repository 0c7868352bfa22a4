package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentModel "kursusku_backend/internals/features/academics/students/model"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
)

/* ========================================================
   Debt Recalculation Engine.

   attended_sessions DIHITUNG ULANG dari attendance_entries
   (bukan increment) → idempoten, self-correcting kalau entri
   historis diedit/dihapus, dan aman di-backfill.

   Transisi status satu arah & terkawal:
   active → debt, HANYA saat attended > registered dan
   registered > 0. Status selain active tidak pernah disentuh,
   keluar dari debt tidak pernah otomatis.
   ======================================================== */

var ErrStudentNotFound = errors.New("murid tidak ditemukan")

type DebtRecalcService struct {
	DB *gorm.DB
}

func NewDebtRecalcService(db *gorm.DB) *DebtRecalcService {
	return &DebtRecalcService{DB: db}
}

// Recompute menjalankan count + write-back + guard transisi dalam SATU
// transaksi dengan baris murid terkunci, supaya dua submit paralel yang
// menyentuh murid yang sama tidak saling menimpa.
func (s *DebtRecalcService) Recompute(ctx context.Context, studentID, classID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student studentModel.StudentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_id = ?", studentID).
			First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		var attended int64
		if err := tx.Model(&attendanceModel.AttendanceEntryModel{}).
			Where("attendance_entry_student_id = ? AND attendance_entry_class_id = ? AND attendance_entry_status IN ?",
				studentID, classID,
				[]attendanceModel.EntryMark{attendanceModel.EntryMarkOnTime, attendanceModel.EntryMarkLate}).
			Count(&attended).Error; err != nil {
			return err
		}

		ApplyAttendedCount(&student, int(attended), time.Now().UTC())

		return tx.Save(&student).Error
	})
}

// ApplyAttendedCount menulis hasil recount ke murid dan menjalankan guard
// transisi debt. Pure terhadap store — dipisah supaya gampang diuji.
func ApplyAttendedCount(student *studentModel.StudentModel, attended int, now time.Time) {
	student.StudentAttendedSessions = attended

	remaining := student.StudentRegisteredSessions - attended
	if remaining < 0 {
		remaining = 0
	}
	student.StudentRemainingSessions = remaining
	student.StudentUpdatedAt = now

	// registered == 0 artinya kuota belum dikonfigurasi, bukan kuota nol
	if student.StudentStatus != studentModel.StudentStatusActive {
		return
	}
	if student.StudentRegisteredSessions <= 0 {
		return
	}
	// hanya kelebihan strict; attended == registered belum debt
	if attended <= student.StudentRegisteredSessions {
		return
	}

	student.StudentStatus = studentModel.StudentStatusDebt
	student.StudentDebtStartedAt = &now
	student.StudentDebtSessions = attended - student.StudentRegisteredSessions
}
