package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tutoringModel "kursusku_backend/internals/features/tutoring/tutoring_requests/model"
	"kursusku_backend/internals/helpers/dbtime"
)

/* ========================================================
   Remedial Work Dispatcher.

   Default: SATU tutoring request per kejadian absen, tanpa
   cek duplikat. DedupPerDate mengubah
   perilaku jadi upsert per (murid, kelas, tanggal) — opt-in
   lewat TUTORING_DEDUP_PER_DATE karena ini perubahan perilaku.
   ======================================================== */

type TutoringDispatchService struct {
	DB           *gorm.DB
	DedupPerDate bool
}

func NewTutoringDispatchService(db *gorm.DB, dedupPerDate bool) *TutoringDispatchService {
	return &TutoringDispatchService{DB: db, DedupPerDate: dedupPerDate}
}

func (s *TutoringDispatchService) Dispatch(
	ctx context.Context,
	studentID uuid.UUID,
	studentName string,
	classID uuid.UUID,
	className string,
	absentDate dbtime.DateOnly,
) error {
	if s.DedupPerDate {
		var existing tutoringModel.TutoringRequestModel
		err := s.DB.WithContext(ctx).
			Where(`
				tutoring_request_student_id = ?
				AND tutoring_request_class_id = ?
				AND tutoring_request_absent_date = ?
			`, studentID, classID, absentDate).
			First(&existing).Error
		if err == nil {
			// sudah ada request untuk absen ini → tidak bikin lagi
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	note := "Dibuat otomatis dari absensi " + absentDate.String()
	row := tutoringModel.TutoringRequestModel{
		TutoringRequestStudentID:   studentID,
		TutoringRequestStudentName: studentName,
		TutoringRequestClassID:     classID,
		TutoringRequestClassName:   className,
		TutoringRequestAbsentDate:  absentDate,
		TutoringRequestStatus:      tutoringModel.TutoringStatusUnscheduled,
		TutoringRequestNote:        &note,
	}
	return s.DB.WithContext(ctx).Create(&row).Error
}
