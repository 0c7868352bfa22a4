package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attendanceDTO "kursusku_backend/internals/features/attendance/attendance_records/dto"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
	"kursusku_backend/internals/helpers/dbtime"
)

/* ========================================================
   Attendance Upsert Engine + orkestrasi submit.

   Satu submit = satu unit kerja:
   Received → Normalized → Upserted → SideEffectsDispatched → Complete.

   find-or-create record + replace entri jalan dalam SATU transaksi.
   Efek samping per murid baru jalan SETELAH commit.
   ======================================================== */

// DebtRecalculator dan RemedialDispatcher diimplementasikan oleh
// billing service & tutoring service; dipasang saat wiring route.
type DebtRecalculator interface {
	Recompute(ctx context.Context, studentID, classID uuid.UUID) error
}

type RemedialDispatcher interface {
	Dispatch(ctx context.Context, studentID uuid.UUID, studentName string, classID uuid.UUID, className string, absentDate dbtime.DateOnly) error
}

type AttendanceSubmitService struct {
	Store    SubmitStore
	Debt     DebtRecalculator
	Remedial RemedialDispatcher

	// batas paralel fan-out efek samping per murid
	FanOutLimit int
	// recompute idempoten → aman di-retry terbatas
	DebtRetries int
}

func NewAttendanceSubmitService(db *gorm.DB, debt DebtRecalculator, remedial RemedialDispatcher) *AttendanceSubmitService {
	return &AttendanceSubmitService{
		Store:       NewGormSubmitStore(db),
		Debt:        debt,
		Remedial:    remedial,
		FanOutLimit: 8,
		DebtRetries: 2,
	}
}

type SubmitResult struct {
	Record   attendanceModel.AttendanceRecordModel
	Entries  []attendanceModel.AttendanceEntryModel
	Warnings []attendanceDTO.SideEffectWarning
}

func (s *AttendanceSubmitService) Submit(ctx context.Context, req *attendanceDTO.SubmitAttendanceRequest) (*SubmitResult, error) {
	// ---- validasi kunci & roster, sebelum I/O apa pun ----
	if req == nil || req.ClassID == uuid.Nil {
		return nil, ErrInvalidKey
	}
	date, err := dbtime.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidKey
	}
	if len(req.Roster) == 0 {
		return nil, ErrEmptyRoster
	}
	// satu murid = maksimal satu entri per record; duplikat ditolak di sini,
	// unique index (record_id, student_id) jadi pagar terakhirnya
	seen := make(map[uuid.UUID]struct{}, len(req.Roster))
	for _, e := range req.Roster {
		if e.Status != attendanceModel.EntryMarkPending && !e.Status.Valid() {
			return nil, ErrInvalidMark
		}
		if _, dup := seen[e.StudentID]; dup {
			return nil, ErrDuplicateStudent
		}
		seen[e.StudentID] = struct{}{}
	}

	// ---- Normalized ----
	finalized, agg := NormalizeRoster(req.Roster)

	// ---- Upserted: satu transaksi untuk record + entri ----
	var record attendanceModel.AttendanceRecordModel
	var entries []attendanceModel.AttendanceEntryModel

	txErr := s.Store.InTx(ctx, func(st SubmitTx) error {
		class, err := st.FindClass(req.ClassID)
		if err != nil {
			return err
		}

		rec, err := st.LockRecord(req.ClassID, date)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if rec == nil {
			if req.ExpectedRevision != nil && *req.ExpectedRevision != 0 {
				return ErrStaleRevision
			}
			rec = &attendanceModel.AttendanceRecordModel{
				AttendanceRecordClassID:   req.ClassID,
				AttendanceRecordDate:      date,
				AttendanceRecordCreatedAt: now,
			}
		} else if req.ExpectedRevision != nil && *req.ExpectedRevision != rec.AttendanceRecordRevision {
			return ErrStaleRevision
		}

		rec.AttendanceRecordClassName = class.ClassName
		rec.AttendanceRecordClassSnapshot = datatypes.JSONMap{
			"class_name": class.ClassName,
			"class_code": class.ClassCode,
		}
		rec.AttendanceRecordSessionNumber = req.SessionNumber
		rec.AttendanceRecordSessionID = req.SessionID
		rec.AttendanceRecordTotalStudents = len(finalized)
		rec.AttendanceRecordPresentCount = agg.Present
		rec.AttendanceRecordAbsentCount = agg.Absent
		rec.AttendanceRecordReservedCount = agg.Reserved
		rec.AttendanceRecordTutoredCount = agg.Tutored
		rec.AttendanceRecordStatus = attendanceModel.RecordStatusRecorded
		rec.AttendanceRecordRevision++
		rec.AttendanceRecordUpdatedAt = now

		if err := st.SaveRecord(rec); err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateRecord
			}
			return err
		}

		// replace penuh: set entri = persis subset final submit terakhir,
		// tidak ada partial merge
		rows := buildEntryRows(rec, finalized, now)
		if err := st.ReplaceEntries(rec.AttendanceRecordID, rows); err != nil {
			return err
		}

		record = *rec
		entries = rows
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// ---- SideEffectsDispatched: hanya setelah commit ----
	warnings := s.fanOutSideEffects(ctx, &record, entries)

	return &SubmitResult{
		Record:   record,
		Entries:  entries,
		Warnings: warnings,
	}, nil
}

// buildEntryRows menstempel tiap entri final dengan konteks record-nya.
func buildEntryRows(rec *attendanceModel.AttendanceRecordModel, finalized []attendanceDTO.RosterEntryRequest, now time.Time) []attendanceModel.AttendanceEntryModel {
	rows := make([]attendanceModel.AttendanceEntryModel, 0, len(finalized))
	for _, e := range finalized {
		rows = append(rows, attendanceModel.AttendanceEntryModel{
			AttendanceEntryRecordID:           rec.AttendanceRecordID,
			AttendanceEntryClassID:            rec.AttendanceRecordClassID,
			AttendanceEntryClassName:          rec.AttendanceRecordClassName,
			AttendanceEntryDate:               rec.AttendanceRecordDate,
			AttendanceEntrySessionNumber:      rec.AttendanceRecordSessionNumber,
			AttendanceEntrySessionID:          rec.AttendanceRecordSessionID,
			AttendanceEntryStudentID:          e.StudentID,
			AttendanceEntryStudentName:        e.StudentName,
			AttendanceEntryStudentCode:        e.StudentCode,
			AttendanceEntryStatus:             e.Status,
			AttendanceEntryNote:               e.Note,
			AttendanceEntryHomeworkCompletion: e.HomeworkCompletion,
			AttendanceEntryTestName:           e.TestName,
			AttendanceEntryTestScore:          e.TestScore,
			AttendanceEntryBonusPoints:        e.BonusPoints,
			AttendanceEntryPunctuality:        e.Punctuality,
			AttendanceEntryCreatedAt:          now,
			AttendanceEntryUpdatedAt:          now,
		})
	}
	return rows
}

// Delete menghapus record administratif + seluruh entri anaknya dalam satu transaksi.
func (s *AttendanceSubmitService) Delete(ctx context.Context, recordID uuid.UUID) error {
	return s.Store.InTx(ctx, func(st SubmitTx) error {
		rec, err := st.FindRecord(recordID)
		if err != nil {
			return err
		}
		if err := st.ReplaceEntries(recordID, nil); err != nil {
			return err
		}
		return st.DeleteRecord(rec)
	})
}
