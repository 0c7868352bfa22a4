package service

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	attendanceDTO "kursusku_backend/internals/features/attendance/attendance_records/dto"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
)

/* ========================================================
   Fan-out efek samping per murid.

   - hadir (on-time/late) → recompute debt
   - absen               → dispatch tutoring request
   Tiap operasi terisolasi: gagal satu murid tidak menggagalkan
   submit dan tidak memblokir murid lain. Kegagalan dikumpulkan
   jadi warnings di respons sukses.
   ======================================================== */

func (s *AttendanceSubmitService) fanOutSideEffects(
	ctx context.Context,
	record *attendanceModel.AttendanceRecordModel,
	entries []attendanceModel.AttendanceEntryModel,
) []attendanceDTO.SideEffectWarning {
	if len(entries) == 0 {
		return nil
	}

	limit := s.FanOutLimit
	if limit <= 0 {
		limit = 8
	}

	var (
		mu       sync.Mutex
		warnings []attendanceDTO.SideEffectWarning
	)
	warn := func(e attendanceModel.AttendanceEntryModel, stage string, err error) {
		log.Printf("[SIDE-EFFECT] %s gagal | record=%s student=%s | %v",
			stage, record.AttendanceRecordID, e.AttendanceEntryStudentID, err)
		mu.Lock()
		warnings = append(warnings, attendanceDTO.SideEffectWarning{
			StudentID:   e.AttendanceEntryStudentID,
			StudentName: e.AttendanceEntryStudentName,
			Stage:       stage,
			Reason:      err.Error(),
		})
		mu.Unlock()
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for _, e := range entries {
		e := e
		switch {
		case e.AttendanceEntryStatus.CountsAsPresent():
			if s.Debt == nil {
				continue
			}
			g.Go(func() error {
				// recompute dari source-of-truth → idempoten → boleh retry
				err := withRetry(s.DebtRetries, func() error {
					return s.Debt.Recompute(ctx, e.AttendanceEntryStudentID, e.AttendanceEntryClassID)
				})
				if err != nil {
					warn(e, "debt-recalc", err)
				}
				return nil
			})
		case e.AttendanceEntryStatus == attendanceModel.EntryMarkAbsent:
			if s.Remedial == nil {
				continue
			}
			g.Go(func() error {
				// dispatch default always-insert → TIDAK idempoten → tanpa retry
				err := s.Remedial.Dispatch(ctx,
					e.AttendanceEntryStudentID,
					e.AttendanceEntryStudentName,
					e.AttendanceEntryClassID,
					e.AttendanceEntryClassName,
					e.AttendanceEntryDate,
				)
				if err != nil {
					warn(e, "tutoring-dispatch", err)
				}
				return nil
			})
		}
	}

	_ = g.Wait()
	return warnings
}

func withRetry(retries int, fn func() error) error {
	err := fn()
	for i := 0; i < retries && err != nil; i++ {
		time.Sleep(time.Duration(i+1) * 100 * time.Millisecond)
		err = fn()
	}
	return err
}
