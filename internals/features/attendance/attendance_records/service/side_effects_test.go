package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
	"kursusku_backend/internals/helpers/dbtime"
)

type fakeDebt struct {
	mu    sync.Mutex
	calls map[uuid.UUID]int
	fail  map[uuid.UUID]error
}

func newFakeDebt() *fakeDebt {
	return &fakeDebt{calls: map[uuid.UUID]int{}, fail: map[uuid.UUID]error{}}
}

func (f *fakeDebt) Recompute(_ context.Context, studentID, _ uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[studentID]++
	return f.fail[studentID]
}

type fakeRemedial struct {
	mu    sync.Mutex
	calls []uuid.UUID
	fail  map[uuid.UUID]error
}

func newFakeRemedial() *fakeRemedial {
	return &fakeRemedial{fail: map[uuid.UUID]error{}}
}

func (f *fakeRemedial) Dispatch(_ context.Context, studentID uuid.UUID, _ string, _ uuid.UUID, _ string, _ dbtime.DateOnly) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, studentID)
	return f.fail[studentID]
}

func makeEntry(studentID uuid.UUID, mark attendanceModel.EntryMark) attendanceModel.AttendanceEntryModel {
	return attendanceModel.AttendanceEntryModel{
		AttendanceEntryStudentID:   studentID,
		AttendanceEntryStudentName: "murid-" + studentID.String()[:8],
		AttendanceEntryClassID:     uuid.New(),
		AttendanceEntryClassName:   "Kelas A",
		AttendanceEntryStatus:      mark,
	}
}

func TestFanOutSideEffects(t *testing.T) {
	present1 := uuid.New()
	present2 := uuid.New()
	absent1 := uuid.New()
	absent2 := uuid.New()
	reserved := uuid.New()

	t.Run("hadir → debt, absen → tutoring, reserved tidak kena efek", func(t *testing.T) {
		debt := newFakeDebt()
		remedial := newFakeRemedial()
		svc := &AttendanceSubmitService{Debt: debt, Remedial: remedial, FanOutLimit: 4}

		rec := &attendanceModel.AttendanceRecordModel{AttendanceRecordID: uuid.New()}
		entries := []attendanceModel.AttendanceEntryModel{
			makeEntry(present1, attendanceModel.EntryMarkOnTime),
			makeEntry(present2, attendanceModel.EntryMarkLate),
			makeEntry(absent1, attendanceModel.EntryMarkAbsent),
			makeEntry(reserved, attendanceModel.EntryMarkReserved),
		}

		warnings := svc.fanOutSideEffects(context.Background(), rec, entries)

		require.Empty(t, warnings)
		assert.Equal(t, 1, debt.calls[present1])
		assert.Equal(t, 1, debt.calls[present2])
		assert.Zero(t, debt.calls[reserved])
		require.Len(t, remedial.calls, 1)
		assert.Equal(t, absent1, remedial.calls[0])
	})

	t.Run("gagal satu murid terisolasi, murid lain tetap diproses", func(t *testing.T) {
		debt := newFakeDebt()
		debt.fail[present1] = errors.New("db timeout")
		remedial := newFakeRemedial()
		remedial.fail[absent1] = errors.New("insert gagal")
		svc := &AttendanceSubmitService{Debt: debt, Remedial: remedial, FanOutLimit: 4}

		rec := &attendanceModel.AttendanceRecordModel{AttendanceRecordID: uuid.New()}
		entries := []attendanceModel.AttendanceEntryModel{
			makeEntry(present1, attendanceModel.EntryMarkOnTime),
			makeEntry(present2, attendanceModel.EntryMarkOnTime),
			makeEntry(absent1, attendanceModel.EntryMarkAbsent),
			makeEntry(absent2, attendanceModel.EntryMarkAbsent),
		}

		warnings := svc.fanOutSideEffects(context.Background(), rec, entries)

		// dua kegagalan terkumpul sebagai warning, bukan error fatal
		require.Len(t, warnings, 2)
		stages := map[string]bool{}
		for _, w := range warnings {
			stages[w.Stage] = true
		}
		assert.True(t, stages["debt-recalc"])
		assert.True(t, stages["tutoring-dispatch"])

		// murid yang tidak gagal tetap jalan
		assert.Equal(t, 1, debt.calls[present2])
		assert.Len(t, remedial.calls, 2)
	})

	t.Run("recompute di-retry, dispatch tidak", func(t *testing.T) {
		debt := newFakeDebt()
		debt.fail[present1] = errors.New("selalu gagal")
		remedial := newFakeRemedial()
		remedial.fail[absent1] = errors.New("selalu gagal")
		svc := &AttendanceSubmitService{Debt: debt, Remedial: remedial, FanOutLimit: 4, DebtRetries: 2}

		rec := &attendanceModel.AttendanceRecordModel{AttendanceRecordID: uuid.New()}
		entries := []attendanceModel.AttendanceEntryModel{
			makeEntry(present1, attendanceModel.EntryMarkOnTime),
			makeEntry(absent1, attendanceModel.EntryMarkAbsent),
		}

		warnings := svc.fanOutSideEffects(context.Background(), rec, entries)

		require.Len(t, warnings, 2)
		// 1 percobaan awal + 2 retry (recompute idempoten)
		assert.Equal(t, 3, debt.calls[present1])
		// dispatch default tidak idempoten → persis satu percobaan
		assert.Len(t, remedial.calls, 1)
	})

	t.Run("tanpa entri tidak ada fan-out", func(t *testing.T) {
		svc := &AttendanceSubmitService{Debt: newFakeDebt(), Remedial: newFakeRemedial()}
		rec := &attendanceModel.AttendanceRecordModel{AttendanceRecordID: uuid.New()}

		assert.Nil(t, svc.fanOutSideEffects(context.Background(), rec, nil))
	})
}
