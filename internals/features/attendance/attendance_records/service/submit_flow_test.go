package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "kursusku_backend/internals/features/academics/classes/model"
	attendanceDTO "kursusku_backend/internals/features/attendance/attendance_records/dto"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
	"kursusku_backend/internals/helpers/dbtime"
)

// memSubmitStore: store in-memory untuk menguji alur upsert tanpa Postgres.
type memSubmitStore struct {
	classes map[uuid.UUID]classModel.ClassModel
	records map[uuid.UUID]attendanceModel.AttendanceRecordModel
	entries map[uuid.UUID][]attendanceModel.AttendanceEntryModel

	saveRecordErr error
}

func newMemSubmitStore() *memSubmitStore {
	return &memSubmitStore{
		classes: map[uuid.UUID]classModel.ClassModel{},
		records: map[uuid.UUID]attendanceModel.AttendanceRecordModel{},
		entries: map[uuid.UUID][]attendanceModel.AttendanceEntryModel{},
	}
}

func (m *memSubmitStore) InTx(_ context.Context, fn func(SubmitTx) error) error {
	return fn(m)
}

func (m *memSubmitStore) FindClass(classID uuid.UUID) (*classModel.ClassModel, error) {
	c, ok := m.classes[classID]
	if !ok {
		return nil, ErrClassNotFound
	}
	return &c, nil
}

func (m *memSubmitStore) LockRecord(classID uuid.UUID, date dbtime.DateOnly) (*attendanceModel.AttendanceRecordModel, error) {
	for _, r := range m.records {
		if r.AttendanceRecordClassID == classID && r.AttendanceRecordDate.Equal(date) {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memSubmitStore) SaveRecord(rec *attendanceModel.AttendanceRecordModel) error {
	if m.saveRecordErr != nil {
		return m.saveRecordErr
	}
	if rec.AttendanceRecordID == uuid.Nil {
		rec.AttendanceRecordID = uuid.New()
	}
	m.records[rec.AttendanceRecordID] = *rec
	return nil
}

func (m *memSubmitStore) ReplaceEntries(recordID uuid.UUID, rows []attendanceModel.AttendanceEntryModel) error {
	m.entries[recordID] = append([]attendanceModel.AttendanceEntryModel(nil), rows...)
	return nil
}

func (m *memSubmitStore) FindRecord(recordID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	r, ok := m.records[recordID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &r, nil
}

func (m *memSubmitStore) DeleteRecord(rec *attendanceModel.AttendanceRecordModel) error {
	delete(m.records, rec.AttendanceRecordID)
	return nil
}

func (m *memSubmitStore) seedClass(name, code string) uuid.UUID {
	id := uuid.New()
	m.classes[id] = classModel.ClassModel{ClassID: id, ClassName: name, ClassCode: code}
	return id
}

func submitReq(classID uuid.UUID, date string, roster ...attendanceDTO.RosterEntryRequest) *attendanceDTO.SubmitAttendanceRequest {
	return &attendanceDTO.SubmitAttendanceRequest{ClassID: classID, Date: date, Roster: roster}
}

// Agregasi idempoten: re-submit kunci (class, date) yang sama tidak pernah
// menambah record kedua, dan set entri diganti utuh oleh roster terakhir.
func TestSubmitResubmitKeepsOneRecord(t *testing.T) {
	store := newMemSubmitStore()
	classID := store.seedClass("Tahsin Dasar A", "THS-A1")
	svc := &AttendanceSubmitService{Store: store}

	a := rosterEntry("a", attendanceModel.EntryMarkOnTime)
	b := rosterEntry("b", attendanceModel.EntryMarkAbsent)
	c := rosterEntry("c", attendanceModel.EntryMarkPending)

	res1, err := svc.Submit(context.Background(), submitReq(classID, "2026-03-02", a, b, c))
	require.NoError(t, err)
	require.Len(t, store.records, 1)

	rec1 := res1.Record
	assert.Equal(t, 1, rec1.AttendanceRecordRevision)
	assert.Equal(t, attendanceModel.RecordStatusRecorded, rec1.AttendanceRecordStatus)
	assert.Equal(t, "Tahsin Dasar A", rec1.AttendanceRecordClassName)
	// pending dibuang dari persist & agregat
	assert.Equal(t, 2, rec1.AttendanceRecordTotalStudents)
	assert.Equal(t, 1, rec1.AttendanceRecordPresentCount)
	assert.Equal(t, 1, rec1.AttendanceRecordAbsentCount)
	require.Len(t, store.entries[rec1.AttendanceRecordID], 2)

	// re-submit: a jadi late, b jadi on-time, c tidak lagi ikut
	a2 := a
	a2.Status = attendanceModel.EntryMarkLate
	b2 := b
	b2.Status = attendanceModel.EntryMarkOnTime

	res2, err := svc.Submit(context.Background(), submitReq(classID, "2026-03-02", a2, b2))
	require.NoError(t, err)

	// tetap satu record, ID sama, revisi naik
	require.Len(t, store.records, 1)
	assert.Equal(t, rec1.AttendanceRecordID, res2.Record.AttendanceRecordID)
	assert.Equal(t, 2, res2.Record.AttendanceRecordRevision)
	assert.Equal(t, 2, res2.Record.AttendanceRecordPresentCount)
	assert.Zero(t, res2.Record.AttendanceRecordAbsentCount)

	// set entri = persis roster final terakhir, bukan merge
	got := store.entries[rec1.AttendanceRecordID]
	require.Len(t, got, 2)
	byStudent := map[uuid.UUID]attendanceModel.EntryMark{}
	for _, e := range got {
		assert.Equal(t, rec1.AttendanceRecordID, e.AttendanceEntryRecordID)
		byStudent[e.AttendanceEntryStudentID] = e.AttendanceEntryStatus
	}
	assert.Equal(t, attendanceModel.EntryMarkLate, byStudent[a.StudentID])
	assert.Equal(t, attendanceModel.EntryMarkOnTime, byStudent[b.StudentID])
}

func TestSubmitExpectedRevision(t *testing.T) {
	store := newMemSubmitStore()
	classID := store.seedClass("Tahsin Dasar A", "THS-A1")
	svc := &AttendanceSubmitService{Store: store}

	a := rosterEntry("a", attendanceModel.EntryMarkOnTime)

	t.Run("expected != 0 saat record belum ada → konflik", func(t *testing.T) {
		stale := 3
		req := submitReq(classID, "2026-03-02", a)
		req.ExpectedRevision = &stale

		res, err := svc.Submit(context.Background(), req)
		require.ErrorIs(t, err, ErrStaleRevision)
		assert.Nil(t, res)
		assert.Empty(t, store.records)
	})

	res1, err := svc.Submit(context.Background(), submitReq(classID, "2026-03-02", a))
	require.NoError(t, err)
	require.Equal(t, 1, res1.Record.AttendanceRecordRevision)

	t.Run("expected basi → konflik, data tidak berubah", func(t *testing.T) {
		stale := 5
		req := submitReq(classID, "2026-03-02", a)
		req.ExpectedRevision = &stale

		_, err := svc.Submit(context.Background(), req)
		require.ErrorIs(t, err, ErrStaleRevision)

		kept := store.records[res1.Record.AttendanceRecordID]
		assert.Equal(t, 1, kept.AttendanceRecordRevision)
	})

	t.Run("expected cocok → sukses, revisi naik", func(t *testing.T) {
		current := 1
		req := submitReq(classID, "2026-03-02", a)
		req.ExpectedRevision = &current

		res, err := svc.Submit(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Record.AttendanceRecordRevision)
	})

	t.Run("tanpa expected → last-write-wins tetap jalan", func(t *testing.T) {
		res, err := svc.Submit(context.Background(), submitReq(classID, "2026-03-02", a))
		require.NoError(t, err)
		assert.Equal(t, 3, res.Record.AttendanceRecordRevision)
	})
}

// Dua create paralel untuk kunci yang sama: yang kalah kena unique index
// partial di DB; error duplicate key dari store dipetakan ke konflik.
func TestSubmitDuplicateKeyMapsToConflict(t *testing.T) {
	store := newMemSubmitStore()
	classID := store.seedClass("Tahsin Dasar A", "THS-A1")
	store.saveRecordErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_attendance_records_class_date_live" (SQLSTATE 23505)`)
	svc := &AttendanceSubmitService{Store: store}

	res, err := svc.Submit(context.Background(),
		submitReq(classID, "2026-03-02", rosterEntry("a", attendanceModel.EntryMarkOnTime)))
	require.ErrorIs(t, err, ErrDuplicateRecord)
	assert.Nil(t, res)
}

func TestDeleteRecordCascadesEntries(t *testing.T) {
	store := newMemSubmitStore()
	classID := store.seedClass("Tahsin Dasar A", "THS-A1")
	svc := &AttendanceSubmitService{Store: store}

	res, err := svc.Submit(context.Background(),
		submitReq(classID, "2026-03-02",
			rosterEntry("a", attendanceModel.EntryMarkOnTime),
			rosterEntry("b", attendanceModel.EntryMarkAbsent)))
	require.NoError(t, err)
	recordID := res.Record.AttendanceRecordID
	require.Len(t, store.entries[recordID], 2)

	require.NoError(t, svc.Delete(context.Background(), recordID))
	assert.Empty(t, store.records)
	assert.Empty(t, store.entries[recordID])

	// hapus record yang tidak ada
	err = svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrRecordNotFound)
}
