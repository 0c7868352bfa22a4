package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "kursusku_backend/internals/features/academics/classes/model"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
	"kursusku_backend/internals/helpers/dbtime"
)

/* ========================================================
   Store submit/delete — operasi per-transaksi di balik
   interface supaya alur upsert bisa diuji tanpa Postgres.
   ======================================================== */

type SubmitTx interface {
	FindClass(classID uuid.UUID) (*classModel.ClassModel, error)
	// LockRecord mengembalikan (nil, nil) saat record (class, date) belum ada.
	LockRecord(classID uuid.UUID, date dbtime.DateOnly) (*attendanceModel.AttendanceRecordModel, error)
	SaveRecord(rec *attendanceModel.AttendanceRecordModel) error
	// ReplaceEntries: delete-all entri record lalu insert rows (rows kosong = bersih).
	ReplaceEntries(recordID uuid.UUID, rows []attendanceModel.AttendanceEntryModel) error
	FindRecord(recordID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error)
	DeleteRecord(rec *attendanceModel.AttendanceRecordModel) error
}

type SubmitStore interface {
	InTx(ctx context.Context, fn func(SubmitTx) error) error
}

type gormSubmitStore struct {
	db *gorm.DB
}

func NewGormSubmitStore(db *gorm.DB) SubmitStore {
	return &gormSubmitStore{db: db}
}

func (s *gormSubmitStore) InTx(ctx context.Context, fn func(SubmitTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSubmitTx{tx: tx})
	})
}

type gormSubmitTx struct {
	tx *gorm.DB
}

func (t *gormSubmitTx) FindClass(classID uuid.UUID) (*classModel.ClassModel, error) {
	var class classModel.ClassModel
	if err := t.tx.Where("class_id = ?", classID).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &class, nil
}

// LockRecord: point lookup kunci komposit, dikunci supaya submit paralel
// untuk kunci yang sama antre di sini.
func (t *gormSubmitTx) LockRecord(classID uuid.UUID, date dbtime.DateOnly) (*attendanceModel.AttendanceRecordModel, error) {
	var rec attendanceModel.AttendanceRecordModel
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("attendance_record_class_id = ? AND attendance_record_date = ?", classID, date).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (t *gormSubmitTx) SaveRecord(rec *attendanceModel.AttendanceRecordModel) error {
	return t.tx.Save(rec).Error
}

func (t *gormSubmitTx) ReplaceEntries(recordID uuid.UUID, rows []attendanceModel.AttendanceEntryModel) error {
	if err := t.tx.
		Where("attendance_entry_record_id = ?", recordID).
		Delete(&attendanceModel.AttendanceEntryModel{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return t.tx.Create(&rows).Error
}

func (t *gormSubmitTx) FindRecord(recordID uuid.UUID) (*attendanceModel.AttendanceRecordModel, error) {
	var rec attendanceModel.AttendanceRecordModel
	if err := t.tx.Where("attendance_record_id = ?", recordID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (t *gormSubmitTx) DeleteRecord(rec *attendanceModel.AttendanceRecordModel) error {
	return t.tx.Delete(rec).Error
}
