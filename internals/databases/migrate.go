package database

import (
	"log"

	classModel "kursusku_backend/internals/features/academics/classes/model"
	studentModel "kursusku_backend/internals/features/academics/students/model"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
	tutoringModel "kursusku_backend/internals/features/tutoring/tutoring_requests/model"
)

// MigrateModels menjalankan AutoMigrate + index yang tidak bisa dinyatakan lewat tag.
func MigrateModels() {
	if err := DB.AutoMigrate(
		&classModel.ClassModel{},
		&studentModel.StudentModel{},
		&attendanceModel.AttendanceRecordModel{},
		&attendanceModel.AttendanceEntryModel{},
		&tutoringModel.TutoringRequestModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}

	// Kunci komposit (class_id, date) unik di antara baris hidup.
	// Partial index karena soft-delete: baris terhapus tidak boleh memblokir submit baru.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_records_class_date_live
		ON attendance_records (attendance_record_class_id, attendance_record_date)
		WHERE attendance_record_deleted_at IS NULL
	`).Error; err != nil {
		log.Fatalf("❌ Gagal membuat unique index attendance_records: %v", err)
	}

	log.Println("✅ Migrasi model selesai.")
}
