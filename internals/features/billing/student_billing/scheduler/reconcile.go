package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
	billingService "kursusku_backend/internals/features/billing/student_billing/service"
)

// StartBillingReconcileScheduler menjalankan backfill recount harian:
// semua murid yang kelasnya punya entri absensi dalam N hari terakhir
// dihitung ulang. Recompute idempoten, jadi jalan ulang tidak merusak apa pun.
func StartBillingReconcileScheduler(db *gorm.DB) {
	if configs.ReconcileDisabled {
		log.Println("[RECONCILE] dimatikan lewat RECONCILE_DISABLED")
		return
	}

	svc := billingService.NewDebtRecalcService(db)

	go func() {
		for {
			runOnce(db, svc)
			time.Sleep(24 * time.Hour)
		}
	}()
}

type touchedPair struct {
	StudentID uuid.UUID `gorm:"column:student_id"`
	ClassID   uuid.UUID `gorm:"column:class_id"`
}

func runOnce(db *gorm.DB, svc *billingService.DebtRecalcService) {
	log.Println("[RECONCILE] Menjalankan recount attended_sessions...")

	windowDays := configs.ReconcileWindowDay
	if windowDays <= 0 {
		windowDays = 7
	}
	since := time.Now().AddDate(0, 0, -windowDays).Format("2006-01-02")

	var pairs []touchedPair
	if err := db.Model(&attendanceModel.AttendanceEntryModel{}).
		Select("DISTINCT attendance_entry_student_id AS student_id, attendance_entry_class_id AS class_id").
		Where("attendance_entry_date >= ?", since).
		Limit(2000).
		Find(&pairs).Error; err != nil {
		log.Printf("[RECONCILE ERROR] Gagal ambil pasangan murid-kelas: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ok, failed := 0, 0
	for _, p := range pairs {
		// murid bisa saja sudah dihapus; recompute yang lapor not-found di-skip saja
		if err := svc.Recompute(ctx, p.StudentID, p.ClassID); err != nil {
			if errors.Is(err, billingService.ErrStudentNotFound) {
				continue
			}
			failed++
			log.Printf("[RECONCILE ERROR] student=%s class=%s: %v", p.StudentID, p.ClassID, err)
			continue
		}
		ok++
	}

	log.Printf("[RECONCILE] Selesai: %d sukses, %d gagal dari %d pasangan", ok, failed, len(pairs))
}
