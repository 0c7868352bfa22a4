package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "kursusku_backend/internals/features/attendance/attendance_records/controller"
	attendanceService "kursusku_backend/internals/features/attendance/attendance_records/service"
	billingService "kursusku_backend/internals/features/billing/student_billing/service"
	tutoringService "kursusku_backend/internals/features/tutoring/tutoring_requests/service"
	"kursusku_backend/internals/configs"
	"kursusku_backend/internals/middlewares"
)

// AttendanceRoutes merakit pipeline submit:
// normalizer → upsert (satu transaksi) → fan-out debt/tutoring per murid.
func AttendanceRoutes(admin fiber.Router, db *gorm.DB) {
	debtSvc := billingService.NewDebtRecalcService(db)
	tutorSvc := tutoringService.NewTutoringDispatchService(db, configs.TutoringDedup)
	submitSvc := attendanceService.NewAttendanceSubmitService(db, debtSvc, tutorSvc)

	ctl := attendanceController.NewAttendanceRecordController(db, submitSvc)

	g := admin.Group("/attendance-records")
	g.Post("/submit", middlewares.SubmitRateLimiter(), ctl.Submit)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Delete("/:id", ctl.Delete)
}
