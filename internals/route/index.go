package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/middlewares"
	routeDetails "kursusku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== ADMIN (konsol operasional) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", middlewares.DBMiddleware(db))

	log.Println("[INFO] Setting up AcademicRoutes...")
	routeDetails.AcademicRoutes(admin, db)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	routeDetails.AttendanceRoutes(admin, db)

	log.Println("[INFO] Setting up TutoringRoutes...")
	routeDetails.TutoringRoutes(admin, db)
}
