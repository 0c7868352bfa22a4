package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tutoringController "kursusku_backend/internals/features/tutoring/tutoring_requests/controller"
)

func TutoringRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := tutoringController.NewTutoringRequestController(db)

	g := admin.Group("/tutoring-requests")
	g.Get("/", ctl.List)
	g.Patch("/:id/status", ctl.PatchStatus)
}
