package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "kursusku_backend/internals/features/academics/classes/controller"
	studentController "kursusku_backend/internals/features/academics/students/controller"
)

func AcademicRoutes(admin fiber.Router, db *gorm.DB) {
	classCtl := classController.NewClassController(db)
	studentCtl := studentController.NewStudentController(db)

	classes := admin.Group("/classes")
	classes.Post("/", classCtl.Create)
	classes.Get("/", classCtl.List)
	classes.Get("/:id", classCtl.GetByID)

	students := admin.Group("/students")
	students.Post("/", studentCtl.Create)
	students.Get("/", studentCtl.List)
	students.Get("/:id", studentCtl.GetByID)
	students.Patch("/:id/quota", studentCtl.PatchQuota)
}
