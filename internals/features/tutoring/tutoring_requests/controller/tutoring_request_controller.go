package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	tutoringModel "kursusku_backend/internals/features/tutoring/tutoring_requests/model"
	helper "kursusku_backend/internals/helpers"
)

type TutoringRequestController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTutoringRequestController(db *gorm.DB) *TutoringRequestController {
	return &TutoringRequestController{DB: db, Validator: validator.New()}
}

// GET /api/a/tutoring-requests?student_id=&class_id=&status=
func (ctl *TutoringRequestController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&tutoringModel.TutoringRequestModel{})
	if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("tutoring_request_student_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("class_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("tutoring_request_class_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st := tutoringModel.TutoringStatus(s)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
		}
		q = q.Where("tutoring_request_status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []tutoringModel.TutoringRequestModel
	if err := q.
		Order("tutoring_request_absent_date DESC, tutoring_request_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// PATCH /api/a/tutoring-requests/:id/status
func (ctl *TutoringRequestController) PatchStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "request id tidak valid")
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=unscheduled scheduled done canceled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row tutoringModel.TutoringRequestModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("tutoring_request_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	row.TutoringRequestStatus = tutoringModel.TutoringStatus(req.Status)
	row.TutoringRequestUpdatedAt = time.Now().UTC()
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Status request di-update", row)
}
