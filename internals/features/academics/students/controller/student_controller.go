package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentDTO "kursusku_backend/internals/features/academics/students/dto"
	studentModel "kursusku_backend/internals/features/academics/students/model"
	helper "kursusku_backend/internals/helpers"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validator: validator.New()}
}

// POST /api/a/students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req studentDTO.StudentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	status := studentModel.StudentStatusActive
	if req.StudentStatus != nil {
		status = studentModel.StudentStatus(*req.StudentStatus)
	}

	row := studentModel.StudentModel{
		StudentName:               req.StudentName,
		StudentCode:               req.StudentCode,
		StudentPhone:              req.StudentPhone,
		StudentClassID:            req.StudentClassID,
		StudentRegisteredSessions: req.StudentRegisteredSessions,
		StudentRemainingSessions:  req.StudentRegisteredSessions,
		StudentStatus:             status,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "student_code sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Murid dibuat", row)
}

// GET /api/a/students
func (ctl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&studentModel.StudentModel{})
	if s := strings.TrimSpace(c.Query("class_id")); s != "" {
		classID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("student_class_id = ?", classID)
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st := studentModel.StudentStatus(s)
		if !st.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
		}
		q = q.Where("student_status = ?", st)
	}
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(student_name) LIKE ? OR LOWER(student_code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []studentModel.StudentModel
	if err := q.Order("student_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /api/a/students/:id
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id tidak valid")
	}
	var row studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Murid tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", row)
}

// PATCH /api/a/students/:id/quota
// Koreksi manual kuota/status; attended_sessions tetap milik recount engine.
func (ctl *StudentController) PatchQuota(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id tidak valid")
	}

	var req studentDTO.StudentQuotaPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_id = ?", id).First(&row).Error; err != nil {
			return err
		}
		if req.StudentRegisteredSessions != nil {
			row.StudentRegisteredSessions = *req.StudentRegisteredSessions
			remaining := row.StudentRegisteredSessions - row.StudentAttendedSessions
			if remaining < 0 {
				remaining = 0
			}
			row.StudentRemainingSessions = remaining
		}
		if req.StudentStatus != nil {
			row.StudentStatus = studentModel.StudentStatus(*req.StudentStatus)
			if row.StudentStatus != studentModel.StudentStatusDebt {
				// keluar dari debt hanya lewat koreksi manual → reset jejak debt
				row.StudentDebtStartedAt = nil
				row.StudentDebtSessions = 0
			}
		}
		row.StudentUpdatedAt = time.Now().UTC()
		return tx.Save(&row).Error
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Murid tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Data murid di-update", row)
}
