package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceDTO "kursusku_backend/internals/features/attendance/attendance_records/dto"
	attendanceModel "kursusku_backend/internals/features/attendance/attendance_records/model"
	attendanceService "kursusku_backend/internals/features/attendance/attendance_records/service"
	helper "kursusku_backend/internals/helpers"
	"kursusku_backend/internals/helpers/dbtime"
)

type AttendanceRecordController struct {
	DB        *gorm.DB
	Validator *validator.Validate

	SubmitSvc *attendanceService.AttendanceSubmitService
}

func NewAttendanceRecordController(db *gorm.DB, submitSvc *attendanceService.AttendanceSubmitService) *AttendanceRecordController {
	return &AttendanceRecordController{
		DB:        db,
		Validator: validator.New(),
		SubmitSvc: submitSvc,
	}
}

/*
=========================================================
POST /api/a/attendance-records/submit
=========================================================
*/
func (ctl *AttendanceRecordController) Submit(c *fiber.Ctx) error {
	var req attendanceDTO.SubmitAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := ctl.SubmitSvc.Submit(c.UserContext(), &req)
	if err != nil {
		return mapSubmitError(c, err)
	}

	c.Set("Location", "/attendance-records/"+res.Record.AttendanceRecordID.String())

	msg := "Absensi tersimpan"
	if len(res.Warnings) > 0 {
		msg = "Absensi tersimpan, sebagian efek lanjutan gagal"
	}
	return helper.JsonCreated(c, msg, attendanceDTO.AttendanceRecordResponse{
		Record:   res.Record,
		Entries:  res.Entries,
		Warnings: res.Warnings,
	})
}

func mapSubmitError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attendanceService.ErrInvalidKey),
		errors.Is(err, attendanceService.ErrEmptyRoster),
		errors.Is(err, attendanceService.ErrInvalidMark),
		errors.Is(err, attendanceService.ErrDuplicateStudent):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, attendanceService.ErrClassNotFound),
		errors.Is(err, attendanceService.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, attendanceService.ErrStaleRevision),
		errors.Is(err, attendanceService.ErrDuplicateRecord):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

/*
=========================================================
GET /api/a/attendance-records?class_id=&date_from=&date_to=
=========================================================
*/
func (ctl *AttendanceRecordController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&attendanceModel.AttendanceRecordModel{})

	if s := strings.TrimSpace(c.Query("class_id")); s != "" {
		classID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("attendance_record_class_id = ?", classID)
	}
	if s := strings.TrimSpace(c.Query("date_from")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_from tidak valid (YYYY-MM-DD)")
		}
		q = q.Where("attendance_record_date >= ?", d)
	}
	if s := strings.TrimSpace(c.Query("date_to")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_to tidak valid (YYYY-MM-DD)")
		}
		q = q.Where("attendance_record_date <= ?", d)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []attendanceModel.AttendanceRecordModel
	if err := q.
		Order("attendance_record_date DESC, attendance_record_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/*
=========================================================
GET /api/a/attendance-records/:id
=========================================================
*/
func (ctl *AttendanceRecordController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "record id tidak valid")
	}

	var rec attendanceModel.AttendanceRecordModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("attendance_record_id = ?", id).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Record tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var entries []attendanceModel.AttendanceEntryModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("attendance_entry_record_id = ?", id).
		Order("attendance_entry_student_name ASC").
		Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "", attendanceDTO.AttendanceRecordResponse{
		Record:  rec,
		Entries: entries,
	})
}

/*
=========================================================
DELETE /api/a/attendance-records/:id
Hapus administratif: record + seluruh entri anak, satu transaksi.
=========================================================
*/
func (ctl *AttendanceRecordController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "record id tidak valid")
	}

	if err := ctl.SubmitSvc.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, attendanceService.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Record tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Record absensi dihapus", fiber.Map{
		"attendance_record_id": id,
	})
}
