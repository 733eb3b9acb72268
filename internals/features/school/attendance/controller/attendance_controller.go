package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolhub_backend/internals/features/school/attendance/dto"
	"schoolhub_backend/internals/features/school/attendance/model"
	helper "schoolhub_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// POST /api/t/attendance. Re-recording a (course, student, date) overwrites
// the earlier status.
func (ctrl *AttendanceController) RecordSession(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	rows := make([]model.AttendanceRecordModel, 0, len(req.Entries))
	for _, e := range req.Entries {
		rows = append(rows, model.AttendanceRecordModel{
			AttendanceCourseID:  req.CourseID,
			AttendanceStudentID: e.StudentID,
			AttendanceDate:      req.Date,
			AttendanceStatus:    e.Status,
			AttendanceNote:      e.Note,
			AttendanceTakenBy:   teacherID,
		})
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_course_id"},
				{Name: "attendance_student_id"},
				{Name: "attendance_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_status", "attendance_note", "attendance_taken_by",
			}),
		}).
		Create(&rows).Error; err != nil {
		log.Printf("[ERROR] record attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}

	return helper.JsonCreated(c, "Attendance recorded", fiber.Map{"recorded": len(rows)})
}

// GET /api/t/courses/:id/attendance?date=YYYY-MM-DD
func (ctrl *AttendanceController) CourseAttendance(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	q := ctrl.DB.WithContext(c.UserContext()).
		Where("attendance_course_id = ?", courseID)
	if date := c.Query("date"); date != "" {
		q = q.Where("attendance_date = ?", date)
	}

	var records []model.AttendanceRecordModel
	if err := q.Order("attendance_date DESC").Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}
	return helper.JsonOK(c, "", records)
}

// GET /api/u/my-attendance?course_id=
func (ctrl *AttendanceController) MyAttendance(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	q := ctrl.DB.WithContext(c.UserContext()).
		Where("attendance_student_id = ?", studentID)
	if courseID := c.Query("course_id"); courseID != "" {
		q = q.Where("attendance_course_id = ?", courseID)
	}

	var records []model.AttendanceRecordModel
	if err := q.Order("attendance_date DESC").Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}
	return helper.JsonOK(c, "", records)
}
