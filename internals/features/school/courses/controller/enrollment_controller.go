package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/courses/dto"
	"schoolhub_backend/internals/features/school/courses/model"
	userDTO "schoolhub_backend/internals/features/users/user/dto"
	userModel "schoolhub_backend/internals/features/users/user/model"
	helper "schoolhub_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// POST /api/a/courses/:id/enrollments  body {"student_id": "..."}
func (ctrl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var count int64
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&model.CourseModel{}).
		Where("course_id = ?", courseID).Count(&count).Error; err != nil || count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}

	enrollment := model.EnrollmentModel{
		EnrollmentCourseID:  courseID,
		EnrollmentStudentID: req.StudentID,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&enrollment).Error; err != nil {
		log.Printf("[ERROR] enroll student: %v", err)
		return helper.JsonError(c, fiber.StatusConflict, "Student is already enrolled")
	}
	return helper.JsonCreated(c, "Student enrolled", enrollment)
}

// DELETE /api/a/courses/:id/enrollments/:studentId
func (ctrl *EnrollmentController) Unenroll(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("enrollment_course_id = ? AND enrollment_student_id = ?", courseID, studentID).
		Delete(&model.EnrollmentModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unenroll student")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}
	return helper.JsonDeleted(c, "Student unenrolled", fiber.Map{
		"course_id":  courseID,
		"student_id": studentID,
	})
}

// GET /api/a/courses/:id/enrollments
func (ctrl *EnrollmentController) ListStudents(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var students []userModel.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Joins("JOIN course_enrollments ON course_enrollments.enrollment_student_id = users.id").
		Where("course_enrollments.enrollment_course_id = ?", courseID).
		Order("users.user_name ASC").
		Find(&students).Error; err != nil {
		log.Printf("[ERROR] list course students: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return helper.JsonOK(c, "", userDTO.ToUserResponseList(students))
}

// GET /api/u/my-courses returns courses of the calling student, or courses
// taught by the calling teacher.
func (ctrl *EnrollmentController) MyCourses(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role, _ := helper.GetRoleFromLocals(c)

	var courses []model.CourseModel
	q := ctrl.DB.WithContext(c.UserContext())
	if role == "teacher" {
		q = q.Where("course_teacher_id = ?", userID)
	} else {
		q = q.Joins("JOIN course_enrollments ON course_enrollments.enrollment_course_id = courses.course_id").
			Where("course_enrollments.enrollment_student_id = ?", userID)
	}
	if err := q.Order("course_name ASC").Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}
	return helper.JsonOK(c, "", dto.ToCourseResponseList(courses))
}
