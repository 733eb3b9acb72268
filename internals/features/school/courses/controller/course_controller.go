package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/courses/dto"
	"schoolhub_backend/internals/features/school/courses/model"
	helper "schoolhub_backend/internals/helpers"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// POST /api/a/courses
func (ctrl *CourseController) CreateCourse(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	course := req.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(course).Error; err != nil {
		log.Printf("[ERROR] create course: %v", err)
		return helper.JsonError(c, fiber.StatusConflict, "Course code already exists")
	}
	return helper.JsonCreated(c, "Course created", dto.ToCourseResponse(course))
}

// GET /api/a/courses (+ pagination, ?teacher_id=)
func (ctrl *CourseController) ListCourses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.CourseModel{})
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		q = q.Where("course_teacher_id = ?", teacherID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count courses")
	}

	var courses []model.CourseModel
	if err := q.Order("course_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	return helper.JsonList(c, "", dto.ToCourseResponseList(courses),
		helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// GET /api/u/courses/:id
func (ctrl *CourseController) GetCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var course model.CourseModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}
	return helper.JsonOK(c, "", dto.ToCourseResponse(&course))
}

// PATCH /api/a/courses/:id
func (ctrl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var course model.CourseModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	updates := map[string]any{}
	if req.CourseName != nil {
		updates["course_name"] = *req.CourseName
	}
	if req.CourseDescription != nil {
		updates["course_description"] = *req.CourseDescription
	}
	if req.CourseTeacherID != nil {
		updates["course_teacher_id"] = *req.CourseTeacherID
	}
	if req.CourseIsActive != nil {
		updates["course_is_active"] = *req.CourseIsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToCourseResponse(&course))
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Model(&course).
		Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update course: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}
	return helper.JsonUpdated(c, "Course updated", dto.ToCourseResponse(&course))
}

// DELETE /api/a/courses/:id
func (ctrl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.CourseModel{}, "course_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete course")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}
	return helper.JsonDeleted(c, "Course deleted", fiber.Map{"course_id": id})
}
