package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/assignments/dto"
	"schoolhub_backend/internals/features/school/assignments/model"
	notifService "schoolhub_backend/internals/features/home/notifications/service"
	helper "schoolhub_backend/internals/helpers"
)

type AssignmentController struct {
	DB     *gorm.DB
	Fanout *notifService.FanoutService
}

func NewAssignmentController(db *gorm.DB, fanout *notifService.FanoutService) *AssignmentController {
	return &AssignmentController{DB: db, Fanout: fanout}
}

// POST /api/t/assignments
func (ctrl *AssignmentController) CreateAssignment(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	assignment := model.AssignmentModel{
		AssignmentCourseID:    req.CourseID,
		AssignmentTeacherID:   teacherID,
		AssignmentTitle:       req.Title,
		AssignmentDescription: req.Description,
		AssignmentDueAt:       req.DueAt,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&assignment).Error; err != nil {
		log.Printf("[ERROR] create assignment: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create assignment")
	}
	return helper.JsonCreated(c, "Assignment created", dto.ToAssignmentResponse(&assignment))
}

// GET /api/u/courses/:id/assignments
func (ctrl *AssignmentController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var assignments []model.AssignmentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("assignment_course_id = ?", courseID).
		Order("assignment_created_at DESC").
		Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignments")
	}
	return helper.JsonOK(c, "", dto.ToAssignmentResponseList(assignments))
}

// DELETE /api/t/assignments/:id, only the owning teacher may delete.
func (ctrl *AssignmentController) DeleteAssignment(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("assignment_id = ? AND assignment_teacher_id = ?", id, teacherID).
		Delete(&model.AssignmentModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
	}
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"assignment_id": id})
}

// POST /api/u/assignments/:id/submissions. Resubmission overwrites.
func (ctrl *AssignmentController) Submit(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var assignment model.AssignmentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&assignment, "assignment_id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignment")
	}

	var submission model.SubmissionModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("submission_assignment_id = ? AND submission_student_id = ?", assignmentID, studentID).
		First(&submission).Error
	switch {
	case err == nil:
		if err := ctrl.DB.WithContext(c.UserContext()).Model(&submission).
			Updates(map[string]any{
				"submission_content":     req.Content,
				"submission_attachments": req.Attachments,
			}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update submission")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = model.SubmissionModel{
			SubmissionAssignmentID: assignmentID,
			SubmissionStudentID:    studentID,
			SubmissionContent:      req.Content,
			SubmissionAttachments:  req.Attachments,
		}
		if err := ctrl.DB.WithContext(c.UserContext()).Create(&submission).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save submission")
		}
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save submission")
	}

	return helper.JsonCreated(c, "Submission saved", submission)
}

// GET /api/t/assignments/:id/submissions
func (ctrl *AssignmentController) ListSubmissions(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	var submissions []model.SubmissionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("submission_assignment_id = ?", assignmentID).
		Order("submission_created_at ASC").
		Find(&submissions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}
	return helper.JsonOK(c, "", submissions)
}

// POST /api/t/submissions/:id/grade. Grading notifies the student.
func (ctrl *AssignmentController) Grade(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	submissionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var submission model.SubmissionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&submission, "submission_id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}

	var assignment model.AssignmentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&assignment, "assignment_id = ?", submission.SubmissionAssignmentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignment")
	}

	now := time.Now()
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&submission).
		Updates(map[string]any{
			"submission_grade":     req.Grade,
			"submission_feedback":  req.Feedback,
			"submission_graded_by": teacherID,
			"submission_graded_at": now,
		}).Error; err != nil {
		log.Printf("[ERROR] grade submission: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grade submission")
	}

	ctrl.Fanout.NotifyOne(c.UserContext(), submission.SubmissionStudentID, teacherID,
		"Assignment graded",
		"Your submission for \""+assignment.AssignmentTitle+"\" was graded.",
		"assignment_graded", &assignment.AssignmentCourseID)

	return helper.JsonUpdated(c, "Submission graded", fiber.Map{"submission_id": submissionID})
}
