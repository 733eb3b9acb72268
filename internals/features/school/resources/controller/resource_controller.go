package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/resources/dto"
	"schoolhub_backend/internals/features/school/resources/model"
	helper "schoolhub_backend/internals/helpers"
)

type ResourceController struct {
	DB *gorm.DB
}

func NewResourceController(db *gorm.DB) *ResourceController {
	return &ResourceController{DB: db}
}

// POST /api/t/resources
func (ctrl *ResourceController) CreateResource(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	resource := model.ResourceModel{
		ResourceCourseID: req.CourseID,
		ResourceOwnerID:  ownerID,
		ResourceTitle:    req.Title,
		ResourceURL:      req.URL,
		ResourceKind:     req.Kind,
		ResourceTags:     req.Tags,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&resource).Error; err != nil {
		log.Printf("[ERROR] create resource: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create resource")
	}
	return helper.JsonCreated(c, "Resource created", dto.ToResourceResponse(&resource))
}

// GET /api/u/courses/:id/resources
func (ctrl *ResourceController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var resources []model.ResourceModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("resource_course_id = ?", courseID).
		Order("resource_created_at DESC").
		Find(&resources).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch resources")
	}
	return helper.JsonOK(c, "", dto.ToResourceResponseList(resources))
}

// DELETE /api/t/resources/:id, only the owner may delete.
func (ctrl *ResourceController) DeleteResource(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid resource id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("resource_id = ? AND resource_owner_id = ?", id, ownerID).
		Delete(&model.ResourceModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete resource")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Resource not found")
	}
	return helper.JsonDeleted(c, "Resource deleted", fiber.Map{"resource_id": id})
}
