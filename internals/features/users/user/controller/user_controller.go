package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	"schoolhub_backend/internals/features/users/user/dto"
	"schoolhub_backend/internals/features/users/user/model"
	helper "schoolhub_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/u/me
func (ctrl *UserController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "", dto.ToUserResponse(&user))
}

// PATCH /api/u/me  (name only; email/role changes go through admin)
func (ctrl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body struct {
		UserName string `json:"user_name" validate:"required,min=3,max=50"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Model(&user).
		Update("user_name", body.UserName).Error; err != nil {
		log.Printf("[ERROR] update profile: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	user.UserName = body.UserName
	return helper.JsonUpdated(c, "Profile updated", dto.ToUserResponse(&user))
}

// GET /api/a/users  (?role=teacher&page=&per_page=)
func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if role := c.Query("role"); role != "" {
		if !constants.IsKnownRole(role) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown role filter")
		}
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []model.UserModel
	if err := q.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		log.Printf("[ERROR] list users: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return helper.JsonList(c, "", dto.ToUserResponseList(users),
		helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// POST /api/a/users
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	user := model.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		log.Printf("[ERROR] admin create user: %v", err)
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	}
	return helper.JsonCreated(c, "User created", dto.ToUserResponse(&user))
}

// PATCH /api/a/users/:id
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	updates := map[string]any{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToUserResponse(&user))
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Model(&user).
		Updates(updates).Error; err != nil {
		log.Printf("[ERROR] admin update user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.JsonUpdated(c, "User updated", dto.ToUserResponse(&user))
}

// DELETE /api/a/users/:id  (soft: deactivate)
func (ctrl *UserController) DeactivateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).
		Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonDeleted(c, "User deactivated", fiber.Map{"id": id})
}
