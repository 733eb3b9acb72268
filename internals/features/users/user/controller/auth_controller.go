package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolhub_backend/internals/configs"
	"schoolhub_backend/internals/features/users/user/dto"
	"schoolhub_backend/internals/features/users/user/model"
	helper "schoolhub_backend/internals/helpers"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] bcrypt: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	user := model.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: string(hashed),
	}
	user.SetDefaultValues()

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		log.Printf("[ERROR] create user: %v", err)
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	}

	return helper.JsonCreated(c, "Account created", dto.ToUserResponse(&user))
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	access, err := signToken(&user, configs.JWTSecret, accessTokenTTL)
	if err != nil {
		log.Printf("[ERROR] sign access token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	refresh, err := signToken(&user, configs.JWTRefreshSecret, refreshTokenTTL)
	if err != nil {
		log.Printf("[ERROR] sign refresh token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	return helper.JsonOK(c, "Login success", dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(&user),
	})
}

// POST /api/auth/refresh  body {"refresh_token": "..."}
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing refresh_token")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(body.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	access, err := signToken(&user, configs.JWTSecret, accessTokenTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Token refresh failed")
	}
	return helper.JsonOK(c, "Token refreshed", fiber.Map{"access_token": access})
}

func signToken(u *model.UserModel, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
