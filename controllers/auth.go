package controllers

import (
	"context"
	"time"

	"madrasha_go/database"
	"madrasha_go/middleware"
	"madrasha_go/models"
	"madrasha_go/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct{}

// LoginRequest represents the login request body
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login authenticates a user by phone number and returns a JWT token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Phone == "" || req.Password == "" {
		return utils.Error(c, fiber.StatusBadRequest, "phone and password are required")
	}

	// Find user by phone; archived or deactivated accounts cannot log in
	var user models.User
	if err := database.DB.Where("phone = ? AND is_active = ? AND is_archived = ?", req.Phone, true, false).
		First(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := utils.CheckPassword(req.Password, user.Password); err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_login", &now)

	middleware.LogActivity(c, "LOGIN", "auth", user.ID, fiber.Map{
		"phone": user.Phone,
		"role":  user.Role,
	})

	return utils.Success(c, "login successful", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":        user.ID,
			"name":      user.DisplayName(),
			"phone":     user.Phone,
			"email":     user.Email,
			"role":      user.Role,
			"is_active": user.IsActive,
		},
	})
}

// Logout invalidates the current JWT by storing it in Redis blacklist for 24 hours
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Error(c, fiber.StatusBadRequest, "missing authorization header")
	}

	tokenString := authHeader
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	// Blacklist the token if Redis is available; logout still succeeds if not
	if rc := database.GetRedisClient(); rc != nil {
		key := "blacklist:jwt:" + tokenString
		if err := rc.Set(context.Background(), key, "1", 24*time.Hour).Err(); err != nil {
			middleware.LogActivity(c, "LOGOUT", "auth", 0, fiber.Map{"error": err.Error()})
		}
	}

	if user, err := middleware.GetCurrentUser(c); err == nil {
		middleware.LogActivity(c, "LOGOUT", "auth", user.ID, fiber.Map{"phone": user.Phone})
	}

	return utils.Success(c, "logged out successfully", nil)
}

// GetProfile returns the authenticated user's own record
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	return utils.Success(c, "profile retrieved", fiber.Map{
		"id":         user.ID,
		"name":       user.DisplayName(),
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"phone":      user.Phone,
		"email":      user.Email,
		"role":       user.Role,
		"is_active":  user.IsActive,
		"last_login": user.LastLogin,
		"created_at": user.CreatedAt,
	})
}

// ChangePassword updates the authenticated user's own password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return utils.Error(c, fiber.StatusBadRequest, "current_password and new_password are required")
	}

	if err := utils.CheckPassword(req.CurrentPassword, user.Password); err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "current password is incorrect")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	if err := database.DB.Model(user).Update("password", hashed).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update password")
	}

	middleware.LogActivity(c, "UPDATE", "auth", user.ID, fiber.Map{"action": "password_change"})

	return utils.Success(c, "password updated successfully", nil)
}
