package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"madrasha_go/database"
	"madrasha_go/middleware"
	"madrasha_go/models"
	"madrasha_go/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AssistantController manages junior ustadh (assistant teacher) accounts.
// Accounts are archived, never hard-deleted, so audit history survives.
type AssistantController struct{}

type assistantSummary struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

func toAssistantSummary(u models.User) assistantSummary {
	return assistantSummary{
		ID:        u.ID,
		Name:      u.DisplayName(),
		Phone:     u.Phone,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// splitCombinedName splits "First Middle Last" into a first name and the rest.
func splitCombinedName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// findAssistant resolves an id to a non-archived junior ustadh record.
func findAssistant(c *fiber.Ctx) (*models.User, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid assistant teacher ID")
	}

	var assistant models.User
	if err := database.DB.Where("id = ? AND role = ? AND is_archived = ?", uint(id), models.RoleJuniorUstadh, false).
		First(&assistant).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "assistant teacher not found")
	}
	return &assistant, nil
}

// GetAssistants returns all non-archived assistant teacher accounts,
// newest first
func (ac *AssistantController) GetAssistants(c *fiber.Ctx) error {
	var assistants []models.User
	if err := database.DB.
		Where("role = ? AND is_archived = ?", models.RoleJuniorUstadh, false).
		Order("created_at DESC").
		Find(&assistants).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch assistant teachers")
	}

	items := make([]assistantSummary, 0, len(assistants))
	for _, a := range assistants {
		items = append(items, toAssistantSummary(a))
	}

	return utils.Success(c, "assistant teachers retrieved", fiber.Map{"items": items})
}

// CreateAssistant creates a new assistant teacher account
func (ac *AssistantController) CreateAssistant(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
		Email     string `json:"email"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Legacy clients send a single combined name; normalize to first/last
	if req.FirstName == "" && req.Name != "" {
		req.FirstName, req.LastName = splitCombinedName(req.Name)
	}

	required := map[string]string{
		"first_name": strings.TrimSpace(req.FirstName),
		"last_name":  strings.TrimSpace(req.LastName),
		"phone":      strings.TrimSpace(req.Phone),
		"password":   req.Password,
	}
	for _, field := range []string{"first_name", "last_name", "phone", "password"} {
		if required[field] == "" {
			return utils.Error(c, fiber.StatusBadRequest, field+" is required")
		}
	}

	// Fast-path uniqueness check; the unique index on phone is the real guard
	var existing models.User
	if err := database.DB.Where("phone = ?", required["phone"]).First(&existing).Error; err == nil {
		return utils.Error(c, fiber.StatusBadRequest, "phone number already in use")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	assistant := models.User{
		FirstName: required["first_name"],
		LastName:  required["last_name"],
		Phone:     required["phone"],
		Email:     strings.TrimSpace(req.Email),
		Password:  hashedPassword,
		Role:      models.RoleJuniorUstadh,
		IsActive:  true,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&assistant).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Error(c, fiber.StatusBadRequest, "phone number already in use")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed to create assistant teacher")
	}

	middleware.LogActivity(c, "CREATE", "assistant-teachers", assistant.ID, fiber.Map{
		"name":  assistant.DisplayName(),
		"phone": assistant.Phone,
	})

	return utils.SuccessStatus(c, fiber.StatusCreated, "assistant teacher account created", fiber.Map{
		"id":    assistant.ID,
		"name":  assistant.DisplayName(),
		"phone": assistant.Phone,
	})
}

// UpdateAssistant applies a partial update to an assistant teacher account
func (ac *AssistantController) UpdateAssistant(c *fiber.Ctx) error {
	assistant, err := findAssistant(c)
	if err != nil {
		e := err.(*fiber.Error)
		return utils.Error(c, e.Code, e.Message)
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
		Email     *string `json:"email"`
		Password  *string `json:"password"`
		IsActive  *bool   `json:"is_active"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.FirstName != nil {
		assistant.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		assistant.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return utils.Error(c, fiber.StatusBadRequest, "phone is required")
		}
		// Re-validate uniqueness against all other users
		var existing models.User
		if err := database.DB.Where("phone = ? AND id <> ?", phone, assistant.ID).First(&existing).Error; err == nil {
			return utils.Error(c, fiber.StatusBadRequest, "phone number already in use")
		}
		assistant.Phone = phone
	}
	if req.Email != nil {
		assistant.Email = strings.TrimSpace(*req.Email)
	}
	// An empty password leaves the stored hash untouched
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed to hash password")
		}
		assistant.Password = hashed
	}
	if req.IsActive != nil {
		assistant.IsActive = *req.IsActive
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(assistant).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Error(c, fiber.StatusBadRequest, "phone number already in use")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update assistant teacher")
	}

	middleware.LogActivity(c, "UPDATE", "assistant-teachers", assistant.ID, req)

	return utils.Success(c, "assistant teacher updated", fiber.Map{
		"id":    assistant.ID,
		"name":  assistant.DisplayName(),
		"phone": assistant.Phone,
	})
}

// ArchiveAssistant soft-deletes an assistant teacher account. The row is kept
// with archival metadata and disappears from every listing of this service.
func (ac *AssistantController) ArchiveAssistant(c *fiber.Ctx) error {
	assistant, err := findAssistant(c)
	if err != nil {
		e := err.(*fiber.Error)
		return utils.Error(c, e.Code, e.Message)
	}

	actor, err := middleware.GetCurrentUser(c)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	now := time.Now()
	assistant.IsArchived = true
	assistant.ArchivedAt = &now
	assistant.ArchivedBy = &actor.ID
	assistant.ArchiveReason = "assistant teacher account archived by staff"
	assistant.IsActive = false

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(assistant).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to archive assistant teacher")
	}

	middleware.LogActivity(c, "ARCHIVE", "assistant-teachers", assistant.ID, fiber.Map{
		"archived_by": actor.ID,
	})

	return utils.Success(c, "assistant teacher account archived", nil)
}

// ToggleStatus flips the active flag of an assistant teacher account
func (ac *AssistantController) ToggleStatus(c *fiber.Ctx) error {
	assistant, err := findAssistant(c)
	if err != nil {
		e := err.(*fiber.Error)
		return utils.Error(c, e.Code, e.Message)
	}

	assistant.IsActive = !assistant.IsActive

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(assistant).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update assistant teacher")
	}

	middleware.LogActivity(c, "UPDATE", "assistant-teachers", assistant.ID, fiber.Map{
		"is_active": assistant.IsActive,
	})

	return utils.Success(c, "assistant teacher status updated", fiber.Map{
		"is_active": assistant.IsActive,
	})
}
