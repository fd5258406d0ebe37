package controllers

import (
	"encoding/json"
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

// BatchController manages classes/cohorts and student enrollment.
type BatchController struct{}

// GetBatches returns all batches, optionally filtered by active flag
func (bc *BatchController) GetBatches(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Batch{})
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var batches []models.Batch
	if err := query.Order("start_date DESC").Find(&batches).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch batches")
	}

	return utils.Success(c, "batches retrieved", fiber.Map{
		"batches": batches,
		"count":   len(batches),
	})
}

// GetBatch returns one batch with its enrolled students
func (bc *BatchController) GetBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid batch ID")
	}

	var batch models.Batch
	if err := database.DB.Preload("Students", "is_archived = ?", false).First(&batch, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "batch not found")
	}

	return utils.Success(c, "batch retrieved", batch)
}

// CreateBatch creates a new class/cohort
func (bc *BatchController) CreateBatch(c *fiber.Ctx) error {
	var req struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		FeeAmount   json.RawMessage `json:"fee_amount"`
		StartDate   string          `json:"start_date"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}
	if len(req.FeeAmount) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "fee_amount is required")
	}
	feeAmount, err := parseAmount(req.FeeAmount)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	startDate := time.Now()
	if req.StartDate != "" {
		parsed, err := parseExpenseDate(req.StartDate)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid start_date format, expected YYYY-MM-DD")
		}
		startDate = parsed
	}

	batch := models.Batch{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		FeeAmount:   feeAmount,
		StartDate:   startDate,
		IsActive:    true,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&batch).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to create batch")
	}

	middleware.LogActivity(c, "CREATE", "batches", batch.ID, fiber.Map{"name": batch.Name})

	return utils.SuccessStatus(c, fiber.StatusCreated, "batch created successfully", batch)
}

// UpdateBatch applies a partial patch to a batch
func (bc *BatchController) UpdateBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid batch ID")
	}

	var batch models.Batch
	if err := database.DB.First(&batch, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "batch not found")
	}

	var req struct {
		Name        *string         `json:"name"`
		Description *string         `json:"description"`
		FeeAmount   json.RawMessage `json:"fee_amount"`
		StartDate   *string         `json:"start_date"`
		IsActive    *bool           `json:"is_active"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return utils.Error(c, fiber.StatusBadRequest, "name is required")
		}
		batch.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		batch.Description = *req.Description
	}
	if len(req.FeeAmount) > 0 {
		feeAmount, err := parseAmount(req.FeeAmount)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, err.Error())
		}
		batch.FeeAmount = feeAmount
	}
	if req.StartDate != nil {
		parsed, err := parseExpenseDate(*req.StartDate)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid start_date format, expected YYYY-MM-DD")
		}
		batch.StartDate = parsed
	}
	if req.IsActive != nil {
		batch.IsActive = *req.IsActive
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&batch).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update batch")
	}

	middleware.LogActivity(c, "UPDATE", "batches", batch.ID, req)

	return utils.Success(c, "batch updated successfully", batch)
}

// DeleteBatch deactivates a batch. Rows stay because fees reference them.
func (bc *BatchController) DeleteBatch(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid batch ID")
	}

	var batch models.Batch
	if err := database.DB.First(&batch, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "batch not found")
	}

	batch.IsActive = false
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&batch).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to deactivate batch")
	}

	middleware.LogActivity(c, "DELETE", "batches", batch.ID, fiber.Map{"name": batch.Name})

	return utils.Success(c, "batch deactivated", nil)
}

// EnrollStudent adds a student to a batch
// POST /api/batches/:id/enroll {"user_id": 7}
func (bc *BatchController) EnrollStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid batch ID")
	}

	var batch models.Batch
	if err := database.DB.First(&batch, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "batch not found")
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "user_id is required")
	}

	var student models.User
	if err := database.DB.Where("id = ? AND role = ? AND is_archived = ?", req.UserID, models.RoleStudent, false).
		First(&student).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "student not found")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&batch).Association("Students").Append(&student)
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to enroll student")
	}

	middleware.LogActivity(c, "CREATE", "batches", batch.ID, fiber.Map{
		"action":  "enroll",
		"user_id": student.ID,
	})

	return utils.Success(c, "student enrolled successfully", fiber.Map{
		"batch_id": batch.ID,
		"user_id":  student.ID,
	})
}
