package controllers

import (
	"encoding/json"
	"strconv"
	"time"

	"madrasha_go/database"
	"madrasha_go/middleware"
	"madrasha_go/models"
	"madrasha_go/services"
	"madrasha_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FeeController handles fee listing, billing-period generation and payment
// capture.
type FeeController struct{}

// GetFees lists fees filtered by status/year/month/user/batch. The overdue
// view also sweeps in pending fees whose due date has passed - the overdue
// transition lives in the query filter, not in a background job.
func (fc *FeeController) GetFees(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Fee{}).Preload("User").Preload("Batch")

	if status := c.Query("status"); status != "" {
		if !utils.IsValidFeeStatus(status) {
			return utils.Error(c, fiber.StatusBadRequest, "invalid status")
		}
		if status == models.FeeStatusOverdue {
			query = query.Where("status = ? OR (status = ? AND due_date < ?)",
				models.FeeStatusOverdue, models.FeeStatusPending, time.Now())
		} else {
			query = query.Where("status = ?", status)
		}
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid year")
		}
		query = query.Where("year = ?", year)
	}
	if m := c.Query("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			return utils.Error(c, fiber.StatusBadRequest, "invalid month")
		}
		query = query.Where("month = ?", month)
	}
	if uid := c.Query("user_id"); uid != "" {
		query = query.Where("user_id = ?", uid)
	}
	if bid := c.Query("batch_id"); bid != "" {
		query = query.Where("batch_id = ?", bid)
	}

	var fees []models.Fee
	if err := query.Order("due_date DESC").Find(&fees).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch fees")
	}

	total := decimal.Zero
	for _, fee := range fees {
		total = total.Add(fee.Amount)
	}

	return utils.Success(c, "fees retrieved", fiber.Map{
		"fees":  fees,
		"total": total,
		"count": len(fees),
	})
}

// GenerateFees opens a billing period: one pending fee per active enrollment
// POST /api/fees/generate {"month": 3, "year": 2025}
func (fc *FeeController) GenerateFees(c *fiber.Ctx) error {
	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	now := time.Now()
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Month < 1 || req.Month > 12 {
		return utils.Error(c, fiber.StatusBadRequest, "invalid month")
	}

	created, skipped, err := services.OpenBillingPeriod(req.Month, req.Year)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to generate fees")
	}

	middleware.LogActivity(c, "CREATE", "fees", 0, fiber.Map{
		"month":   req.Month,
		"year":    req.Year,
		"created": created,
		"skipped": skipped,
	})

	return utils.SuccessStatus(c, fiber.StatusCreated, "billing period opened", fiber.Map{
		"month":   req.Month,
		"year":    req.Year,
		"created": created,
		"skipped": skipped,
	})
}

// PayFee captures a payment against a pending or overdue fee
// POST /api/fees/:id/pay
func (fc *FeeController) PayFee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid fee ID")
	}

	var fee models.Fee
	if err := database.DB.First(&fee, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "fee not found")
	}

	if fee.Status == models.FeeStatusPaid {
		return utils.Error(c, fiber.StatusBadRequest, "fee is already paid")
	}

	var req struct {
		PaymentMethod string          `json:"payment_method"`
		PaidDate      string          `json:"paid_date"`
		LateFee       json.RawMessage `json:"late_fee"`
		Notes         string          `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	paidDate := time.Now()
	if req.PaidDate != "" {
		parsed, err := parseExpenseDate(req.PaidDate)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid paid_date format, expected YYYY-MM-DD")
		}
		paidDate = parsed
	}

	if len(req.LateFee) > 0 {
		lateFee, err := parseAmount(req.LateFee)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, err.Error())
		}
		fee.LateFee = lateFee
	}

	fee.Status = models.FeeStatusPaid
	fee.PaidDate = &paidDate
	if req.PaymentMethod != "" {
		fee.PaymentMethod = req.PaymentMethod
	} else if fee.PaymentMethod == "" {
		fee.PaymentMethod = "Cash"
	}
	if req.Notes != "" {
		fee.Notes = req.Notes
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&fee).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to record payment")
	}

	middleware.LogActivity(c, "UPDATE", "fees", fee.ID, fiber.Map{
		"action": "payment",
		"amount": fee.Amount,
	})

	return utils.Success(c, "payment recorded successfully", fee)
}

// MarkOverdue flags a pending fee as overdue explicitly
// POST /api/fees/:id/mark-overdue
func (fc *FeeController) MarkOverdue(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid fee ID")
	}

	var fee models.Fee
	if err := database.DB.First(&fee, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "fee not found")
	}

	if fee.Status != models.FeeStatusPending {
		return utils.Error(c, fiber.StatusBadRequest, "only pending fees can be marked overdue")
	}

	fee.Status = models.FeeStatusOverdue
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&fee).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update fee")
	}

	middleware.LogActivity(c, "UPDATE", "fees", fee.ID, fiber.Map{"status": fee.Status})

	return utils.Success(c, "fee marked overdue", fee)
}
