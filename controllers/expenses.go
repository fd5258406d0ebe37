package controllers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"madrasha_go/database"
	"madrasha_go/middleware"
	"madrasha_go/models"
	"madrasha_go/storage"
	"madrasha_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExpenseController handles expense records: CRUD, receipt attachments and
// spreadsheet export.
type ExpenseController struct{}

// parseAmount reads a currency value that clients may send either as a JSON
// number or as a string, keeping exact decimal semantics either way.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %s", s)
	}
	return amount, nil
}

// parseExpenseDate parses an ISO YYYY-MM-DD date string.
func parseExpenseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// GetExpenses lists expenses filtered by optional year/month/category
// GET /api/accounting/expenses?year=2025&month=1&category=salary
func (ec *ExpenseController) GetExpenses(c *fiber.Ctx) error {
	expenses, err := ec.filteredExpenses(c)
	if err != nil {
		e := err.(*fiber.Error)
		return utils.Error(c, e.Code, e.Message)
	}

	total := decimal.Zero
	for _, exp := range expenses {
		total = total.Add(exp.Amount)
	}

	return utils.Success(c, "expenses retrieved", fiber.Map{
		"expenses": expenses,
		"total":    total,
		"count":    len(expenses),
	})
}

func (ec *ExpenseController) filteredExpenses(c *fiber.Ctx) ([]models.Expense, error) {
	query := database.DB.Model(&models.Expense{})

	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid year")
		}
		query = query.Where("YEAR(date) = ?", year)
	}
	if m := c.Query("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid month")
		}
		query = query.Where("MONTH(date) = ?", month)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch expenses")
	}
	return expenses, nil
}

// CreateExpense records a new expense
func (ec *ExpenseController) CreateExpense(c *fiber.Ctx) error {
	var req struct {
		Category      string          `json:"category"`
		Description   string          `json:"description"`
		Amount        json.RawMessage `json:"amount"`
		Date          string          `json:"date"`
		PaymentMethod string          `json:"payment_method"`
		Recipient     string          `json:"recipient"`
		Notes         string          `json:"notes"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Category) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "category is required")
	}
	if !utils.IsValidExpenseCategory(req.Category) {
		return utils.Error(c, fiber.StatusBadRequest, "invalid category")
	}
	if strings.TrimSpace(req.Description) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "description is required")
	}
	if len(req.Amount) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "amount is required")
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Date == "" {
		return utils.Error(c, fiber.StatusBadRequest, "date is required")
	}
	date, err := parseExpenseDate(req.Date)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Cash"
	}

	var createdBy uint
	if actor, err := middleware.GetCurrentUser(c); err == nil {
		createdBy = actor.ID
	}

	expense := models.Expense{
		Category:      req.Category,
		Description:   req.Description,
		Amount:        amount,
		Date:          date,
		PaymentMethod: paymentMethod,
		Recipient:     req.Recipient,
		Notes:         req.Notes,
		CreatedBy:     createdBy,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&expense).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to create expense")
	}

	middleware.LogActivity(c, "CREATE", "expenses", expense.ID, fiber.Map{
		"category": expense.Category,
		"amount":   expense.Amount,
	})

	return utils.SuccessStatus(c, fiber.StatusCreated, "expense added successfully", fiber.Map{
		"id":       expense.ID,
		"category": expense.Category,
		"amount":   expense.Amount,
		"date":     expense.Date.Format("2006-01-02"),
	})
}

// UpdateExpense applies a partial patch to an expense
func (ec *ExpenseController) UpdateExpense(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid expense ID")
	}

	var expense models.Expense
	if err := database.DB.First(&expense, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "expense not found")
	}

	var req struct {
		Category      *string         `json:"category"`
		Description   *string         `json:"description"`
		Amount        json.RawMessage `json:"amount"`
		Date          *string         `json:"date"`
		PaymentMethod *string         `json:"payment_method"`
		Recipient     *string         `json:"recipient"`
		Notes         *string         `json:"notes"`
	}

	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Category != nil {
		if !utils.IsValidExpenseCategory(*req.Category) {
			return utils.Error(c, fiber.StatusBadRequest, "invalid category")
		}
		expense.Category = *req.Category
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return utils.Error(c, fiber.StatusBadRequest, "description is required")
		}
		expense.Description = *req.Description
	}
	if len(req.Amount) > 0 {
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, err.Error())
		}
		expense.Amount = amount
	}
	if req.Date != nil {
		date, err := parseExpenseDate(*req.Date)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		}
		expense.Date = date
	}
	if req.PaymentMethod != nil {
		expense.PaymentMethod = *req.PaymentMethod
	}
	if req.Recipient != nil {
		expense.Recipient = *req.Recipient
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&expense).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update expense")
	}

	middleware.LogActivity(c, "UPDATE", "expenses", expense.ID, req)

	return utils.Success(c, "expense updated successfully", expense)
}

// DeleteExpense removes an expense record for good
func (ec *ExpenseController) DeleteExpense(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid expense ID")
	}

	var expense models.Expense
	if err := database.DB.First(&expense, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "expense not found")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Expenses have no downstream references; hard delete is fine
		return tx.Unscoped().Delete(&expense).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete expense")
	}

	middleware.LogActivity(c, "DELETE", "expenses", expense.ID, fiber.Map{
		"category": expense.Category,
		"amount":   expense.Amount,
	})

	return utils.Success(c, "expense deleted successfully", nil)
}

// UploadReceipt attaches a receipt file to an expense
func (ec *ExpenseController) UploadReceipt(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid expense ID")
	}

	var expense models.Expense
	if err := database.DB.First(&expense, uint(id)).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "expense not found")
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "no file uploaded")
	}

	storageService, err := storage.NewStorageService()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "storage service initialization failed")
	}

	receiptURL, err := storageService.UploadFile(file, "receipts", expense.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to upload receipt")
	}

	// Replace a previous receipt if one exists
	if expense.ReceiptURL != "" {
		go storageService.DeleteFile(expense.ReceiptURL)
	}

	if err := database.DB.Model(&expense).Update("receipt_url", receiptURL).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update expense receipt")
	}

	middleware.LogActivity(c, "UPDATE", "expenses", expense.ID, fiber.Map{
		"action":  "receipt_upload",
		"receipt": receiptURL,
	})

	return utils.Success(c, "receipt uploaded successfully", fiber.Map{
		"receipt_url": receiptURL,
	})
}

// ExportExpenses writes the filtered expense list to an .xlsx attachment
// GET /api/accounting/expenses/export?year=2025&month=1&category=salary
func (ec *ExpenseController) ExportExpenses(c *fiber.Ctx) error {
	expenses, err := ec.filteredExpenses(c)
	if err != nil {
		e := err.(*fiber.Error)
		return utils.Error(c, e.Code, e.Message)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"ID", "Category", "Description", "Amount", "Date", "Payment Method", "Recipient", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	total := decimal.Zero
	for row, exp := range expenses {
		values := []interface{}{
			exp.ID,
			exp.Category,
			exp.Description,
			exp.Amount.StringFixed(2),
			exp.Date.Format("2006-01-02"),
			exp.PaymentMethod,
			exp.Recipient,
			exp.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
		total = total.Add(exp.Amount)
	}

	// Total row under the listing
	totalRow := len(expenses) + 2
	labelCell, _ := excelize.CoordinatesToCellName(3, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(4, totalRow)
	f.SetCellValue(sheet, labelCell, "Total")
	f.SetCellValue(sheet, valueCell, total.StringFixed(2))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to generate export")
	}

	filename := fmt.Sprintf("expenses_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
