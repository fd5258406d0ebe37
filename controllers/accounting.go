package controllers

import (
	"strconv"
	"time"

	"madrasha_go/database"
	"madrasha_go/models"
	"madrasha_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AccountingController serves the income/expense reporting endpoints. All
// currency math runs on decimals; only the final collection-rate percentage
// is rendered as a float.
type AccountingController struct{}

type incomeTotals struct {
	TotalExpected decimal.Decimal `json:"total_expected"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	TotalOverdue  decimal.Decimal `json:"total_overdue"`
}

// summarizeFees totals fee base amounts by status. Late-fee surcharges are
// deliberately excluded from every bucket.
func summarizeFees(fees []models.Fee) incomeTotals {
	totals := incomeTotals{
		TotalExpected: decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalPending:  decimal.Zero,
		TotalOverdue:  decimal.Zero,
	}
	for _, fee := range fees {
		totals.TotalExpected = totals.TotalExpected.Add(fee.Amount)
		switch fee.Status {
		case models.FeeStatusPaid:
			totals.TotalPaid = totals.TotalPaid.Add(fee.Amount)
		case models.FeeStatusPending:
			totals.TotalPending = totals.TotalPending.Add(fee.Amount)
		case models.FeeStatusOverdue:
			totals.TotalOverdue = totals.TotalOverdue.Add(fee.Amount)
		}
	}
	return totals
}

// collectionRate returns paid/expected as a percentage rounded to two
// decimals, and 0 when nothing was expected.
func collectionRate(paid, expected decimal.Decimal) float64 {
	if expected.IsZero() {
		return 0
	}
	rate := paid.Div(expected).Mul(decimal.NewFromInt(100)).Round(2)
	f, _ := rate.Float64()
	return f
}

// summarizeExpenses returns the grand total and a category -> subtotal map.
func summarizeExpenses(expenses []models.Expense) (decimal.Decimal, map[string]decimal.Decimal) {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, exp := range expenses {
		total = total.Add(exp.Amount)
		if sub, ok := byCategory[exp.Category]; ok {
			byCategory[exp.Category] = sub.Add(exp.Amount)
		} else {
			byCategory[exp.Category] = exp.Amount
		}
	}
	return total, byCategory
}

// periodLabel renders "January 2025" when a month is given, "2025" otherwise.
func periodLabel(year int, month *int) string {
	if month != nil && *month >= 1 && *month <= 12 {
		return time.Month(*month).String() + " " + strconv.Itoa(year)
	}
	return strconv.Itoa(year)
}

// parsePeriodQuery reads year (defaulting to the current year) and an
// optional month from query parameters.
func parsePeriodQuery(c *fiber.Ctx) (int, *int, error) {
	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			return 0, nil, fiber.NewError(fiber.StatusBadRequest, "invalid year")
		}
		year = parsed
	}

	var month *int
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, nil, fiber.NewError(fiber.StatusBadRequest, "invalid month")
		}
		month = &parsed
	}
	return year, month, nil
}

// GetIncomeSummary reports fee collection totals for a year/optional month
// GET /api/accounting/income-summary?year=2025&month=1
func (ac *AccountingController) GetIncomeSummary(c *fiber.Ctx) error {
	year, month, err := parsePeriodQuery(c)
	if err != nil {
		e := err.(*fiber.Error)
		return utils.Error(c, e.Code, e.Message)
	}

	query := database.DB.Model(&models.Fee{}).Where("YEAR(due_date) = ?", year)
	if month != nil {
		query = query.Where("MONTH(due_date) = ?", *month)
	}

	var fees []models.Fee
	if err := query.Find(&fees).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch fees")
	}

	totals := summarizeFees(fees)

	return utils.Success(c, "income summary retrieved", fiber.Map{
		"year":            year,
		"month":           month,
		"total_expected":  totals.TotalExpected,
		"total_paid":      totals.TotalPaid,
		"total_pending":   totals.TotalPending,
		"total_overdue":   totals.TotalOverdue,
		"collection_rate": collectionRate(totals.TotalPaid, totals.TotalExpected),
	})
}

// GetSummary reports combined income, expenses and balance for a period
// GET /api/accounting/summary?year=2025&month=1
func (ac *AccountingController) GetSummary(c *fiber.Ctx) error {
	year, month, err := parsePeriodQuery(c)
	if err != nil {
		e := err.(*fiber.Error)
		return utils.Error(c, e.Code, e.Message)
	}

	feeQuery := database.DB.Model(&models.Fee{}).
		Where("YEAR(due_date) = ? AND status = ?", year, models.FeeStatusPaid)
	if month != nil {
		feeQuery = feeQuery.Where("MONTH(due_date) = ?", *month)
	}

	var paidFees []models.Fee
	if err := feeQuery.Find(&paidFees).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch fees")
	}

	totalIncome := decimal.Zero
	for _, fee := range paidFees {
		totalIncome = totalIncome.Add(fee.Amount)
	}

	expenseQuery := database.DB.Model(&models.Expense{}).Where("YEAR(date) = ?", year)
	if month != nil {
		expenseQuery = expenseQuery.Where("MONTH(date) = ?", *month)
	}

	var expenses []models.Expense
	if err := expenseQuery.Find(&expenses).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch expenses")
	}

	totalExpenses, byCategory := summarizeExpenses(expenses)
	// Balance may go negative; that is a report, not an error
	balance := totalIncome.Sub(totalExpenses)

	return utils.Success(c, "accounting summary retrieved", fiber.Map{
		"year":  year,
		"month": month,
		"income": fiber.Map{
			"total":     totalIncome,
			"from_fees": totalIncome,
		},
		"expenses": fiber.Map{
			"total":       totalExpenses,
			"by_category": byCategory,
		},
		"balance": balance,
		"period":  periodLabel(year, month),
	})
}

// GetCategories returns the closed set of expense categories
func (ac *AccountingController) GetCategories(c *fiber.Ctx) error {
	categories := []fiber.Map{
		{"value": "salary", "label": "উস্তাদ বেতন", "label_en": "Teacher Salary"},
		{"value": "books", "label": "বই ও পুস্তক", "label_en": "Books"},
		{"value": "instruments", "label": "যন্ত্রপাতি", "label_en": "Instruments/Equipment"},
		{"value": "utilities", "label": "ইউটিলিটি (বিদ্যুৎ, পানি)", "label_en": "Utilities"},
		{"value": "rent", "label": "ভাড়া", "label_en": "Rent"},
		{"value": "maintenance", "label": "রক্ষণাবেক্ষণ", "label_en": "Maintenance"},
		{"value": "stationery", "label": "স্টেশনারি", "label_en": "Stationery"},
		{"value": "transport", "label": "পরিবহন", "label_en": "Transport"},
		{"value": "food", "label": "খাবার", "label_en": "Food"},
		{"value": "events", "label": "অনুষ্ঠান", "label_en": "Events"},
		{"value": "other", "label": "অন্যান্য", "label_en": "Other"},
	}

	return utils.Success(c, "categories retrieved", fiber.Map{"categories": categories})
}
