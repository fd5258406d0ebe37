package controllers

import (
	"testing"
	"time"

	"madrasha_go/models"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSummarizeFees(t *testing.T) {
	paid := time.Now()
	fees := []models.Fee{
		{Amount: d("1500.00"), Status: models.FeeStatusPaid, PaidDate: &paid},
		{Amount: d("1500.00"), Status: models.FeeStatusPending},
		{Amount: d("1500.00"), Status: models.FeeStatusOverdue, LateFee: d("100.00")},
	}

	totals := summarizeFees(fees)

	if !totals.TotalExpected.Equal(d("4500.00")) {
		t.Errorf("TotalExpected = %s, want 4500.00", totals.TotalExpected)
	}
	if !totals.TotalPaid.Equal(d("1500.00")) {
		t.Errorf("TotalPaid = %s, want 1500.00", totals.TotalPaid)
	}
	if !totals.TotalPending.Equal(d("1500.00")) {
		t.Errorf("TotalPending = %s, want 1500.00", totals.TotalPending)
	}
	// Late fee must not inflate the overdue bucket
	if !totals.TotalOverdue.Equal(d("1500.00")) {
		t.Errorf("TotalOverdue = %s, want 1500.00", totals.TotalOverdue)
	}
}

func TestSummarizeFeesEmpty(t *testing.T) {
	totals := summarizeFees(nil)
	if !totals.TotalExpected.IsZero() || !totals.TotalPaid.IsZero() {
		t.Errorf("empty fee list should produce zero totals, got %+v", totals)
	}
}

func TestCollectionRate(t *testing.T) {
	tests := []struct {
		name     string
		paid     string
		expected string
		want     float64
	}{
		{"one of three collected", "1500.00", "4500.00", 33.33},
		{"fully collected", "4500.00", "4500.00", 100},
		{"nothing collected", "0", "4500.00", 0},
		{"nothing expected", "0", "0", 0},
		{"two thirds", "3000.00", "4500.00", 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectionRate(d(tt.paid), d(tt.expected))
			if got != tt.want {
				t.Errorf("collectionRate(%s, %s) = %v, want %v", tt.paid, tt.expected, got, tt.want)
			}
		})
	}
}

func TestSummarizeExpenses(t *testing.T) {
	expenses := []models.Expense{
		{Category: "salary", Amount: d("15000.00")},
		{Category: "salary", Amount: d("10000.00")},
		{Category: "books", Amount: d("3500.00")},
	}

	total, byCategory := summarizeExpenses(expenses)

	if !total.Equal(d("28500.00")) {
		t.Errorf("total = %s, want 28500.00", total)
	}
	if !byCategory["salary"].Equal(d("25000.00")) {
		t.Errorf("salary subtotal = %s, want 25000.00", byCategory["salary"])
	}
	if !byCategory["books"].Equal(d("3500.00")) {
		t.Errorf("books subtotal = %s, want 3500.00", byCategory["books"])
	}
	if len(byCategory) != 2 {
		t.Errorf("expected 2 categories, got %d", len(byCategory))
	}
}

func TestNegativeBalance(t *testing.T) {
	income := d("1500.00")
	expenses := d("28500.00")
	balance := income.Sub(expenses)
	if !balance.Equal(d("-27000.00")) {
		t.Errorf("balance = %s, want -27000.00", balance)
	}
}

func TestPeriodLabel(t *testing.T) {
	jan := 1
	dec := 12

	tests := []struct {
		name  string
		year  int
		month *int
		want  string
	}{
		{"month and year", 2025, &jan, "January 2025"},
		{"december", 2024, &dec, "December 2024"},
		{"year only", 2025, nil, "2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := periodLabel(tt.year, tt.month); got != tt.want {
				t.Errorf("periodLabel(%d, %v) = %q, want %q", tt.year, tt.month, got, tt.want)
			}
		})
	}
}
