package services

import (
	"testing"
	"time"
)

func TestPeriodDueDate(t *testing.T) {
	tests := []struct {
		name  string
		month int
		year  int
		want  string
	}{
		{"january", 1, 2025, "2025-01-31"},
		{"february non-leap", 2, 2025, "2025-02-28"},
		{"february leap year", 2, 2024, "2024-02-29"},
		{"april has 30 days", 4, 2025, "2025-04-30"},
		{"december rolls within the year", 12, 2025, "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := periodDueDate(tt.month, tt.year)
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("periodDueDate(%d, %d) = %s, want %s",
					tt.month, tt.year, got.Format("2006-01-02"), tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("due date should be at midnight, got %v", got)
			}
		})
	}
}

func TestPeriodDueDateIsMonthEnd(t *testing.T) {
	for month := 1; month <= 12; month++ {
		due := periodDueDate(month, 2025)
		if due.Month() != time.Month(month) {
			t.Errorf("month %d: due date landed in %s", month, due.Month())
		}
		next := due.AddDate(0, 0, 1)
		if next.Day() != 1 {
			t.Errorf("month %d: %v is not the last day of the month", month, due)
		}
	}
}
