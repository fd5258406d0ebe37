package controllers

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"json number", `1500.50`, "1500.5", false},
		{"json string", `"1500.50"`, "1500.5", false},
		{"integer", `15000`, "15000", false},
		{"zero", `0`, "0", false},
		{"negative allowed by parser", `-10`, "-10", false},
		{"empty string", `""`, "", true},
		{"null", `null`, "", true},
		{"garbage", `"abc"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(json.RawMessage(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseAmount(%s) expected error, got %s", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAmount(%s) unexpected error: %v", tt.raw, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseAmount(%s) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseExpenseDate(t *testing.T) {
	date, err := parseExpenseDate("2025-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Year() != 2025 || date.Month() != 1 || date.Day() != 15 {
		t.Errorf("parsed wrong date: %v", date)
	}

	bad := []string{"15-01-2025", "2025/01/15", "January 15, 2025", ""}
	for _, s := range bad {
		if _, err := parseExpenseDate(s); err == nil {
			t.Errorf("parseExpenseDate(%q) expected error", s)
		}
	}
}
