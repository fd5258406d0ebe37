package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "password123" {
		t.Error("password stored in plain text")
	}
	if err := CheckPassword("password123", hash); err != nil {
		t.Errorf("CheckPassword rejected the correct password: %v", err)
	}
	if err := CheckPassword("wrong", hash); err == nil {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"super_user", "teacher", "junior_ustadh", "student"} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"admin", "", "SUPER_USER"} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}

func TestIsValidFeeStatus(t *testing.T) {
	for _, status := range []string{"pending", "paid", "overdue"} {
		if !IsValidFeeStatus(status) {
			t.Errorf("IsValidFeeStatus(%q) = false, want true", status)
		}
	}
	if IsValidFeeStatus("cancelled") {
		t.Error("IsValidFeeStatus(\"cancelled\") = true, want false")
	}
}

func TestIsValidExpenseCategory(t *testing.T) {
	for _, category := range ExpenseCategories {
		if !IsValidExpenseCategory(category) {
			t.Errorf("IsValidExpenseCategory(%q) = false, want true", category)
		}
	}
	for _, category := range []string{"Salary", "misc", ""} {
		if IsValidExpenseCategory(category) {
			t.Errorf("IsValidExpenseCategory(%q) = true, want false", category)
		}
	}
}
