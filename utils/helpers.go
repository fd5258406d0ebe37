package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"madrasha_go/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateRandomString generates a random string of specified length
func GenerateRandomString(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// IsValidRole checks if a role is valid
func IsValidRole(role string) bool {
	validRoles := []string{models.RoleSuperUser, models.RoleTeacher, models.RoleJuniorUstadh, models.RoleStudent}
	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

// IsValidFeeStatus checks if a fee status is valid
func IsValidFeeStatus(status string) bool {
	validStatuses := []string{models.FeeStatusPending, models.FeeStatusPaid, models.FeeStatusOverdue}
	for _, validStatus := range validStatuses {
		if status == validStatus {
			return true
		}
	}
	return false
}

// ExpenseCategories is the closed set of expense categories
var ExpenseCategories = []string{
	"salary", "books", "instruments", "utilities", "rent",
	"maintenance", "stationery", "transport", "food", "events", "other",
}

// IsValidExpenseCategory checks if a category belongs to the closed set
func IsValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if category == c {
			return true
		}
	}
	return false
}

// SanitizeString removes dangerous characters from string
func SanitizeString(input string) string {
	// Remove null bytes and control characters
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	return input
}
