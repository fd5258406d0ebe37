package middleware

import (
	"testing"

	"madrasha_go/models"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		capability Capability
		allowed    bool
		reason     string
	}{
		{
			name:       "no session",
			user:       nil,
			capability: CapManageAssistantAccounts,
			allowed:    false,
			reason:     "not authenticated",
		},
		{
			name:       "archived user",
			user:       &models.User{Role: models.RoleSuperUser, IsActive: true, IsArchived: true},
			capability: CapManageAssistantAccounts,
			allowed:    false,
			reason:     "not authenticated",
		},
		{
			name:       "inactive user",
			user:       &models.User{Role: models.RoleTeacher, IsActive: false},
			capability: CapViewAccounting,
			allowed:    false,
			reason:     "not authenticated",
		},
		{
			name:       "super user manages assistants",
			user:       &models.User{Role: models.RoleSuperUser, IsActive: true},
			capability: CapManageAssistantAccounts,
			allowed:    true,
		},
		{
			name:       "teacher manages assistants",
			user:       &models.User{Role: models.RoleTeacher, IsActive: true},
			capability: CapManageAssistantAccounts,
			allowed:    true,
		},
		{
			name:       "teacher views accounting",
			user:       &models.User{Role: models.RoleTeacher, IsActive: true},
			capability: CapViewAccounting,
			allowed:    true,
		},
		{
			name:       "junior ustadh cannot manage assistants",
			user:       &models.User{Role: models.RoleJuniorUstadh, IsActive: true},
			capability: CapManageAssistantAccounts,
			allowed:    false,
			reason:     "insufficient permissions",
		},
		{
			name:       "junior ustadh cannot view accounting",
			user:       &models.User{Role: models.RoleJuniorUstadh, IsActive: true},
			capability: CapViewAccounting,
			allowed:    false,
			reason:     "insufficient permissions",
		},
		{
			name:       "student cannot view accounting",
			user:       &models.User{Role: models.RoleStudent, IsActive: true},
			capability: CapViewAccounting,
			allowed:    false,
			reason:     "insufficient permissions",
		},
		{
			name:       "unknown capability denied",
			user:       &models.User{Role: models.RoleSuperUser, IsActive: true},
			capability: Capability("rewrite_history"),
			allowed:    false,
			reason:     "unknown capability",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(tc.user, tc.capability)
			if d.Allowed != tc.allowed {
				t.Fatalf("expected allowed=%v, got %v", tc.allowed, d.Allowed)
			}
			if !tc.allowed && d.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, d.Reason)
			}
		})
	}
}
