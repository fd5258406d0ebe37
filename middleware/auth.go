package middleware

import (
	"context"
	"strings"
	"time"

	"madrasha_go/config"
	"madrasha_go/database"
	"madrasha_go/models"
	"madrasha_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Capability is a named permission checked by the access guard.
type Capability string

const (
	CapManageAssistantAccounts Capability = "manage_assistant_accounts"
	CapViewAccounting          Capability = "view_accounting"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Authorize maps a resolved user to an authorization decision for the given
// capability. It is a pure predicate: the caller resolves the session to a
// live user row first, and no state is touched here.
func Authorize(user *models.User, capability Capability) Decision {
	if user == nil || user.IsArchived {
		return Decision{Allowed: false, Reason: "not authenticated"}
	}
	if !user.IsActive {
		return Decision{Allowed: false, Reason: "not authenticated"}
	}

	switch capability {
	case CapManageAssistantAccounts, CapViewAccounting:
		if user.Role == models.RoleSuperUser || user.Role == models.RoleTeacher {
			return Decision{Allowed: true}
		}
		return Decision{Allowed: false, Reason: "insufficient permissions"}
	default:
		return Decision{Allowed: false, Reason: "unknown capability"}
	}
}

// GenerateToken creates a new JWT token for a user
func GenerateToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Phone:  user.Phone,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.AppConfig.JWTExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// JWTMiddleware validates JWT tokens and re-resolves the user row on every
// request. Role, active and archived state are always read from the database,
// never trusted from the token payload.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return utils.Error(c, fiber.StatusUnauthorized, "invalid authorization header format")
		}

		// Reject tokens blacklisted by logout
		if rc := database.GetRedisClient(); rc != nil {
			if exists, err := rc.Exists(context.Background(), "blacklist:jwt:"+tokenString).Result(); err == nil && exists > 0 {
				return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
			}
		}

		// Parse and validate token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.AppConfig.JWTSecret), nil
		})

		if err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || !token.Valid {
			return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
		}

		// Verify user still exists, is active and not archived
		var user models.User
		if err := database.DB.Where("id = ? AND is_active = ? AND is_archived = ?", claims.UserID, true, false).First(&user).Error; err != nil {
			return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
		}

		// Store user info in context
		c.Locals("user", &user)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// RequireCapability runs the access guard against the resolved user.
func RequireCapability(capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return utils.Error(c, fiber.StatusUnauthorized, "not authenticated")
		}

		decision := Authorize(user, capability)
		if !decision.Allowed {
			return utils.Error(c, fiber.StatusForbidden, decision.Reason)
		}

		return c.Next()
	}
}

// RequireStaff allows only super_user and teacher accounts
func RequireStaff() fiber.Handler {
	return RequireCapability(CapManageAssistantAccounts)
}

// GetCurrentUser returns the current authenticated user
func GetCurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found in context")
	}
	return user, nil
}

// GetCurrentClaims returns the current JWT claims
func GetCurrentClaims(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals("claims").(*Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Claims not found in context")
	}
	return claims, nil
}
