package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/pkg/logger"
	"github.com/postboard/backend/pkg/utils"
)

const currentUserKey = "currentUser"

// CookieName carries the session token for the server-rendered pages.
// The JSON API uses an Authorization bearer header instead.
const CookieName = "auth_token"

const LoginPath = "/auth/login"

type AuthMiddleware struct {
	DB *gorm.DB
}

func NewAuthMiddleware(db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{DB: db}
}

// OptionalAuth resolves the current user when a valid token is present
// and stays silent otherwise. Public pages use it so templates can show
// the right navigation.
func (a *AuthMiddleware) OptionalAuth(c *fiber.Ctx) error {
	if user := a.resolveUser(c); user != nil {
		c.Locals(currentUserKey, user)
	}
	return c.Next()
}

// RequireLogin guards the server-rendered pages. Anonymous callers are
// redirected to the login page with the requested path in ?next=.
func (a *AuthMiddleware) RequireLogin(c *fiber.Ctx) error {
	user := a.resolveUser(c)
	if user == nil {
		return c.Redirect(LoginPath+"?next="+url.QueryEscape(c.Path()), fiber.StatusFound)
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

// RequireAuth guards the JSON API.
func (a *AuthMiddleware) RequireAuth(c *fiber.Ctx) error {
	user := a.resolveUser(c)
	if user == nil {
		logger.Warn("api_unauthorized", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

func AdminOnly(c *fiber.Ctx) error {
	user := GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if user.Role != models.UserRoleAdmin {
		return utils.Error(c, fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}

func GetCurrentUser(c *fiber.Ctx) *models.User {
	value := c.Locals(currentUserKey)
	if value == nil {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func (a *AuthMiddleware) resolveUser(c *fiber.Ctx) *models.User {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return nil
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		return nil
	}

	var user models.User
	if err := a.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil
	}

	return &user
}

func tokenFromRequest(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token != authHeader && token != "" {
			return token
		}
	}
	return c.Cookies(CookieName)
}
