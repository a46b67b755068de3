package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/postboard/backend/internal/forms"
	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/pkg/logger"
	"github.com/postboard/backend/pkg/utils"
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return h.renderSignup(c, &forms.SignupForm{}, forms.Errors{})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var form forms.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form body")
	}

	errs := form.Validate()
	if errs.Empty() {
		h.checkUniqueness(&form, errs)
	}
	if !errs.Empty() {
		return h.renderSignup(c, &form, errs)
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed hashing password")
	}

	user := models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Role:         models.UserRoleUser,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed creating user")
	}

	logger.Info("user_registered", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
	})

	return c.Redirect(middleware.LoginPath, fiber.StatusFound)
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return h.renderLogin(c, &forms.LoginForm{}, forms.Errors{}, c.Query("next", "/"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form body")
	}

	next := c.FormValue("next")
	if !strings.HasPrefix(next, "/") {
		next = "/"
	}

	errs := form.Validate()
	if !errs.Empty() {
		return h.renderLogin(c, &form, errs, next)
	}

	var user models.User
	err := h.DB.First(&user, "username = ?", form.Username).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "failed loading user")
	}
	if err != nil || !utils.CheckPasswordHash(form.Password, user.PasswordHash) {
		errs["__all__"] = "Неверное имя пользователя или пароль"
		return h.renderLogin(c, &form, errs, next)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed generating token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	logger.InfoWithUser(user.ID.String(), "user_logged_in", map[string]interface{}{
		"username": user.Username,
	})

	return c.Redirect(next, fiber.StatusFound)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect("/", fiber.StatusFound)
}

func (h *AuthHandler) checkUniqueness(form *forms.SignupForm, errs forms.Errors) {
	var count int64
	h.DB.Model(&models.User{}).Where("username = ?", form.Username).Count(&count)
	if count > 0 {
		errs["username"] = "Пользователь с таким именем уже существует"
		return
	}

	h.DB.Model(&models.User{}).Where("email = ?", form.Email).Count(&count)
	if count > 0 {
		errs["email"] = "Пользователь с таким адресом электронной почты уже существует"
	}
}

func (h *AuthHandler) renderSignup(c *fiber.Ctx, form *forms.SignupForm, errs forms.Errors) error {
	return c.Render("users/signup", fiber.Map{
		"Form":        form,
		"Errors":      errs,
		"CurrentUser": middleware.GetCurrentUser(c),
	})
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, form *forms.LoginForm, errs forms.Errors, next string) error {
	return c.Render("users/login", fiber.Map{
		"Form":        form,
		"Errors":      errs,
		"Next":        next,
		"CurrentUser": middleware.GetCurrentUser(c),
	})
}
