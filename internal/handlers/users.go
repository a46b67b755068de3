package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/pkg/logger"
	"github.com/postboard/backend/pkg/paginator"
	"github.com/postboard/backend/pkg/utils"
)

// UsersHandler is the administrative JSON API for user accounts.
type UsersHandler struct {
	DB *gorm.DB
}

func NewUsersHandler(db *gorm.DB) *UsersHandler {
	return &UsersHandler{DB: db}
}

func (h *UsersHandler) List(c *fiber.Ctx) error {
	var total int64
	if err := h.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting users")
	}

	page := paginator.New(c.Query("page"), total, paginator.DefaultPerPage)

	var users []models.User
	if err := h.DB.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing users")
	}

	return utils.Paginated(c, users, page.Number, page.PerPage, total)
}

// Delete removes a user account together with every post the user
// authored, in one transaction.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)

	userID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "user not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading user")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting user")
	}

	logger.InfoWithUser(currentUser.ID.String(), "user_deleted", map[string]interface{}{
		"deleted_user_id": userID.String(),
		"username":        user.Username,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}
