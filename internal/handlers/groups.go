package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/pkg/logger"
	"github.com/postboard/backend/pkg/utils"
)

// GroupsHandler is the administrative JSON API for groups. Groups are
// never created or deleted from the blog pages themselves.
type GroupsHandler struct {
	DB *gorm.DB
}

func NewGroupsHandler(db *gorm.DB) *GroupsHandler {
	return &GroupsHandler{DB: db}
}

type createGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)

	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title is required")
	}
	if req.Slug == "" {
		return utils.Error(c, fiber.StatusBadRequest, "slug is required")
	}

	var existing int64
	if err := h.DB.Model(&models.Group{}).Where("slug = ?", req.Slug).Count(&existing).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed checking slug")
	}
	if existing > 0 {
		return utils.Error(c, fiber.StatusConflict, "slug is already taken")
	}

	group := models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.DB.Create(&group).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating group")
	}

	logger.InfoWithUser(currentUser.ID.String(), "group_created", map[string]interface{}{
		"group_id":   group.ID.String(),
		"group_slug": group.Slug,
	})

	return utils.Success(c, fiber.StatusCreated, group)
}

func (h *GroupsHandler) List(c *fiber.Ctx) error {
	var groups []models.Group
	if err := h.DB.Order("title").Find(&groups).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing groups")
	}

	return utils.Success(c, fiber.StatusOK, groups)
}

// Delete removes a group. Posts referencing it survive with their group
// reference cleared; both steps run in one transaction.
func (h *GroupsHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var group models.Group
	if err := h.DB.First(&group, "id = ?", groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "group not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading group")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", groupID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, "id = ?", groupID).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting group")
	}

	logger.InfoWithUser(currentUser.ID.String(), "group_deleted", map[string]interface{}{
		"group_id":   groupID.String(),
		"group_slug": group.Slug,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "group deleted"})
}
