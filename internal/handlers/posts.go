package handlers

import (
	"errors"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/postboard/backend/internal/forms"
	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/pkg/logger"
	"github.com/postboard/backend/pkg/markup"
	"github.com/postboard/backend/pkg/paginator"
)

type PostsHandler struct {
	DB *gorm.DB
}

func NewPostsHandler(db *gorm.DB) *PostsHandler {
	return &PostsHandler{DB: db}
}

// postView is what the templates see: the body is already rendered to
// sanitized HTML, everything else stays escaped.
type postView struct {
	ID        uuid.UUID
	Text      template.HTML
	Author    models.User
	Group     *models.Group
	Published time.Time
}

func newPostViews(posts []models.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, newPostView(post))
	}
	return views
}

func newPostView(post models.Post) postView {
	return postView{
		ID:        post.ID,
		Text:      markup.SafeHTML(post.Text),
		Author:    post.Author,
		Group:     post.Group,
		Published: post.Published(),
	}
}

func (h *PostsHandler) Index(c *fiber.Ctx) error {
	var total int64
	if err := h.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed counting posts")
	}

	page := paginator.New(c.Query("page"), total, paginator.DefaultPerPage)

	var posts []models.Post
	if err := h.DB.
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&posts).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed listing posts")
	}

	return c.Render("posts/index", fiber.Map{
		"Title":       "Последние обновления на сайте",
		"Posts":       newPostViews(posts),
		"Page":        page,
		"CurrentUser": middleware.GetCurrentUser(c),
	})
}

func (h *PostsHandler) GroupPosts(c *fiber.Ctx) error {
	var group models.Group
	if err := h.DB.First(&group, "slug = ?", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed loading group")
	}

	query := h.DB.Model(&models.Post{}).Where("group_id = ?", group.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed counting posts")
	}

	page := paginator.New(c.Query("page"), total, paginator.DefaultPerPage)

	var posts []models.Post
	if err := h.DB.
		Preload("Author").
		Preload("Group").
		Where("group_id = ?", group.ID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&posts).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed listing posts")
	}

	return c.Render("posts/group_list", fiber.Map{
		"Group":       group,
		"Posts":       newPostViews(posts),
		"Page":        page,
		"CurrentUser": middleware.GetCurrentUser(c),
	})
}

func (h *PostsHandler) Profile(c *fiber.Ctx) error {
	var author models.User
	if err := h.DB.First(&author, "username = ?", c.Params("username")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed loading author")
	}

	var total int64
	if err := h.DB.Model(&models.Post{}).Where("author_id = ?", author.ID).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed counting posts")
	}

	page := paginator.New(c.Query("page"), total, paginator.DefaultPerPage)

	var posts []models.Post
	if err := h.DB.
		Preload("Author").
		Preload("Group").
		Where("author_id = ?", author.ID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&posts).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed listing posts")
	}

	return c.Render("posts/profile", fiber.Map{
		"Author":      author,
		"Count":       total,
		"Posts":       newPostViews(posts),
		"Page":        page,
		"CurrentUser": middleware.GetCurrentUser(c),
	})
}

func (h *PostsHandler) Detail(c *fiber.Ctx) error {
	post, err := h.loadPost(c.Params("id"))
	if err != nil {
		return err
	}

	var count int64
	if err := h.DB.Model(&models.Post{}).Where("author_id = ?", post.AuthorID).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed counting posts")
	}

	return c.Render("posts/post_detail", fiber.Map{
		"Post":        newPostView(*post),
		"Count":       count,
		"CurrentUser": middleware.GetCurrentUser(c),
	})
}

func (h *PostsHandler) CreateForm(c *fiber.Ctx) error {
	return h.renderPostForm(c, &forms.PostForm{}, forms.Errors{}, false, nil)
}

func (h *PostsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form body")
	}

	errs := form.Validate()
	groupID := h.resolveGroup(form.Group, errs)
	if !errs.Empty() {
		return h.renderPostForm(c, &form, errs, false, nil)
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: currentUser.ID,
		GroupID:  groupID,
	}
	if err := h.DB.Create(&post).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed creating post")
	}

	logger.InfoWithUser(currentUser.ID.String(), "post_created", map[string]interface{}{
		"post_id": post.ID.String(),
	})

	return c.Redirect("/profile/"+currentUser.Username, fiber.StatusFound)
}

func (h *PostsHandler) EditForm(c *fiber.Ctx) error {
	post, err := h.loadPost(c.Params("id"))
	if err != nil {
		return err
	}

	currentUser := middleware.GetCurrentUser(c)
	if post.AuthorID != currentUser.ID {
		// Non-authors are bounced to the detail page, not shown an error.
		return c.Redirect("/posts/"+post.ID.String(), fiber.StatusFound)
	}

	form := forms.PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = post.GroupID.String()
	}

	return h.renderPostForm(c, &form, forms.Errors{}, true, post)
}

func (h *PostsHandler) Edit(c *fiber.Ctx) error {
	post, err := h.loadPost(c.Params("id"))
	if err != nil {
		return err
	}

	currentUser := middleware.GetCurrentUser(c)
	if post.AuthorID != currentUser.ID {
		return c.Redirect("/posts/"+post.ID.String(), fiber.StatusFound)
	}

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form body")
	}

	errs := form.Validate()
	groupID := h.resolveGroup(form.Group, errs)
	if !errs.Empty() {
		return h.renderPostForm(c, &form, errs, true, post)
	}

	updates := map[string]interface{}{
		"text":     form.Text,
		"group_id": groupID,
	}
	if err := h.DB.Model(post).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed updating post")
	}

	logger.InfoWithUser(currentUser.ID.String(), "post_updated", map[string]interface{}{
		"post_id": post.ID.String(),
	})

	return c.Redirect("/posts/"+post.ID.String(), fiber.StatusFound)
}

func (h *PostsHandler) loadPost(rawID string) (*models.Post, error) {
	postID, err := parseUUID(rawID)
	if err != nil {
		// A malformed id is indistinguishable from an unknown one.
		return nil, fiber.ErrNotFound
	}

	var post models.Post
	if err := h.DB.Preload("Author").Preload("Group").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed loading post")
	}

	return &post, nil
}

// resolveGroup turns the submitted group value into a nullable reference.
// An empty value means "no group"; anything else must name an existing one.
func (h *PostsHandler) resolveGroup(raw string, errs forms.Errors) *uuid.UUID {
	if raw == "" {
		return nil
	}

	groupID, err := parseUUID(raw)
	if err != nil {
		errs["group"] = forms.MsgBadGroup
		return nil
	}

	var group models.Group
	if err := h.DB.First(&group, "id = ?", groupID).Error; err != nil {
		errs["group"] = forms.MsgBadGroup
		return nil
	}

	return &group.ID
}

func (h *PostsHandler) renderPostForm(c *fiber.Ctx, form *forms.PostForm, errs forms.Errors, isEdit bool, post *models.Post) error {
	var groups []models.Group
	if err := h.DB.Order("title").Find(&groups).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed listing groups")
	}

	data := fiber.Map{
		"Form":        form,
		"Errors":      errs,
		"Groups":      groups,
		"IsEdit":      isEdit,
		"CurrentUser": middleware.GetCurrentUser(c),
	}
	if post != nil {
		data["PostID"] = post.ID
	}

	return c.Render("posts/create_post", data)
}
