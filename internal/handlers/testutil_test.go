package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/postboard/backend/internal/database"
	"github.com/postboard/backend/internal/middleware"
	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/router"
	"github.com/postboard/backend/pkg/logger"
	"github.com/postboard/backend/pkg/utils"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
		utils.ConfigureJWT("test-secret", 24)
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed migrating models: %v", err)
	}

	return &testEnv{app: router.New(db), db: db}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func createTestGroup(t *testing.T, db *gorm.DB, title, slug string) *models.Group {
	t.Helper()

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: "Тестовое описание",
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed creating test group: %v", err)
	}
	return group
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, text string, groupID *uuid.UUID) *models.Post {
	t.Helper()

	post := &models.Post{
		Text:     text,
		AuthorID: author.ID,
		GroupID:  groupID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed creating test post: %v", err)
	}
	return post
}

func cookieHeaders(token string) map[string]string {
	return map[string]string{"Cookie": middleware.CookieName + "=" + token}
}

func bearerHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performFormRequest(t *testing.T, app *fiber.App, method, path string, values url.Values, headers map[string]string) *http.Response {
	t.Helper()

	requestHeaders := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}
	for key, value := range headers {
		requestHeaders[key] = value
	}

	return performRequest(t, app, method, path, strings.NewReader(values.Encode()), requestHeaders)
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}
	return string(raw)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertRedirect(t *testing.T, resp *http.Response, expectedLocation string) {
	t.Helper()

	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected status %d, got %d", fiber.StatusFound, resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != expectedLocation {
		t.Fatalf("expected redirect to %q, got %q", expectedLocation, got)
	}
}

func countPosts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("failed counting posts: %v", err)
	}
	return count
}

func countArticles(body string) int {
	return strings.Count(body, "<article>")
}

func longText(i int) string {
	return fmt.Sprintf("Тестовый пост номер %d с достаточной длиной", i)
}
