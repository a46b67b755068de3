package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/postboard/backend/internal/models"
)

func TestDeleteUserRemovesAuthoredPosts(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := createTestUser(t, env.db, "admin", models.UserRoleAdmin)
	doomed, _ := createTestUser(t, env.db, "doomed", models.UserRoleUser)
	survivor, _ := createTestUser(t, env.db, "survivor", models.UserRoleUser)

	for i := 0; i < 3; i++ {
		createTestPost(t, env.db, doomed, longText(i), nil)
	}
	keep := createTestPost(t, env.db, survivor, "Пост выжившего автора с длиной", nil)

	resp := performJSONRequest(t, env.app, http.MethodDelete, "/api/users/"+doomed.ID.String(), nil, bearerHeaders(adminToken))
	assertStatus(t, resp, fiber.StatusOK)

	var userCount int64
	env.db.Model(&models.User{}).Where("username = ?", "doomed").Count(&userCount)
	if userCount != 0 {
		t.Fatal("expected the user to be gone")
	}

	if got := countPosts(t, env.db); got != 1 {
		t.Fatalf("expected only the survivor's post to remain, got %d", got)
	}
	var remaining models.Post
	if err := env.db.First(&remaining).Error; err != nil {
		t.Fatalf("failed loading remaining post: %v", err)
	}
	if remaining.ID != keep.ID {
		t.Fatal("expected the surviving post to belong to the other author")
	}
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	target, _ := createTestUser(t, env.db, "target", models.UserRoleUser)
	_, userToken := createTestUser(t, env.db, "regular", models.UserRoleUser)

	resp := performJSONRequest(t, env.app, http.MethodDelete, "/api/users/"+target.ID.String(), nil, bearerHeaders(userToken))
	assertStatus(t, resp, fiber.StatusForbidden)

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected both users to remain, got %d", count)
	}
}

func TestListUsersPaginatedEnvelope(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := createTestUser(t, env.db, "admin", models.UserRoleAdmin)
	for _, name := range []string{"first", "second", "third"} {
		createTestUser(t, env.db, name, models.UserRoleUser)
	}

	resp := performJSONRequest(t, env.app, http.MethodGet, "/api/users/", nil, bearerHeaders(adminToken))
	assertStatus(t, resp, fiber.StatusOK)

	body := decodeJSONMap(t, resp)
	users, _ := body["data"].([]any)
	if len(users) != 4 {
		t.Fatalf("expected 4 users in the listing, got %d", len(users))
	}

	pagination, _ := body["pagination"].(map[string]any)
	if total, _ := pagination["total"].(float64); total != 4 {
		t.Fatalf("expected total 4, got %v", pagination["total"])
	}
}
