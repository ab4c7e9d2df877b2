package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"footy_server/services"
	"footy_server/utils"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	store := services.NewMemoryStore()
	userService := services.NewUserService(store)
	matchService := services.NewMatchService(store)
	postService := services.NewPostService(store)
	wellnessService := services.NewWellnessService(store)
	injuryService := services.NewInjuryService(store)
	coachingService := services.NewCoachingService(store)
	performanceService := services.NewPerformanceService(store)
	auth := utils.RequireAuth(userService.GetByID)

	r := mux.NewRouter()
	RegisterRoutes(r)
	RegisterAuthRoutes(r, userService, auth)
	RegisterUserRoutes(r, userService, postService, auth)
	RegisterMatchRoutes(r, matchService, auth)
	RegisterPostRoutes(r, postService, auth)
	RegisterWellnessRoutes(r, wellnessService, auth)
	RegisterInjuryRoutes(r, injuryService, auth)
	RegisterCoachingRoutes(r, coachingService, auth)
	RegisterPerformanceRoutes(r, performanceService, auth)
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	parsed := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func signupUser(t *testing.T, r *mux.Router, n int) (token, userID string) {
	t.Helper()
	rec, body := doJSON(t, r, http.MethodPost, "/auth/signup", "", map[string]interface{}{
		"email":     fmt.Sprintf("user%d@example.com", n),
		"password":  "secret123",
		"username":  fmt.Sprintf("user%d", n),
		"full_name": fmt.Sprintf("User %d", n),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", body["status"])
	return body["access_token"].(string), body["user_id"].(string)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthBoundary(t *testing.T) {
	r := newTestRouter(t)

	rec, body := doJSON(t, r, http.MethodGet, "/matches/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Missing bearer token", body["message"])

	rec, body = doJSON(t, r, http.MethodGet, "/matches/all", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestSignupLoginAndMe(t *testing.T) {
	r := newTestRouter(t)
	token, userID := signupUser(t, r, 1)

	rec, body := doJSON(t, r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, userID, user["id"])

	rec, body = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "user1@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["access_token"])

	rec, body = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "user1@example.com",
		"password": "wrong-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Incorrect password", body["message"])
}

func TestMatchJoinFlow(t *testing.T) {
	r := newTestRouter(t)
	organizerToken, _ := signupUser(t, r, 1)
	playerToken, playerID := signupUser(t, r, 2)

	rec, body := doJSON(t, r, http.MethodPost, "/matches/create", organizerToken, map[string]interface{}{
		"opponent":    "FC Rivals",
		"date":        "2026-09-05",
		"time":        "18:00",
		"location":    "City Arena",
		"max_players": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", body["status"])
	matchID := body["match_id"].(string)

	rec, body = doJSON(t, r, http.MethodPost, "/matches/"+matchID+"/join", playerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	// Business-rule failures answer 200 with an error envelope.
	rec, body = doJSON(t, r, http.MethodPost, "/matches/"+matchID+"/join", playerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Already joined this match", body["message"])

	rec, body = doJSON(t, r, http.MethodGet, "/matches/"+matchID+"/participants", organizerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	participants := body["participants"].([]interface{})
	assert.Len(t, participants, 2)

	rec, body = doJSON(t, r, http.MethodPost, "/matches/"+matchID+"/participants/remove", playerToken, map[string]interface{}{
		"user_id": playerID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Only organizer can remove participants", body["message"])

	rec, body = doJSON(t, r, http.MethodPost, "/matches/"+matchID+"/participants/remove", organizerToken, map[string]interface{}{
		"user_id": playerID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
}

func TestMalformedJSONIs400(t *testing.T) {
	r := newTestRouter(t)
	token, _ := signupUser(t, r, 1)

	req := httptest.NewRequest(http.MethodPost, "/matches/create", bytes.NewBufferString("{broken"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostFlow(t *testing.T) {
	r := newTestRouter(t)
	authorToken, _ := signupUser(t, r, 1)
	fanToken, _ := signupUser(t, r, 2)

	rec, body := doJSON(t, r, http.MethodPost, "/posts/create", authorToken, map[string]interface{}{
		"content": "Great match today",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", body["status"])
	postID := body["post_id"].(string)

	rec, body = doJSON(t, r, http.MethodPost, "/posts/"+postID+"/like", fanToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	rec, body = doJSON(t, r, http.MethodGet, "/posts/feed", fanToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := body["posts"].([]interface{})
	require.Len(t, posts, 1)
}

func TestInjuryFlow(t *testing.T) {
	r := newTestRouter(t)
	token, _ := signupUser(t, r, 1)

	rec, body := doJSON(t, r, http.MethodPost, "/injury/log", token, map[string]interface{}{
		"injury_type": "Hamstring Strain",
		"body_part":   "Left Leg",
		"pain_level":  6,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", body["status"])
	injuryID := body["injury_id"].(string)

	rec, body = doJSON(t, r, http.MethodGet, "/injury/timeline/"+injuryID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, injuryID, body["injury_id"])
	milestones := body["milestones"].([]interface{})
	assert.Len(t, milestones, 4)

	rec, body = doJSON(t, r, http.MethodPut, "/injury/resolve/"+injuryID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Injury marked as resolved", body["message"])

	rec, body = doJSON(t, r, http.MethodGet, "/injury/active", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["count"])

	// Business error stays a 200 envelope, not an HTTP error.
	rec, body = doJSON(t, r, http.MethodPost, "/injury/log", token, map[string]interface{}{
		"body_part": "Ankle",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestCoachingEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token, userID := signupUser(t, r, 1)

	rec, body := doJSON(t, r, http.MethodGet, "/coaching/plan", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, body["user_id"])
	assert.NotEmpty(t, body["training_plan"])

	rec, body = doJSON(t, r, http.MethodPost, "/coaching/save-achievement", token, map[string]interface{}{
		"title": "Top Sprinter",
		"icon":  "lightning-bolt",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Achievement saved", body["message"])

	rec, body = doJSON(t, r, http.MethodGet, "/coaching/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
}

func TestPerformanceFlow(t *testing.T) {
	r := newTestRouter(t)
	token, userID := signupUser(t, r, 1)

	rec, body := doJSON(t, r, http.MethodPost, "/performance/upload", token, map[string]interface{}{
		"video_url":  "https://cdn.example.com/v.mp4",
		"match_type": "5v5",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Video uploaded successfully", body["message"])
	performanceID := body["performance_id"].(string)

	rec, body = doJSON(t, r, http.MethodGet, "/performance/analysis/"+performanceID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, performanceID, body["performance_id"])
	assert.NotNil(t, body["results"])

	rec, body = doJSON(t, r, http.MethodGet, "/performance/user/"+userID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
}
