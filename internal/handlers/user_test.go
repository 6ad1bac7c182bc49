package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive-api/internal/constants"
	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"github.com/taskhive/taskhive-api/internal/services"
	"gorm.io/gorm"
)

type userTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)
	handler := NewUserHandler(userService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions(constants.SessionName, store))

	users := router.Group("/api/users")
	{
		users.POST("", handler.CreateUser)
		users.GET("", handler.ListUsers)
		users.POST("/sync", handler.SyncUser)
		users.GET("/me", handler.Me)
		users.POST("/logout", handler.Logout)
		users.GET("/:id", handler.GetUser)
	}

	return userTestEnv{db: db, router: router}
}

// performSessionRequest issues a request carrying the session cookies from an
// earlier response.
func performSessionRequest(router *gin.Engine, method, url string, body []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserHandler_SyncUser_CreatesNewUser(t *testing.T) {
	env := setupUserTestEnv(t)

	body, err := json.Marshal(map[string]string{
		"auth0Id":  "auth0|alice",
		"email":    "alice@example.com",
		"fullName": "Alice Doe",
	})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPost, "/api/users/sync", body)
	require.Equal(t, http.StatusOK, w.Code)

	var response models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alice@example.com", response.Email)
	require.NotNil(t, response.Auth0ID)
	require.Equal(t, "auth0|alice", *response.Auth0ID)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUserHandler_SyncUser_UpdatesByAuth0ID(t *testing.T) {
	env := setupUserTestEnv(t)

	auth0ID := "auth0|alice"
	oldName := "Old Name"
	existing := &models.User{
		Email:    "old@example.com",
		FullName: &oldName,
		Auth0ID:  &auth0ID,
	}
	require.NoError(t, env.db.Create(existing).Error)

	body, err := json.Marshal(map[string]string{
		"auth0Id":  auth0ID,
		"email":    "new@example.com",
		"fullName": "New Name",
	})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPost, "/api/users/sync", body)
	require.Equal(t, http.StatusOK, w.Code)

	var response models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, existing.ID, response.ID)
	require.Equal(t, "new@example.com", response.Email)
	require.NotNil(t, response.FullName)
	require.Equal(t, "New Name", *response.FullName)
}

func TestUserHandler_SyncUser_LinksByEmail(t *testing.T) {
	env := setupUserTestEnv(t)

	existing := &models.User{Email: "alice@example.com"}
	require.NoError(t, env.db.Create(existing).Error)

	body, err := json.Marshal(map[string]string{
		"auth0Id": "auth0|alice",
		"email":   "alice@example.com",
	})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPost, "/api/users/sync", body)
	require.Equal(t, http.StatusOK, w.Code)

	var response models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, existing.ID, response.ID)
	require.NotNil(t, response.Auth0ID)
	require.Equal(t, "auth0|alice", *response.Auth0ID)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUserHandler_SyncUser_MissingFields(t *testing.T) {
	env := setupUserTestEnv(t)

	body, err := json.Marshal(map[string]string{"email": "alice@example.com"})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPost, "/api/users/sync", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Me(t *testing.T) {
	env := setupUserTestEnv(t)

	body, err := json.Marshal(map[string]string{
		"auth0Id": "auth0|alice",
		"email":   "alice@example.com",
	})
	require.NoError(t, err)

	sync := performRequest(env.router, http.MethodPost, "/api/users/sync", body)
	require.Equal(t, http.StatusOK, sync.Code)

	var synced models.User
	require.NoError(t, json.Unmarshal(sync.Body.Bytes(), &synced))

	cookies := sync.Result().Cookies()
	require.NotEmpty(t, cookies)

	w := performSessionRequest(env.router, http.MethodGet, "/api/users/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var me models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, synced.ID, me.ID)
}

func TestUserHandler_Me_NoSession(t *testing.T) {
	env := setupUserTestEnv(t)

	w := performRequest(env.router, http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Logout(t *testing.T) {
	env := setupUserTestEnv(t)

	body, err := json.Marshal(map[string]string{
		"auth0Id": "auth0|alice",
		"email":   "alice@example.com",
	})
	require.NoError(t, err)

	sync := performRequest(env.router, http.MethodPost, "/api/users/sync", body)
	require.Equal(t, http.StatusOK, sync.Code)
	cookies := sync.Result().Cookies()

	w := performSessionRequest(env.router, http.MethodPost, "/api/users/logout", []byte(`{}`), cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The cleared session no longer authenticates /me.
	cleared := w.Result().Cookies()
	w = performSessionRequest(env.router, http.MethodGet, "/api/users/me", nil, cleared)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_CreateAndGetUser(t *testing.T) {
	env := setupUserTestEnv(t)

	body, err := json.Marshal(map[string]string{
		"email":    "bob@example.com",
		"fullName": "Bob Stone",
	})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = performRequest(env.router, http.MethodGet, "/api/users/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "bob@example.com", fetched.Email)
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	env := setupUserTestEnv(t)

	w := performRequest(env.router, http.MethodGet, "/api/users/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
