package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive-api/internal/models"
	"github.com/taskhive/taskhive-api/internal/repository"
	"github.com/taskhive/taskhive-api/internal/services"
	"gorm.io/gorm"
)

type organizationTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupOrganizationTestEnv(t *testing.T) organizationTestEnv {
	t.Helper()

	db := openTestDB(t)

	orgRepo := repository.NewOrganizationRepository(db)
	orgService := services.NewOrganizationService(orgRepo)
	handler := NewOrganizationHandler(orgService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	orgs := router.Group("/api/organizations")
	{
		orgs.POST("", handler.CreateOrganization)
		orgs.GET("", handler.ListOrganizations)
		orgs.POST("/join", handler.JoinOrganization)
		orgs.GET("/:id", handler.GetOrganization)
		orgs.PUT("/:id", handler.UpdateOrganization)
		orgs.DELETE("/:id", handler.DeleteOrganization)
		orgs.GET("/:id/members", handler.ListMembers)
	}

	return organizationTestEnv{db: db, router: router}
}

func TestOrganizationHandler_CreateOrganization_WithOwner(t *testing.T) {
	env := setupOrganizationTestEnv(t)
	owner := createTestUser(t, env.db, "owner@example.com")

	body, err := json.Marshal(map[string]string{
		"name":    "Acme",
		"ownerId": owner.ID,
	})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPost, "/api/organizations", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var response models.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Acme", response.Name)
	require.NotEmpty(t, response.ID)

	var member models.OrganizationMember
	err = env.db.Where("organization_id = ? AND user_id = ?", response.ID, owner.ID).
		First(&member).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, member.Role)
}

func TestOrganizationHandler_CreateOrganization_WithoutOwner(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	body, err := json.Marshal(map[string]string{"name": "Acme"})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPost, "/api/organizations", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var response models.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	var count int64
	require.NoError(t, env.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ?", response.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestOrganizationHandler_CreateOrganization_MissingName(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	w := performRequest(env.router, http.MethodPost, "/api/organizations", []byte(`{}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrganizationHandler_JoinOrganization_Idempotent(t *testing.T) {
	env := setupOrganizationTestEnv(t)
	org := createTestOrganization(t, env.db, "Acme")
	user := createTestUser(t, env.db, "joiner@example.com")

	body, err := json.Marshal(map[string]string{
		"inviteCode": org.ID,
		"userId":     user.ID,
	})
	require.NoError(t, err)

	// Joining twice must succeed both times and leave a single membership row.
	for i := 0; i < 2; i++ {
		w := performRequest(env.router, http.MethodPost, "/api/organizations/join", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", org.ID, user.ID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)

	var member models.OrganizationMember
	require.NoError(t, env.db.Where("organization_id = ? AND user_id = ?", org.ID, user.ID).
		First(&member).Error)
	require.Equal(t, models.RoleMember, member.Role)
}

func TestOrganizationHandler_JoinOrganization_UnknownCode(t *testing.T) {
	env := setupOrganizationTestEnv(t)
	user := createTestUser(t, env.db, "joiner@example.com")

	body, err := json.Marshal(map[string]string{
		"inviteCode": "does-not-exist",
		"userId":     user.ID,
	})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPost, "/api/organizations/join", body)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrganizationHandler_ListOrganizations_MemberFilter(t *testing.T) {
	env := setupOrganizationTestEnv(t)
	orgA := createTestOrganization(t, env.db, "Org A")
	createTestOrganization(t, env.db, "Org B")
	user := createTestUser(t, env.db, "member@example.com")

	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: orgA.ID,
		UserID:         user.ID,
		Role:           models.RoleMember,
	}).Error)

	w := performRequest(env.router, http.MethodGet, "/api/organizations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all []models.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)

	w = performRequest(env.router, http.MethodGet, "/api/organizations?userId="+user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var mine []models.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.Equal(t, orgA.ID, mine[0].ID)
}

func TestOrganizationHandler_ListOrganizations_ExcludesDeleted(t *testing.T) {
	env := setupOrganizationTestEnv(t)
	keep := createTestOrganization(t, env.db, "Keep")
	gone := createTestOrganization(t, env.db, "Gone")

	w := performRequest(env.router, http.MethodDelete, "/api/organizations/"+gone.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(env.router, http.MethodGet, "/api/organizations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orgs []models.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orgs))
	require.Len(t, orgs, 1)
	require.Equal(t, keep.ID, orgs[0].ID)
}

func TestOrganizationHandler_GetOrganization_WithDetails(t *testing.T) {
	env := setupOrganizationTestEnv(t)
	org := createTestOrganization(t, env.db, "Acme")
	user := createTestUser(t, env.db, "member@example.com")

	require.NoError(t, env.db.Create(&models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           models.RoleOwner,
	}).Error)
	require.NoError(t, env.db.Create(&models.Project{
		OrganizationID: org.ID,
		Name:           "Website",
	}).Error)

	w := performRequest(env.router, http.MethodGet, "/api/organizations/"+org.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response models.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1)
	require.Equal(t, "Website", response.Projects[0].Name)
	require.Len(t, response.Members, 1)
	require.Equal(t, user.Email, response.Members[0].User.Email)
}

func TestOrganizationHandler_GetOrganization_NotFound(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	w := performRequest(env.router, http.MethodGet, "/api/organizations/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrganizationHandler_ListMembers(t *testing.T) {
	env := setupOrganizationTestEnv(t)
	org := createTestOrganization(t, env.db, "Acme")

	for i := 0; i < 2; i++ {
		user := createTestUser(t, env.db, fmt.Sprintf("member%d@example.com", i))
		require.NoError(t, env.db.Create(&models.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         user.ID,
			Role:           models.RoleMember,
		}).Error)
	}

	w := performRequest(env.router, http.MethodGet, "/api/organizations/"+org.ID+"/members", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	require.NotEmpty(t, users[0].Email)
}

func TestOrganizationHandler_UpdateOrganization(t *testing.T) {
	env := setupOrganizationTestEnv(t)
	org := createTestOrganization(t, env.db, "Old Name")

	body, err := json.Marshal(map[string]string{"name": "New Name"})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodPut, "/api/organizations/"+org.ID, body)
	require.Equal(t, http.StatusOK, w.Code)

	var response models.Organization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "New Name", response.Name)
}

func TestOrganizationHandler_DeleteOrganization_NotFound(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	w := performRequest(env.router, http.MethodDelete, "/api/organizations/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
