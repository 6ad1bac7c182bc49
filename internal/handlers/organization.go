package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/services"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateOrganization creates a new organization, optionally with an owner
// membership in the same transaction.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	type CreateOrgRequest struct {
		Name    string  `json:"name" binding:"required"`
		OwnerID *string `json:"ownerId"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    req.Name,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

// ListOrganizations returns non-deleted organizations; ?userId= narrows the
// result to organizations the user is a member of.
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	var userID *string
	if v := c.Query("userId"); v != "" {
		userID = &v
	}

	orgs, err := h.orgService.ListOrganizations(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orgs)
}

// JoinOrganization admits a user via invite code. The invite code is the
// organization id; joining twice is idempotent and both calls succeed.
func (h *OrganizationHandler) JoinOrganization(c *gin.Context) {
	type JoinRequest struct {
		InviteCode string `json:"inviteCode" binding:"required"`
		UserID     string `json:"userId" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.JoinOrganization(req.InviteCode, req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Successfully joined organization",
		"organization": org,
	})
}

// GetOrganization returns an organization with its non-deleted projects and
// its members.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	org, err := h.orgService.GetOrganization(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// ListMembers returns the user records of every organization member.
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	users, err := h.orgService.ListMembers(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateOrganization renames an organization.
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	type UpdateOrgRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdateOrganizationName(c.Param("id"), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// DeleteOrganization soft deletes an organization.
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	if err := h.orgService.DeleteOrganization(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
