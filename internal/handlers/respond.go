package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/services"
)

// respondServiceError translates service sentinel errors into the API error
// taxonomy. Anything unrecognized becomes a generic 500 so persistence
// details never reach the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrInvalidInviteCode),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidOrganizationName),
		errors.Is(err, services.ErrUserIDRequired),
		errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrOrganizationIDRequired),
		errors.Is(err, services.ErrInvalidStatusFilter),
		errors.Is(err, services.ErrInvalidPriorityFilter),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrCreatorRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrActorRequired),
		errors.Is(err, services.ErrOrgIDRequired),
		errors.Is(err, services.ErrAssigneeRequired),
		errors.Is(err, services.ErrSyncFieldsMissing),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrCommentFieldsRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c)
	}
}
