package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment adds a comment to a task and writes the add_comment activity
// log entry in the same transaction. Both content and body name the text.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	type CreateCommentRequest struct {
		TaskID  string `json:"taskId" binding:"required"`
		UserID  string `json:"userId" binding:"required"`
		Content string `json:"content"`
		Body    string `json:"body"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	content := req.Content
	if content == "" {
		content = req.Body
	}

	comment, err := h.commentService.CreateComment(req.TaskID, req.UserID, content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments returns a task's comments oldest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListComments(c.Param("taskId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// DeleteComment permanently removes a comment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentService.DeleteComment(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
