package handlers

import (
	"net/http"

	"wisper/internal/services"
	"wisper/internal/store"
	"wisper/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	store    store.Store
	notifier *services.Notifier
}

func NewCommentHandler(s store.Store, n *services.Notifier) *CommentHandler {
	return &CommentHandler{store: s, notifier: n}
}

type createCommentRequest struct {
	Content string `json:"content"`
}

// Create appends a comment to the wisper and notifies its author, unless
// the author is commenting on their own wisper.
func (h *CommentHandler) Create(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	content := utils.SanitizeBody(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content must not be empty"})
		return
	}
	if len([]rune(content)) > maxContentLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content too long"})
		return
	}

	comment, err := h.store.AddComment(id, user.ID, content)
	if err != nil {
		StoreError(c, err)
		return
	}

	wisper, err := h.store.GetWisper(id)
	if err == nil && wisper.UserID != user.ID {
		if err := h.notifier.NotifyComment(wisper.UserID, wisper); err != nil {
			StoreError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, comment)
}

// List returns the wisper's comments in creation order for the thread view.
func (h *CommentHandler) List(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	if _, err := h.store.GetWisper(id); err != nil {
		StoreError(c, err)
		return
	}

	comments, err := h.store.ListComments(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
