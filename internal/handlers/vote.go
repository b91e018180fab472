package handlers

import (
	"net/http"

	"wisper/internal/models"
	"wisper/internal/services"
	"wisper/internal/store"
	"wisper/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	store    store.Store
	notifier *services.Notifier
}

func NewVoteHandler(s store.Store, n *services.Notifier) *VoteHandler {
	return &VoteHandler{store: s, notifier: n}
}

// Upvote casts an upvote on the wisper. Casting twice is a no-op: the count
// comes back unchanged and the author is not notified again.
func (h *VoteHandler) Upvote(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	wisper, created, err := h.store.CastVote(id, user.ID, models.VoteTypeUpvote)
	if err != nil {
		StoreError(c, err)
		return
	}

	// Notify the author only when this call actually created the vote, and
	// never about their own action.
	if created && wisper.UserID != user.ID {
		if err := h.notifier.NotifyLike(wisper.UserID, wisper); err != nil {
			StoreError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, wisper)
}

// RemoveUpvote retracts the caller's vote. Retracting when no vote exists
// is a no-op, not an error.
func (h *VoteHandler) RemoveUpvote(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	wisper, err := h.store.RetractVote(id, user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, wisper)
}
