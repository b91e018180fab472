package handlers

import (
	"net/http"
	"time"

	"wisper/internal/models"
	"wisper/internal/store"
	"wisper/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxContentLen = 2000

const feedCacheKey = "wispers:feed"

type WisperHandler struct {
	store store.Store
}

func NewWisperHandler(s store.Store) *WisperHandler {
	return &WisperHandler{store: s}
}

// List serves the public feed, newest first. The feed is shared across
// users, so it goes through the LRU cache; mutations invalidate it.
func (h *WisperHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(feedCacheKey); cached != nil {
		if wispers, ok := cached.([]models.Wisper); ok {
			c.JSON(http.StatusOK, wispers)
			return
		}
	}

	wispers, err := h.store.ListWispers()
	if err != nil {
		StoreError(c, err)
		return
	}

	utils.GetCache().Set(feedCacheKey, wispers, 1*time.Minute)
	c.JSON(http.StatusOK, wispers)
}

type createWisperRequest struct {
	Content string `json:"content"`
}

func (h *WisperHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createWisperRequest
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

	wisper := models.Wisper{
		UserID:  user.ID,
		Content: content,
	}
	if err := h.store.CreateWisper(&wisper); err != nil {
		StoreError(c, err)
		return
	}

	utils.GetCache().Delete(feedCacheKey)

	c.JSON(http.StatusCreated, wisper)
}

// Delete removes the caller's own wisper. Votes and comments referencing it
// go with it.
func (h *WisperHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	wisper, err := h.store.GetWisper(id)
	if err != nil {
		StoreError(c, err)
		return
	}
	if wisper.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your wisper"})
		return
	}

	if err := h.store.DeleteWisper(id); err != nil {
		StoreError(c, err)
		return
	}

	utils.GetCache().Delete(feedCacheKey)

	wispers, err := h.store.ListWispers()
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, wispers)
}

func (h *WisperHandler) ListMine(c *gin.Context) {
	user := CurrentUser(c)

	wispers, err := h.store.ListUserWispers(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, wispers)
}

// ListVoted returns the ids of wispers the caller has an active vote on,
// for the "has this viewer already voted" check.
func (h *WisperHandler) ListVoted(c *gin.Context) {
	user := CurrentUser(c)

	ids, err := h.store.VotedWisperIDs(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}
