package handlers

import (
	"net/http"

	"wisper/internal/store"
	"wisper/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	store store.Store
}

func NewNotificationHandler(s store.Store) *NotificationHandler {
	return &NotificationHandler{store: s}
}

// List returns the caller's notifications, newest first, read and unread
// intermixed.
func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	notifications, err := h.store.ListNotifications(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// UnreadCount returns how many of the caller's notifications are unread,
// for the badge next to the bell.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := CurrentUser(c)

	count, err := h.store.CountUnreadNotifications(user.ID)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Read marks a single notification as read. Idempotent: marking an
// already-read notification succeeds.
func (h *NotificationHandler) Read(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	if err := h.store.MarkNotificationRead(id, user.ID); err != nil {
		StoreError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := CurrentUser(c)

	if err := h.store.MarkAllNotificationsRead(user.ID); err != nil {
		StoreError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
