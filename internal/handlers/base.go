package handlers

import (
	"errors"
	"net/http"

	"wisper/internal/middleware"
	"wisper/internal/models"
	"wisper/internal/store"

	"github.com/gin-gonic/gin"
)

// CurrentUser pulls the authenticated user set by middleware.LoadUser.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// StoreError maps a store failure onto the right response: a missing
// record is the client's problem, anything else means the ledger itself
// failed and the whole interaction aborts.
func StoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
}
