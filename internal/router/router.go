package router

import (
	"wisper/internal/handlers"
	"wisper/internal/middleware"
	"wisper/internal/realtime"
	"wisper/internal/services"
	"wisper/internal/store"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the collaborator-facing surface onto the core: the
// ledger store, the notifier and the connection registry are injected here
// and shared by every handler.
func RegisterRoutes(r *gin.Engine, s store.Store, hub *realtime.Hub) {
	notifier := services.NewNotifier(s, hub)

	authHandler := handlers.NewAuthHandler(s)
	wisperHandler := handlers.NewWisperHandler(s)
	voteHandler := handlers.NewVoteHandler(s, notifier)
	commentHandler := handlers.NewCommentHandler(s, notifier)
	notificationHandler := handlers.NewNotificationHandler(s)
	wsHandler := handlers.NewWSHandler(hub)

	r.Use(middleware.LoadUser(s))

	// Public routes
	r.GET("/api/wispers", wisperHandler.List)
	r.GET("/api/wispers/:id/comments", commentHandler.List)

	r.POST("/api/signup", authHandler.Signup)
	r.POST("/api/login", authHandler.Login)
	r.POST("/api/logout", authHandler.Logout)

	// Push channel. The transport registers the connection with the hub for
	// the duration of the socket.
	r.GET("/ws", wsHandler.Serve)

	// Protected routes
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/wispers", wisperHandler.Create)
		authorized.DELETE("/wispers/:id", wisperHandler.Delete)
		authorized.GET("/user/wispers", wisperHandler.ListMine)
		authorized.GET("/user/voted-wispers", wisperHandler.ListVoted)

		authorized.POST("/wispers/:id/upvote", voteHandler.Upvote)
		authorized.POST("/wispers/:id/remove-upvote", voteHandler.RemoveUpvote)

		authorized.POST("/wispers/:id/comments", commentHandler.Create)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
	}
}
