package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobportal/backend/auth"
)

// RegisterRoutes mounts the chat, admin and notification endpoints on api
func RegisterRoutes(api *gin.RouterGroup, jwtService *auth.JWTService, chat *ChatHandler, admin *AdminHandler, notifications *NotificationHandler) {
	// Sending works anonymously; conversations started that way have no owner
	api.POST("/chat/send", auth.OptionalAuthMiddleware(jwtService), chat.SendMessage)

	chatGroup := api.Group("/chat")
	chatGroup.Use(auth.AuthMiddleware(jwtService))
	{
		chatGroup.POST("/conversation", chat.CreateConversation)
		chatGroup.GET("/conversations", chat.ListConversations)
		chatGroup.GET("/conversations/:id/messages", chat.GetMessages)
		chatGroup.DELETE("/conversation/:id", chat.DeleteConversation)
	}

	if admin != nil {
		adminGroup := api.Group("/admin/chat")
		adminGroup.Use(auth.AuthMiddleware(jwtService), auth.RequireRole(auth.RoleAdmin))
		{
			adminGroup.GET("/conversations", admin.ListConversations)
			adminGroup.GET("/conversations/:id", admin.GetConversation)
			adminGroup.PUT("/conversations/:id/mark-useful", admin.MarkUseful)
			adminGroup.PUT("/conversations/:id/mark-spam", admin.MarkSpam)
		}
	}

	if notifications != nil {
		api.GET("/notifications/stream", auth.StreamAuthMiddleware(jwtService), notifications.Stream)
	}
}
