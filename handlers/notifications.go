package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jobportal/backend/auth"
	"github.com/jobportal/backend/logger"
	"github.com/jobportal/backend/notify"
)

// NotificationHandler serves the server-sent event stream
type NotificationHandler struct {
	registry *notify.Registry
	log      zerolog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(registry *notify.Registry) *NotificationHandler {
	return &NotificationHandler{
		registry: registry,
		log:      logger.Component("Notifications"),
	}
}

// Stream pushes notifications to the caller until the connection closes
// @Summary Notification stream
// @Description Server-sent events. A "connect" event is sent first, then one "notification" event per pushed notification. The token may be passed as the access_token query parameter.
// @Tags Notifications
// @Produce text/event-stream
// @Security BearerAuth
// @Param access_token query string false "JWT when headers cannot be set"
// @Success 200 {object} notify.Event "Event stream"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /notifications/stream [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID := auth.UserID(c)
	events, done := h.registry.Register(userID)
	defer done()

	h.log.Debug().Str("user_id", userID).Msg("stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("connect", "connected")
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case evt, ok := <-events:
			if !ok {
				// replaced by a newer connection or dropped
				return false
			}
			c.SSEvent("notification", evt)
			return true
		}
	})

	h.log.Debug().Str("user_id", userID).Msg("stream closed")
}
