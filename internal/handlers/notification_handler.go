package handlers

import (
	"net/http"

	"reliefhub_backend/internal/middleware"
	"reliefhub_backend/internal/services"
	"reliefhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	feedService services.FeedService
}

func NewNotificationHandler(base *BaseHandler, feedService services.FeedService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: base,
		feedService: feedService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.GetFeed)
	}
}

// GetFeed returns the caller's enriched notification feed, newest-first.
// ?filter=all|program_alert|resource_request|emergency narrows by type.
func (h *NotificationHandler) GetFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	filter := dto.FeedFilter(c.DefaultQuery("filter", string(dto.FeedFilterAll)))

	items, err := h.feedService.GetFeed(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"total":         len(items),
	})
}
