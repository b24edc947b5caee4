package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bersihin/bersihin/internal/server/http/dto"
)

// NotificationHandler lists persisted notifications for the caller.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.facade.Notifications(c.Request.Context(), CurrentActorID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(notifications) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, dto.NotificationResponse{
			ID:        n.ID,
			OrderID:   n.OrderID,
			Title:     n.Title,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
