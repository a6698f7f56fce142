package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-appointment-api/internal/response"
)

func (h *Handler) MarkAllNotificationsAsSeen(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	user, err := h.Mailbox.MarkAllSeen(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Notifications marked as seen", user)
}

func (h *Handler) DeleteAllNotifications(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	user, err := h.Mailbox.ClearAll(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Notifications deleted", user)
}
