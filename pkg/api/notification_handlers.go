package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listNotifications(c *gin.Context) {
	items, unread, err := s.svc.Notification().List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "unreadCount": unread})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	if err := s.svc.Notification().MarkRead(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

func (s *Server) markAllNotificationsRead(c *gin.Context) {
	if err := s.svc.Notification().MarkAllRead(c.Request.Context(), currentUser(c).ID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}
