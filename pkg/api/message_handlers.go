package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postMessageRequest struct {
	Text string `json:"text"`
}

func (s *Server) listMessages(c *gin.Context) {
	booking, messages, err := s.svc.Message().Thread(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking, "messages": messages})
}

func (s *Server) postMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	msg, err := s.svc.Message().Post(c.Request.Context(), currentUser(c), c.Param("id"), req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
