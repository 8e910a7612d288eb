package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecarry/pkg/apperr"
	"ridecarry/pkg/logger"
)

// fail writes the error as {"message": ...} with its mapped status. Internal
// errors are logged with their full cause and reported generically.
func (s *Server) fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			logger.String("path", c.FullPath()),
			logger.String("method", c.Request.Method),
			logger.Error(err))
	}
	c.JSON(status, gin.H{"message": apperr.UserMessage(err)})
}

func badJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}
