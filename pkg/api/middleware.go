package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridecarry/pkg/logger"
	"ridecarry/pkg/models"
)

const ctxUserKey = "user"

func (s *Server) cors() gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(s.cfg.ClientURLs))
	for _, u := range s.cfg.ClientURLs {
		allowed[u] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok || len(allowed) == 0 {
			if origin == "" {
				origin = "*"
			}
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// authRequired resolves the bearer token to a user and stores it on the
// context. Websocket clients cannot set headers, so a token query parameter is
// accepted as a fallback.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			tokenStr = q
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}
		user, err := s.svc.Auth().Resolve(c.Request.Context(), tokenStr)
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func (s *Server) driverOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != models.RoleDriver {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Driver role required"})
			return
		}
		c.Next()
	}
}

func (s *Server) passengerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != models.RolePassenger {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Passenger role required"})
			return
		}
		c.Next()
	}
}

// currentUser is only called behind authRequired.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxUserKey).(*models.User)
}

func (s *Server) streamNotifications(c *gin.Context) {
	user := currentUser(c)
	s.log.Debug("notification stream opened", logger.String("user_id", user.ID))
	s.hub.Serve(user.ID, c.Writer, c.Request)
}
