package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecarry/service"
)

type createOrderRequest struct {
	RideID     string `json:"rideId"`
	Type       string `json:"type"`
	SeatsCount int    `json:"seatsCount"`
}

func (s *Server) createPaymentOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	order, err := s.svc.Payment().CreateOrder(c.Request.Context(), currentUser(c), service.CreateOrderInput{
		RideID:     req.RideID,
		Type:       req.Type,
		SeatsCount: req.SeatsCount,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
