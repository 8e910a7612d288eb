package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecarry/pkg/models"
	"ridecarry/service"
)

type createBookingRequest struct {
	RideID        string                    `json:"rideId"`
	Type          string                    `json:"type"`
	SeatsCount    int                       `json:"seatsCount"`
	Passengers    []models.BookingPassenger `json:"passengers"`
	ParcelDetails *string                   `json:"parcelDetails"`
	PaymentMethod string                    `json:"paymentMethod"`
}

func (s *Server) createBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	booking, err := s.svc.Booking().Create(c.Request.Context(), currentUser(c), service.CreateBookingInput{
		RideID:        req.RideID,
		Type:          req.Type,
		SeatsCount:    req.SeatsCount,
		Passengers:    req.Passengers,
		ParcelDetails: req.ParcelDetails,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (s *Server) myBookings(c *gin.Context) {
	bookings, err := s.svc.Booking().ListMine(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (s *Server) approveBooking(c *gin.Context) {
	booking, err := s.svc.Booking().Approve(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (s *Server) rejectBooking(c *gin.Context) {
	booking, err := s.svc.Booking().Reject(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (s *Server) cancelBooking(c *gin.Context) {
	booking, err := s.svc.Booking().Cancel(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
