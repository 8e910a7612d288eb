package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridecarry/service"
)

type createRideRequest struct {
	From           string   `json:"from"`
	To             string   `json:"to"`
	Date           string   `json:"date"`
	RideType       string   `json:"rideType"`
	Seats          int      `json:"seats"`
	Price          float64  `json:"price"`
	ParcelWeightKg *float64 `json:"parcelWeightKg"`
	PickupTime     *string  `json:"pickupTime"`
	DropTime       *string  `json:"dropTime"`
}

type updateRideRequest struct {
	From           *string  `json:"from"`
	To             *string  `json:"to"`
	Date           *string  `json:"date"`
	Seats          *int     `json:"seats"`
	Price          *float64 `json:"price"`
	ParcelWeightKg *float64 `json:"parcelWeightKg"`
	PickupTime     *string  `json:"pickupTime"`
	DropTime       *string  `json:"dropTime"`
}

func (s *Server) createRide(c *gin.Context) {
	var req createRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	ride, err := s.svc.Ride().Create(c.Request.Context(), currentUser(c), service.CreateRideInput{
		From:           req.From,
		To:             req.To,
		Date:           req.Date,
		RideType:       req.RideType,
		Seats:          req.Seats,
		Price:          req.Price,
		ParcelWeightKg: req.ParcelWeightKg,
		PickupTime:     req.PickupTime,
		DropTime:       req.DropTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ride)
}

func (s *Server) searchRides(c *gin.Context) {
	rides, err := s.svc.Ride().Search(c.Request.Context(), c.Query("from"), c.Query("to"), c.Query("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rides)
}

func (s *Server) myRides(c *gin.Context) {
	rides, err := s.svc.Ride().Mine(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rides)
}

func (s *Server) getRide(c *gin.Context) {
	ride, err := s.svc.Ride().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ride)
}

func (s *Server) updateRide(c *gin.Context) {
	var req updateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	ride, err := s.svc.Ride().Update(c.Request.Context(), currentUser(c), c.Param("id"), service.UpdateRideInput{
		From:           req.From,
		To:             req.To,
		Date:           req.Date,
		Seats:          req.Seats,
		Price:          req.Price,
		ParcelWeightKg: req.ParcelWeightKg,
		PickupTime:     req.PickupTime,
		DropTime:       req.DropTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ride)
}

func (s *Server) deleteRide(c *gin.Context) {
	if err := s.svc.Ride().Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ride deleted"})
}
