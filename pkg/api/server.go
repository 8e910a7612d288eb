package api

import (
	"github.com/gin-gonic/gin"

	"ridecarry/config"
	"ridecarry/pkg/logger"
	"ridecarry/pkg/ws"
	"ridecarry/service"
)

type Server struct {
	cfg config.Config
	svc service.IServiceManager
	hub *ws.Hub
	log logger.ILogger
}

func New(cfg config.Config, svc service.IServiceManager, hub *ws.Hub, log logger.ILogger) *Server {
	return &Server{cfg: cfg, svc: svc, hub: hub, log: log}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.cors())

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", s.signup)
			auth.POST("/login", s.login)
			auth.GET("/me", s.authRequired(), s.me)
		}

		api.PATCH("/users/me", s.authRequired(), s.updateProfile)

		rides := api.Group("/rides")
		{
			rides.GET("", s.searchRides)
			rides.GET("/mine", s.authRequired(), s.driverOnly(), s.myRides)
			rides.GET("/:id", s.getRide)
			rides.POST("", s.authRequired(), s.driverOnly(), s.createRide)
			rides.PATCH("/:id", s.authRequired(), s.driverOnly(), s.updateRide)
			rides.DELETE("/:id", s.authRequired(), s.driverOnly(), s.deleteRide)

			rides.GET("/:id/reviews", s.listReviews)
			rides.POST("/:id/reviews", s.authRequired(), s.postReview)
		}

		bookings := api.Group("/bookings")
		bookings.Use(s.authRequired())
		{
			bookings.POST("", s.passengerOnly(), s.createBooking)
			bookings.GET("/me", s.myBookings)
			bookings.PATCH("/:id/approve", s.driverOnly(), s.approveBooking)
			bookings.PATCH("/:id/reject", s.driverOnly(), s.rejectBooking)
			bookings.PATCH("/:id/cancel", s.cancelBooking)

			bookings.GET("/:id/messages", s.listMessages)
			bookings.POST("/:id/messages", s.postMessage)
		}

		notifications := api.Group("/notifications")
		notifications.Use(s.authRequired())
		{
			notifications.GET("", s.listNotifications)
			notifications.POST("/:id/read", s.markNotificationRead)
			notifications.POST("/read-all", s.markAllNotificationsRead)
			notifications.GET("/stream", s.streamNotifications)
		}

		api.POST("/payments/razorpay/order", s.authRequired(), s.passengerOnly(), s.createPaymentOrder)
	}

	return r
}
