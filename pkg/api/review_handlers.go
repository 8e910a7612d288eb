package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) listReviews(c *gin.Context) {
	reviews, err := s.svc.Review().ListByRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) postReview(c *gin.Context) {
	var req postReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	review, err := s.svc.Review().Upsert(c.Request.Context(), currentUser(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
