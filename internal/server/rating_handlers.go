package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRating handles POST /api/ratings
func (s *Server) CreateRating(c *fiber.Ctx) error {
	var req struct {
		SwapID  uint   `json:"swap_id"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.SwapID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Swap ID is required"))
	}

	rating, summary, err := s.ratingService.RecordRating(c.Context(), currentUserID(c), service.RecordRatingInput{
		SwapID:  req.SwapID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"rating":  rating,
		"summary": summary,
	})
}

// GetGivenRatings handles GET /api/ratings/given
func (s *Server) GetGivenRatings(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	ratings, err := s.ratingService.ListGiven(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"ratings": ratings,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// GetSwapRating handles GET /api/ratings/swap/:id
func (s *Server) GetSwapRating(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rating, err := s.ratingService.GetForSwap(c.Context(), swapID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rating)
}

// UpdateRating handles PUT /api/ratings/:id
func (s *Server) UpdateRating(c *fiber.Ctx) error {
	ratingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Rating == nil && req.Comment == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Nothing to update"))
	}

	rating, summary, err := s.ratingService.UpdateRating(c.Context(), currentUserID(c), service.UpdateRatingInput{
		RatingID: ratingID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"rating":  rating,
		"summary": summary,
	})
}
