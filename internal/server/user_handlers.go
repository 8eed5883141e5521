package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userService.GetProfile(c.Context(), userID, userID, false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Name          string   `json:"name"`
		Location      string   `json:"location"`
		ProfilePhoto  string   `json:"profile_photo"`
		Availability  string   `json:"availability"`
		SkillsOffered []string `json:"skills_offered"`
		SkillsWanted  []string `json:"skills_wanted"`
		IsPublic      *bool    `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:        userID,
		Name:          req.Name,
		Location:      req.Location,
		ProfilePhoto:  req.ProfilePhoto,
		Availability:  req.Availability,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /api/users/me
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.Delete(c.Context(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userService.ListPublic(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// SearchUsers handles GET /api/users/search?skill=...
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	users, err := s.userService.SearchBySkill(c.Context(), c.Query("skill"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID := currentUserID(c)

	isAdmin, err := s.isAdmin(c, viewerID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	user, err := s.userService.GetProfile(c.Context(), viewerID, targetID, isAdmin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserRatings handles GET /api/users/:id/ratings
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	ratings, err := s.ratingService.ListForUser(c.Context(), targetID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"ratings": ratings,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}
