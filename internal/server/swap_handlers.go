package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	var req struct {
		ProviderID   uint   `json:"provider_id"`
		SkillOffered string `json:"skill_offered"`
		SkillWanted  string `json:"skill_wanted"`
		Description  string `json:"description"`
		ProposedTime string `json:"proposed_time"`
		Duration     string `json:"duration"`
		Location     string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ProviderID == 0 || req.SkillOffered == "" || req.SkillWanted == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Provider, offered skill, and wanted skill are required"))
	}

	swap, err := s.swapService.Create(c.Context(), currentUserID(c), service.CreateSwapInput{
		ProviderID:   req.ProviderID,
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
		Description:  req.Description,
		ProposedTime: req.ProposedTime,
		Duration:     req.Duration,
		Location:     req.Location,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetMySwaps handles GET /api/swaps?status=...
func (s *Server) GetMySwaps(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	swaps, err := s.swapService.ListForUser(c.Context(), currentUserID(c), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"swaps":  swaps,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetSwap handles GET /api/swaps/:id
func (s *Server) GetSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	isAdmin, err := s.isAdmin(c, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	swap, err := s.swapService.GetByID(c.Context(), userID, swapID, isAdmin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Accept(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// RejectSwap handles POST /api/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Reject(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// CancelSwap handles POST /api/swaps/:id/cancel
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Cancel(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}

// CompleteSwap handles POST /api/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Complete(c.Context(), currentUserID(c), swapID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(swap)
}
