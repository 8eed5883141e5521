package server

import (
	"time"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard handles GET /api/admin/dashboard
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	stats, err := s.adminService.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// AdminGetSwaps handles GET /api/admin/swaps?status=...
func (s *Server) AdminGetSwaps(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	swaps, err := s.adminService.ListSwaps(c.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"swaps":  swaps,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.setBanned(c, true)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.setBanned(c, false)
}

func (s *Server) setBanned(c *fiber.Ctx, banned bool) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.adminService.SetBanned(c.Context(), userID, banned)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// CreateAnnouncement handles POST /api/admin/messages
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Title         string     `json:"title"`
		Message       string     `json:"message"`
		Type          string     `json:"type"`
		TargetUserIDs []uint     `json:"target_user_ids"`
		ExpiresAt     *time.Time `json:"expires_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.adminService.CreateAnnouncement(c.Context(), service.AnnouncementInput{
		AdminID:       currentUserID(c),
		Title:         req.Title,
		Message:       req.Message,
		Type:          models.AdminMessageType(req.Type),
		TargetUserIDs: req.TargetUserIDs,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetAnnouncements handles GET /api/admin/messages
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	messages, err := s.adminService.ListAnnouncements(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"messages": messages,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// DeactivateAnnouncement handles DELETE /api/admin/messages/:id
func (s *Server) DeactivateAnnouncement(c *fiber.Ctx) error {
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeactivateAnnouncement(c.Context(), messageID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Announcement deactivated"})
}

// GenerateReport handles POST /api/admin/reports
func (s *Server) GenerateReport(c *fiber.Ctx) error {
	var req struct {
		Type string     `json:"type"`
		From *time.Time `json:"from"`
		To   *time.Time `json:"to"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Default to the trailing 30 days when no range is given
	to := time.Now()
	if req.To != nil {
		to = *req.To
	}
	from := to.AddDate(0, 0, -30)
	if req.From != nil {
		from = *req.From
	}

	report, err := s.adminService.GenerateReport(c.Context(), currentUserID(c), models.ReportType(req.Type), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/admin/reports
func (s *Server) GetReports(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	reports, err := s.adminService.ListReports(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"reports": reports,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// GetReport handles GET /api/admin/reports/:id
func (s *Server) GetReport(c *fiber.Ctx) error {
	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	report, err := s.adminService.GetReport(c.Context(), reportID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
