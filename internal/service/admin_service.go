package service

import (
	"context"
	"fmt"
	"time"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// AdminService implements moderation and platform administration.
type AdminService struct {
	userRepo    repository.UserRepository
	swapRepo    repository.SwapRepository
	ratingRepo  repository.RatingRepository
	messageRepo repository.AdminMessageRepository
	reportRepo  repository.ReportRepository
	notifSvc    *NotificationService

	now func() time.Time
}

// DashboardStats is the admin overview snapshot.
type DashboardStats struct {
	TotalUsers     int64                       `json:"total_users"`
	ActiveUsers    int64                       `json:"active_users"`
	SwapsByStatus  map[models.SwapStatus]int64 `json:"swaps_by_status"`
	RatingsLast30d *models.RatingSummary       `json:"ratings_last_30d"`
}

// AnnouncementInput carries a new platform announcement.
type AnnouncementInput struct {
	AdminID       uint
	Title         string
	Message       string
	Type          models.AdminMessageType
	TargetUserIDs []uint
	ExpiresAt     *time.Time
}

// NewAdminService returns a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	swapRepo repository.SwapRepository,
	ratingRepo repository.RatingRepository,
	messageRepo repository.AdminMessageRepository,
	reportRepo repository.ReportRepository,
	notifSvc *NotificationService,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		swapRepo:    swapRepo,
		ratingRepo:  ratingRepo,
		messageRepo: messageRepo,
		reportRepo:  reportRepo,
		notifSvc:    notifSvc,
		now:         time.Now,
	}
}

// Dashboard assembles the admin overview from the individual repositories.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := s.now()

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.userRepo.CountActiveSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	swapCounts, err := s.swapRepo.CountByStatus(ctx, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}
	ratingStats, err := s.ratingRepo.Stats(ctx, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:     totalUsers,
		ActiveUsers:    activeUsers,
		SwapsByStatus:  swapCounts,
		RatingsLast30d: ratingStats,
	}, nil
}

// SetBanned bans or unbans a user. Admin accounts cannot be banned.
func (s *AdminService) SetBanned(ctx context.Context, targetID uint, banned bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, models.NewForbiddenError("Administrators cannot be banned")
	}
	if user.IsBanned == banned {
		return user, nil
	}

	if err := s.userRepo.SetBanned(ctx, targetID, banned); err != nil {
		return nil, err
	}
	user.IsBanned = banned
	return user, nil
}

// CreateAnnouncement stores a platform announcement and fans it out: targeted
// messages become per-user notifications, untargeted ones are broadcast.
func (s *AdminService) CreateAnnouncement(ctx context.Context, in AnnouncementInput) (*models.AdminMessage, error) {
	if in.Title == "" || in.Message == "" {
		return nil, models.NewValidationError("Announcement title and message are required")
	}
	if in.Type == "" {
		in.Type = models.AdminMessageAnnouncement
	}
	if !models.ValidAdminMessageType(in.Type) {
		return nil, models.NewValidationError("Unknown announcement type: " + string(in.Type))
	}
	if in.ExpiresAt != nil && in.ExpiresAt.Before(s.now()) {
		return nil, models.NewValidationError("Announcement expiry must be in the future")
	}

	message := &models.AdminMessage{
		AdminID:       in.AdminID,
		Title:         in.Title,
		Message:       in.Message,
		Type:          in.Type,
		IsActive:      true,
		TargetUserIDs: in.TargetUserIDs,
		ExpiresAt:     in.ExpiresAt,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		if len(in.TargetUserIDs) > 0 {
			adminID := in.AdminID
			for _, targetID := range in.TargetUserIDs {
				if err := s.notifSvc.Notify(ctx, &models.Notification{
					RecipientID:   targetID,
					Type:          models.NotificationAdminMessage,
					Title:         in.Title,
					Message:       in.Message,
					RelatedUserID: &adminID,
				}); err != nil {
					middleware.Logger.Warn("Failed to deliver targeted announcement",
						"admin_message_id", message.ID,
						"recipient_id", targetID,
						"error", err.Error(),
					)
				}
			}
		} else {
			s.notifSvc.Broadcast(ctx, message)
		}
	}

	return message, nil
}

// ListAnnouncements returns all announcements, newest first.
func (s *AdminService) ListAnnouncements(ctx context.Context, limit, offset int) ([]models.AdminMessage, error) {
	return s.messageRepo.List(ctx, limit, offset)
}

// ListActiveAnnouncements returns announcements currently visible to users.
func (s *AdminService) ListActiveAnnouncements(ctx context.Context) ([]models.AdminMessage, error) {
	return s.messageRepo.ListActive(ctx, s.now())
}

// DeactivateAnnouncement retracts an announcement.
func (s *AdminService) DeactivateAnnouncement(ctx context.Context, id uint) error {
	return s.messageRepo.Deactivate(ctx, id)
}

// ListSwaps returns all swaps for moderation, optionally filtered by status.
func (s *AdminService) ListSwaps(ctx context.Context, status string, limit, offset int) ([]models.Swap, error) {
	if status != "" && !validSwapStatus(models.SwapStatus(status)) {
		return nil, models.NewValidationError("Unknown swap status: " + status)
	}
	return s.swapRepo.ListAll(ctx, models.SwapStatus(status), limit, offset)
}

// GenerateReport builds and persists a platform report over a date range.
func (s *AdminService) GenerateReport(ctx context.Context, adminID uint, reportType models.ReportType, from, to time.Time) (*models.Report, error) {
	if !models.ValidReportType(reportType) {
		return nil, models.NewValidationError("Unknown report type: " + string(reportType))
	}
	if !to.After(from) {
		return nil, models.NewValidationError("Report range end must be after start")
	}

	var summary models.ReportSummary

	switch reportType {
	case models.ReportTypeUsers, models.ReportTypeActivity:
		totalUsers, err := s.userRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		activeUsers, err := s.userRepo.CountActiveSince(ctx, from)
		if err != nil {
			return nil, err
		}
		summary.TotalUsers = int(totalUsers)
		summary.ActiveUsers = int(activeUsers)
	}

	switch reportType {
	case models.ReportTypeSwaps, models.ReportTypeActivity:
		counts, err := s.swapRepo.CountByStatus(ctx, from, to)
		if err != nil {
			return nil, err
		}
		for _, c := range counts {
			summary.TotalSwaps += int(c)
		}
		summary.CompletedSwaps = int(counts[models.SwapStatusCompleted])
	}

	switch reportType {
	case models.ReportTypeRatings, models.ReportTypeActivity:
		stats, err := s.ratingRepo.Stats(ctx, from, to)
		if err != nil {
			return nil, err
		}
		summary.TotalRatings = stats.Count
		summary.AverageRating = stats.Average
	}

	report := &models.Report{
		Type:          reportType,
		GeneratedByID: adminID,
		From:          from,
		To:            to,
		Summary:       summary,
		FileName:      fmt.Sprintf("%s-report-%s.json", reportType, s.now().Format("20060102-150405")),
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns previously generated reports.
func (s *AdminService) ListReports(ctx context.Context, limit, offset int) ([]models.Report, error) {
	return s.reportRepo.List(ctx, limit, offset)
}

// GetReport returns one generated report.
func (s *AdminService) GetReport(ctx context.Context, id uint) (*models.Report, error) {
	return s.reportRepo.GetByID(ctx, id)
}
