package service

import (
	"context"
	"fmt"
	"time"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SwapService implements the swap request lifecycle. Transitions are guarded
// twice: once here against the loaded row for early, precise errors, and once
// in the repository with a conditional UPDATE that settles races.
type SwapService struct {
	swapRepo repository.SwapRepository
	userRepo repository.UserRepository
	notifSvc *NotificationService

	now func() time.Time
}

// CreateSwapInput carries the fields a requester submits for a new swap.
type CreateSwapInput struct {
	ProviderID   uint
	SkillOffered string
	SkillWanted  string
	Description  string
	ProposedTime string
	Duration     string
	Location     string
}

// NewSwapService returns a new SwapService.
func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, notifSvc *NotificationService) *SwapService {
	return &SwapService{
		swapRepo: swapRepo,
		userRepo: userRepo,
		notifSvc: notifSvc,
		now:      time.Now,
	}
}

// Create validates and persists a new pending swap request.
func (s *SwapService) Create(ctx context.Context, requesterID uint, in CreateSwapInput) (*models.Swap, error) {
	if in.ProviderID == requesterID {
		return nil, models.NewValidationError("Cannot request a swap with yourself")
	}
	if err := validation.ValidateSkill(in.SkillOffered); err != nil {
		return nil, models.NewValidationError("Invalid offered skill: " + err.Error())
	}
	if err := validation.ValidateSkill(in.SkillWanted); err != nil {
		return nil, models.NewValidationError("Invalid wanted skill: " + err.Error())
	}

	provider, err := s.userRepo.GetByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider.IsBanned || !provider.IsPublic {
		return nil, models.NewNotFoundError("User", in.ProviderID)
	}
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	// Both skill lists are checked at creation time. The lists may change
	// later; the guard only binds construction.
	if !provider.OffersSkill(in.SkillOffered) {
		return nil, models.NewValidationError("Provider does not currently offer this skill")
	}
	if !requester.WantsSkill(in.SkillWanted) {
		return nil, models.NewValidationError("You do not currently list this skill as wanted")
	}

	swap := &models.Swap{
		RequesterID:  requesterID,
		ProviderID:   in.ProviderID,
		SkillOffered: in.SkillOffered,
		SkillWanted:  in.SkillWanted,
		Description:  in.Description,
		Status:       models.SwapStatusPending,
		ProposedTime: in.ProposedTime,
		Duration:     in.Duration,
		Location:     in.Location,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}

	s.notifySwap(ctx, swap, in.ProviderID, models.NotificationSwapRequest,
		"New swap request",
		fmt.Sprintf("You have a new swap request offering %s for %s", in.SkillOffered, in.SkillWanted))

	return s.swapRepo.GetByID(ctx, swap.ID)
}

// GetByID returns a swap visible to the given user. Only participants and
// admins may read a swap.
func (s *SwapService) GetByID(ctx context.Context, userID uint, swapID uint, isAdmin bool) (*models.Swap, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) && !isAdmin {
		return nil, models.NewForbiddenError("You are not a participant in this swap")
	}
	return swap, nil
}

// ListForUser returns the user's swaps, optionally filtered by status.
func (s *SwapService) ListForUser(ctx context.Context, userID uint, status string, limit, offset int) ([]models.Swap, error) {
	if status != "" && !validSwapStatus(models.SwapStatus(status)) {
		return nil, models.NewValidationError("Unknown swap status: " + status)
	}
	return s.swapRepo.ListByUser(ctx, userID, models.SwapStatus(status), limit, offset)
}

// Accept moves a pending swap to accepted. Only the provider may accept.
func (s *SwapService) Accept(ctx context.Context, userID, swapID uint) (*models.Swap, error) {
	return s.respond(ctx, userID, swapID, models.SwapStatusAccepted)
}

// Reject moves a pending swap to rejected. Only the provider may reject.
func (s *SwapService) Reject(ctx context.Context, userID, swapID uint) (*models.Swap, error) {
	return s.respond(ctx, userID, swapID, models.SwapStatusRejected)
}

// respond handles the provider's accept/reject decision. Both paths stamp
// the response date exactly once, when the swap leaves pending.
func (s *SwapService) respond(ctx context.Context, userID, swapID uint, to models.SwapStatus) (*models.Swap, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant in this swap")
	}
	if swap.ProviderID != userID {
		return nil, models.NewForbiddenError("Only the provider can respond to a swap request")
	}
	if swap.Status != models.SwapStatusPending {
		return nil, s.transitionError(swap.Status, to)
	}

	now := s.now()
	ok, err := s.swapRepo.TransitionStatus(ctx, swapID, models.SwapStatusPending, to, &now)
	if err != nil {
		observability.SwapTransitionsTotal.WithLabelValues(string(to), "error").Inc()
		return nil, err
	}
	if !ok {
		// Lost the race: someone else moved the swap first. Reload so the
		// error names the state that actually won.
		observability.SwapTransitionsTotal.WithLabelValues(string(to), "conflict").Inc()
		current, gerr := s.swapRepo.GetByID(ctx, swapID)
		if gerr != nil {
			return nil, gerr
		}
		return nil, s.transitionError(current.Status, to)
	}
	observability.SwapTransitionsTotal.WithLabelValues(string(to), "ok").Inc()

	notifType := models.NotificationSwapAccepted
	title := "Swap request accepted"
	body := fmt.Sprintf("Your swap request for %s was accepted", swap.SkillWanted)
	if to == models.SwapStatusRejected {
		notifType = models.NotificationSwapRejected
		title = "Swap request declined"
		body = fmt.Sprintf("Your swap request for %s was declined", swap.SkillWanted)
	}
	s.notifySwap(ctx, swap, swap.RequesterID, notifType, title, body)

	return s.swapRepo.GetByID(ctx, swapID)
}

// Cancel withdraws a pending swap. Only the requester may cancel, and unlike
// deletion the swap stays on record in cancelled state.
func (s *SwapService) Cancel(ctx context.Context, userID, swapID uint) (*models.Swap, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant in this swap")
	}
	if swap.RequesterID != userID {
		return nil, models.NewForbiddenError("Only the requester can cancel a swap request")
	}
	if swap.Status != models.SwapStatusPending {
		return nil, s.transitionError(swap.Status, models.SwapStatusCancelled)
	}

	// Cancellation leaves pending but is not a provider response, so the
	// response date stays unset.
	ok, err := s.swapRepo.TransitionStatus(ctx, swapID, models.SwapStatusPending, models.SwapStatusCancelled, nil)
	if err != nil {
		observability.SwapTransitionsTotal.WithLabelValues(string(models.SwapStatusCancelled), "error").Inc()
		return nil, err
	}
	if !ok {
		observability.SwapTransitionsTotal.WithLabelValues(string(models.SwapStatusCancelled), "conflict").Inc()
		current, gerr := s.swapRepo.GetByID(ctx, swapID)
		if gerr != nil {
			return nil, gerr
		}
		return nil, s.transitionError(current.Status, models.SwapStatusCancelled)
	}
	observability.SwapTransitionsTotal.WithLabelValues(string(models.SwapStatusCancelled), "ok").Inc()

	return s.swapRepo.GetByID(ctx, swapID)
}

// Complete marks an accepted swap as completed. Either participant may
// complete; both users' completed swap counters advance atomically with the
// status change.
func (s *SwapService) Complete(ctx context.Context, userID, swapID uint) (*models.Swap, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant in this swap")
	}
	if swap.Status != models.SwapStatusAccepted {
		return nil, s.transitionError(swap.Status, models.SwapStatusCompleted)
	}

	ok, err := s.swapRepo.Complete(ctx, swap, s.now())
	if err != nil {
		observability.SwapTransitionsTotal.WithLabelValues(string(models.SwapStatusCompleted), "error").Inc()
		return nil, err
	}
	if !ok {
		observability.SwapTransitionsTotal.WithLabelValues(string(models.SwapStatusCompleted), "conflict").Inc()
		current, gerr := s.swapRepo.GetByID(ctx, swapID)
		if gerr != nil {
			return nil, gerr
		}
		return nil, s.transitionError(current.Status, models.SwapStatusCompleted)
	}
	observability.SwapTransitionsTotal.WithLabelValues(string(models.SwapStatusCompleted), "ok").Inc()

	s.notifySwap(ctx, swap, swap.OtherParticipant(userID), models.NotificationSwapCompleted,
		"Swap completed",
		fmt.Sprintf("Your %s for %s swap was marked as completed", swap.SkillOffered, swap.SkillWanted))

	return s.swapRepo.GetByID(ctx, swapID)
}

// transitionError reports a refused transition naming the state that held.
func (s *SwapService) transitionError(current, to models.SwapStatus) error {
	return models.NewInvalidTransitionError(fmt.Sprintf("Cannot move swap from %s to %s", current, to))
}

func (s *SwapService) notifySwap(ctx context.Context, swap *models.Swap, recipientID uint, notifType models.NotificationType, title, message string) {
	if s.notifSvc == nil {
		return
	}
	swapID := swap.ID
	if err := s.notifSvc.Notify(ctx, &models.Notification{
		RecipientID:   recipientID,
		Type:          notifType,
		Title:         title,
		Message:       message,
		RelatedSwapID: &swapID,
	}); err != nil {
		middleware.Logger.Warn("Failed to store swap notification",
			"swap_id", swapID,
			"recipient_id", recipientID,
			"error", err.Error(),
		)
	}
}

func validSwapStatus(s models.SwapStatus) bool {
	switch s {
	case models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected,
		models.SwapStatusCompleted, models.SwapStatusCancelled:
		return true
	}
	return false
}
