package service

import (
	"context"
	"time"

	"skillswap/internal/models"
)

type swapRepoStub struct {
	createFn           func(context.Context, *models.Swap) error
	getByIDFn          func(context.Context, uint) (*models.Swap, error)
	listByUserFn       func(context.Context, uint, models.SwapStatus, int, int) ([]models.Swap, error)
	listAllFn          func(context.Context, models.SwapStatus, int, int) ([]models.Swap, error)
	transitionStatusFn func(context.Context, uint, models.SwapStatus, models.SwapStatus, *time.Time) (bool, error)
	completeFn         func(context.Context, *models.Swap, time.Time) (bool, error)
	countByStatusFn    func(context.Context, time.Time, time.Time) (map[models.SwapStatus]int64, error)
}

func (s *swapRepoStub) Create(ctx context.Context, swap *models.Swap) error {
	return s.createFn(ctx, swap)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id uint) (*models.Swap, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) ListByUser(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.Swap, error) {
	return s.listByUserFn(ctx, userID, status, limit, offset)
}
func (s *swapRepoStub) ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.Swap, error) {
	return s.listAllFn(ctx, status, limit, offset)
}
func (s *swapRepoStub) TransitionStatus(ctx context.Context, id uint, from, to models.SwapStatus, responseDate *time.Time) (bool, error) {
	return s.transitionStatusFn(ctx, id, from, to, responseDate)
}
func (s *swapRepoStub) Complete(ctx context.Context, swap *models.Swap, completedAt time.Time) (bool, error) {
	return s.completeFn(ctx, swap, completedAt)
}
func (s *swapRepoStub) CountByStatus(ctx context.Context, from, to time.Time) (map[models.SwapStatus]int64, error) {
	return s.countByStatusFn(ctx, from, to)
}

func noopSwapRepo() *swapRepoStub {
	return &swapRepoStub{
		createFn:  func(context.Context, *models.Swap) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Swap, error) { return &models.Swap{}, nil },
		listByUserFn: func(context.Context, uint, models.SwapStatus, int, int) ([]models.Swap, error) {
			return nil, nil
		},
		listAllFn: func(context.Context, models.SwapStatus, int, int) ([]models.Swap, error) {
			return nil, nil
		},
		transitionStatusFn: func(context.Context, uint, models.SwapStatus, models.SwapStatus, *time.Time) (bool, error) {
			return true, nil
		},
		completeFn: func(context.Context, *models.Swap, time.Time) (bool, error) { return true, nil },
		countByStatusFn: func(context.Context, time.Time, time.Time) (map[models.SwapStatus]int64, error) {
			return nil, nil
		},
	}
}

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listPublicFn       func(context.Context, int, int) ([]models.User, error)
	searchBySkillFn    func(context.Context, string, int, int) ([]models.User, error)
	setBannedFn        func(context.Context, uint, bool) error
	countFn            func(context.Context) (int64, error)
	countActiveSinceFn func(context.Context, time.Time) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) ListPublic(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listPublicFn(ctx, limit, offset)
}
func (s *userRepoStub) SearchBySkill(ctx context.Context, skill string, limit, offset int) ([]models.User, error) {
	return s.searchBySkillFn(ctx, skill, limit, offset)
}
func (s *userRepoStub) SetBanned(ctx context.Context, id uint, banned bool) error {
	return s.setBannedFn(ctx, id, banned)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countActiveSinceFn(ctx, since)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return &models.User{IsPublic: true}, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		listPublicFn: func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchBySkillFn: func(context.Context, string, int, int) ([]models.User, error) {
			return nil, nil
		},
		setBannedFn:        func(context.Context, uint, bool) error { return nil },
		countFn:            func(context.Context) (int64, error) { return 0, nil },
		countActiveSinceFn: func(context.Context, time.Time) (int64, error) { return 0, nil },
	}
}

type ratingRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.Rating, error)
	getBySwapAndRaterFn func(context.Context, uint, uint) (*models.Rating, error)
	listByRatedFn       func(context.Context, uint, int, int) ([]models.Rating, error)
	listByRaterFn       func(context.Context, uint, int, int) ([]models.Rating, error)
	createWithSummaryFn func(context.Context, *models.Rating) (*models.RatingSummary, error)
	updateWithSummaryFn func(context.Context, *models.Rating) (*models.RatingSummary, error)
	statsFn             func(context.Context, time.Time, time.Time) (*models.RatingSummary, error)
}

func (s *ratingRepoStub) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ratingRepoStub) GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	return s.getBySwapAndRaterFn(ctx, swapID, raterID)
}
func (s *ratingRepoStub) ListByRated(ctx context.Context, ratedID uint, limit, offset int) ([]models.Rating, error) {
	return s.listByRatedFn(ctx, ratedID, limit, offset)
}
func (s *ratingRepoStub) ListByRater(ctx context.Context, raterID uint, limit, offset int) ([]models.Rating, error) {
	return s.listByRaterFn(ctx, raterID, limit, offset)
}
func (s *ratingRepoStub) CreateWithSummary(ctx context.Context, rating *models.Rating) (*models.RatingSummary, error) {
	return s.createWithSummaryFn(ctx, rating)
}
func (s *ratingRepoStub) UpdateWithSummary(ctx context.Context, rating *models.Rating) (*models.RatingSummary, error) {
	return s.updateWithSummaryFn(ctx, rating)
}
func (s *ratingRepoStub) Stats(ctx context.Context, from, to time.Time) (*models.RatingSummary, error) {
	return s.statsFn(ctx, from, to)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		getByIDFn: func(context.Context, uint) (*models.Rating, error) { return &models.Rating{}, nil },
		getBySwapAndRaterFn: func(context.Context, uint, uint) (*models.Rating, error) {
			return nil, nil
		},
		listByRatedFn: func(context.Context, uint, int, int) ([]models.Rating, error) { return nil, nil },
		listByRaterFn: func(context.Context, uint, int, int) ([]models.Rating, error) { return nil, nil },
		createWithSummaryFn: func(context.Context, *models.Rating) (*models.RatingSummary, error) {
			return &models.RatingSummary{}, nil
		},
		updateWithSummaryFn: func(context.Context, *models.Rating) (*models.RatingSummary, error) {
			return &models.RatingSummary{}, nil
		},
		statsFn: func(context.Context, time.Time, time.Time) (*models.RatingSummary, error) {
			return &models.RatingSummary{}, nil
		},
	}
}

type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	getByIDFn         func(context.Context, uint) (*models.Notification, error)
	listByRecipientFn func(context.Context, uint, bool, int, int) ([]models.Notification, error)
	countUnreadFn     func(context.Context, uint) (int64, error)
	statsFn           func(context.Context, uint) (*models.NotificationStats, error)
	markReadFn        func(context.Context, uint, uint) error
	markAllReadFn     func(context.Context, uint) (int64, error)
	deleteFn          func(context.Context, uint, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return s.getByIDFn(ctx, id)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.listByRecipientFn(ctx, recipientID, unreadOnly, limit, offset)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return s.countUnreadFn(ctx, recipientID)
}
func (s *notificationRepoStub) Stats(ctx context.Context, recipientID uint) (*models.NotificationStats, error) {
	return s.statsFn(ctx, recipientID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id, recipientID uint) error {
	return s.markReadFn(ctx, id, recipientID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	return s.markAllReadFn(ctx, recipientID)
}
func (s *notificationRepoStub) Delete(ctx context.Context, id, recipientID uint) error {
	return s.deleteFn(ctx, id, recipientID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn:  func(context.Context, *models.Notification) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Notification, error) { return &models.Notification{}, nil },
		listByRecipientFn: func(context.Context, uint, bool, int, int) ([]models.Notification, error) {
			return nil, nil
		},
		countUnreadFn: func(context.Context, uint) (int64, error) { return 0, nil },
		statsFn: func(context.Context, uint) (*models.NotificationStats, error) {
			return &models.NotificationStats{}, nil
		},
		markReadFn:    func(context.Context, uint, uint) error { return nil },
		markAllReadFn: func(context.Context, uint) (int64, error) { return 0, nil },
		deleteFn:      func(context.Context, uint, uint) error { return nil },
	}
}

func noopNotificationService() *NotificationService {
	return NewNotificationService(noopNotificationRepo(), nil)
}
