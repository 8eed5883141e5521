package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries a new account registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Location string
}

// UpdateProfileInput carries a profile edit. Nil slice fields are left
// unchanged; empty slices clear the list.
type UpdateProfileInput struct {
	UserID        uint
	Name          string
	Location      string
	ProfilePhoto  string
	Availability  string
	SkillsOffered []string
	SkillsWanted  []string
	IsPublic      *bool
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register validates and creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hash),
		Location: in.Location,
		IsPublic: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account. Banned
// accounts cannot sign in.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if user.IsBanned {
		return nil, models.NewForbiddenError("This account has been suspended")
	}
	return user, nil
}

// GetProfile returns a user profile subject to visibility rules: owners and
// admins see everything, everyone else only public, unbanned profiles.
func (s *UserService) GetProfile(ctx context.Context, viewerID, targetID uint, viewerIsAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if viewerID == targetID || viewerIsAdmin {
		return user, nil
	}
	if !user.IsPublic || user.IsBanned {
		// Hidden profiles are indistinguishable from absent ones.
		return nil, models.NewNotFoundError("User", targetID)
	}
	return user, nil
}

// UpdateProfile applies a profile edit for the owning user.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.ProfilePhoto != "" {
		user.ProfilePhoto = in.ProfilePhoto
	}
	if in.Availability != "" {
		user.Availability = in.Availability
	}
	if in.SkillsOffered != nil {
		if err := validation.ValidateSkills(in.SkillsOffered); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.SkillsOffered = in.SkillsOffered
	}
	if in.SkillsWanted != nil {
		if err := validation.ValidateSkills(in.SkillsWanted); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.SkillsWanted = in.SkillsWanted
	}
	if in.IsPublic != nil {
		user.IsPublic = *in.IsPublic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListPublic returns browsable public profiles.
func (s *UserService) ListPublic(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.ListPublic(ctx, limit, offset)
}

// SearchBySkill returns public users offering or wanting the given skill.
func (s *UserService) SearchBySkill(ctx context.Context, skill string, limit, offset int) ([]models.User, error) {
	trimmed := strings.TrimSpace(skill)
	if trimmed == "" {
		return nil, models.NewValidationError("Search skill cannot be empty")
	}
	return s.userRepo.SearchBySkill(ctx, trimmed, limit, offset)
}

// Delete removes the user's own account.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	return s.userRepo.Delete(ctx, userID)
}
