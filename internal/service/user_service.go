package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wenje/internal/cache"
	"wenje/internal/models"
	"wenje/internal/repository"
	"wenje/internal/storage"
	"wenje/internal/validation"
)

// FindPeopleLimit caps the people-you-may-know suggestion list.
const FindPeopleLimit = 20

// UserService handles user profile management and account deletion.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	rel        *RelationshipService
	cascade    *CascadeService
	images     storage.ImageStore
	logger     *slog.Logger
}

// UpdateProfileInput contains the profile fields a user may change. Empty
// fields are left untouched.
type UpdateProfileInput struct {
	Name    string
	Email   string
	Bio     string
	Country string
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	rel *RelationshipService,
	cascade *CascadeService,
	images storage.ImageStore,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		rel:        rel,
		cascade:    cascade,
		images:     images,
		logger:     logger,
	}
}

// Get returns a user profile with both follow lists attached. Profiles are
// served cache-aside: follow and profile writes invalidate the same key, so
// only credential fields (never serialized) are absent from cached copies.
func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(userID), &user, cache.UserTTL, func() error {
		loaded, err := s.rel.UserWithFollowLists(ctx, userID)
		if err != nil {
			return err
		}
		user = *loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users with their follow lists.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if err := s.rel.AttachFollowLists(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// UpdateProfile applies the non-empty fields of in to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	if in.Name == "" && in.Email == "" && in.Bio == "" && in.Country == "" {
		return nil, models.NewValidationError("Please provide at least one field to update.")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = validation.NormalizeEmail(in.Email)
	}
	if in.Bio != "" {
		if err := validation.ValidateBio(in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = in.Bio
	}
	if in.Country != "" {
		if err := validation.ValidateCountry(in.Country); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Country = in.Country
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.rel.AttachFollowLists(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword changes the user's password after verifying the current one.
// Tokens issued before the change stop working.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, models.NewUnauthorizedError("Your current password is wrong.")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user.PasswordHash = string(hash)
	// Backdate slightly so the token issued right after the change is not
	// itself rejected by the issued-before-change check.
	changedAt := time.Now().Add(-time.Second)
	user.PasswordChangedAt = &changedAt

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateImage stores a new profile image reference and releases the previous
// one from the external image store.
func (s *UserService) UpdateImage(ctx context.Context, userID uint, imageURL, publicID string) (*models.User, error) {
	if imageURL == "" || publicID == "" {
		return nil, models.NewValidationError("Please provide the image URL and its public ID.")
	}
	if err := validation.ValidateImageURL(imageURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	previousID := user.ImagePublicID
	user.ImageURL = imageURL
	user.ImagePublicID = publicID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if previousID != publicID {
		if err := s.images.Release(ctx, previousID); err != nil {
			s.logger.WarnContext(ctx, "previous profile image release failed",
				slog.String("public_id", previousID),
				slog.Any("error", err),
			)
		}
	}

	if err := s.rel.AttachFollowLists(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchByName returns users whose name contains the query, case insensitive.
func (s *UserService) SearchByName(ctx context.Context, name string) ([]models.UserSummary, error) {
	if name == "" {
		return nil, models.NewValidationError("Please provide a name to search for.")
	}
	return s.userRepo.SearchByName(ctx, name)
}

// FindPeople suggests users the given user does not follow yet.
func (s *UserService) FindPeople(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	followingIDs, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := append(followingIDs, userID)
	return s.userRepo.ListExcluding(ctx, excluded, FindPeopleLimit)
}

// DeleteAccount removes the user and everything they created after
// re-authenticating with email and password.
func (s *UserService) DeleteAccount(ctx context.Context, user *models.User, email, password string) error {
	if email == "" || password == "" {
		return models.NewValidationError("Please provide your email and password to delete your account.")
	}
	if validation.NormalizeEmail(email) != user.Email {
		return models.NewUnauthorizedError("Incorrect email or password.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.NewUnauthorizedError("Incorrect email or password.")
	}
	return s.cascade.DeleteUser(ctx, user)
}
