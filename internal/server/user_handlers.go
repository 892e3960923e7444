package server

import (
	"wenje/internal/middleware"
	"wenje/internal/models"
	"wenje/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest is the request body for profile updates
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Bio     string `json:"bio"`
	Country string `json:"country"`
}

// UpdatePasswordRequest is the request body for password changes
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
}

// UploadImageRequest is the request body for profile image updates
type UploadImageRequest struct {
	ImageURL      string `json:"imageUrl"`
	ImagePublicID string `json:"imagePublicId"`
}

// GetAllUsers returns every user with follow lists attached.
// @Summary List all users
// @Tags users
// @Produce json
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondList(c, fiber.StatusOK, "", len(users), users)
}

// GetMyProfile returns the authenticated user's profile.
// @Summary Get own profile
// @Tags users
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.Get(c.UserContext(), middleware.AuthUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusOK, "", user)
}

// GetUserProfile returns another user's profile.
// @Summary Get a user profile
// @Tags users
// @Router /users/{userId} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	user, err := s.userService.Get(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusOK, "", user)
}

// SearchUsers finds users by name substring.
// @Summary Search users by name
// @Tags users
// @Router /users/search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	results, err := s.userService.SearchByName(c.UserContext(), c.Query("byName"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondList(c, fiber.StatusOK, "", len(results), results)
}

// FindPeople suggests users not yet followed.
// @Summary Suggest people to follow
// @Tags users
// @Router /users/findpeople [get]
func (s *Server) FindPeople(c *fiber.Ctx) error {
	results, err := s.userService.FindPeople(c.UserContext(), middleware.AuthUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondList(c, fiber.StatusOK, "", len(results), results)
}

// UpdateMyProfile updates the authenticated user's profile fields.
// @Summary Update own profile
// @Tags users
// @Router /users/update [patch]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), middleware.AuthUserID(c),
		service.UpdateProfileInput{
			Name:    req.Name,
			Email:   req.Email,
			Bio:     req.Bio,
			Country: req.Country,
		})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusOK, "Your profile has been updated successfully.", user)
}

// UpdateMyPassword changes the password and issues a fresh token.
// @Summary Update own password
// @Tags users
// @Router /users/updatepassword [patch]
func (s *Server) UpdateMyPassword(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}
	if req.CurrentPassword == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Please provide your current and new password."))
	}

	user, err := s.userService.UpdatePassword(c.UserContext(), middleware.AuthUserID(c),
		req.CurrentPassword, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return respond(c, fiber.StatusOK, "Your password has been updated successfully.",
		AuthResponse{User: user, Token: token})
}

// UploadImage stores a new profile image reference.
// @Summary Update own profile image
// @Tags users
// @Router /users/uploadimage [patch]
func (s *Server) UploadImage(c *fiber.Ctx) error {
	var req UploadImageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}

	user, err := s.userService.UpdateImage(c.UserContext(), middleware.AuthUserID(c),
		req.ImageURL, req.ImagePublicID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusOK, "Your profile image has been updated successfully.", user)
}

// FollowUser makes the authenticated user follow another user.
// @Summary Follow a user
// @Tags users
// @Router /users/follow [patch]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	var req struct {
		FollowID uint `json:"followId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}

	user, err := s.relationshipService.Follow(c.UserContext(), middleware.AuthUserID(c), req.FollowID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusCreated, "User followed successfully.", user)
}

// UnfollowUser removes a follow edge.
// @Summary Unfollow a user
// @Tags users
// @Router /users/unfollow [patch]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	var req struct {
		UnfollowID uint `json:"unfollowId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}

	user, err := s.relationshipService.Unfollow(c.UserContext(), middleware.AuthUserID(c), req.UnfollowID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusCreated, "User unfollowed successfully.", user)
}

// DeleteMyAccount deletes the authenticated user and all their content.
// @Summary Delete own account
// @Tags users
// @Router /users/delete [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}

	user := middleware.AuthUser(c)
	if user == nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Please sign in to access this route."))
	}

	if err := s.userService.DeleteAccount(c.UserContext(), user, req.Email, req.Password); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
