package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"wenje/internal/models"
	"wenje/internal/notifications"
	"wenje/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenLifetime = 10 * time.Minute

// SignupRequest is the request body for user registration
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest is the request body for user login
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a user together with a fresh token.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup handles user registration
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} AuthResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}

	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Name:          req.Name,
		Email:         validation.NormalizeEmail(req.Email),
		PasswordHash:  string(hash),
		ImageURL:      models.DefaultAvatarURL,
		ImagePublicID: models.DefaultAvatarPublicID,
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return respond(c, fiber.StatusCreated, "Your account has been created successfully.",
		AuthResponse{User: user, Token: token})
}

// Signin handles user login
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Signin data"
// @Success 200 {object} AuthResponse
// @Router /auth/signin [post]
func (s *Server) Signin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Please provide email and password."))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), validation.NormalizeEmail(req.Email))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Incorrect email or password."))
	}

	if err := s.relationshipService.AttachFollowLists(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return respond(c, fiber.StatusOK, "You have been signed in successfully.",
		AuthResponse{User: user, Token: token})
}

// ForgotPassword issues a password reset token and mails the reset URL.
// The raw token never touches the database, only its hash.
// @Summary Request a password reset
// @Tags auth
// @Router /auth/forgotpassword [post]
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Please provide your email address."))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), validation.NormalizeEmail(req.Email))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c,
			models.NewNotFoundError("There is no user with this email address."))
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	resetToken := hex.EncodeToString(raw)

	expires := time.Now().Add(resetTokenLifetime)
	user.ResetTokenHash = hashResetToken(resetToken)
	user.ResetTokenExpiresAt = &expires
	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", s.config.ClientHost, resetToken)
	msg := notifications.Message{
		To:      user.Email,
		Subject: "Your password reset token (valid for 10 minutes)",
		Text:    fmt.Sprintf("Forgot your password? Submit a new one at %s. If you didn't, please ignore this email.", resetURL),
	}
	if err := s.mailer.Send(c.UserContext(), msg); err != nil {
		// Roll the token back so a stale hash cannot linger.
		user.ResetTokenHash = ""
		user.ResetTokenExpiresAt = nil
		if uerr := s.userRepo.Update(c.UserContext(), user); uerr != nil {
			s.logger.ErrorContext(c.UserContext(), "failed to clear reset token",
				slog.Any("error", uerr))
		}
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return respond(c, fiber.StatusOK,
		"A password reset link has been sent to your email address.", nil)
}

// ResetPassword sets a new password using a valid reset token.
// @Summary Reset password with a token
// @Tags auth
// @Router /auth/resetpassword/{resetToken} [patch]
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userRepo.GetByResetTokenHash(c.UserContext(),
		hashResetToken(c.Params("resetToken")), time.Now())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	changedAt := time.Now().Add(-time.Second)
	user.PasswordHash = string(hash)
	user.PasswordChangedAt = &changedAt
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	s.logger.InfoContext(c.UserContext(), "password reset completed",
		slog.Uint64("user_id", uint64(user.ID)))

	return respond(c, fiber.StatusOK, "Your password has been reset successfully.",
		AuthResponse{User: user, Token: token})
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
