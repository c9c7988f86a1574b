package handler

import (
	"github.com/Lanziify/seps-web-server/internal/dto"
	"github.com/Lanziify/seps-web-server/internal/logger"
	"github.com/Lanziify/seps-web-server/internal/middleware"
	"github.com/Lanziify/seps-web-server/internal/service"
	"github.com/Lanziify/seps-web-server/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService  service.UserService
	tokenService service.TokenService
	verification service.EmailVerificationService
	validator    *validation.Validator
}

func NewAuthHandler(
	userService service.UserService,
	tokenService service.TokenService,
	verification service.EmailVerificationService,
	validator *validation.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		verification: verification,
		validator:    validator,
	}
}

// Register creates a new unverified account and sends the verification email.
// @Summary Register a new account
// @Description Creates an unverified account and emails a 24-hour verification link.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} middleware.ErrorResponse "Validation failed or email already taken"
// @Failure 502 {object} middleware.ErrorResponse "Verification email could not be delivered"
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateRegisterRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.userService.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ConfirmEmail redeems a verification token and activates the account. The
// link is opened in a browser, so the response is plain text rather than JSON.
// @Summary Confirm email address
// @Description Marks the account verified when the token is valid and unexpired.
// @Tags auth
// @Produce plain
// @Param token path string true "Verification token"
// @Success 200 {string} string "Email successfully verified! You can now log into your account."
// @Failure 400 {object} middleware.ErrorResponse "Expired or invalid link"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /confirm_email/{token} [get]
func (h *AuthHandler) ConfirmEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "MISSING_TOKEN", Message: "Verification token is missing", Status: fiber.StatusBadRequest,
		})
	}

	if _, err := h.verification.Confirm(c.Context(), token); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).SendString("Email successfully verified! You can now log into your account.")
}

// Login authenticates credentials and issues an access/refresh token pair.
// @Summary Log in
// @Description Verifies credentials and returns a 1-hour access token plus a 30-day refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} middleware.ErrorResponse "Bad credentials or unverified account"
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	if errs := h.validator.ValidateLoginRequest(req); len(errs) > 0 {
		return errs
	}

	user, err := h.userService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	accessToken, _, err := h.tokenService.IssueAccessToken(user)
	if err != nil {
		return err
	}
	refreshToken, err := h.tokenService.IssueRefreshToken(c.Context(), user)
	if err != nil {
		return err
	}

	logger.Get().Info("user logged in", zap.String("userID", user.ID))
	return c.Status(fiber.StatusOK).JSON(dto.LoginResponse{
		User: dto.UserResponse{
			UserID:    user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Verified:  user.Verified,
			CreatedAt: user.CreatedAt,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout revokes the caller's current session.
// @Summary Log out
// @Description Blocklists the presented access token and the session's refresh token.
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid access token"
// @Router /logout [delete]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}
	accessJTI, _ := c.Locals(middleware.AccessJTIKey).(string)

	if err := h.tokenService.RevokeCurrentSession(c.Context(), userID, accessJTI); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{
		Message: "Logout successful. Please discard your tokens.",
	})
}

// RefreshToken issues a new access token against a stored refresh token.
// @Summary Refresh access token
// @Description Requires a valid refresh token in the Authorization header whose subject matches the path user id.
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.AccessTokenResponse
// @Failure 401 {object} middleware.ErrorResponse "No valid session remains"
// @Failure 403 {object} middleware.ErrorResponse "Token subject does not match the requested user"
// @Router /{user_id}/refresh_token [get]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	accessToken, err := h.tokenService.Refresh(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(dto.AccessTokenResponse{AccessToken: accessToken})
}
