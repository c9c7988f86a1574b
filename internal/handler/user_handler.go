package handler

import (
	"github.com/Lanziify/seps-web-server/internal/dto"
	"github.com/Lanziify/seps-web-server/internal/middleware"
	"github.com/Lanziify/seps-web-server/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile retrieves the profile of the currently authenticated user.
// @Summary Get my profile
// @Description Retrieves the profile information of the logged-in user.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /user [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// ListUsers pages through the user directory.
// @Summary List users
// @Description Returns a page of users sorted by a whitelisted field.
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param item query int false "Page size" default(10)
// @Param sort_by query string false "Sort field (user_id, username, email, verified, created_at)" default(user_id)
// @Param sort_order query string false "Sort direction (asc or desc)" default(asc)
// @Success 200 {object} dto.UserListResponse
// @Failure 400 {object} middleware.ErrorResponse "Unknown sort field or direction"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	var query dto.ListUsersQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_QUERY", Message: "Invalid query parameters", Status: fiber.StatusBadRequest,
		})
	}

	resp, err := h.userService.ListUsers(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
