package middleware

import (
	"fmt"
	"strings"

	"github.com/Lanziify/seps-web-server/internal/dto"
	"github.com/Lanziify/seps-web-server/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"    // Key for storing UserID in fiber.Ctx locals
	AccessJTIKey        = "accessJTI" // Key for storing the access token's jti in fiber.Ctx locals
)

// bearerToken extracts the raw token from the Authorization header, or
// writes the 401 response and returns ok=false.
func bearerToken(c *fiber.Ctx) (string, bool, error) {
	authHeader := c.Get(AuthorizationHeader)
	if authHeader == "" {
		return "", false, c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Code:    "MISSING_AUTH_HEADER",
			Message: "Authorization header is missing",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !strings.HasPrefix(authHeader, BearerSchema) {
		return "", false, c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Code:    "INVALID_AUTH_SCHEME",
			Message: "Authorization scheme is not Bearer",
			Status:  fiber.StatusUnauthorized,
		})
	}

	tokenString := strings.TrimPrefix(authHeader, BearerSchema)
	if tokenString == "" {
		return "", false, c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Code:    "EMPTY_TOKEN",
			Message: "Token is empty",
			Status:  fiber.StatusUnauthorized,
		})
	}
	return tokenString, true, nil
}

// Protected is a middleware function that protects routes by requiring a valid
// access token. It validates the token using the provided TokenService and
// sets the userID and token jti in the context.
func Protected(tokenService service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok, err := bearerToken(c)
		if !ok {
			return err
		}

		// Expired, tampered and revoked tokens carry distinct auth codes;
		// the centralized error handler maps them all to 401.
		claims, err := tokenService.Verify(c.Context(), tokenString)
		if err != nil {
			return err
		}

		// Ensure it's an access token
		if claims.TokenType != dto.TokenTypeAccess {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.Subject)
		c.Locals(AccessJTIKey, claims.ID)

		return c.Next()
	}
}

// RefreshGuard protects the token refresh route. The caller must present a
// valid refresh token whose subject matches the user id in the path.
func RefreshGuard(tokenService service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok, err := bearerToken(c)
		if !ok {
			return err
		}

		claims, err := tokenService.Verify(c.Context(), tokenString)
		if err != nil {
			return err
		}

		if claims.TokenType != dto.TokenTypeRefresh {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected refresh, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		if claims.Subject != c.Params("user_id") {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "SUBJECT_MISMATCH",
				Message: "Token subject does not match the requested user",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.Subject)

		return c.Next()
	}
}
