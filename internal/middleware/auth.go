// Package middleware provides authentication, logging, rate limiting,
// and tracing middleware for the application.
package middleware

import (
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// identityLocal is the Fiber locals key for the resolved identity.
const identityLocal = "identity"

// IdentityFromCtx returns the identity attached by the auth middleware.
// The zero value means the request is unauthenticated.
func IdentityFromCtx(c *fiber.Ctx) models.Identity {
	if identity, ok := c.Locals(identityLocal).(models.Identity); ok {
		return identity
	}
	return models.Identity{}
}

// parseIdentity validates the bearer token issued by the external auth
// provider and extracts the identity claims. The token identifier is
// "<issuer>|<subject>" and is the stable key for user records.
func parseIdentity(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	issuer, _ := claims["iss"].(string)
	subject, _ := claims["sub"].(string)
	if issuer == "" || subject == "" {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Token missing issuer or subject")
	}
	if cfg.JWTIssuer != "" && issuer != cfg.JWTIssuer {
		return models.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "Unknown token issuer")
	}

	identity := models.Identity{
		TokenIdentifier: issuer + "|" + subject,
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if picture, ok := claims["picture"].(string); ok {
		identity.PictureURL = picture
	}
	return identity, nil
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	identity, err := parseIdentity(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals(identityLocal, identity)
	return c.Next()
}

// AuthOptional attaches the identity when a valid token is presented
// and lets anonymous requests through. Routes that personalize public
// content use this instead of AuthRequired.
func AuthOptional(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Next()
	}

	identity, err := parseIdentity(tokenString)
	if err != nil {
		// A presented-but-invalid token is rejected rather than treated
		// as anonymous.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals(identityLocal, identity)
	return c.Next()
}
