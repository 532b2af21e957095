package web

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
)

const subjectKey = "auth_subject"

// BearerAuth validates the Authorization header against the shared signing
// key and stores the token subject in the request locals. An empty key
// disables authentication, for local development only.
func BearerAuth(signingKey []byte) fiber.Handler {
	return func(c fiber.Ctx) error {
		if len(signingKey) == 0 {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "Missing Authorization header")
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return unauthorized(c, "Invalid Authorization header format")
		}

		subject, err := validateToken(token, signingKey)
		if err != nil {
			return unauthorized(c, "Invalid token")
		}

		c.Locals(subjectKey, subject)

		return c.Next()
	}
}

func validateToken(token string, signingKey []byte) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("token missing subject: %w", err)
	}

	return subject, nil
}

// Subject returns the authenticated token subject, or "" when auth is
// disabled.
func Subject(c fiber.Ctx) string {
	subject, _ := c.Locals(subjectKey).(string)

	return subject
}
