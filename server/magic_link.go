package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type magicLinkRequest struct {
	Email string `json:"email"`
}

type magicLinkRedeemRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// handleMagicLink creates a one-time sign-in code for passwordless login
func (s *Server) handleMagicLink(c echo.Context) error {
	var req magicLinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email required"})
	}
	email := strings.ToLower(req.Email)

	// Check if user exists
	var userID string
	err := s.db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err != nil {
		// Don't reveal if email exists
		return c.JSON(http.StatusOK, map[string]string{"message": "if email exists, a sign-in code will be sent"})
	}

	code := uuid.NewString()

	// Code expires in 15 minutes
	expiresAt := time.Now().Add(15 * time.Minute)

	_, err = s.db.Exec(`
		INSERT INTO magic_links (email, code, expires_at)
		VALUES ($1, $2, $3)`,
		email, code, expiresAt,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("Magic link created for: %s", email)

	// In production, send email here
	return c.JSON(http.StatusOK, map[string]string{
		"message": "if email exists, a sign-in code will be sent",
		"code":    code, // Remove in production
	})
}

// handleMagicLinkRedeem verifies a sign-in code and creates a session
func (s *Server) handleMagicLinkRedeem(c echo.Context) error {
	var req magicLinkRedeemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "code required"})
	}

	// Find magic link
	var email string
	var expiresAt time.Time
	var used bool
	err := s.db.QueryRow(`
		SELECT email, expires_at, used FROM magic_links
		WHERE code = $1`,
		req.Code,
	).Scan(&email, &expiresAt, &used)

	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid code"})
	}

	if used {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "code already used"})
	}

	if time.Now().After(expiresAt) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "code expired"})
	}

	if req.Email != "" && strings.ToLower(req.Email) != email {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid code"})
	}

	// Mark as used
	_, err = s.db.Exec(`UPDATE magic_links SET used = TRUE WHERE code = $1`, req.Code)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	// Find user
	var userID string
	err = s.db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}

	// Create session
	sessionToken, sessionExpires, err := s.createSession(userID)
	if err != nil {
		c.Logger().Error("session error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("Magic link login: %s", email)

	return c.JSON(http.StatusOK, authResponse{
		Token:     sessionToken,
		ExpiresAt: sessionExpires.Format(time.RFC3339),
		UserID:    userID,
	})
}
