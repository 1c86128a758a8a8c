package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// statePayload mirrors the client payload shape. The server treats the
// projects and options as opaque JSON; only lastUpdatedAt matters for
// version polling.
type statePayload struct {
	Projects      json.RawMessage `json:"projects"`
	CustomOptions json.RawMessage `json:"customOptions"`
	LastUpdatedAt int64           `json:"lastUpdatedAt"`
}

// handleStateGet returns the user's payload document, 204 when the user
// has never pushed one.
func (s *Server) handleStateGet(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var payload []byte
	err := s.db.QueryRow(`
		SELECT payload FROM states WHERE user_id = $1`,
		userID,
	).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSONBlob(http.StatusOK, payload)
}

// handleStatePut replaces the user's payload document. Clients merge
// before pushing, so the newest push is authoritative.
func (s *Server) handleStatePut(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var req statePayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.LastUpdatedAt <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lastUpdatedAt required"})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	_, err = s.db.Exec(`
		INSERT INTO states (user_id, payload, last_updated_at, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			payload = $2,
			last_updated_at = $3,
			updated_at = NOW()`,
		userID, payload, req.LastUpdatedAt,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("State stored for user %s at version %d", userID, req.LastUpdatedAt)

	return c.JSON(http.StatusOK, map[string]int64{"lastUpdatedAt": req.LastUpdatedAt})
}

// handleStateVersion returns the stored lastUpdatedAt without the
// payload body. Listeners poll this.
func (s *Server) handleStateVersion(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var version int64
	err := s.db.QueryRow(`
		SELECT last_updated_at FROM states WHERE user_id = $1`,
		userID,
	).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]int64{"lastUpdatedAt": version})
}

// handleStateClear deletes the user's payload document.
func (s *Server) handleStateClear(c echo.Context) error {
	userID := c.Get("user_id").(string)

	if _, err := s.db.Exec(`DELETE FROM states WHERE user_id = $1`, userID); err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("State cleared for user %s", userID)
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
