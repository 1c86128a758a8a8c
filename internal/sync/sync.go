package sync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/existflow/droptrack/internal/logger"
	"github.com/existflow/droptrack/internal/model"
)

// ErrNotLoggedIn is returned by state operations without a session.
var ErrNotLoggedIn = fmt.Errorf("not logged in")

// VersionResponse is the reply from the version endpoint.
type VersionResponse struct {
	LastUpdatedAt int64 `json:"lastUpdatedAt"`
}

// FetchState downloads the server copy of the payload. A server with no
// stored state yet yields (nil, nil).
func (c *Client) FetchState() (*model.Payload, error) {
	if !c.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}

	url := c.config.ServerURL + "/api/v1/state"
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("fetch state failed", logger.F("error", err), logger.F("url", url))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error: %s", string(respBody))
	}

	// Decode through the raw shape so legacy records stored by old
	// clients still come through.
	var stored struct {
		Projects      []model.RawProject              `json:"projects"`
		CustomOptions map[string][]model.CustomOption `json:"customOptions"`
		LastUpdatedAt int64                           `json:"lastUpdatedAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	p := model.Payload{
		Projects:      model.NormalizeProjects(stored.Projects, stored.LastUpdatedAt),
		CustomOptions: stored.CustomOptions,
		LastUpdatedAt: stored.LastUpdatedAt,
	}
	if p.CustomOptions == nil {
		p.CustomOptions = map[string][]model.CustomOption{}
	}

	logger.Debug("state fetched",
		logger.F("projects", len(p.Projects)),
		logger.F("lastUpdatedAt", p.LastUpdatedAt))
	return &p, nil
}

// PushState uploads the payload, replacing the server copy.
func (c *Client) PushState(p model.Payload) error {
	if !c.IsLoggedIn() {
		return ErrNotLoggedIn
	}

	body, err := json.Marshal(map[string]interface{}{
		"projects":      p.Projects,
		"customOptions": p.CustomOptions,
		"lastUpdatedAt": p.LastUpdatedAt,
	})
	if err != nil {
		return err
	}

	url := c.config.ServerURL + "/api/v1/state"
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("push state failed", logger.F("error", err), logger.F("url", url))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error: %s", string(respBody))
	}

	c.config.LastSync = p.LastUpdatedAt
	_ = c.saveConfig()

	logger.Info("state pushed",
		logger.F("projects", len(p.Projects)),
		logger.F("lastUpdatedAt", p.LastUpdatedAt))
	return nil
}

// FetchVersion returns the server's lastUpdatedAt without transferring
// the payload. The listener polls this.
func (c *Client) FetchVersion() (int64, error) {
	if !c.IsLoggedIn() {
		return 0, ErrNotLoggedIn
	}

	url := c.config.ServerURL + "/api/v1/state/version"
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return 0, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("server error: %s", string(respBody))
	}

	var result VersionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	return result.LastUpdatedAt, nil
}
