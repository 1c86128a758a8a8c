// Package sync talks to the droptrack sync server. The unit of sync is
// the whole payload document: the client pushes its merged state and
// pulls the server copy, and a background listener polls the server
// version to pick up writes from other devices.
package sync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Config holds sync configuration persisted at ~/.droptrack/sync.json.
type Config struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	LastSync  int64  `json:"last_sync"`
}

// Client is the sync client.
type Client struct {
	config     *Config
	configPath string
	httpClient *http.Client
}

// NewClient creates a sync client, loading any saved session.
func NewClient() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		configPath: filepath.Join(home, ".droptrack", "sync.json"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	c.loadConfig()
	return c, nil
}

func (c *Client) loadConfig() {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		c.config = &Config{
			ServerURL: "http://localhost:8080",
		}
		return
	}

	c.config = &Config{}
	json.Unmarshal(data, c.config)
	if c.config.ServerURL == "" {
		c.config.ServerURL = "http://localhost:8080"
	}
}

func (c *Client) saveConfig() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.configPath, data, 0600)
}

// SetServer sets the sync server URL.
func (c *Client) SetServer(url string) error {
	c.config.ServerURL = url
	return c.saveConfig()
}

// IsLoggedIn returns true if a session token is present.
func (c *Client) IsLoggedIn() bool {
	return c.config.Token != ""
}

// GetStatus returns the server URL, user email, and last sync stamp.
func (c *Client) GetStatus() (string, string, int64) {
	return c.config.ServerURL, c.config.Email, c.config.LastSync
}

type authResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Register creates a new account and stores the returned session.
func (c *Client) Register(email, password string) error {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := c.httpClient.Post(
		c.config.ServerURL+"/api/v1/register",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("register failed: %s", string(respBody))
	}

	var result authResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.config.Token = result.Token
	c.config.UserID = result.UserID
	c.config.Email = email
	return c.saveConfig()
}

// Login authenticates with email and password.
func (c *Client) Login(email, password string) error {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := c.httpClient.Post(
		c.config.ServerURL+"/api/v1/login",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed: %s", string(respBody))
	}

	var result authResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.config.Token = result.Token
	c.config.UserID = result.UserID
	c.config.Email = email
	return c.saveConfig()
}

// RequestMagicLink asks the server to issue a one-time sign-in code for
// the given email.
func (c *Client) RequestMagicLink(email string) error {
	body, _ := json.Marshal(map[string]string{"email": email})

	resp, err := c.httpClient.Post(
		c.config.ServerURL+"/api/v1/magic-link",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("magic link request failed: %s", string(respBody))
	}
	return nil
}

// RedeemMagicLink exchanges a one-time code for a session.
func (c *Client) RedeemMagicLink(email, code string) error {
	body, _ := json.Marshal(map[string]string{
		"email": email,
		"code":  code,
	})

	resp, err := c.httpClient.Post(
		c.config.ServerURL+"/api/v1/magic-link/redeem",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("magic link redeem failed: %s", string(respBody))
	}

	var result authResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.config.Token = result.Token
	c.config.UserID = result.UserID
	c.config.Email = email
	return c.saveConfig()
}

// Logout clears the session.
func (c *Client) Logout() error {
	c.config.Token = ""
	c.config.UserID = ""
	c.config.Email = ""
	c.config.LastSync = 0
	return c.saveConfig()
}
