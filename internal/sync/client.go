// Package sync pushes an extracted snapshot to the remote ledger backend via
// its HTTP mutation endpoint.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/starascendin/lifeos-finance/internal/models"
)

// DefaultMutationPath is the backend function the snapshot is written through.
const DefaultMutationPath = "lifeos/finance:syncFinanceData"

const requestTimeout = 60 * time.Second

// Config validation errors.
var (
	ErrMissingURL   = errors.New("remote URL not configured")
	ErrMissingKey   = errors.New("admin key not configured")
	ErrMissingToken = errors.New("user token identifier not configured")
)

// Client calls the backend's run endpoint with admin credentials.
type Client struct {
	baseURL      string
	adminKey     string
	userToken    string
	mutationPath string
	httpClient   *http.Client
	log          zerolog.Logger
}

// NewClient validates the remote configuration and returns a client. An empty
// mutationPath selects DefaultMutationPath.
func NewClient(baseURL, adminKey, userToken, mutationPath string, log zerolog.Logger) (*Client, error) {
	switch {
	case strings.TrimSpace(baseURL) == "":
		return nil, ErrMissingURL
	case strings.TrimSpace(adminKey) == "":
		return nil, ErrMissingKey
	case strings.TrimSpace(userToken) == "":
		return nil, ErrMissingToken
	}
	if mutationPath == "" {
		mutationPath = DefaultMutationPath
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		adminKey:     adminKey,
		userToken:    userToken,
		mutationPath: mutationPath,
		httpClient:   &http.Client{Timeout: requestTimeout},
		log:          log,
	}, nil
}

type runRequest struct {
	Path   string       `json:"path"`
	Args   mutationArgs `json:"args"`
	Format string       `json:"format"`
}

type mutationArgs struct {
	UserTokenIdentifier string                 `json:"userTokenIdentifier"`
	Accounts            []models.AccountRecord `json:"accounts"`
}

type runResponse struct {
	Status       string          `json:"status"`
	Value        json.RawMessage `json:"value"`
	ErrorMessage string          `json:"errorMessage"`
}

// PushSnapshot sends the account records through the configured mutation.
func (c *Client) PushSnapshot(ctx context.Context, accounts []models.AccountRecord) error {
	if accounts == nil {
		accounts = []models.AccountRecord{}
	}
	payload, err := json.Marshal(runRequest{
		Path:   c.mutationPath,
		Args:   mutationArgs{UserTokenIdentifier: c.userToken, Accounts: accounts},
		Format: "json",
	})
	if err != nil {
		return fmt.Errorf("encoding sync payload: %w", err)
	}

	url := c.baseURL + "/api/run"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Convex "+c.adminKey)

	c.log.Debug().Str("url", url).Int("accounts", len(accounts)).Msg("pushing snapshot")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling sync endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading sync response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sync endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded runResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("decoding sync response: %w", err)
	}
	if decoded.Status == "error" {
		return fmt.Errorf("mutation failed: %s", decoded.ErrorMessage)
	}

	c.log.Info().Int("accounts", len(accounts)).Msg("snapshot synced")
	return nil
}
