package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
)

// Client posts structured events to the analytics sink. Delivery is advisory:
// callers log failures and move on, they never block a cart mutation on it.
type Client struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("analytics base URL not set")
	}
	return &Client{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}, nil
}

func (c *Client) Track(ctx context.Context, ev model.Event) error {
	if ev.SentAt.IsZero() {
		ev.SentAt = time.Now()
	}

	b, _ := json.Marshal(ev)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/events",
		bytes.NewBuffer(b),
	)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New("failed to track event: " + buf.String())
	}
	return nil
}
