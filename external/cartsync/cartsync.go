package cartsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Client mirrors cart mutations to the remote cart-sync collaborator for
// signed-in users. The local cart is the source of truth; every call here is
// advisory and its failure is swallowed by the caller.
type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("cart sync base URL not set")
	}
	return &Client{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}, nil
}

type addRequest struct {
	ItemIDs []string `json:"itemIds"`
}

// Add posts the full item id set after an add.
func (c *Client) Add(ctx context.Context, ownerID string, itemIDs []string) error {
	b, _ := json.Marshal(addRequest{ItemIDs: itemIDs})

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/carts/"+ownerID+"/items",
		bytes.NewBuffer(b),
	)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Remove deletes one item from the remote cart.
func (c *Client) Remove(ctx context.Context, ownerID, itemID string) error {
	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodDelete,
		c.baseURL+"/carts/"+ownerID+"/items/"+itemID,
		nil,
	)
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New("cart sync failed: " + buf.String())
	}
	return nil
}
