package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client delivers push notifications through the FCM HTTP endpoint.
// Delivery is fire-and-forget: the caller gets a success/failure status and
// nothing else from the gateway response is consumed.
type Client struct {
	endpoint  string
	serverKey string
	http      *http.Client
}

func NewClient(endpoint, serverKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  endpoint,
		serverKey: serverKey,
		http:      &http.Client{Timeout: timeout},
	}
}

type message struct {
	To           string       `json:"to"`
	Notification notification `json:"notification"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c *Client) Send(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(message{
		To: token,
		Notification: notification{
			Title: title,
			Body:  body,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push gateway error: %s", resp.Status)
	}

	return nil
}
