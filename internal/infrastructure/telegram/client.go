package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client sends messages through the Telegram Bot API.
type Client struct {
	apiURL     string
	chatID     string
	httpClient *resty.Client
}

func NewClient(botToken, chatID string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", botToken),
		chatID:     chatID,
		httpClient: resty.New().SetTimeout(timeout),
	}
}

// SendMessage posts an HTML-formatted message to the configured chat.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"chat_id":                  c.chatID,
			"text":                     text,
			"parse_mode":               "HTML",
			"disable_web_page_preview": true,
		}).
		Post(c.apiURL + "/sendMessage")
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
	return nil
}
