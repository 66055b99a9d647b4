package fcm

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

const alertChannelID = "signal_alerts"

// Client wraps Firebase Cloud Messaging for signal alert delivery. A Client
// with no credentials is valid and reports IsEnabled() == false, so the rest
// of the app never has to branch on push being configured.
type Client struct {
	messaging *messaging.Client
}

// NewClient reads Firebase credentials from FIREBASE_CREDENTIALS_PATH or,
// failing that, inline JSON in FIREBASE_CREDENTIALS_JSON. Neither being set
// disables push without an error.
func NewClient() (*Client, error) {
	credPath, err := resolveCredentials()
	if err != nil {
		return nil, err
	}
	if credPath == "" {
		log.Println("Warning: No Firebase credentials found. FCM disabled.")
		return &Client{}, nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	mc, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	log.Println("Firebase Cloud Messaging initialized")
	return &Client{messaging: mc}, nil
}

// resolveCredentials returns a path to a credentials file, writing inline
// JSON out to a temp file when that is the only source available.
func resolveCredentials() (string, error) {
	if path := os.Getenv("FIREBASE_CREDENTIALS_PATH"); path != "" {
		return path, nil
	}

	credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credJSON == "" {
		return "", nil
	}

	tmp, err := os.CreateTemp("", "firebase-credentials-*.json")
	if err != nil {
		return "", fmt.Errorf("create credentials temp file: %w", err)
	}
	defer tmp.Close()
	if _, err := tmp.WriteString(credJSON); err != nil {
		return "", fmt.Errorf("write credentials temp file: %w", err)
	}
	return tmp.Name(), nil
}

// IsEnabled reports whether push delivery is configured.
func (c *Client) IsEnabled() bool {
	return c.messaging != nil
}

// SendNotification pushes one alert to a single device.
func (c *Client) SendNotification(token, title, body string, data map[string]string) error {
	if c.messaging == nil {
		return fmt.Errorf("fcm not configured")
	}

	ctx, cancel := sendContext()
	defer cancel()

	id, err := c.messaging.Send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android:      androidAlertConfig(),
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	log.Printf("Sent push message %s", id)
	return nil
}

// SendMulticast pushes one alert to every registered device.
func (c *Client) SendMulticast(tokens []string, title, body string, data map[string]string) error {
	if c.messaging == nil {
		return fmt.Errorf("fcm not configured")
	}
	if len(tokens) == 0 {
		return nil
	}

	ctx, cancel := sendContext()
	defer cancel()

	resp, err := c.messaging.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android:      androidAlertConfig(),
	})
	if err != nil {
		return fmt.Errorf("send multicast push: %w", err)
	}
	log.Printf("Sent %d push messages (%d failures)", resp.SuccessCount, resp.FailureCount)
	return nil
}

// androidAlertConfig routes alerts to the high-priority signal channel so
// they break through notification batching.
func androidAlertConfig() *messaging.AndroidConfig {
	return &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			ChannelID: alertChannelID,
			Priority:  messaging.PriorityHigh,
		},
	}
}

func sendContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
