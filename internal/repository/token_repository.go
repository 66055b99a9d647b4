package repository

import (
	"sync"
	"time"
)

// DeviceToken is one registered push notification target.
type DeviceToken struct {
	Token        string
	Platform     string // "android" or "ios"
	RegisteredAt time.Time
}

// DeviceTokenRepository holds device tokens for FCM signal alerts. Tokens
// live in memory only; clients re-register on startup.
type DeviceTokenRepository struct {
	tokens map[string]*DeviceToken
	mu     sync.RWMutex
}

func NewDeviceTokenRepository() *DeviceTokenRepository {
	return &DeviceTokenRepository{
		tokens: make(map[string]*DeviceToken),
	}
}

// Register adds or refreshes a device token.
func (r *DeviceTokenRepository) Register(token, platform string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = &DeviceToken{
		Token:        token,
		Platform:     platform,
		RegisteredAt: time.Now(),
	}
}

// Unregister removes a device token.
func (r *DeviceTokenRepository) Unregister(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
}

// All returns every registered token.
func (r *DeviceTokenRepository) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]string, 0, len(r.tokens))
	for token := range r.tokens {
		tokens = append(tokens, token)
	}
	return tokens
}

// Count returns the number of registered tokens.
func (r *DeviceTokenRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tokens)
}
