package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

const (
	signalsKey   = "signals"
	scansKey     = "scans"
	botStatusKey = "bot_status"

	statusTTL = 2 * time.Minute
)

// RedisSignalRepository persists signals and scans as JSON in capped Redis
// lists, newest first, so an external dashboard can read them without
// talking to this process. Writes are best effort: a Redis outage is logged
// and the scan loop carries on.
type RedisSignalRepository struct {
	client *redis.Client
}

func NewRedisSignalRepository(addr, password string, db int) (*RedisSignalRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisSignalRepository{client: client}, nil
}

func (r *RedisSignalRepository) AddSignal(rec domain.SignalRecord) {
	r.push(signalsKey, rec, maxSignals)
}

func (r *RedisSignalRepository) AddScan(rec domain.ScanRecord) {
	r.push(scansKey, rec, maxScans)
}

func (r *RedisSignalRepository) push(key string, v any, max int64) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Redis marshal error for %s: %v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Redis push error for %s: %v", key, err)
	}
}

func (r *RedisSignalRepository) GetSignals(limit int) []domain.SignalRecord {
	return lrange[domain.SignalRecord](r.client, signalsKey, limit)
}

func (r *RedisSignalRepository) GetScans(limit int) []domain.ScanRecord {
	return lrange[domain.ScanRecord](r.client, scansKey, limit)
}

func lrange[T any](client *redis.Client, key string, limit int) []T {
	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	raw, err := client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		log.Printf("Redis read error for %s: %v", key, err)
		return nil
	}

	out := make([]T, 0, len(raw))
	for _, item := range raw {
		var v T
		if err := json.Unmarshal([]byte(item), &v); err != nil {
			log.Printf("Redis decode error for %s: %v", key, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// UpdateStatus mirrors the bot status with a short TTL, so a crashed bot
// shows up as stale within two minutes.
func (r *RedisSignalRepository) UpdateStatus(ctx context.Context, status domain.BotStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}
	if err := r.client.Set(ctx, botStatusKey, data, statusTTL).Err(); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

// GetStatus reads back the mirrored status. Returns nil when absent or
// expired.
func (r *RedisSignalRepository) GetStatus(ctx context.Context) (*domain.BotStatus, error) {
	raw, err := r.client.Get(ctx, botStatusKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	var status domain.BotStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &status, nil
}

// Close releases the underlying connection pool.
func (r *RedisSignalRepository) Close() error {
	return r.client.Close()
}
