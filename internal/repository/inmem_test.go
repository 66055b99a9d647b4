package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

func TestInMemorySignalRepository_NewestFirst(t *testing.T) {
	repo := NewInMemorySignalRepository()

	for i := 0; i < 3; i++ {
		repo.AddScan(domain.ScanRecord{Symbol: fmt.Sprintf("TOK%d", i)})
	}

	scans := repo.GetScans(0)
	assert.Len(t, scans, 3)
	assert.Equal(t, "TOK2", scans[0].Symbol)
	assert.Equal(t, "TOK0", scans[2].Symbol)
}

func TestInMemorySignalRepository_BoundedRetention(t *testing.T) {
	repo := NewInMemorySignalRepository()

	for i := 0; i < maxSignals+20; i++ {
		repo.AddSignal(domain.SignalRecord{ID: fmt.Sprintf("sig-%d", i)})
	}
	for i := 0; i < maxScans+20; i++ {
		repo.AddScan(domain.ScanRecord{Symbol: fmt.Sprintf("TOK%d", i)})
	}

	signals := repo.GetSignals(0)
	assert.Len(t, signals, maxSignals)
	// Oldest entries fell off, newest survived.
	assert.Equal(t, fmt.Sprintf("sig-%d", maxSignals+19), signals[0].ID)

	scans := repo.GetScans(0)
	assert.Len(t, scans, maxScans)
	assert.Equal(t, fmt.Sprintf("TOK%d", maxScans+19), scans[0].Symbol)
}

func TestInMemorySignalRepository_LimitAndCopy(t *testing.T) {
	repo := NewInMemorySignalRepository()
	for i := 0; i < 10; i++ {
		repo.AddScan(domain.ScanRecord{Symbol: fmt.Sprintf("TOK%d", i)})
	}

	scans := repo.GetScans(4)
	assert.Len(t, scans, 4)

	// Mutating the returned slice must not leak into the store.
	scans[0].Symbol = "HACKED"
	assert.Equal(t, "TOK9", repo.GetScans(1)[0].Symbol)
}

func TestDeviceTokenRepository(t *testing.T) {
	repo := NewDeviceTokenRepository()

	repo.Register("token-a", "android")
	repo.Register("token-b", "ios")
	repo.Register("token-a", "android") // duplicate, no double count

	assert.Equal(t, 2, repo.Count())
	assert.ElementsMatch(t, []string{"token-a", "token-b"}, repo.All())

	repo.Unregister("token-a")
	assert.Equal(t, 1, repo.Count())
	assert.Equal(t, []string{"token-b"}, repo.All())
}
