package repository

import (
	"sync"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

const (
	maxSignals = 100
	maxScans   = 50
)

// InMemorySignalRepository keeps recent signals and scans in bounded slices,
// newest first. It is the fallback store when neither Redis nor Postgres is
// configured.
type InMemorySignalRepository struct {
	signals []domain.SignalRecord
	scans   []domain.ScanRecord
	mu      sync.RWMutex
}

func NewInMemorySignalRepository() *InMemorySignalRepository {
	return &InMemorySignalRepository{
		signals: []domain.SignalRecord{},
		scans:   []domain.ScanRecord{},
	}
}

func (r *InMemorySignalRepository) AddSignal(rec domain.SignalRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append([]domain.SignalRecord{rec}, r.signals...)
	if len(r.signals) > maxSignals {
		r.signals = r.signals[:maxSignals]
	}
}

func (r *InMemorySignalRepository) AddScan(rec domain.ScanRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scans = append([]domain.ScanRecord{rec}, r.scans...)
	if len(r.scans) > maxScans {
		r.scans = r.scans[:maxScans]
	}
}

func (r *InMemorySignalRepository) GetSignals(limit int) []domain.SignalRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.signals) {
		limit = len(r.signals)
	}
	// Copy so callers can't mutate the ring.
	result := make([]domain.SignalRecord, limit)
	copy(result, r.signals[:limit])
	return result
}

func (r *InMemorySignalRepository) GetScans(limit int) []domain.ScanRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.scans) {
		limit = len(r.scans)
	}
	result := make([]domain.ScanRecord, limit)
	copy(result, r.scans[:limit])
	return result
}
