package repository

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

// PostgresSignalRepository persists signals and scans in Postgres for
// long-term history. The full composite signal is kept as jsonb next to the
// columns used for filtering.
type PostgresSignalRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSignalRepository(pool *pgxpool.Pool) *PostgresSignalRepository {
	return &PostgresSignalRepository{pool: pool}
}

func (r *PostgresSignalRepository) AddSignal(rec domain.SignalRecord) {
	payload, err := json.Marshal(rec.Signal)
	if err != nil {
		log.Printf("Postgres marshal error for signal %s: %v", rec.ID, err)
		return
	}

	_, err = r.pool.Exec(context.Background(), `
		insert into signals(
			id, created_at, symbol, total_score, pop_score,
			signal_strength, risk_level, telegram_sent, payload
		) values ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		on conflict (id) do nothing
	`,
		rec.ID,
		rec.Timestamp,
		rec.Signal.Symbol,
		rec.Signal.TotalScore,
		rec.Signal.PoP.PopScore,
		rec.Signal.SignalStrength,
		string(rec.Signal.RiskLevel),
		rec.TelegramSent,
		payload,
	)
	if err != nil {
		log.Printf("Postgres insert error for signal %s: %v", rec.ID, err)
	}
}

func (r *PostgresSignalRepository) AddScan(rec domain.ScanRecord) {
	_, err := r.pool.Exec(context.Background(), `
		insert into scans(
			created_at, symbol, price_usd, total_score, pop_score,
			signal_strength, risk_level, is_valid_signal
		) values ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rec.Timestamp,
		rec.Symbol,
		rec.PriceUSD,
		rec.TotalScore,
		rec.PopScore,
		rec.SignalStrength,
		string(rec.RiskLevel),
		rec.IsValidSignal,
	)
	if err != nil {
		log.Printf("Postgres insert error for scan %s: %v", rec.Symbol, err)
	}
}

func (r *PostgresSignalRepository) GetSignals(limit int) []domain.SignalRecord {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(context.Background(), `
		select id, created_at, telegram_sent, payload
		from signals
		order by created_at desc
		limit $1
	`, limit)
	if err != nil {
		return []domain.SignalRecord{}
	}
	defer rows.Close()

	records := make([]domain.SignalRecord, 0, limit)
	for rows.Next() {
		var rec domain.SignalRecord
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.TelegramSent, &payload); err != nil {
			continue
		}
		var sig domain.CompositeSignal
		if err := json.Unmarshal(payload, &sig); err != nil {
			continue
		}
		rec.Signal = &sig
		records = append(records, rec)
	}
	return records
}

func (r *PostgresSignalRepository) GetScans(limit int) []domain.ScanRecord {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(context.Background(), `
		select created_at, symbol, price_usd, total_score, pop_score,
			signal_strength, risk_level, is_valid_signal
		from scans
		order by created_at desc
		limit $1
	`, limit)
	if err != nil {
		return []domain.ScanRecord{}
	}
	defer rows.Close()

	records := make([]domain.ScanRecord, 0, limit)
	for rows.Next() {
		var rec domain.ScanRecord
		var riskLevel string
		if err := rows.Scan(&rec.Timestamp, &rec.Symbol, &rec.PriceUSD, &rec.TotalScore,
			&rec.PopScore, &rec.SignalStrength, &riskLevel, &rec.IsValidSignal); err != nil {
			continue
		}
		rec.RiskLevel = domain.RiskLevel(riskLevel)
		records = append(records, rec)
	}
	return records
}
