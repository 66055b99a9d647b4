package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the minimal tables needed by this app.
// This keeps setup simple (no external migration tool), but still gives persistence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists signals (
			id text primary key,
			created_at timestamptz not null,
			symbol text not null,
			total_score int not null,
			pop_score double precision not null,
			signal_strength text not null,
			risk_level text not null,
			telegram_sent boolean not null default false,
			payload jsonb not null
		);`,
		`create index if not exists signals_created_at_idx on signals(created_at desc);`,
		`create index if not exists signals_symbol_created_at_idx on signals(symbol, created_at desc);`,
		`create table if not exists scans (
			id bigserial primary key,
			created_at timestamptz not null,
			symbol text not null,
			price_usd double precision not null,
			total_score int not null,
			pop_score double precision not null,
			signal_strength text not null,
			risk_level text not null,
			is_valid_signal boolean not null
		);`,
		`create index if not exists scans_created_at_idx on scans(created_at desc);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
