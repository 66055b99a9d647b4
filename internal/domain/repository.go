package domain

// SignalRepository stores signals and scan results for the status and history
// surfaces. Implementations: in-memory ring, Redis lists, Postgres.
type SignalRepository interface {
	AddSignal(rec SignalRecord)
	AddScan(rec ScanRecord)
	GetSignals(limit int) []SignalRecord
	GetScans(limit int) []ScanRecord
}
