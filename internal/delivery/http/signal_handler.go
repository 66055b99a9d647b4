package http

import (
	"net/http"
	"strconv"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
	"github.com/eddieom08-star/crypto-signals/internal/usecase"
)

// SignalHandler exposes the signal/scan history and bot status endpoints.
type SignalHandler struct {
	repo    domain.SignalRepository
	scanner *usecase.Scanner
}

func NewSignalHandler(repo domain.SignalRepository, scanner *usecase.Scanner) *SignalHandler {
	return &SignalHandler{repo: repo, scanner: scanner}
}

func (h *SignalHandler) HandleGetSignals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.repo.GetSignals(queryLimit(r, 20)))
}

func (h *SignalHandler) HandleGetScans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.repo.GetScans(queryLimit(r, 20)))
}

func (h *SignalHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.scanner.Status())
}

func queryLimit(r *http.Request, fallback int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			return n
		}
	}
	return fallback
}
