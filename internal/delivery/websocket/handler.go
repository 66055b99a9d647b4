package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/eddieom08-star/crypto-signals/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// feed is the message pushed to every connected client.
type feed struct {
	Scans   []domain.ScanRecord   `json:"scans"`
	Signals []domain.SignalRecord `json:"signals"`
}

// Handler streams the latest scans and signals to websocket clients on a
// fixed poll interval.
type Handler struct {
	repo domain.SignalRepository
}

func NewHandler(repo domain.SignalRepository) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	log.Println("New websocket client connected")

	// Send initial data immediately
	if err := conn.WriteJSON(h.snapshot()); err != nil {
		log.Println("Write error:", err)
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteJSON(h.snapshot()); err != nil {
			log.Println("Write error:", err)
			return
		}
	}
}

func (h *Handler) snapshot() feed {
	return feed{
		Scans:   h.repo.GetScans(50),
		Signals: h.repo.GetSignals(20),
	}
}
