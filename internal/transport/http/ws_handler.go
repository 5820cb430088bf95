package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"ai-learning-service/internal/app"
	"ai-learning-service/internal/domain"
)

// WSHandler streams live standings updates to connected clients.
type WSHandler struct {
	board    *app.StandingsBoard
	upgrader websocket.Upgrader
}

func NewWSHandler(board *app.StandingsBoard) *WSHandler {
	return &WSHandler{
		board: board,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage struct {
	Type    string           `json:"type"`
	Payload domain.Standings `json:"payload"`
}

// ServeWS upgrades the request and pushes standings snapshots until the
// client disconnects. The first message is always the current snapshot.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.board.Subscribe()
	defer cancel()

	readerDone := make(chan struct{})

	// Drain client frames so pings/close are processed; inbound content is ignored.
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "standings", Payload: update}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-readerDone:
			return
		}
	}
}
