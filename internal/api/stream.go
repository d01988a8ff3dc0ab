package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"flightwatch/internal/logging"
	"flightwatch/internal/models/entities"
	"flightwatch/internal/services"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// TrackingStreamHandler upgrades to a WebSocket and pushes every merged
// flight snapshot of the session until either side closes.
//
// @Summary      Live tracking stream
// @Tags         Tracking
// @Param        session_id  path  string  true  "Tracking session id"
// @Router       /api/v1/tracking/{session_id}/stream [get]
func TrackingStreamHandler(trackSvc *services.TrackingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		session, err := trackSvc.Session(chi.URLParam(r, "session_id"))
		if err != nil {
			respondWithError(w, initTime, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Warn("WebSocket upgrade failed", "session_id", session.ID, "error", err.Error())
			return
		}
		defer conn.Close()

		updates, unsubscribe := session.Subscribe()
		defer unsubscribe()

		log := logging.WithSession(session.ID, session.FlightNumber)
		log.Infow("Stream client connected", "remote", r.RemoteAddr)

		// the read side only exists to notice the client going away
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			conn.SetReadLimit(512)
			_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(streamPongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		send := func(f entities.Flight) bool {
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(f); err != nil {
				log.Debugw("Stream write failed", "error", err.Error())
				return false
			}
			return true
		}

		if !send(session.Snapshot()) {
			return
		}

		ping := time.NewTicker(streamPingPeriod)
		defer ping.Stop()

		for {
			select {
			case <-closed:
				log.Infow("Stream client disconnected")
				return
			case f, ok := <-updates:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
						time.Now().Add(streamWriteWait))
					return
				}
				session.Touch()
				if !send(f) {
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
