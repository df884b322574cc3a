package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rubiojr/seek/pkg/log"
	"github.com/rubiojr/seek/pkg/realtime"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// helloEvent describes the index currently being served.
func (s *Server) helloEvent() realtime.InternalEvent {
	ev := realtime.InternalEvent{Type: realtime.TypeHello}
	if store := s.holder.Store(); store != nil {
		ev.Index = realtime.IndexEvent{
			Source:     store.Source(),
			OK:         true,
			Documents:  store.Len(),
			Generation: s.holder.Generation(),
			At:         store.LoadedAt().UTC(),
		}
	}
	return ev
}

// HandleEvents streams index events over a websocket. The first message is
// always a hello describing the current index.
func (s *Server) HandleEvents(w http.ResponseWriter, r *http.Request) {
	logger := log.ForService("realtime")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debugf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var events <-chan realtime.InternalEvent
	if hub := s.eventHub(); hub != nil {
		id, ch := hub.Register()
		defer hub.Unregister(id)
		events = ch
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(s.helloEvent()); err != nil {
		logger.Debugf("write hello: %v", err)
		return
	}

	// Reader loop detects client disconnects and handles pongs.
	done := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debugf("write event: %v", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
