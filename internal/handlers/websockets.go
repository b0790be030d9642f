package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"print_notifier/internal/logger"
	"print_notifier/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000

	wsTypeStatus   = "status"
	wsTypeDelivery = "delivery"
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// The dashboard is served from other origins on the LAN.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsStream owns the write side of one /ws connection. Only run writes to conn.
type wsStream struct {
	conn *websocket.Conn
	log  *logger.Logger
}

// wsConnect streams monitor status every interval and each delivery outcome
// as soon as the alert queue reports it.
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	s := &wsStream{conn: conn, log: h.log}
	closed := s.watchPeer()

	outcomes, unsubscribe := h.services.Outcomes()
	defer unsubscribe()

	status := func() any { return h.services.Status() }
	if err := s.run(c.Request.Context(), closed, interval, status, outcomes); err != nil && h.log != nil {
		h.log.Infow("ws_stream_ended", "err", err)
	}
}

// watchPeer reads until the peer goes away; the returned channel closes then.
func (s *wsStream) watchPeer() <-chan struct{} {
	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := s.conn.ReadMessage(); err != nil {
				if s.log != nil {
					s.log.Debugw("ws_read_closed", "err", err)
				}
				return
			}
		}
	}()
	return closed
}

// run returns nil when the peer or the request goes away and the write error otherwise.
func (s *wsStream) run(ctx context.Context, closed <-chan struct{}, interval time.Duration, status func() any, outcomes <-chan models.DeliveryOutcome) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := s.send(wsTypeStatus, status()); err != nil {
		return err
	}
	for {
		select {
		case <-closed:
			return nil
		case <-ctx.Done():
			return nil
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case out, ok := <-outcomes:
			if !ok {
				outcomes = nil
				continue
			}
			if err := s.send(wsTypeDelivery, out); err != nil {
				return err
			}
		case <-tick.C:
			if err := s.send(wsTypeStatus, status()); err != nil {
				return err
			}
		}
	}
}

func (s *wsStream) send(kind string, data any) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(wsEnvelope{Type: kind, Data: data})
}

// parseInterval reads ?interval=2s or ?interval_ms=2000, each capped at 10s.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}
