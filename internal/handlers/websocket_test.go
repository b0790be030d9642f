package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"print_notifier/internal/models"
	"print_notifier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

type wsTestEnvelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialWS(t *testing.T, s *service.Service, query string) (*websocket.Conn, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial error: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
		srv.Close()
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) wsTestEnvelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env wsTestEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebSocket_StatusStream_InitialAndPeriodic(t *testing.T) {
	mon := &mockMonitor{status: service.MonitorStatus{
		Running:      true,
		TempInterval: "5s",
		QueueDepth:   2,
		Printer:      models.PrinterStatus{StateID: "PRINTING", Layer: "7"},
	}}
	conn, closeAll := dialWS(t, &service.Service{Monitor: mon}, "interval_ms=20")
	defer closeAll()

	env := readEnvelope(t, conn)
	if env.Type != wsTypeStatus || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var st service.MonitorStatus
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if !st.Running || st.QueueDepth != 2 || st.Printer.Layer != "7" {
		t.Fatalf("unexpected status: %+v", st)
	}

	env = readEnvelope(t, conn)
	if env.Type != wsTypeStatus {
		t.Fatalf("expected type=%s, got %+v", wsTypeStatus, env)
	}
}

func TestWebSocket_ForwardsDeliveryOutcomes(t *testing.T) {
	mon := &mockMonitor{
		outcomes:     make(chan models.DeliveryOutcome, 1),
		unsubscribed: make(chan struct{}),
	}
	conn, closeAll := dialWS(t, &service.Service{Monitor: mon}, "interval=10s")

	if env := readEnvelope(t, conn); env.Type != wsTypeStatus {
		t.Fatalf("expected initial status, got %+v", env)
	}

	mon.outcomes <- models.DeliveryOutcome{
		AlertID: "a1",
		Code:    models.EventBedCooled,
		Results: []models.RecipientResult{{Token: "t1", Mode: models.ModeModern, Status: 200}},
	}
	env := readEnvelope(t, conn)
	if env.Type != wsTypeDelivery {
		t.Fatalf("expected delivery envelope, got %+v", env)
	}
	var out models.DeliveryOutcome
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("unmarshal outcome: %v", err)
	}
	if out.AlertID != "a1" || out.Delivered() != 1 {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	closeAll()
	select {
	case <-mon.unsubscribed:
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription not released after disconnect")
	}
}
