package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"print_notifier/internal/models"
	"print_notifier/internal/monitor"
	"print_notifier/internal/service"
)

func TestMonitorHandlers_Snooze(t *testing.T) {
	until := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	mon := &mockMonitor{snoozeUntil: until}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Monitor: mon})

	w := doRequest(r, http.MethodPost, "/api/v1/snooze", `{"event_code":" mmu-event ","minutes":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if mon.lastSnooze != models.EventMMU || mon.lastMinutes != 0 {
		t.Fatalf("snooze args: %q %d", mon.lastSnooze, mon.lastMinutes)
	}
	var out struct {
		Until time.Time `json:"until"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if !out.Until.Equal(until) {
		t.Fatalf("until: got %v, want %v", out.Until, until)
	}

	w = doRequest(r, http.MethodPost, "/api/v1/snooze", `{"event_code":"mmu-event"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing minutes: got %d, want 400", w.Code)
	}

	mon.snoozeErr = fmt.Errorf("snooze bed-cooled: %w", monitor.ErrUnknownEventClass)
	w = doRequest(r, http.MethodPost, "/api/v1/snooze", `{"event_code":"bed-cooled","minutes":5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown class: got %d, want 400", w.Code)
	}
}

func TestMonitorHandlers_SendTestAndStatus(t *testing.T) {
	mon := &mockMonitor{
		test: models.DeliveryOutcome{
			AlertID: "t1",
			Code:    models.EventPrintComplete,
			Results: []models.RecipientResult{{Token: "a", Mode: models.ModeModern, Status: 200}},
		},
		status:  service.MonitorStatus{Running: true, TempInterval: "5s"},
		samples: []monitor.SoCSample{{Time: 1, Temp: 50.5}, {Time: 2, Temp: 51}},
	}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Monitor: mon})

	w := doRequest(r, http.MethodPost, "/api/v1/test", "")
	if w.Code != http.StatusOK || mon.testN != 1 {
		t.Fatalf("test status=%d calls=%d", w.Code, mon.testN)
	}
	var out models.DeliveryOutcome
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.AlertID != "t1" || len(out.Results) != 1 {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/monitor/status", "")
	var st service.MonitorStatus
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if w.Code != http.StatusOK || !st.Running || st.TempInterval != "5s" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/api/v1/soc/temps", "")
	var soc struct {
		Count   int                 `json:"count"`
		Samples []monitor.SoCSample `json:"samples"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &soc)
	if soc.Count != 2 || soc.Samples[1].Temp != 51 {
		t.Fatalf("unexpected soc history: %+v", soc)
	}
}

func TestMonitorHandlers_WatchLists(t *testing.T) {
	mon := &mockMonitor{}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Monitor: mon})

	w := doRequest(r, http.MethodPost, "/api/v1/layers", `{"value":"12"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add layer status=%d", w.Code)
	}
	var added struct {
		Added  bool     `json:"added"`
		Layers []string `json:"layers"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &added)
	if !added.Added || len(added.Layers) != 1 || added.Layers[0] != "12" {
		t.Fatalf("unexpected add response: %+v", added)
	}

	w = doRequest(r, http.MethodPost, "/api/v1/layers", `{"value":"12"}`)
	_ = json.Unmarshal(w.Body.Bytes(), &added)
	if added.Added {
		t.Fatalf("duplicate layer reported as added")
	}

	if w = doRequest(r, http.MethodDelete, "/api/v1/layers/99", ""); w.Code != http.StatusNotFound {
		t.Fatalf("remove unknown layer: got %d, want 404", w.Code)
	}
	if w = doRequest(r, http.MethodDelete, "/api/v1/layers/12", ""); w.Code != http.StatusOK {
		t.Fatalf("remove layer: got %d", w.Code)
	}

	doRequest(r, http.MethodPost, "/api/v1/gcode-commands", `{"value":"m600"}`)
	w = doRequest(r, http.MethodGet, "/api/v1/gcode-commands", "")
	var cmds struct {
		Commands []string `json:"commands"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &cmds)
	if len(cmds.Commands) != 1 || cmds.Commands[0] != "M600" {
		t.Fatalf("unexpected commands: %+v", cmds)
	}
	if w = doRequest(r, http.MethodDelete, "/api/v1/gcode-commands", ""); w.Code != http.StatusOK || len(mon.commands) != 0 {
		t.Fatalf("clear commands: status=%d left=%v", w.Code, mon.commands)
	}

	mon.addErr = monitor.ErrEmptyWatchEntry
	if w = doRequest(r, http.MethodPost, "/api/v1/layers", `{"value":" "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("blank layer: got %d, want 400", w.Code)
	}
}
