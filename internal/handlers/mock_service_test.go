package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"print_notifier/internal/config"
	"print_notifier/internal/models"
	"print_notifier/internal/monitor"
	"print_notifier/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRecipients struct {
	updated    models.Recipient
	updateErr  error
	lastUpdate service.TokenUpdate

	list    []models.Recipient
	listErr error

	deleteErr       error
	lastDelete      string
	lastDeletePrint string
}

func (m *mockRecipients) UpdateToken(ctx context.Context, u service.TokenUpdate) (models.Recipient, error) {
	m.lastUpdate = u
	return m.updated, m.updateErr
}
func (m *mockRecipients) ListRecipients(ctx context.Context) ([]models.Recipient, error) {
	return m.list, m.listErr
}
func (m *mockRecipients) DeleteRecipient(ctx context.Context, token, printerID string) error {
	m.lastDelete = token
	m.lastDeletePrint = printerID
	return m.deleteErr
}

// mockIngest records host reports.
type mockIngest struct {
	mu       sync.Mutex
	heaters  map[string]models.HeaterReading
	printing bool
	lines    []string
	progress []float64
	clears   int
	states   []string
	lastComp *float64
	layers   []string
	commands []string
}

func (m *mockIngest) ReportTemperatures(readings map[string]models.HeaterReading, printing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heaters, m.printing = readings, printing
}
func (m *mockIngest) ReportConsoleLine(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
}
func (m *mockIngest) ReportProgress(percent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = append(m.progress, percent)
}
func (m *mockIngest) ClearProgress() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
}
func (m *mockIngest) ReportState(stateID, stateString string, completion *float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = append(m.states, stateID+"/"+stateString)
	m.lastComp = completion
}
func (m *mockIngest) ReportLayer(layer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers = append(m.layers, layer)
}
func (m *mockIngest) ReportCommandSent(cmd string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, cmd)
}

type mockMonitor struct {
	status service.MonitorStatus

	snoozeUntil time.Time
	snoozeErr   error
	lastSnooze  models.EventCode
	lastMinutes int

	layers   []string
	commands []string
	addErr   error

	samples []monitor.SoCSample
	test    models.DeliveryOutcome
	testN   int

	outcomes     chan models.DeliveryOutcome
	unsubscribed chan struct{}
}

func (m *mockMonitor) Status() service.MonitorStatus { return m.status }
func (m *mockMonitor) Snooze(ctx context.Context, code models.EventCode, minutes int) (time.Time, error) {
	m.lastSnooze, m.lastMinutes = code, minutes
	return m.snoozeUntil, m.snoozeErr
}

func (m *mockMonitor) AddLayer(layer string) (bool, error) {
	if m.addErr != nil {
		return false, m.addErr
	}
	for _, l := range m.layers {
		if l == layer {
			return false, nil
		}
	}
	m.layers = append(m.layers, layer)
	return true, nil
}
func (m *mockMonitor) RemoveLayer(layer string) bool {
	for i, l := range m.layers {
		if l == layer {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return true
		}
	}
	return false
}
func (m *mockMonitor) Layers() []string { return append([]string{}, m.layers...) }
func (m *mockMonitor) ClearLayers()     { m.layers = nil }

func (m *mockMonitor) AddCommand(cmd string) (bool, error) {
	if m.addErr != nil {
		return false, m.addErr
	}
	m.commands = append(m.commands, strings.ToUpper(cmd))
	return true, nil
}
func (m *mockMonitor) RemoveCommand(cmd string) bool {
	for i, c := range m.commands {
		if c == strings.ToUpper(cmd) {
			m.commands = append(m.commands[:i], m.commands[i+1:]...)
			return true
		}
	}
	return false
}
func (m *mockMonitor) Commands() []string { return append([]string{}, m.commands...) }
func (m *mockMonitor) ClearCommands()     { m.commands = nil }

func (m *mockMonitor) SoCSamples() []monitor.SoCSample { return m.samples }
func (m *mockMonitor) SendTest(ctx context.Context) models.DeliveryOutcome {
	m.testN++
	return m.test
}

// Outcomes hands out m.outcomes; the cancel func signals unsubscribed.
func (m *mockMonitor) Outcomes() (<-chan models.DeliveryOutcome, func()) {
	if m.outcomes == nil {
		m.outcomes = make(chan models.DeliveryOutcome)
	}
	var once sync.Once
	return m.outcomes, func() {
		once.Do(func() {
			if m.unsubscribed != nil {
				close(m.unsubscribed)
			}
		})
	}
}

type mockSettings struct {
	current config.Settings
	err     error
	calls   []string
	thermal service.ThermalParams
	values  []any
}

func (m *mockSettings) record(name string, v ...any) error {
	m.calls = append(m.calls, name)
	m.values = append(m.values, v...)
	return m.err
}

func (m *mockSettings) Current() config.Settings { return m.current }
func (m *mockSettings) SetProgressMode(mode string) error {
	return m.record("progress_mode", mode)
}
func (m *mockSettings) SetBedThreshold(low float64) error { return m.record("bed_threshold", low) }
func (m *mockSettings) SetToolThreshold(low float64, targetTemp bool) error {
	return m.record("tool_threshold", low, targetTemp)
}
func (m *mockSettings) SetBedWarmDuration(minutes int) error {
	return m.record("bed_warm_duration", minutes)
}
func (m *mockSettings) SetPauseInterval(minutes int) error { return m.record("pause_interval", minutes) }
func (m *mockSettings) SetMMUInterval(minutes int) error   { return m.record("mmu_interval", minutes) }
func (m *mockSettings) SetSoCThreshold(high float64) error { return m.record("soc_threshold", high) }
func (m *mockSettings) SetThermalProtection(p service.ThermalParams) error {
	m.thermal = p
	return m.record("thermal_protection")
}
func (m *mockSettings) SetSound(sound string) error { return m.record("sound", sound) }

type mockHistory struct {
	resp     []models.NotificationRecord
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastCode string
}

func (m *mockHistory) List(ctx context.Context, f service.LogFilter) ([]models.NotificationRecord, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastCode = f.Code
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// doRequest sends an authenticated request; an empty body sends none.
func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRequestNoAuth(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
