package monitor

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"print_notifier/internal/logger"
	"print_notifier/internal/models"
)

// ErrEmptyWatchEntry is returned when adding a blank layer or command.
var ErrEmptyWatchEntry = errors.New("watch entry is empty")

// watchList is a small set of strings edited by admin commands and read by
// the event pipeline.
type watchList struct {
	mu      sync.Mutex
	entries []string
}

func (w *watchList) add(entry string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if slices.Contains(w.entries, entry) {
		return false
	}
	w.entries = append(w.entries, entry)
	return true
}

func (w *watchList) remove(entry string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := slices.Index(w.entries, entry)
	if i < 0 {
		return false
	}
	w.entries = slices.Delete(w.entries, i, i+1)
	return true
}

func (w *watchList) contains(entry string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Contains(w.entries, entry)
}

func (w *watchList) list() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.entries)
}

func (w *watchList) clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = nil
}

// LayerWatch fires layer-changed for watched layers and for the first
// notify_first layers of every job. Each layer fires at most once per job.
type LayerWatch struct {
	log     *logger.Logger
	watched watchList

	mu    sync.Mutex
	fired map[string]struct{}
}

func NewLayerWatch(log *logger.Logger) *LayerWatch {
	return &LayerWatch{log: log, fired: make(map[string]struct{})}
}

func (l *LayerWatch) Add(layer string) (bool, error) {
	layer = strings.TrimSpace(layer)
	if layer == "" {
		return false, ErrEmptyWatchEntry
	}
	return l.watched.add(layer), nil
}

func (l *LayerWatch) Remove(layer string) bool { return l.watched.remove(strings.TrimSpace(layer)) }
func (l *LayerWatch) List() []string           { return l.watched.list() }
func (l *LayerWatch) Clear()                   { l.watched.clear() }

// ResetJob forgets which layers fired. The watched set is kept.
func (l *LayerWatch) ResetJob() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.fired)
}

// OnLayerChanged returns an alert when layer is watched or falls within the
// first notifyFirst layers.
func (l *LayerWatch) OnLayerChanged(layer string, notifyFirst int, now time.Time) *models.Alert {
	layer = strings.TrimSpace(layer)
	if layer == "" {
		return nil
	}

	wanted := l.watched.contains(layer)
	if !wanted && notifyFirst > 0 {
		if n, err := strconv.Atoi(layer); err == nil && n >= 1 && n <= notifyFirst {
			wanted = true
		}
	}
	if !wanted {
		return nil
	}

	l.mu.Lock()
	if _, done := l.fired[layer]; done {
		l.mu.Unlock()
		return nil
	}
	l.fired[layer] = struct{}{}
	l.mu.Unlock()

	a := models.NewAlert(models.EventLayerChanged, now, map[string]any{models.ParamLayer: layer})
	l.log.Infow("layer_reached", "layer", layer)
	return &a
}

// CommandWatch fires gcode-command whenever a watched G-code command is sent.
// Commands are matched on their first word, case-insensitively.
type CommandWatch struct {
	log     *logger.Logger
	watched watchList
}

func NewCommandWatch(log *logger.Logger) *CommandWatch {
	return &CommandWatch{log: log}
}

func (c *CommandWatch) Add(cmd string) (bool, error) {
	cmd = normalizeCommand(cmd)
	if cmd == "" {
		return false, ErrEmptyWatchEntry
	}
	return c.watched.add(cmd), nil
}

func (c *CommandWatch) Remove(cmd string) bool { return c.watched.remove(normalizeCommand(cmd)) }
func (c *CommandWatch) List() []string         { return c.watched.list() }
func (c *CommandWatch) Clear()                 { c.watched.clear() }

// OnCommandSent returns an alert when the command's code is watched.
func (c *CommandWatch) OnCommandSent(cmd string, now time.Time) *models.Alert {
	code := normalizeCommand(cmd)
	if code == "" || !c.watched.contains(code) {
		return nil
	}
	a := models.NewAlert(models.EventGcodeCommand, now, map[string]any{models.ParamCommand: code})
	c.log.Infow("gcode_command_seen", "command", code)
	return &a
}

func normalizeCommand(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
