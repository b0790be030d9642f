package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Settings enumerates every option consumed by the service and its detectors.
type Settings struct {
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	DB          DBConfig          `mapstructure:"db" yaml:"db"`
	Auth        AuthConfig        `mapstructure:"auth" yaml:"auth"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Push        PushConfig        `mapstructure:"push" yaml:"push"`
	Printer     PrinterConfig     `mapstructure:"printer" yaml:"printer"`
	Camera      CameraConfig      `mapstructure:"camera" yaml:"camera"`
	Temperature TemperatureConfig `mapstructure:"temperature" yaml:"temperature"`
	Bed         BedConfig         `mapstructure:"bed" yaml:"bed"`
	Tool0       ToolConfig        `mapstructure:"tool0" yaml:"tool0"`
	Thermal     ThermalConfig     `mapstructure:"thermal" yaml:"thermal"`
	Console     ConsoleConfig     `mapstructure:"console" yaml:"console"`
	Progress    ProgressConfig    `mapstructure:"progress" yaml:"progress"`
	Layers      LayersConfig      `mapstructure:"layers" yaml:"layers"`
	SoC         SoCConfig         `mapstructure:"soc" yaml:"soc"`
	Alerts      AlertsConfig      `mapstructure:"alerts" yaml:"alerts"`
	Webhook     WebhookConfig     `mapstructure:"webhook" yaml:"webhook"`
	MQTT        MQTTConfig        `mapstructure:"mqtt" yaml:"mqtt"`
	Simulator   SimulatorConfig   `mapstructure:"simulator" yaml:"simulator"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

type DBConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type AuthConfig struct {
	SigningKey string   `mapstructure:"signing_key" yaml:"-"`
	TokenTTL   Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// PushConfig configures the push gateway that fans notifications out to devices.
type PushConfig struct {
	ServerURL     string   `mapstructure:"server_url" yaml:"server_url"`
	Sound         string   `mapstructure:"sound" yaml:"sound"`
	UseDev        bool     `mapstructure:"use_dev" yaml:"use_dev"`
	Timeout       Duration `mapstructure:"timeout" yaml:"timeout"`
	RatePerSecond float64  `mapstructure:"rate_per_second" yaml:"rate_per_second"`
}

type PrinterConfig struct {
	ID   string `mapstructure:"id" yaml:"id"`
	Name string `mapstructure:"name" yaml:"name"`
}

type CameraConfig struct {
	SnapshotURL string   `mapstructure:"snapshot_url" yaml:"snapshot_url"`
	Timeout     Duration `mapstructure:"timeout" yaml:"timeout"`
	CacheTTL    Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

type TemperatureConfig struct {
	// IntervalSeconds is the temperature poll cadence. 0 stops the timer.
	IntervalSeconds int `mapstructure:"interval_seconds" yaml:"interval_seconds"`
}

// BedConfig holds the bed cooled/warm-hold thresholds. Zero disables a rule.
type BedConfig struct {
	Low               float64 `mapstructure:"low" yaml:"low"`
	TargetHoldMinutes int     `mapstructure:"target_hold_minutes" yaml:"target_hold_minutes"`
	NotifyOnce        bool    `mapstructure:"notify_once" yaml:"notify_once"`
}

type ToolConfig struct {
	Low        float64 `mapstructure:"low" yaml:"low"`
	TargetTemp bool    `mapstructure:"target_temp" yaml:"target_temp"`
}

// ThermalConfig drives the runaway watchdog. RunawayThreshold 0 disables it.
type ThermalConfig struct {
	RunawayThreshold     float64 `mapstructure:"runaway_threshold" yaml:"runaway_threshold"`
	MinutesFrequency     int     `mapstructure:"minutes_frequency" yaml:"minutes_frequency"`
	CooldownSeconds      int     `mapstructure:"cooldown_seconds" yaml:"cooldown_seconds"`
	BelowTargetThreshold float64 `mapstructure:"below_target_threshold" yaml:"below_target_threshold"`
	WarmupBedSeconds     int     `mapstructure:"warmup_bed_seconds" yaml:"warmup_bed_seconds"`
	WarmupHotendSeconds  int     `mapstructure:"warmup_hotend_seconds" yaml:"warmup_hotend_seconds"`
	WarmupChamberSeconds int     `mapstructure:"warmup_chamber_seconds" yaml:"warmup_chamber_seconds"`
}

type ConsoleConfig struct {
	MMUIntervalMinutes   int `mapstructure:"mmu_interval_minutes" yaml:"mmu_interval_minutes"`
	PauseIntervalMinutes int `mapstructure:"pause_interval_minutes" yaml:"pause_interval_minutes"`
}

type ProgressConfig struct {
	Type       string `mapstructure:"type" yaml:"type"`
	Milestones []int  `mapstructure:"milestones" yaml:"milestones,omitempty"`
}

type LayersConfig struct {
	NotifyFirst int `mapstructure:"notify_first" yaml:"notify_first"`
}

type SoCConfig struct {
	High            float64 `mapstructure:"high" yaml:"high"`
	IntervalSeconds int     `mapstructure:"interval_seconds" yaml:"interval_seconds"`
}

type AlertsConfig struct {
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`
}

type WebhookConfig struct {
	URLs []string `mapstructure:"urls" yaml:"urls"`
}

type MQTTConfig struct {
	Broker   string `mapstructure:"broker" yaml:"broker"`
	Topic    string `mapstructure:"topic" yaml:"topic"`
	ClientID string `mapstructure:"client_id" yaml:"client_id"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"-"`
	QoS      byte   `mapstructure:"qos" yaml:"qos"`
}

type SimulatorConfig struct {
	Enabled bool     `mapstructure:"enabled" yaml:"enabled"`
	Tick    Duration `mapstructure:"tick" yaml:"tick"`
}

// Validation errors.
var (
	ErrInvalidThreshold    = errors.New("invalid threshold")
	ErrUnknownProgressMode = errors.New("unknown progress mode")
	ErrInvalidSound        = errors.New("invalid sound option")
)

// Sounds accepted by the push gateway.
var knownSounds = map[string]struct{}{
	"default":     {},
	"sound-1.mp3": {},
	"sound-2.mp3": {},
	"sound-3.mp3": {},
}

// Validate checks option ranges. It is called once per load or reload.
func (s *Settings) Validate() error {
	var errs []error

	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidThreshold, name, v))
		}
	}
	nonNegative("bed.low", s.Bed.Low)
	nonNegative("bed.target_hold_minutes", float64(s.Bed.TargetHoldMinutes))
	nonNegative("tool0.low", s.Tool0.Low)
	nonNegative("thermal.runaway_threshold", s.Thermal.RunawayThreshold)
	nonNegative("thermal.minutes_frequency", float64(s.Thermal.MinutesFrequency))
	nonNegative("thermal.cooldown_seconds", float64(s.Thermal.CooldownSeconds))
	nonNegative("thermal.below_target_threshold", s.Thermal.BelowTargetThreshold)
	nonNegative("thermal.warmup_bed_seconds", float64(s.Thermal.WarmupBedSeconds))
	nonNegative("thermal.warmup_hotend_seconds", float64(s.Thermal.WarmupHotendSeconds))
	nonNegative("thermal.warmup_chamber_seconds", float64(s.Thermal.WarmupChamberSeconds))
	nonNegative("console.mmu_interval_minutes", float64(s.Console.MMUIntervalMinutes))
	nonNegative("console.pause_interval_minutes", float64(s.Console.PauseIntervalMinutes))
	nonNegative("temperature.interval_seconds", float64(s.Temperature.IntervalSeconds))
	nonNegative("layers.notify_first", float64(s.Layers.NotifyFirst))
	nonNegative("soc.high", s.SoC.High)

	if _, err := ParseProgressPolicy(s.Progress.Type, s.Progress.Milestones); err != nil {
		errs = append(errs, err)
	}
	if _, ok := knownSounds[s.Push.Sound]; !ok {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSound, s.Push.Sound))
	}
	if s.Alerts.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: alerts.queue_size must be > 0", ErrInvalidThreshold))
	}
	return errors.Join(errs...)
}

// ValidSound reports whether the push gateway accepts the sound name.
func ValidSound(sound string) bool {
	_, ok := knownSounds[sound]
	return ok
}

// TemperatureInterval returns the poll cadence; zero means the timer is off.
func (s *Settings) TemperatureInterval() time.Duration {
	return time.Duration(s.Temperature.IntervalSeconds) * time.Second
}

// ProgressMode selects how the progress gate turns percent updates into alerts.
type ProgressMode int

const (
	ProgressDisabled ProgressMode = iota
	ProgressCompletionOnly
	ProgressMilestones
	ProgressEveryStep
)

// ProgressPolicy is the parsed form of progress.type / progress.milestones.
type ProgressPolicy struct {
	Mode       ProgressMode
	Milestones []int
	Step       int
}

// ParseProgressPolicy maps the configured mode string to a policy.
// "0" disables, "100" reports completion only, "25" and "50" are fixed
// milestone sets, "5" and "10" fire on every multiple of the step.
// A non-empty milestones list overrides the mode string.
func ParseProgressPolicy(mode string, milestones []int) (ProgressPolicy, error) {
	if len(milestones) > 0 {
		out := make([]int, 0, len(milestones))
		for _, m := range milestones {
			if m <= 0 || m >= 100 {
				return ProgressPolicy{}, fmt.Errorf("%w: milestone %d outside (0,100)", ErrUnknownProgressMode, m)
			}
			out = append(out, m)
		}
		return ProgressPolicy{Mode: ProgressMilestones, Milestones: out}, nil
	}

	switch strings.TrimSpace(mode) {
	case "0":
		return ProgressPolicy{Mode: ProgressDisabled}, nil
	case "100":
		return ProgressPolicy{Mode: ProgressCompletionOnly}, nil
	case "25":
		return ProgressPolicy{Mode: ProgressMilestones, Milestones: []int{25, 50, 75}}, nil
	case "50":
		return ProgressPolicy{Mode: ProgressMilestones, Milestones: []int{50}}, nil
	case "5", "10":
		step, _ := strconv.Atoi(strings.TrimSpace(mode))
		return ProgressPolicy{Mode: ProgressEveryStep, Step: step}, nil
	default:
		return ProgressPolicy{}, fmt.Errorf("%w: %q", ErrUnknownProgressMode, mode)
	}
}
