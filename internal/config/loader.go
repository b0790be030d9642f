package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "PRINTNOTIFY"

// Loader reads Settings from configs/config.yml (or an explicit file) with
// PRINTNOTIFY_* environment overrides.
type Loader struct {
	v *viper.Viper
}

// NewLoader prepares a viper instance. An empty path searches ./configs.
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads the file (missing default file is tolerated), decodes and validates.
func (l *Loader) Load() (Settings, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}
	return l.decode()
}

// ConfigFile returns the file in use, empty when running on defaults only.
func (l *Loader) ConfigFile() string { return l.v.ConfigFileUsed() }

// Watch reloads the file on change and hands the validated result to fn.
func (l *Loader) Watch(fn func(Settings, error)) {
	l.v.OnConfigChange(func(fsnotify.Event) {
		fn(l.decode())
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (Settings, error) {
	var s Settings
	if err := l.v.Unmarshal(&s, viper.DecodeHook(durationDecodeHook())); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("validate config: %w", err)
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", "1h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("push.server_url", "https://push.example.invalid")
	v.SetDefault("push.sound", "default")
	v.SetDefault("push.use_dev", false)
	v.SetDefault("push.timeout", "10s")
	v.SetDefault("push.rate_per_second", 5)

	v.SetDefault("printer.id", "printer-1")
	v.SetDefault("printer.name", "Printer")

	v.SetDefault("camera.snapshot_url", "http://127.0.0.1:8080/?action=snapshot")
	v.SetDefault("camera.timeout", "5s")
	v.SetDefault("camera.cache_ttl", "10s")

	v.SetDefault("temperature.interval_seconds", 5)

	v.SetDefault("bed.low", 30)
	v.SetDefault("bed.target_hold_minutes", 10)
	v.SetDefault("bed.notify_once", false)
	v.SetDefault("tool0.low", 0)
	v.SetDefault("tool0.target_temp", false)

	v.SetDefault("thermal.runaway_threshold", 10)
	v.SetDefault("thermal.minutes_frequency", 10)
	v.SetDefault("thermal.cooldown_seconds", 14)
	v.SetDefault("thermal.below_target_threshold", 5)
	v.SetDefault("thermal.warmup_bed_seconds", 19)
	v.SetDefault("thermal.warmup_hotend_seconds", 39)
	v.SetDefault("thermal.warmup_chamber_seconds", 19)

	v.SetDefault("console.mmu_interval_minutes", 5)
	v.SetDefault("console.pause_interval_minutes", 5)

	v.SetDefault("progress.type", "50")
	v.SetDefault("layers.notify_first", 1)

	v.SetDefault("soc.high", 75)
	v.SetDefault("soc.interval_seconds", 30)

	v.SetDefault("alerts.queue_size", 64)
	v.SetDefault("webhook.urls", []string{})

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "printnotify/alerts")
	v.SetDefault("mqtt.client_id", "printnotify")
	v.SetDefault("mqtt.qos", 1)

	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", "1s")
}

// Defaults returns the settings produced by an empty configuration.
func Defaults() Settings {
	l := &Loader{v: viper.New()}
	setDefaults(l.v)
	s, err := l.decode()
	if err != nil {
		// defaults are static; failing here is a programming error
		panic(err)
	}
	return s
}
