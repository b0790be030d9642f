package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"print_notifier/internal/config"
	"print_notifier/internal/handlers"
	"print_notifier/internal/logger"
	"print_notifier/internal/metrics"
	"print_notifier/internal/notify"
	"print_notifier/internal/repository"
	"print_notifier/internal/repository/db"
	"print_notifier/internal/server"
	"print_notifier/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second
	socReadTimeout  = 2 * time.Second
)

func runServe(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}
	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer func() { _ = log.Sync() }()
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Auth.SigningKey == "" {
		if cfg.Auth.SigningKey, err = randomKey(); err != nil {
			return err
		}
		log.Warnw("auth_signing_key_generated", "hint", "set auth.signing_key to keep tokens valid across restarts")
	}
	store := config.NewStore(cfg)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("sqlite_close_failed", "err", cerr)
		}
	}()

	repos := repository.NewRepository(sqlDB)
	m := metrics.New(prometheus.DefaultRegisterer)
	recipients := service.NewRecipientService(log, repos.Recipients)

	arbiter, closeChannels, err := newArbiter(log, store, recipients, m)
	if err != nil {
		return err
	}
	defer closeChannels()

	queue := service.NewAlertQueue(log, cfg.Alerts.QueueSize, arbiter, repos.History, m)
	mon := service.NewPrinterMonitor(service.MonitorDeps{
		Log:      log,
		Settings: store,
		Queue:    queue,
		Snoozes:  repos.Snoozes,
		SoC:      service.NewHostSoCSource(socReadTimeout),
		Metrics:  m,
	})
	if err := mon.RestoreSnoozes(parent); err != nil {
		log.Warnw("snooze_restore_failed", "err", err)
	}
	services := service.NewService(repos, store, mon, recipients)

	if loader.ConfigFile() != "" {
		loader.Watch(func(next config.Settings, err error) {
			if err != nil {
				log.Warnw("config_reload_rejected", "err", err)
				return
			}
			next.Auth.SigningKey = store.Get().Auth.SigningKey
			if err := store.Replace(next); err != nil {
				log.Warnw("config_reload_rejected", "err", err)
				return
			}
			log.Infow("config_reloaded", "file", loader.ConfigFile())
		})
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server.Port, handlers.NewHandler(services, log).InitRoutes())
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		queue.Run(gctx)
		return nil
	})
	g.Go(func() error {
		mon.Run(gctx)
		return nil
	})
	if cfg.Simulator.Enabled {
		log.Infow("simulator_enabled", "tick", cfg.Simulator.Tick.String())
		g.Go(func() error {
			services.Simulator.Run(gctx, cfg.Simulator.Tick.Std())
			return nil
		})
	}
	g.Go(func() error {
		log.Infow("http_listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newArbiter assembles the push transport, camera snapshots and the optional
// webhook and MQTT channels. The returned func releases the channels.
func newArbiter(log *logger.Logger, store *config.Store, recipients notify.RecipientSource, m *metrics.Metrics) (*notify.Arbiter, func(), error) {
	cfg := store.Get()

	catalog, err := notify.NewCatalog(log)
	if err != nil {
		return nil, nil, fmt.Errorf("load locales: %w", err)
	}

	var channels []notify.Channel
	closeChannels := func() {}

	webhook, err := notify.NewWebhookChannel(cfg.Webhook.URLs, cfg.Printer.Name)
	if err != nil {
		return nil, nil, err
	}
	if webhook != nil {
		channels = append(channels, webhook)
		log.Infow("channel_enabled", "channel", webhook.Name(), "urls", len(cfg.Webhook.URLs))
	}

	broker, err := notify.NewMQTTChannel(cfg.MQTT, cfg.Printer.Name)
	if err != nil {
		log.Warnw("mqtt_unavailable", "broker", cfg.MQTT.Broker, "err", err)
	}
	if broker != nil {
		channels = append(channels, broker)
		closeChannels = broker.Close
		log.Infow("channel_enabled", "channel", broker.Name(), "broker", cfg.MQTT.Broker)
	}

	client := &http.Client{}
	arbiter := notify.NewArbiter(notify.ArbiterDeps{
		Log:        log,
		Catalog:    catalog,
		Transport:  notify.NewHTTPTransport(client, cfg.Push.Timeout.Std(), cfg.Push.RatePerSecond, log),
		Snapshots:  notify.NewHTTPSnapshotter(client, func() config.CameraConfig { return store.Get().Camera }),
		Recipients: recipients,
		Settings:   store,
		Metrics:    m,
		Channels:   channels,
	})
	return arbiter, closeChannels, nil
}

func randomKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate signing key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
