package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"

	"print_notifier/internal/config"
	"print_notifier/internal/models"
)

// Channel is a secondary output that receives every dispatched alert once,
// independent of device recipients.
type Channel interface {
	Name() string
	Fire(ctx context.Context, alert models.Alert, text string) error
}

type sender interface {
	Send(message string, params *types.Params) []error
}

// WebhookChannel fires alerts at shoutrrr service URLs (IFTTT, ntfy, generic webhooks...).
type WebhookChannel struct {
	sender      sender
	printerName string
}

// NewWebhookChannel returns nil when no URLs are configured.
func NewWebhookChannel(urls []string, printerName string) (*WebhookChannel, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	s, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("webhook sender: %w", err)
	}
	return &WebhookChannel{sender: s, printerName: printerName}, nil
}

func (w *WebhookChannel) Name() string { return "webhook" }

// Fire sends the text with the event code as IFTTT-style params.
func (w *WebhookChannel) Fire(_ context.Context, alert models.Alert, text string) error {
	params := types.Params{
		"title":     w.printerName,
		"event":     string(alert.Code),
		"value1":    w.printerName,
		"value2":    string(alert.Code),
		"value3":    text,
		"alert_id":  alert.ID,
		"timestamp": alert.At.Format(time.RFC3339),
	}
	return errors.Join(w.sender.Send(text, &params)...)
}

// mqttMessage is the JSON body published for every alert.
type mqttMessage struct {
	ID        string           `json:"id"`
	Printer   string           `json:"printer"`
	EventCode models.EventCode `json:"event_code"`
	Message   string           `json:"message"`
	Params    map[string]any   `json:"params,omitempty"`
	At        time.Time        `json:"at"`
}

// MQTTChannel publishes alerts to a broker topic.
type MQTTChannel struct {
	client      mqtt.Client
	topic       string
	qos         byte
	printerName string
	timeout     time.Duration
}

// NewMQTTChannel connects to the broker. It returns nil when no broker is configured.
func NewMQTTChannel(cfg config.MQTTConfig, printerName string) (*MQTTChannel, error) {
	if cfg.Broker == "" {
		return nil, nil
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect %s: timeout", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}
	return newMQTTChannel(client, cfg, printerName), nil
}

func newMQTTChannel(client mqtt.Client, cfg config.MQTTConfig, printerName string) *MQTTChannel {
	return &MQTTChannel{
		client:      client,
		topic:       cfg.Topic,
		qos:         cfg.QoS,
		printerName: printerName,
		timeout:     5 * time.Second,
	}
}

func (m *MQTTChannel) Name() string { return "mqtt" }

func (m *MQTTChannel) Fire(_ context.Context, alert models.Alert, text string) error {
	body, err := json.Marshal(mqttMessage{
		ID:        alert.ID,
		Printer:   m.printerName,
		EventCode: alert.Code,
		Message:   text,
		Params:    alert.Params,
		At:        alert.At,
	})
	if err != nil {
		return fmt.Errorf("mqtt encode: %w", err)
	}
	token := m.client.Publish(m.topic, m.qos, false, body)
	if !token.WaitTimeout(m.timeout) {
		return fmt.Errorf("mqtt publish %s: timeout", m.topic)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (m *MQTTChannel) Close() {
	m.client.Disconnect(250)
}
