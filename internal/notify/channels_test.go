package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print_notifier/internal/config"
	"print_notifier/internal/models"
)

type fakeSender struct {
	message string
	params  types.Params
	errs    []error
}

func (f *fakeSender) Send(message string, params *types.Params) []error {
	f.message = message
	f.params = *params
	return f.errs
}

func TestWebhookChannel_SendsTextAndParams(t *testing.T) {
	s := &fakeSender{}
	ch := &WebhookChannel{sender: s, printerName: "Prusa"}
	alert := models.NewAlert(models.EventMMU, t0(), nil)

	require.NoError(t, ch.Fire(context.Background(), alert, "MMU Requires User Assistance"))
	assert.Equal(t, "MMU Requires User Assistance", s.message)
	assert.Equal(t, "mmu-event", s.params["value2"])
	assert.Equal(t, "Prusa", s.params["title"])

	s.errs = []error{errors.New("a"), errors.New("b")}
	assert.Error(t, ch.Fire(context.Background(), alert, "x"))
}

func TestNewWebhookChannel_EmptyIsNil(t *testing.T) {
	ch, err := NewWebhookChannel(nil, "Prusa")
	require.NoError(t, err)
	assert.Nil(t, ch)
}

type doneToken struct{ err error }

func (d doneToken) Wait() bool                     { return true }
func (d doneToken) WaitTimeout(time.Duration) bool { return true }
func (d doneToken) Done() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}
func (d doneToken) Error() error { return d.err }

type fakeMQTT struct {
	mqtt.Client
	topic   string
	qos     byte
	payload []byte
}

func (f *fakeMQTT) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	f.topic = topic
	f.qos = qos
	f.payload = payload.([]byte)
	return doneToken{}
}

func TestMQTTChannel_PublishesJSON(t *testing.T) {
	client := &fakeMQTT{}
	ch := newMQTTChannel(client, config.MQTTConfig{Topic: "printnotify/alerts", QoS: 1}, "Prusa")
	alert := models.NewAlert(models.EventBedCooled, t0(), map[string]any{models.ParamThreshold: 30.0})

	require.NoError(t, ch.Fire(context.Background(), alert, "bed cool"))
	assert.Equal(t, "printnotify/alerts", client.topic)
	assert.Equal(t, byte(1), client.qos)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(client.payload, &msg))
	assert.Equal(t, "bed-cooled", msg["event_code"])
	assert.Equal(t, "Prusa", msg["printer"])
	assert.Equal(t, "bed cool", msg["message"])
}

func TestNewMQTTChannel_NoBrokerIsNil(t *testing.T) {
	ch, err := NewMQTTChannel(config.MQTTConfig{}, "Prusa")
	require.NoError(t, err)
	assert.Nil(t, ch)
}
