package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-freeshipping-service/internal/reqctx"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeInvalidator struct {
	paths []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, path string) error {
	f.paths = append(f.paths, path)
	return nil
}

func TestKafkaPublisher_PublishConfigChanged(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, "store.config", logging.NewLoggerV2("test"))
	ctx := reqctx.WithRequestID(context.Background(), "req_1")

	err := p.PublishConfigChanged(ctx, &models.ConfigValue{
		Scope:   models.ScopeWebsites,
		ScopeID: 2,
		Path:    "checkout/cart/freeshipping_progress_min_total",
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "checkout/cart/freeshipping_progress_min_total", string(msg.Key))

	var event ConfigEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, EventTypeConfigChanged, event.Type)
	assert.Equal(t, models.ScopeWebsites, event.Scope)
	assert.Equal(t, int64(2), event.ScopeID)
	assert.Equal(t, "req_1", event.CorrelationID)
	assert.NotEmpty(t, event.ID)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "config.changed", string(msg.Headers[0].Value))
	assert.Equal(t, event.ID, string(msg.Headers[1].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := NewPublisherWithWriter(w, "store.config", logging.NewLoggerV2("test"))

	err := p.PublishConfigChanged(context.Background(), &models.ConfigValue{Path: "carriers/freeshipping/active"})
	assert.Error(t, err)
}

func TestKafkaConsumer_HandleMessage(t *testing.T) {
	inv := &fakeInvalidator{}
	c := &KafkaConsumer{invalidator: inv, logger: logging.NewLoggerV2("test"), stopCh: make(chan struct{})}

	changed, err := json.Marshal(ConfigEvent{Type: EventTypeConfigChanged, Path: "carriers/freeshipping/active"})
	require.NoError(t, err)
	unknown, err := json.Marshal(ConfigEvent{Type: "config.deleted", Path: "carriers/freeshipping/free_shipping_subtotal"})
	require.NoError(t, err)

	c.handleMessage(context.Background(), kafka.Message{Value: changed})
	c.handleMessage(context.Background(), kafka.Message{Value: unknown})
	c.handleMessage(context.Background(), kafka.Message{Value: []byte("{broken")})

	assert.Equal(t, []string{"carriers/freeshipping/active"}, inv.paths)
}

func TestKafkaConsumer_Integration(t *testing.T) {
	t.Skip("Integration test - requires Kafka")
}
