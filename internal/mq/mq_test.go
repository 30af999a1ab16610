package mq

import (
	"context"
	"testing"

	"github.com/happythoughts/apiserver/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBackend struct {
	published []string
	closed    bool
}

func (b *recordingBackend) Publish(_ context.Context, channel string, data []byte, _ map[string]string) (string, error) {
	b.published = append(b.published, channel+":"+string(data))
	return "id-1", nil
}

func (b *recordingBackend) Subscribe(ctx context.Context, _ string, handler Handler) error {
	return handler(ctx, Message{ID: "id-1", Data: []byte("{}")})
}

func (b *recordingBackend) Close() error {
	b.closed = true
	return nil
}

func TestConnectWithoutBackend(t *testing.T) {
	q, err := Connect(context.Background(), config.EventsConfig{})

	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestConnectUnknownBackend(t *testing.T) {
	_, err := Connect(context.Background(), config.EventsConfig{Backend: "kafka"})

	assert.ErrorContains(t, err, `unknown mq backend "kafka"`)
}

func TestRabbitMQRequiresURL(t *testing.T) {
	_, err := NewRabbitMQClient(config.RabbitMQConfig{})

	assert.ErrorContains(t, err, "rabbitmq url is required")
}

func TestMQDelegatesToBackend(t *testing.T) {
	backend := &recordingBackend{}
	q := New(backend)

	id, err := q.Publish(context.Background(), "events", []byte("x"), nil)
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	assert.Equal(t, []string{"events:x"}, backend.published)

	var got Message
	require.NoError(t, q.Subscribe(context.Background(), "events", func(_ context.Context, msg Message) error {
		got = msg
		return nil
	}))
	assert.Equal(t, "id-1", got.ID)

	require.NoError(t, q.Close())
	assert.True(t, backend.closed)
}

func TestHeadersToAttributes(t *testing.T) {
	assert.Nil(t, headersToAttributes(nil))

	attrs := headersToAttributes(amqp.Table{
		"type":    "liked",
		"entity":  []byte("thought"),
		"attempt": int32(2),
	})
	assert.Equal(t, map[string]string{"type": "liked", "entity": "thought", "attempt": "2"}, attrs)
}

func TestNewMessageID(t *testing.T) {
	first := newMessageID()
	second := newMessageID()

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
}
