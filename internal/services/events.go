package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/happythoughts/apiserver/types"
	"github.com/rs/zerolog/log"
)

// EventPublisher delivers encoded events to a broker channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// Events publishes resource events. A nil publisher drops every event.
type Events struct {
	publisher EventPublisher
	channel   string
}

func NewEvents(publisher EventPublisher, channel string) *Events {
	return &Events{publisher: publisher, channel: channel}
}

// emit publishes an event for a completed write. Failures are logged only:
// the write has already happened.
func (e *Events) emit(ctx context.Context, eventType, entity, id string, snapshot any) {
	if e == nil || e.publisher == nil {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Error().Err(err).Str("entity", entity).Str("id", id).Msg("encode event snapshot")
		return
	}
	payload, err := json.Marshal(types.Event{
		Type:       eventType,
		Entity:     entity,
		ID:         id,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		log.Error().Err(err).Str("entity", entity).Str("id", id).Msg("encode event")
		return
	}

	attrs := map[string]string{"type": eventType, "entity": entity}
	if _, err := e.publisher.Publish(ctx, e.channel, payload, attrs); err != nil {
		log.Warn().Err(err).
			Str("channel", e.channel).
			Str("type", eventType).
			Str("entity", entity).
			Str("id", id).
			Msg("publish event failed")
	}
}
