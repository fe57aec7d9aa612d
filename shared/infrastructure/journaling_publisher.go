package infrastructure

import (
	"context"

	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/shared/events"
)

var _ events.Publisher = (*JournalingPublisher)(nil)

// JournalingPublisher appends events to the event store before handing them
// to the wrapped publisher. The journal write is the durable audit record;
// a transport failure after journaling does not lose the event.
type JournalingPublisher struct {
	store events.EventStore
	next  events.Publisher
}

// NewJournalingPublisher creates a publisher that journals then forwards
func NewJournalingPublisher(store events.EventStore, next events.Publisher) *JournalingPublisher {
	return &JournalingPublisher{
		store: store,
		next:  next,
	}
}

// Publish implements events.Publisher
func (p *JournalingPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	byAggregate := make(map[string][]*events.Event)
	for _, event := range evts {
		key := event.AggregateID.String()
		byAggregate[key] = append(byAggregate[key], event)
	}

	for _, group := range byAggregate {
		// expectedVersion -1 appends without a stream version check
		if err := p.store.SaveEvents(ctx, group[0].AggregateID, group, -1); err != nil {
			return errors.Wrap(err, "failed to journal events")
		}
	}

	return p.next.Publish(ctx, evts...)
}
