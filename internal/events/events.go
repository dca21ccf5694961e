package events

import "context"

// LifecycleChannel carries every record lifecycle change.
const LifecycleChannel = "events:lifecycle"

// Event types
const (
	EventLifecycleChanged = "lifecycle_changed"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// LifecycleEvent builds the payload published after a transition matched at
// least one row.
func LifecycleEvent(entity, action, userID string, ids []string) Event {
	return Event{
		Type: EventLifecycleChanged,
		Payload: map[string]any{
			"entity":  entity,
			"action":  action,
			"user_id": userID,
			"ids":     ids,
		},
	}
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

// NopPublisher drops every event. Used when redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
