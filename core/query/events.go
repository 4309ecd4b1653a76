package query

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QueryEventType defines the lifecycle events emitted around terminal
// operations.
type QueryEventType string

// Supported query event types.
const (
	FilterStart   QueryEventType = "query:filter:start"
	FilterSuccess QueryEventType = "query:filter:success"
	FilterFailed  QueryEventType = "query:filter:failed"
	GroupStart    QueryEventType = "query:group:start"
	GroupSuccess  QueryEventType = "query:group:success"
	GroupFailed   QueryEventType = "query:group:failed"
	ReduceStart   QueryEventType = "query:reduce:start"
	ReduceSuccess QueryEventType = "query:reduce:success"
	ReduceFailed  QueryEventType = "query:reduce:failed"
)

// QueryEvent describes one lifecycle event of a terminal operation. The ID
// ties the start and success/failed events of a single pass together.
type QueryEvent struct {
	ID         uuid.UUID      `json:"id"`
	Type       QueryEventType `json:"type"`
	Operation  string         `json:"operation"`
	Timestamp  int64          `json:"timestamp"`            // Unix milliseconds.
	Predicates int            `json:"predicates"`           // Distinct predicate nodes in the chain.
	Limit      *int           `json:"limit,omitempty"`      // Result limit, when the operation carries one.
	Matched    *int           `json:"matched,omitempty"`    // Matched record count, on success.
	Error      *string        `json:"error,omitempty"`      // Failure message, on failure.
	Duration   *int64         `json:"duration,omitempty"`   // Elapsed milliseconds, on completion.
}

// EventCallbackFunction is the signature of a query event subscriber.
type EventCallbackFunction func(ctx context.Context, event QueryEvent) error

// RegisterSubscriptionOptions defines options for registering a subscription
// against a Dataset's event bus.
type RegisterSubscriptionOptions struct {
	Event       QueryEventType
	Callback    EventCallbackFunction
	Label       *string
	Description *string
}

// SubscriptionInfo describes a registered subscription.
type SubscriptionInfo struct {
	Id          *string        `json:"id,omitempty"`
	Event       QueryEventType `json:"event"`
	Label       *string        `json:"label,omitempty"`
	Description *string        `json:"description,omitempty"`
	Unsubscribe func()
}

// emitEvent publishes an event when a bus is configured.
func (d *Dataset) emitEvent(event QueryEvent) {
	if d.bus != nil {
		d.bus.Emit(string(event.Type), event)
	}
}

// withEventEmission wraps a terminal pass with start, success, and failure
// events. fn reports the matched record count on success.
func (d *Dataset) withEventEmission(
	operation string,
	startEventType QueryEventType,
	successEventType QueryEventType,
	failedEventType QueryEventType,
	predicates int,
	limit *int,
	fn func() (int, error),
) error {
	startTime := time.Now()
	id := uuid.New()

	d.emitEvent(QueryEvent{
		ID:         id,
		Type:       startEventType,
		Operation:  operation,
		Timestamp:  startTime.UnixMilli(),
		Predicates: predicates,
		Limit:      limit,
	})

	matched, err := fn()
	duration := time.Since(startTime).Milliseconds()

	if err != nil {
		errStr := err.Error()
		d.emitEvent(QueryEvent{
			ID:         id,
			Type:       failedEventType,
			Operation:  operation,
			Timestamp:  time.Now().UnixMilli(),
			Predicates: predicates,
			Limit:      limit,
			Error:      &errStr,
			Duration:   &duration,
		})
		return err
	}

	d.emitEvent(QueryEvent{
		ID:         id,
		Type:       successEventType,
		Operation:  operation,
		Timestamp:  time.Now().UnixMilli(),
		Predicates: predicates,
		Limit:      limit,
		Matched:    &matched,
		Duration:   &duration,
	})
	return nil
}

// RegisterSubscription registers a callback for a specific query event. It
// returns a unique ID that can be used to unregister the subscription later.
// Registrations are ignored when the dataset has no event bus.
func (d *Dataset) RegisterSubscription(options RegisterSubscriptionOptions) string {
	if d.bus == nil {
		return ""
	}
	d.subMu.Lock()
	defer d.subMu.Unlock()

	unsubscribe := d.bus.Subscribe(string(options.Event), options.Callback)
	id := uuid.New().String()

	d.subscriptions[id] = &SubscriptionInfo{
		Id:          &id,
		Event:       options.Event,
		Unsubscribe: unsubscribe,
		Label:       options.Label,
		Description: options.Description,
	}
	return id
}

// UnregisterSubscription removes a subscription by its ID.
func (d *Dataset) UnregisterSubscription(id string) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	if sub, ok := d.subscriptions[id]; ok {
		sub.Unsubscribe()
		delete(d.subscriptions, id)
	}
}
