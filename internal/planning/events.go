package planning

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wsyeabsera/clear-ai-sub000/internal/types"
)

// PlanningEventType identifies the type of planning event.
type PlanningEventType string

const (
	// EventPlanStarted indicates plan creation began for a query.
	EventPlanStarted PlanningEventType = "planning.plan_started"

	// EventGoalsExtracted indicates goal extraction completed.
	EventGoalsExtracted PlanningEventType = "planning.goals_extracted"

	// EventGoalDecomposed indicates goal decomposition completed.
	EventGoalDecomposed PlanningEventType = "planning.goal_decomposed"

	// EventActionsPlanned indicates action planning completed for the plan.
	EventActionsPlanned PlanningEventType = "planning.actions_planned"

	// EventActionDropped indicates a proposed action referenced an
	// unregistered tool and was discarded.
	EventActionDropped PlanningEventType = "planning.action_dropped"

	// EventStepDegraded indicates a provider-backed step failed and the
	// plan continued with an empty result for that step.
	EventStepDegraded PlanningEventType = "planning.step_degraded"

	// EventRiskAssessed indicates risk assessment completed.
	EventRiskAssessed PlanningEventType = "planning.risk_assessed"

	// EventPlanValidated indicates the assembled plan passed structural
	// validation.
	EventPlanValidated PlanningEventType = "planning.plan_validated"

	// EventPlanCreated indicates a complete plan was assembled.
	EventPlanCreated PlanningEventType = "planning.plan_created"
)

// String returns the string representation of the event type.
func (t PlanningEventType) String() string {
	return string(t)
}

// PlanningEvent represents a planning system event. Events are emitted
// throughout plan creation to enable real-time monitoring of planning
// decisions, most importantly dropped actions.
type PlanningEvent struct {
	// Type identifies the event type.
	Type PlanningEventType `json:"type"`

	// PlanID is the identifier of the plan being created.
	PlanID types.ID `json:"plan_id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Payload contains type-specific event data.
	Payload map[string]any `json:"payload,omitempty"`
}

// PlanningEventEmitter publishes planning events to subscribers.
// Implementations must be thread-safe and support multiple concurrent
// subscribers.
type PlanningEventEmitter interface {
	// Emit publishes an event to all subscribers. Emit must be
	// non-blocking; it never waits for subscribers to consume events.
	Emit(ctx context.Context, event PlanningEvent) error

	// Subscribe creates a new subscription and returns a channel for
	// receiving events and a cleanup function to unsubscribe. The cleanup
	// function must be called to prevent resource leaks.
	Subscribe(ctx context.Context) (<-chan PlanningEvent, func())

	// Close shuts down the emitter and all subscriptions.
	Close() error
}

// DefaultPlanningEventEmitter implements PlanningEventEmitter using
// buffered channels. Slow consumers whose channels are full have events
// dropped rather than blocking the planner.
type DefaultPlanningEventEmitter struct {
	mu          sync.RWMutex
	subscribers map[string]chan PlanningEvent
	bufferSize  int
	closed      bool
}

// PlanningEventEmitterOption is a functional option for configuring
// DefaultPlanningEventEmitter.
type PlanningEventEmitterOption func(*DefaultPlanningEventEmitter)

// WithPlanningBufferSize sets the buffer size for subscriber channels.
// Default is 100.
func WithPlanningBufferSize(size int) PlanningEventEmitterOption {
	return func(e *DefaultPlanningEventEmitter) {
		e.bufferSize = size
	}
}

// NewDefaultPlanningEventEmitter creates a new DefaultPlanningEventEmitter.
func NewDefaultPlanningEventEmitter(opts ...PlanningEventEmitterOption) *DefaultPlanningEventEmitter {
	emitter := &DefaultPlanningEventEmitter{
		subscribers: make(map[string]chan PlanningEvent),
		bufferSize:  100,
	}

	for _, opt := range opts {
		opt(emitter)
	}

	return emitter
}

// Emit publishes an event to all subscribers. If a subscriber's channel is
// full the event is dropped for that subscriber so one slow consumer never
// blocks the others.
func (e *DefaultPlanningEventEmitter) Emit(ctx context.Context, event PlanningEvent) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return fmt.Errorf("planning event emitter is closed")
	}

	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Channel full, drop for this subscriber.
		}
	}

	return nil
}

// Subscribe creates a new subscription. The returned cleanup function must
// be called to unsubscribe and prevent leaks.
func (e *DefaultPlanningEventEmitter) Subscribe(ctx context.Context) (<-chan PlanningEvent, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subscriberID := types.NewID().String()
	ch := make(chan PlanningEvent, e.bufferSize)
	e.subscribers[subscriberID] = ch

	cleanup := func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if subCh, exists := e.subscribers[subscriberID]; exists {
			delete(e.subscribers, subscriberID)
			close(subCh)
		}
	}

	return ch, cleanup
}

// Close shuts down the emitter and closes all subscriber channels.
func (e *DefaultPlanningEventEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}

	e.closed = true

	for id, ch := range e.subscribers {
		close(ch)
		delete(e.subscribers, id)
	}

	return nil
}

// SubscriberCount returns the current number of active subscribers.
func (e *DefaultPlanningEventEmitter) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers)
}

// NewPlanningEvent creates a new planning event with the current timestamp.
func NewPlanningEvent(eventType PlanningEventType, planID types.ID, payload map[string]any) PlanningEvent {
	return PlanningEvent{
		Type:      eventType,
		PlanID:    planID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// NewActionDroppedEvent creates an event recording a discarded action
// proposal and the unregistered tool it referenced.
func NewActionDroppedEvent(planID types.ID, tool string, description string) PlanningEvent {
	return NewPlanningEvent(EventActionDropped, planID, map[string]any{
		"tool":        tool,
		"description": description,
	})
}

// NewStepDegradedEvent creates an event recording a planning step that
// failed and degraded to an empty result.
func NewStepDegradedEvent(planID types.ID, step string, reason string) PlanningEvent {
	return NewPlanningEvent(EventStepDegraded, planID, map[string]any{
		"step":   step,
		"reason": reason,
	})
}

// NewPlanCreatedEvent creates an event summarizing a completed plan.
func NewPlanCreatedEvent(planID types.ID, goals, subgoals, actions int, successProbability float64) PlanningEvent {
	return NewPlanningEvent(EventPlanCreated, planID, map[string]any{
		"goals":               goals,
		"subgoals":            subgoals,
		"actions":             actions,
		"success_probability": successProbability,
	})
}

// Ensure DefaultPlanningEventEmitter implements PlanningEventEmitter at compile time
var _ PlanningEventEmitter = (*DefaultPlanningEventEmitter)(nil)
