package store

// Event types broadcast on state changes.
const (
	EventTriedMarked     = "tried.marked"
	EventTriedUnmarked   = "tried.unmarked"
	EventWantToGoAdded   = "wanttogo.added"
	EventWantToGoRemoved = "wanttogo.removed"
	EventExcluded        = "excluded.added"
	EventUnexcluded      = "excluded.removed"
	EventExcludedCleared = "excluded.cleared"
	EventMemoUpserted    = "memo.upserted"
	EventMemoDeleted     = "memo.deleted"
	EventCustomCreated   = "custom.created"
	EventCustomUpdated   = "custom.updated"
	EventCustomDeleted   = "custom.deleted"
	EventFiltersUpdated  = "filters.updated"
)

// ChangeEvent describes a single state change for subscribers.
type ChangeEvent struct {
	Type  string `json:"type"`
	PinID string `json:"pin_id,omitempty"`
}

// EventEmitter is the interface for broadcasting change events.
// Store uses this to notify subscribers without depending on the transport.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}
