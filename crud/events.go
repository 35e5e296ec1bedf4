package crud

import "github.com/dmitrymomot/mpjsonapi/pkg/event"

// Events dispatched on Request.Events by Action.
const (
	EventBeforeSave event.Name = "crud.beforeSave"
	EventAfterSave  event.Name = "crud.afterSave"
	EventRequestEnd event.Name = "crud.requestEnd"
)

// SaveEvent is the data of EventBeforeSave and EventAfterSave.
// Listeners of EventBeforeSave may change Entity before it is persisted.
type SaveEvent struct {
	Request *Request
	Entity  *Entity
	Created bool
}

// EndEvent is the data of EventRequestEnd. Err is nil when the entity was saved.
type EndEvent struct {
	Request *Request
	Entity  *Entity
	Err     error
}
