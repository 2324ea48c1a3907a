package model

// Event types pushed over the websocket channel after a committed mutation.
const (
	EventCreated = "created"
	EventEdited  = "edited"
	EventDeleted = "deleted"
	EventCleared = "cleared"
	EventPong    = "pong"
)

// Event is the envelope broadcast to connected sessions. Data is the full
// Message for created/edited, a DeletedRef for deleted, and omitted for
// cleared.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// DeletedRef identifies a removed message.
type DeletedRef struct {
	ID int64 `json:"id"`
}

func MessageCreated(m *Message) *Event {
	return &Event{Type: EventCreated, Data: m}
}

func MessageEdited(m *Message) *Event {
	return &Event{Type: EventEdited, Data: m}
}

func MessageDeleted(id int64) *Event {
	return &Event{Type: EventDeleted, Data: DeletedRef{ID: id}}
}

func AllMessagesCleared() *Event {
	return &Event{Type: EventCleared}
}
