package domain

import "time"

// EventType names a customer change pushed to listeners.
type EventType string

const (
	EventCustomerCreated EventType = "Customer Created"
	EventCustomerDeleted EventType = "Customer Deleted"
	EventCustomerUpdated EventType = "Customer Updated"
)

// TimestampLayout renders UTC instants with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Event is the live notification pushed over the push channel.
// Deleted customers travel under deletedCustomer, all others under customer.
type Event struct {
	Type            EventType `json:"type"`
	Customer        *Customer `json:"customer,omitempty"`
	DeletedCustomer *Customer `json:"deletedCustomer,omitempty"`
	Timestamp       string    `json:"timestamp"`
}

// NewCustomerEvent builds an event stamped with now.
func NewCustomerEvent(kind EventType, c Customer, now time.Time) Event {
	ev := Event{Type: kind, Timestamp: now.UTC().Format(TimestampLayout)}
	snapshot := c.Clone()
	if kind == EventCustomerDeleted {
		ev.DeletedCustomer = &snapshot
	} else {
		ev.Customer = &snapshot
	}
	return ev
}

// Notification is the persisted form of an event: the whole event nested
// under message, with its own recording timestamp.
type Notification struct {
	Message   Event  `json:"message"`
	Timestamp string `json:"timestamp"`
}
