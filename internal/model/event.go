package model

import "time"

// EventState is the publication state of an event.
type EventState string

const (
	EventActive    EventState = "ACTIVE"
	EventInactive  EventState = "INACTIVE"
	EventCancelled EventState = "CANCELLED"
)

// EventType categorises an event for filtering.
type EventType string

const (
	EventConcert  EventType = "CONCERT"
	EventTheater  EventType = "THEATER"
	EventSport    EventType = "SPORT"
	EventFestival EventType = "FESTIVAL"
)

// Locality is a ticket category within an event, with its own price and
// capacity. TicketsSold is only ever incremented by the order-confirmation
// conditional write; cart operations just consult Available.
type Locality struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	TicketsSold int     `json:"tickets_sold"`
	CapacityMax int     `json:"capacity_max"`
}

// Available returns the remaining ticket count, never negative even if a
// locality has been oversold upstream.
func (l Locality) Available() int {
	available := l.CapacityMax - l.TicketsSold
	if available < 0 {
		return 0
	}
	return available
}

// Event is the aggregate owning the localities. Localities are embedded so
// the whole aggregate is written as a single row.
type Event struct {
	ID          string     `json:"id"`
	OrganizerID string     `json:"organizer_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	State       EventState `json:"state"`
	Type        EventType  `json:"type"`
	StartsAt    time.Time  `json:"starts_at"`
	Localities  []Locality `json:"localities"`
}

// Locality finds a locality by name.
func (e *Event) Locality(name string) (Locality, bool) {
	for _, l := range e.Localities {
		if l.Name == name {
			return l, true
		}
	}
	return Locality{}, false
}

// CreateLocalityRequest describes one locality of a new event.
type CreateLocalityRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
	CapacityMax int     `json:"capacity_max" validate:"required,gte=1"`
}

// CreateEventRequest is the DTO for POST /api/events.
type CreateEventRequest struct {
	OrganizerID string                  `json:"organizer_id" validate:"required,notblank"`
	Name        string                  `json:"name" validate:"required,notblank,max=255"`
	Description string                  `json:"description" validate:"max=2000"`
	Address     string                  `json:"address" validate:"max=255"`
	City        string                  `json:"city" validate:"required,notblank,max=255"`
	Type        EventType               `json:"type" validate:"required,oneof=CONCERT THEATER SPORT FESTIVAL"`
	StartsAt    time.Time               `json:"starts_at" validate:"required,future"`
	Localities  []CreateLocalityRequest `json:"localities" validate:"required,min=1,dive"`
}

// EventFilter narrows event listings. Zero-valued fields are ignored.
type EventFilter struct {
	City string    `json:"city"`
	Type EventType `json:"type"`
}

// LocalityAvailability is one row of the availability report.
type LocalityAvailability struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Sold      int     `json:"sold"`
	Available int     `json:"available"`
}
