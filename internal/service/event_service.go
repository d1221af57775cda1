package service

import (
	"context"
	"fmt"

	"github.com/unievents/unievents/internal/model"
)

// EventRepositoryInterface defines the event data access the engine needs.
// SellTickets is the atomic increment used at order confirmation: it reports
// false when the locality cannot cover the quantity at write time.
type EventRepositoryInterface interface {
	Insert(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	NameExists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	SellTickets(ctx context.Context, eventID, localityName string, quantity int) (bool, error)
}

// EventService owns the event aggregate and its availability arithmetic.
type EventService struct {
	events EventRepositoryInterface
}

// NewEventService creates an EventService.
func NewEventService(events EventRepositoryInterface) *EventService {
	return &EventService{events: events}
}

// Create stores a new ACTIVE event. Event names are unique.
func (s *EventService) Create(ctx context.Context, req *model.CreateEventRequest) (string, error) {
	if req == nil {
		return "", ErrInvalidRequest
	}
	exists, err := s.events.NameExists(ctx, req.Name)
	if err != nil {
		return "", fmt.Errorf("check event name: %w", err)
	}
	if exists {
		return "", ErrEventNameExists
	}

	localities := make([]model.Locality, 0, len(req.Localities))
	for _, l := range req.Localities {
		localities = append(localities, model.Locality{
			Name:        l.Name,
			Price:       l.Price,
			CapacityMax: l.CapacityMax,
		})
	}
	event := &model.Event{
		OrganizerID: req.OrganizerID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       model.EventActive,
		Type:        req.Type,
		StartsAt:    req.StartsAt,
		Localities:  localities,
	}
	if err := s.events.Insert(ctx, event); err != nil {
		return "", err
	}
	return event.ID, nil
}

// Get returns the event with the given id.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// List returns events matching the filter; zero-valued filter fields match
// everything.
func (s *EventService) List(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Availability reports the remaining capacity of every locality of an event.
func (s *EventService) Availability(ctx context.Context, id string) ([]model.LocalityAvailability, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	report := make([]model.LocalityAvailability, 0, len(event.Localities))
	for _, l := range event.Localities {
		report = append(report, model.LocalityAvailability{
			Name:      l.Name,
			Price:     l.Price,
			Sold:      l.TicketsSold,
			Available: l.Available(),
		})
	}
	return report, nil
}

// ConfirmSale is the stronger-consistency path used at order confirmation:
// it re-validates availability and increments ticketsSold in one conditional
// write. Returns ErrInsufficientCapacity when the locality can no longer
// cover the quantity.
func (s *EventService) ConfirmSale(ctx context.Context, eventID, localityName string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidRequest
	}
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if _, ok := event.Locality(localityName); !ok {
		return ErrLocalityNotFound
	}

	sold, err := s.events.SellTickets(ctx, eventID, localityName, quantity)
	if err != nil {
		return fmt.Errorf("sell tickets: %w", err)
	}
	if !sold {
		return ErrInsufficientCapacity
	}
	return nil
}
