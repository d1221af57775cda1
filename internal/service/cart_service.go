package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/unievents/unievents/internal/model"
)

// CartService manages the reservation lines of a client's cart. Adding to a
// cart never commits inventory: availability is consulted, not decremented,
// so concurrent shoppers are not serialised against each other. The order
// collaborator re-validates and increments ticketsSold atomically at
// confirmation time.
type CartService struct {
	accounts AccountRepositoryInterface
	events   EventRepositoryInterface
}

// NewCartService creates a CartService.
func NewCartService(accounts AccountRepositoryInterface, events EventRepositoryInterface) *CartService {
	return &CartService{accounts: accounts, events: events}
}

// loadClientAccount fetches the account and enforces the gate shared by every
// cart mutation: the owner must be a CLIENT and ACTIVE. An inactive account
// cannot shop.
func (s *CartService) loadClientAccount(ctx context.Context, accountID string) (*model.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if account.Role != model.RoleClient {
		return nil, ErrNoCart
	}
	if account.State == model.AccountDeleted {
		return nil, ErrAccountDeleted
	}
	if account.State == model.AccountInactive {
		return nil, ErrAccountInactive
	}
	return account, nil
}

// checkAvailability resolves the locality on the event and verifies it can
// cover the requested quantity.
func (s *CartService) checkAvailability(ctx context.Context, eventID, localityName string, quantity int) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}
	locality, ok := event.Locality(localityName)
	if !ok {
		return ErrLocalityNotFound
	}
	if locality.Available() < quantity {
		return ErrInsufficientCapacity
	}
	return nil
}

// AddLine appends a new reservation line to the cart after checking the
// locality can cover the quantity.
func (s *CartService) AddLine(ctx context.Context, accountID string, req *model.AddCartLineRequest) (*model.CartLine, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	account, err := s.loadClientAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAvailability(ctx, req.EventID, req.LocalityName, req.Quantity); err != nil {
		return nil, err
	}

	line := model.CartLine{
		ID:           uuid.NewString(),
		EventID:      req.EventID,
		LocalityName: req.LocalityName,
		Quantity:     req.Quantity,
	}
	account.Cart.Lines = append(account.Cart.Lines, line)
	if err := s.accounts.UpdateCart(ctx, account.ID, account.Cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return &line, nil
}

// EditLine replaces the locality and quantity of an existing line together.
// The new locality must cover the full new quantity; the quantity already
// held by the line is not credited back, since the cart never decremented
// inventory in the first place.
func (s *CartService) EditLine(ctx context.Context, accountID, lineID string, req *model.EditCartLineRequest) (*model.CartUpdateResult, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	account, err := s.loadClientAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(account.Cart.Lines) == 0 {
		return &model.CartUpdateResult{CartEmpty: true}, nil
	}

	idx := account.Cart.Line(lineID)
	if idx < 0 {
		return nil, ErrCartLineNotFound
	}
	line := &account.Cart.Lines[idx]
	if err := s.checkAvailability(ctx, line.EventID, req.NewLocalityName, req.NewQuantity); err != nil {
		return nil, err
	}

	line.LocalityName = req.NewLocalityName
	line.Quantity = req.NewQuantity
	if err := s.accounts.UpdateCart(ctx, account.ID, account.Cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return &model.CartUpdateResult{}, nil
}

// RemoveLine deletes a line from the cart. Removing from an empty cart is
// reported as information; a missing line on a non-empty cart is an error.
func (s *CartService) RemoveLine(ctx context.Context, accountID, lineID string) (*model.CartUpdateResult, error) {
	account, err := s.loadClientAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(account.Cart.Lines) == 0 {
		return &model.CartUpdateResult{CartEmpty: true}, nil
	}

	idx := account.Cart.Line(lineID)
	if idx < 0 {
		return nil, ErrCartLineNotFound
	}
	account.Cart.Lines = slices.Delete(account.Cart.Lines, idx, idx+1)
	if err := s.accounts.UpdateCart(ctx, account.ID, account.Cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return &model.CartUpdateResult{}, nil
}

// Get returns the cart of a client account. Viewing is allowed while the
// account is still inactive; only mutations require activation.
func (s *CartService) Get(ctx context.Context, accountID string) (*model.Cart, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if account.Role != model.RoleClient {
		return nil, ErrNoCart
	}
	if account.State == model.AccountDeleted {
		return nil, ErrAccountDeleted
	}
	return &account.Cart, nil
}
