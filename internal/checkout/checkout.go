// Package checkout submits the session cart to the order service.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"iyan-ordering/internal/cart"
	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/orderclient"
	"iyan-ordering/internal/pricing"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not finished.
var ErrSubmissionInFlight = errors.New("order submission already in flight")

// OrderCreator is the slice of the order service checkout needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req orderclient.CreateOrderRequest) (domain.Order, error)
}

// Submitter places the cart held by a store.
type Submitter struct {
	store    *cart.Store
	orders   OrderCreator
	inFlight atomic.Bool
}

// New returns a Submitter for store.
func New(store *cart.Store, orders OrderCreator) *Submitter {
	return &Submitter{store: store, orders: orders}
}

// Submit validates the cart locally, sends it, and removes the submitted lines
// only once the service has accepted it. Lines added meanwhile stay. The
// returned order is the service snapshot.
func (s *Submitter) Submit(ctx context.Context) (domain.Order, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Order{}, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	state := s.store.Snapshot()
	if err := Validate(state); err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.CreateOrder(ctx, orderclient.CreateOrderRequest{
		CustomerName: strings.TrimSpace(state.CustomerName),
		Items:        state.Items,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("submit order: %w", err)
	}

	s.store.Dispatch(cart.RemoveSubmitted{Items: state.Items})
	return order, nil
}

// Submitting reports whether a submission is outstanding.
func (s *Submitter) Submitting() bool {
	return s.inFlight.Load()
}

// Validate rejects carts the service would refuse, without a network call.
func Validate(state cart.State) error {
	if state.Empty() {
		return domain.Invalid("items", "your cart is empty")
	}
	for i, item := range state.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}

// StatusMessage turns a submission outcome into the line shown to the user.
func StatusMessage(err error) string {
	if err == nil {
		return "Your order has been placed!"
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		if ve.Field == "items" {
			return "Your cart is empty. Add a plate before placing your order."
		}
		return fmt.Sprintf("Please check your order: %s.", ve.Message)
	}
	if errors.Is(err, ErrSubmissionInFlight) {
		return "Your order is already being placed. Please wait."
	}
	if ne, ok := orderclient.AsNetworkError(err); ok {
		if ne.Status >= http.StatusBadRequest && ne.Status < http.StatusInternalServerError {
			return fmt.Sprintf("The kitchen couldn't accept this order (%s). Please review it and try again.", ne.Message)
		}
		return "We couldn't reach the kitchen. Your cart is saved, please try again."
	}
	return "Something went wrong placing your order. Your cart is saved, please try again."
}

// Confirmation renders the service snapshot. Prices come from order, never
// from the local menu, which only supplies display names.
func Confirmation(order domain.Order, menu domain.Menu) []string {
	name := order.CustomerName
	if name == "" {
		name = "Guest"
	}
	lines := []string{fmt.Sprintf("Order %s for %s is %s.", order.ID, name, strings.ReplaceAll(string(order.Status), "_", " "))}
	for _, line := range order.Items {
		lines = append(lines, fmt.Sprintf("%d x %s  %s", line.Quantity, menu.Describe(line.LineItem), pricing.Format(line.Price)))
	}
	lines = append(lines, "Total: "+pricing.Format(order.Total))
	return lines
}
