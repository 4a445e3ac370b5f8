package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"iyan-ordering/internal/cart"
	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/orderclient"
	"iyan-ordering/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrders struct {
	calls   int
	got     orderclient.CreateOrderRequest
	order   domain.Order
	err     error
	started chan struct{}
	release chan struct{}
}

func (s *stubOrders) CreateOrder(ctx context.Context, req orderclient.CreateOrderRequest) (domain.Order, error) {
	s.calls++
	s.got = req
	if s.started != nil {
		close(s.started)
		<-s.release
	}
	return s.order, s.err
}

func filledStore() *cart.Store {
	store := cart.NewStore(cart.State{})
	store.Dispatch(cart.AddItem{Item: domain.LineItem{Soups: []string{"egusi"}, Proteins: []string{"beef"}, Portion: "small", Quantity: 1}})
	store.Dispatch(cart.SetCustomerName{Name: "  Ada "})
	return store
}

func TestSubmitEmptyCartNeverCallsService(t *testing.T) {
	orders := &stubOrders{}
	s := New(cart.NewStore(cart.State{}), orders)

	_, err := s.Submit(context.Background())

	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, orders.calls)
	assert.Equal(t, "Your cart is empty. Add a plate before placing your order.", StatusMessage(err))
}

func TestSubmitRejectsItemWithoutSoup(t *testing.T) {
	orders := &stubOrders{}
	store := cart.NewStore(cart.State{Items: []domain.LineItem{{Proteins: []string{"beef"}, Quantity: 1}}})

	_, err := New(store, orders).Submit(context.Background())

	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, orders.calls)
	assert.Contains(t, StatusMessage(err), "soup")
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	orders := &stubOrders{order: domain.Order{ID: "AB12CD34", Total: 5200, Status: domain.StatusConfirmed}}
	store := filledStore()

	order, err := New(store, orders).Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5200), order.Total)
	assert.Equal(t, "Ada", orders.got.CustomerName)
	assert.Len(t, orders.got.Items, 1)
	assert.True(t, store.Snapshot().Empty())
}

type addingOrders struct {
	store *cart.Store
	item  domain.LineItem
	got   orderclient.CreateOrderRequest
}

func (a *addingOrders) CreateOrder(_ context.Context, req orderclient.CreateOrderRequest) (domain.Order, error) {
	a.got = req
	a.store.Dispatch(cart.AddItem{Item: a.item})
	return domain.Order{ID: "AB12CD34", Status: domain.StatusConfirmed}, nil
}

func TestSubmitKeepsLineAddedInFlight(t *testing.T) {
	store := filledStore()
	ewedu := domain.LineItem{Soups: []string{"ewedu"}, Quantity: 1}
	orders := &addingOrders{store: store, item: ewedu}

	_, err := New(store, orders).Submit(context.Background())

	require.NoError(t, err)
	assert.Len(t, orders.got.Items, 1)
	after := store.Snapshot()
	require.Len(t, after.Items, 1)
	assert.Equal(t, ewedu, after.Items[0])
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	orders := &stubOrders{err: &orderclient.NetworkError{Op: "create order", Err: errors.New("connection refused")}}
	store := filledStore()

	_, err := New(store, orders).Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, store.Snapshot().Len())
	assert.Equal(t, "  Ada ", store.Snapshot().CustomerName)
	assert.Contains(t, StatusMessage(err), "try again")
}

func TestSubmitRejectsReentry(t *testing.T) {
	orders := &stubOrders{
		order:   domain.Order{ID: "AB12CD34"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(filledStore(), orders)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	<-orders.started

	assert.True(t, s.Submitting())
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(orders.release)
	require.NoError(t, <-done)
	assert.False(t, s.Submitting())
	assert.Equal(t, 1, orders.calls)
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: "Your order has been placed!"},
		{name: "in flight", err: ErrSubmissionInFlight, want: "Your order is already being placed. Please wait."},
		{
			name: "rejected",
			err:  &orderclient.NetworkError{Status: http.StatusBadRequest, Message: "unknown soup"},
			want: "The kitchen couldn't accept this order (unknown soup). Please review it and try again.",
		},
		{
			name: "server down",
			err:  &orderclient.NetworkError{Status: http.StatusServiceUnavailable, Message: "down"},
			want: "We couldn't reach the kitchen. Your cart is saved, please try again.",
		},
		{name: "other", err: errors.New("boom"), want: "Something went wrong placing your order. Your cart is saved, please try again."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusMessage(tc.err))
		})
	}
}

func TestConfirmationUsesServerPrices(t *testing.T) {
	order := domain.Order{
		ID:     "AB12CD34",
		Status: domain.StatusConfirmed,
		Items: []domain.OrderLine{
			{LineItem: domain.LineItem{Soups: []string{"ewedu", "gbegiri"}, Proteins: []string{"assorted"}, Portion: "small", Quantity: 2}, Price: 9999},
		},
		Total: 9999,
	}

	lines := Confirmation(order, seed.DefaultMenu())

	assert.Equal(t, []string{
		"Order AB12CD34 for Guest is confirmed.",
		"2 x Ewedu and Gbegiri with Assorted Meat (Small)  ₦9,999",
		"Total: ₦9,999",
	}, lines)
}
