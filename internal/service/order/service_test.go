package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"iyan-ordering/internal/domain"
	orderrepo "iyan-ordering/internal/repository/order"
	"iyan-ordering/internal/seed"
)

type stubMenus struct {
	menu domain.Menu
	err  error
}

func (s stubMenus) Menu(context.Context) (domain.Menu, error) {
	return s.menu, s.err
}

type failingRepo struct {
	orderrepo.Repository
	err error
}

func (f failingRepo) Create(context.Context, domain.Order) error { return f.err }

func newService() (*Service, *orderrepo.Memory) {
	repo := orderrepo.NewMemory()
	svc := New(repo, stubMenus{menu: seed.DefaultMenu()})
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreatePricesAndConfirms(t *testing.T) {
	svc, repo := newService()

	order, err := svc.Create(context.Background(), CreateInput{
		CustomerName: "Test Customer",
		Items: []domain.LineItem{
			{Soups: []string{"egusi"}, Proteins: []string{"beef"}, Portion: "small", Quantity: 1},
			{Soups: []string{"ewedu", "gbegiri"}, Proteins: []string{"assorted"}, Portion: "small", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.Status != domain.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", order.Status)
	}
	if order.Items[0].Price != 5000 || order.Items[1].Price != 6300 || order.Total != 11300 {
		t.Fatalf("unexpected prices %+v total=%d", order.Items, order.Total)
	}
	if !regexp.MustCompile(`^[0-9A-F]{8}$`).MatchString(order.ID) {
		t.Fatalf("unexpected id %q", order.ID)
	}
	if _, err := repo.Get(context.Background(), order.ID); err != nil {
		t.Fatalf("order not stored: %v", err)
	}
}

func TestCreateDefaultsName(t *testing.T) {
	svc, _ := newService()
	order, err := svc.Create(context.Background(), CreateInput{
		Items: []domain.LineItem{{Soups: []string{"ogbono"}, Portion: "medium", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.CustomerName != DefaultCustomerName {
		t.Fatalf("name = %q", order.CustomerName)
	}
	// (1500*1.5 + 2200) * 2
	if order.Total != 8900 {
		t.Fatalf("total = %d, want 8900", order.Total)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService()
	tests := []struct {
		name  string
		items []domain.LineItem
	}{
		{name: "no items", items: nil},
		{name: "no soup", items: []domain.LineItem{{Proteins: []string{"beef"}, Portion: "small", Quantity: 1}}},
		{name: "zero quantity", items: []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 0}}},
		{name: "too many", items: []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 21}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateInput{Items: tc.items})
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateSurfacesStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	svc := New(failingRepo{err: boom}, stubMenus{menu: seed.DefaultMenu()})
	_, err := svc.Create(context.Background(), CreateInput{Items: []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 1}}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}

	svc = New(orderrepo.NewMemory(), stubMenus{err: boom})
	_, err = svc.Create(context.Background(), CreateInput{Items: []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 1}}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected menu error, got %v", err)
	}
}

func TestCreateRetriesTakenID(t *testing.T) {
	svc, repo := newService()
	ids := []string{"AAAA0001", "AAAA0001", "BBBB0002"}
	svc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	item := []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 1}}

	if _, err := svc.Create(context.Background(), CreateInput{Items: item}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	order, err := svc.Create(context.Background(), CreateInput{Items: item})
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if order.ID != "BBBB0002" {
		t.Fatalf("id = %q, want regenerated id", order.ID)
	}
	if _, err := repo.Get(context.Background(), "BBBB0002"); err != nil {
		t.Fatalf("regenerated order not stored: %v", err)
	}
}

func TestCreateGivesUpOnRepeatedCollisions(t *testing.T) {
	svc, _ := newService()
	svc.newID = func() string { return "AAAA0001" }
	item := []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 1}}

	if _, err := svc.Create(context.Background(), CreateInput{Items: item}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{Items: item}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetNormalizesID(t *testing.T) {
	svc, _ := newService()
	svc.newID = func() string { return "ABCDEF12" }
	_, _ = svc.Create(context.Background(), CreateInput{Items: []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 1}}})

	if _, err := svc.Get(context.Background(), " abcdef12 "); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), "NONEXIST"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, _ := newService()
	svc.newID = func() string { return "ABCDEF12" }
	ctx := context.Background()
	_, _ = svc.Create(ctx, CreateInput{Items: []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 1}}})

	if _, err := svc.UpdateStatus(ctx, "ABCDEF12", "ready"); !domain.IsValidation(err) {
		t.Fatalf("skipping a step must fail, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "ABCDEF12", "teleported"); !domain.IsValidation(err) {
		t.Fatalf("unknown status must fail, got %v", err)
	}

	for _, next := range []string{"baking", "ready", "out_for_delivery"} {
		if _, err := svc.UpdateStatus(ctx, "ABCDEF12", next); err != nil {
			t.Fatalf("UpdateStatus %s: %v", next, err)
		}
	}
	if _, err := svc.UpdateStatus(ctx, "ABCDEF12", "cancelled"); !domain.IsValidation(err) {
		t.Fatalf("cancel after dispatch must fail, got %v", err)
	}

	order, err := svc.UpdateStatus(ctx, "ABCDEF12", "delivered")
	if err != nil {
		t.Fatalf("UpdateStatus delivered: %v", err)
	}
	if order.Status != domain.StatusDelivered {
		t.Fatalf("status = %s", order.Status)
	}
}

func TestTracking(t *testing.T) {
	svc, _ := newService()
	svc.newID = func() string { return "ABCDEF12" }
	ctx := context.Background()
	_, _ = svc.Create(ctx, CreateInput{Items: []domain.LineItem{{Soups: []string{"egusi"}, Quantity: 1}}})

	tr, err := svc.Tracking(ctx, "ABCDEF12")
	if err != nil {
		t.Fatalf("Tracking: %v", err)
	}
	want := domain.Tracking{CurrentStatus: domain.StatusConfirmed, StatusIndex: 1, TotalStatuses: 6, EstimatedDelivery: EstimatedDelivery}
	if tr != want {
		t.Fatalf("tracking = %+v, want %+v", tr, want)
	}

	cancelled := TrackingFor(domain.Order{Status: domain.StatusCancelled})
	if cancelled.StatusIndex != 0 || cancelled.EstimatedDelivery != "" {
		t.Fatalf("unexpected cancelled tracking %+v", cancelled)
	}
}
