package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/pricing"

	"github.com/google/uuid"
)

// DefaultCustomerName is used when an order arrives without a name.
const DefaultCustomerName = "Guest"

// EstimatedDelivery is quoted for orders still in progress.
const EstimatedDelivery = "30-45 minutes"

// maxIDAttempts bounds regeneration of colliding order ids.
const maxIDAttempts = 3

type orderRepo interface {
	Create(ctx context.Context, order domain.Order) error
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) (domain.Order, error)
}

type menuSource interface {
	Menu(ctx context.Context) (domain.Menu, error)
}

type Service struct {
	repo  orderRepo
	menus menuSource
	now   func() time.Time
	newID func() string
}

func New(repo orderRepo, menus menuSource) *Service {
	return &Service{repo: repo, menus: menus, now: time.Now, newID: NewID}
}

// NewID returns 8 upper case hex characters taken from a random UUID.
func NewID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:8])
}

type CreateInput struct {
	CustomerName string            `json:"customer_name"`
	Items        []domain.LineItem `json:"items"`
}

// Create prices every line against the current menu and stores the order as
// confirmed.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Order, error) {
	if len(in.Items) == 0 {
		return domain.Order{}, domain.Invalid("items", "at least one item is required")
	}
	for i, item := range in.Items {
		if err := item.Validate(); err != nil {
			return domain.Order{}, fmt.Errorf("item %d: %w", i+1, err)
		}
	}

	menu, err := s.menus.Menu(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load menu: %w", err)
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = DefaultCustomerName
	}
	now := s.now().UTC()
	order := domain.Order{
		ID:           s.newID(),
		CustomerName: name,
		Items:        make([]domain.OrderLine, 0, len(in.Items)),
		Status:       domain.StatusConfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, item := range in.Items {
		item = item.Clone()
		item.Soups = domain.Unique(item.Soups)
		item.Proteins = domain.Unique(item.Proteins)
		price := pricing.Price(item, menu)
		order.Items = append(order.Items, domain.OrderLine{LineItem: item, Price: price})
		order.Total += price
	}

	for attempt := 1; ; attempt++ {
		err := s.repo.Create(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) || attempt == maxIDAttempts {
			return domain.Order{}, fmt.Errorf("store order: %w", err)
		}
		order.ID = s.newID()
	}
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	id = normalizeID(id)
	if id == "" {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.repo.List(ctx, limit)
}

// UpdateStatus advances an order one lifecycle step, or cancels it before it
// leaves the kitchen.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (domain.Order, error) {
	next, ok := domain.ParseStatus(status)
	if !ok {
		return domain.Order{}, domain.Invalid("status", "unknown status %q", status)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !current.Status.CanTransition(next) {
		return domain.Order{}, domain.Invalid("status", "cannot move from %s to %s", current.Status, next)
	}
	return s.repo.UpdateStatus(ctx, current.ID, current.Status, next, s.now().UTC())
}

// Tracking reports the progress of order id.
func (s *Service) Tracking(ctx context.Context, id string) (domain.Tracking, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return domain.Tracking{}, err
	}
	return TrackingFor(order), nil
}

// TrackingFor summarizes order. Statuses outside the forward lifecycle report
// index 0.
func TrackingFor(order domain.Order) domain.Tracking {
	idx := order.Status.Index()
	if idx < 0 {
		idx = 0
	}
	eta := EstimatedDelivery
	if order.Status.Terminal() {
		eta = ""
	}
	return domain.Tracking{
		CurrentStatus:     order.Status,
		StatusIndex:       idx,
		TotalStatuses:     len(domain.StatusProgression),
		EstimatedDelivery: eta,
	}
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
