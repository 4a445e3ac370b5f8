package menu

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"iyan-ordering/internal/domain"
)

type menuRepo interface {
	Load(ctx context.Context) (domain.Menu, error)
}

// Service serves the catalog, caching the last load for ttl.
type Service struct {
	repo     menuRepo
	ttl      time.Duration
	fallback *domain.Menu
	now      func() time.Time
	logger   *log.Logger

	mu       sync.Mutex
	cached   domain.Menu
	loadedAt time.Time
	valid    bool
}

type Option func(*Service)

// WithFallback serves menu when the store has never been seeded.
func WithFallback(menu domain.Menu) Option {
	return func(s *Service) {
		m := menu.Clone()
		s.fallback = &m
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds the service. A ttl of zero disables caching.
func New(repo menuRepo, ttl time.Duration, opts ...Option) *Service {
	s := &Service{repo: repo, ttl: ttl, now: time.Now, logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Menu returns the current catalog.
func (s *Service) Menu(ctx context.Context) (domain.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid && s.ttl > 0 && s.now().Sub(s.loadedAt) < s.ttl {
		return s.cached.Clone(), nil
	}

	menu, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && s.fallback != nil {
			s.logger.Printf("menu service: store not seeded, serving built-in menu")
			menu = s.fallback.Clone()
		} else {
			return domain.Menu{}, err
		}
	}
	s.cached = menu
	s.loadedAt = s.now()
	s.valid = true
	return menu.Clone(), nil
}

// Soups is the soup list in catalog order.
func (s *Service) Soups(ctx context.Context) ([]domain.Soup, error) {
	menu, err := s.Menu(ctx)
	if err != nil {
		return nil, err
	}
	return menu.Soups, nil
}

// Proteins is the protein list in catalog order.
func (s *Service) Proteins(ctx context.Context) ([]domain.Protein, error) {
	menu, err := s.Menu(ctx)
	if err != nil {
		return nil, err
	}
	return menu.Proteins, nil
}

// Invalidate drops the cached catalog so the next call reloads it.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.mu.Unlock()
}
