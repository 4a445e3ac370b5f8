package domain

import (
	"strings"
	"time"
)

// OrderStatus is owned by the order service and only interpreted by clients.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// StatusProgression lists the forward lifecycle in order.
var StatusProgression = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
}

// ParseStatus normalizes a wire status. "baking" is the bakery's name for preparing.
func ParseStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "baking" {
		return StatusPreparing, true
	}
	if s == StatusCancelled {
		return s, true
	}
	for _, known := range StatusProgression {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// Index is the position of s in StatusProgression, or -1.
func (s OrderStatus) Index() int {
	for i, known := range StatusProgression {
		if s == known {
			return i
		}
	}
	return -1
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether the lifecycle allows moving from s to next:
// one step forward, or cancellation before the order leaves the kitchen.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return s.Index() < StatusOutForDelivery.Index()
	}
	from, to := s.Index(), next.Index()
	return from >= 0 && to == from+1
}

// OrderLine is a priced snapshot of a LineItem at submission time.
type OrderLine struct {
	LineItem
	Price int64 `json:"price"`
}

// Order is the service-side record returned to clients. Total is authoritative.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderLine `json:"items"`
	Total        int64       `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Tracking summarizes progress for the order tracker view.
type Tracking struct {
	CurrentStatus     OrderStatus `json:"current_status"`
	StatusIndex       int         `json:"status_index"`
	TotalStatuses     int         `json:"total_statuses"`
	EstimatedDelivery string      `json:"estimated_delivery"`
}
