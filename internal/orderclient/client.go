// Package orderclient talks to the order service REST API.
package orderclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"iyan-ordering/internal/dialogue"
	"iyan-ordering/internal/domain"

	"github.com/go-resty/resty/v2"
)

// Client is a thin typed wrapper over the /api routes.
type Client struct {
	http *resty.Client
}

// CreateOrderRequest is the POST /api/order body.
type CreateOrderRequest struct {
	CustomerName string            `json:"customer_name"`
	Items        []domain.LineItem `json:"items"`
}

// BotRequest is the POST /api/bot/process body.
type BotRequest struct {
	Message string            `json:"message"`
	Cart    []domain.LineItem `json:"cart"`
	State   dialogue.State    `json:"state"`
}

// Audio is synthesized speech.
type Audio struct {
	Data        []byte
	ContentType string
}

type errorBody struct {
	Error string `json:"error"`
}

// New builds a client for baseURL. A nil httpClient gets a 10s timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("order service base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	r := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	return &Client{http: r}, nil
}

// GetMenu fetches the catalog.
func (c *Client) GetMenu(ctx context.Context) (domain.Menu, error) {
	var menu domain.Menu
	err := c.do(ctx, "get menu", http.MethodGet, "/api/menu", nil, &menu)
	return menu, err
}

// CreateOrder submits items and returns the priced snapshot.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, "create order", http.MethodPost, "/api/order", req, &order)
	return order, err
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, "get order", http.MethodGet, "/api/order/"+url.PathEscape(id), nil, &order)
	return order, err
}

// ListOrders returns every order, newest first.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, "list orders", http.MethodGet, "/api/orders", nil, &orders)
	return orders, err
}

// GetTracking returns the delivery progress of an order.
func (c *Client) GetTracking(ctx context.Context, id string) (domain.Tracking, error) {
	var tr domain.Tracking
	err := c.do(ctx, "get tracking", http.MethodGet, "/api/order/"+url.PathEscape(id)+"/tracking", nil, &tr)
	return tr, err
}

// BotGreeting fetches the opening line.
func (c *Client) BotGreeting(ctx context.Context) (string, error) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, "bot greeting", http.MethodGet, "/api/bot/greeting", nil, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

// BotProcess sends one final transcript to the service-side machine.
func (c *Client) BotProcess(ctx context.Context, req BotRequest) (dialogue.Reply, error) {
	var reply dialogue.Reply
	if req.Cart == nil {
		req.Cart = []domain.LineItem{}
	}
	err := c.do(ctx, "bot process", http.MethodPost, "/api/bot/process", req, &reply)
	return reply, err
}

// Synthesize turns text into audio.
func (c *Client) Synthesize(ctx context.Context, text string) (Audio, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "audio/*").
		SetBody(map[string]string{"text": text}).
		SetError(&errorBody{}).
		Post("/api/tts")
	if err != nil {
		return Audio{}, &NetworkError{Op: "synthesize", Err: err}
	}
	if resp.IsError() {
		return Audio{}, responseError("synthesize", resp)
	}
	return Audio{Data: resp.Body(), ContentType: resp.Header().Get("Content-Type")}, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx).SetError(&errorBody{})
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if resp.IsError() {
		return responseError(op, resp)
	}
	return nil
}

func responseError(op string, resp *resty.Response) error {
	return &NetworkError{
		Op:      op,
		Status:  resp.StatusCode(),
		Message: errorMessage(resp, resp.Status()),
	}
}

func errorMessage(resp *resty.Response, fallback string) string {
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return msg
		}
	}
	if fallback == "" {
		return fmt.Sprintf("status %d", resp.StatusCode())
	}
	return fallback
}
