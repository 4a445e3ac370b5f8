package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"iyan-ordering/internal/dialogue"
	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/pricing"
	ordersvc "iyan-ordering/internal/service/order"
	ttssvc "iyan-ordering/internal/service/tts"

	"github.com/gin-gonic/gin"
)

const defaultListLimit = 50

type handlers struct {
	menus  menuService
	orders orderService
	tts    ttsService
	logger *log.Logger
}

type botRequest struct {
	Message string            `json:"message"`
	Cart    []domain.LineItem `json:"cart"`
	State   string            `json:"state"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type ttsRequest struct {
	Text string `json:"text"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *handlers) getMenu(c *gin.Context) {
	menu, err := h.menus.Menu(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *handlers) getSoups(c *gin.Context) {
	soups, err := h.menus.Soups(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, soups)
}

func (h *handlers) getProteins(c *gin.Context) {
	proteins, err := h.menus.Proteins(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, proteins)
}

func (h *handlers) quote(c *gin.Context) {
	var item domain.LineItem
	if err := c.ShouldBindJSON(&item); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if err := item.Validate(); err != nil {
		h.writeError(c, err)
		return
	}
	menu, err := h.menus.Menu(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricing.Quote(item, menu))
}

func (h *handlers) createOrder(c *gin.Context) {
	var in ordersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	order, err := h.orders.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) listOrders(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeBadRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}
	orders, err := h.orders.List(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (h *handlers) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) tracking(c *gin.Context) {
	tracking, err := h.orders.Tracking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracking)
}

func (h *handlers) botGreeting(c *gin.Context) {
	catalog, err := h.catalog(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dialogue.Reply{
		Message:    catalog.Greeting(),
		State:      dialogue.StateGreeting,
		Recognized: true,
	})
}

func (h *handlers) botProcess(c *gin.Context) {
	var req botRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeBadRequest(c, "message is required")
		return
	}
	catalog, err := h.catalog(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	reply := catalog.Step(dialogue.ParseState(req.State), req.Message, req.Cart)
	c.JSON(http.StatusOK, reply)
}

func (h *handlers) catalog(c *gin.Context) (*dialogue.Catalog, error) {
	menu, err := h.menus.Menu(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return dialogue.NewCatalog(menu), nil
}

func (h *handlers) synthesize(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	audio, err := h.tts.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, audio.ContentType, audio.Data)
}

func (h *handlers) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(err)})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "order status changed, reload and retry"})
	case errors.Is(err, ttssvc.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "text to speech is not configured"})
	case errors.Is(err, ttssvc.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "text to speech upstream failed"})
	default:
		h.logger.Printf("api: %s %s error=%v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return "order not found"
	case errors.Is(err, domain.ErrMenuNotFound):
		return "menu not found"
	default:
		return "not found"
	}
}

func writeBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
