package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/happyshop/storefront/internal/orders"
)

// OrderHandler accepts cart snapshots and hands back an order identifier.
// Orders are not persisted; this collaborator exists so the checkout flow has
// a real endpoint to submit to.
type OrderHandler struct {
	log    zerolog.Logger
	nextID atomic.Int64
}

func NewOrderHandler(log zerolog.Logger) *OrderHandler {
	h := &OrderHandler{log: log}
	h.nextID.Store(1000)
	return h
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sub orders.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(sub.Items) == 0 {
		respondError(w, http.StatusBadRequest, "order has no items")
		return
	}
	for _, item := range sub.Items {
		if item.ID <= 0 || item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "order items must have positive id and quantity")
			return
		}
	}

	conf := orders.Confirmation{
		Message:     "Order placed successfully",
		OrderNumber: "ORD-" + uuid.NewString()[:8],
		OrderID:     h.nextID.Add(1),
	}
	h.log.Info().Str("order_number", conf.OrderNumber).Int("items", len(sub.Items)).Float64("total", sub.Total).Msg("order accepted")

	respondJSON(w, http.StatusOK, conf)
}

// Get handles GET /api/orders/{orderNumber} with a mock order record.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	respondJSON(w, http.StatusOK, envelope{
		Message: "success",
		Data: map[string]any{
			"order_number": orderNumber,
			"status":       "pending",
			"items":        []any{},
		},
	})
}
