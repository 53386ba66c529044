package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/view"
	"github.com/go-chi/chi/v5"
)

// AddItemRequest adds a menu pizza to the order
type AddItemRequest struct {
	MenuID   int64 `json:"menuId"`
	Quantity int   `json:"quantity,omitempty"`
}

// CheckoutResponse confirms a placed order
type CheckoutResponse struct {
	Receipt *models.Receipt `json:"receipt"`
	Message string          `json:"message"`
}

// OrderHandler serves the session order as JSON
type OrderHandler struct {
	menu     *service.MenuService
	renderer *view.Renderer
	log      *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(menu *service.MenuService, renderer *view.Renderer, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		menu:     menu,
		renderer: renderer,
		log:      log,
	}
}

// GetOrder handles GET /api/order
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to get order", err)
		return
	}
	defer sess.Unlock()

	WriteJSON(w, http.StatusOK, sess.Manager.Order(), h.log)
}

// AddItem handles POST /api/order/items
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	entry, err := h.menu.GetMenuEntry(r.Context(), req.MenuID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuEntryNotFound) {
			WriteError(w, http.StatusNotFound, msgPizzaNotFound, h.log)
			return
		}
		h.fail(w, "failed to get menu entry", err)
		return
	}

	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to add item", err)
		return
	}
	defer sess.Unlock()

	if err := sess.Manager.AddCatalogItem(*entry, req.Quantity, nil); err != nil {
		h.fail(w, "failed to add item", err)
		return
	}

	h.log.Info("item added", "session_id", sess.ID, "menu_id", entry.ID)
	WriteJSON(w, http.StatusOK, sess.Manager.Order(), h.log)
}

// AddCustom handles POST /api/order/custom
func (h *OrderHandler) AddCustom(w http.ResponseWriter, r *http.Request) {
	var req service.CustomPizza
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode custom pizza request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to build custom pizza", err)
		return
	}
	defer sess.Unlock()

	item, err := sess.Manager.BuildCustomItem(req)
	if err != nil {
		h.writeActionError(w, "failed to build custom pizza", err)
		return
	}

	h.log.Info("custom pizza added", "session_id", sess.ID, "item_id", item.ID, "size", req.Size)
	WriteJSON(w, http.StatusOK, sess.Manager.Order(), h.log)
}

// RemoveItem handles DELETE /api/order/items/{itemId}
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return
	}

	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to remove item", err)
		return
	}
	defer sess.Unlock()

	if err := sess.Manager.RemoveItem(itemID); err != nil {
		h.fail(w, "failed to remove item", err)
		return
	}

	WriteJSON(w, http.StatusOK, sess.Manager.Order(), h.log)
}

// Checkout handles POST /api/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to check out", err)
		return
	}
	defer sess.Unlock()

	receipt, err := sess.Manager.Checkout()
	if err != nil {
		h.writeActionError(w, "failed to check out", err)
		return
	}

	h.log.Info("order placed", "session_id", sess.ID, "receipt_id", receipt.ID, "total", receipt.Total.StringFixed(2))
	WriteJSON(w, http.StatusOK, CheckoutResponse{
		Receipt: receipt,
		Message: h.renderer.ConfirmationMessage(receipt),
	}, h.log)
}

// writeActionError answers 422 for rejected input and 500 for anything else
func (h *OrderHandler) writeActionError(w http.ResponseWriter, msg string, err error) {
	if text, ok := validationMessage(err); ok {
		h.log.Info(msg, "error", err)
		WriteError(w, http.StatusUnprocessableEntity, text, h.log)
		return
	}
	h.fail(w, msg, err)
}

func (h *OrderHandler) fail(w http.ResponseWriter, msg string, err error) {
	h.log.Error(msg, "error", err)
	WriteError(w, http.StatusInternalServerError, msgInternal, h.log)
}
