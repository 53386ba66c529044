package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListMenu handles GET /api/menu
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListMenu(r.Context())
	if err != nil {
		h.logger.Error("failed to list menu", "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternal, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, entries, h.logger)
}

// GetMenuEntry handles GET /api/menu/{menuId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Pizza not found
func (h *MenuHandler) GetMenuEntry(w http.ResponseWriter, r *http.Request) {
	menuID, err := strconv.ParseInt(chi.URLParam(r, "menuId"), 10, 64)
	if err != nil {
		h.logger.Warn("invalid menu ID format", "menuId", chi.URLParam(r, "menuId"), "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	entry, err := h.service.GetMenuEntry(r.Context(), menuID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuEntryNotFound) {
			h.logger.Info("menu entry not found", "menuId", menuID)
			WriteError(w, http.StatusNotFound, msgPizzaNotFound, h.logger)
			return
		}

		h.logger.Error("failed to get menu entry", "menuId", menuID, "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternal, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, entry, h.logger)
}

// GetPricing handles GET /api/pricing
func (h *MenuHandler) GetPricing(w http.ResponseWriter, r *http.Request) {
	pricing, err := h.service.Pricing(r.Context())
	if err != nil {
		h.logger.Error("failed to load pricing", "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternal, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, pricing, h.logger)
}
