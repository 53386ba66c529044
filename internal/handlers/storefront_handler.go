package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/session"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/view"
	"github.com/go-chi/chi/v5"
)

// StorefrontHandler serves the HTML storefront. Every action redirects back
// to the page, which shows the pending notification once.
type StorefrontHandler struct {
	menu     *service.MenuService
	renderer *view.Renderer
	log      *slog.Logger
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(menu *service.MenuService, renderer *view.Renderer, log *slog.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		menu:     menu,
		renderer: renderer,
		log:      log,
	}
}

// Page handles GET /
func (h *StorefrontHandler) Page(w http.ResponseWriter, r *http.Request) {
	pricing, err := h.menu.Pricing(r.Context())
	if err != nil {
		h.fail(w, "failed to load pricing", err)
		return
	}

	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to render page", err)
		return
	}
	defer sess.Unlock()

	var buf bytes.Buffer
	err = h.renderer.RenderPage(&buf, view.Page{
		Doc:          sess.Document,
		Pricing:      pricing,
		Form:         sess.Manager.Form(),
		MaxQuantity:  sess.Manager.MaxQuantity(),
		Notification: sess.TakeNotification(),
	})
	if err != nil {
		h.fail(w, "failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("failed to write page", "error", err)
	}
}

// AddItem handles POST /order/items/{menuId}
func (h *StorefrontHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	menuID, parseErr := strconv.ParseInt(chi.URLParam(r, "menuId"), 10, 64)

	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to add item", err)
		return
	}
	defer sess.Unlock()

	if parseErr != nil {
		sess.Notify(view.NotificationError, msgPizzaNotFound)
		h.redirectHome(w, r)
		return
	}

	entry, err := h.menu.GetMenuEntry(r.Context(), menuID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuEntryNotFound) {
			sess.Notify(view.NotificationError, msgPizzaNotFound)
			h.redirectHome(w, r)
			return
		}
		h.fail(w, "failed to get menu entry", err)
		return
	}

	if err := sess.Manager.AddCatalogItem(*entry, 1, nil); err != nil {
		h.fail(w, "failed to add item", err)
		return
	}

	h.log.Info("item added", "session_id", sess.ID, "menu_id", entry.ID)
	h.redirectHome(w, r)
}

// AddCustom handles POST /order/custom
func (h *StorefrontHandler) AddCustom(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to build custom pizza", err)
		return
	}
	defer sess.Unlock()

	pizza, err := service.ParseCustomPizza(r.PostForm.Get("size"), r.PostForm["toppings"], r.PostForm.Get("quantity"))
	if err == nil {
		_, err = sess.Manager.BuildCustomItem(pizza)
	}
	if err != nil {
		h.handleActionError(w, r, sess, "failed to build custom pizza", err)
		return
	}

	h.log.Info("custom pizza added", "session_id", sess.ID, "size", pizza.Size, "quantity", pizza.Quantity)
	h.redirectHome(w, r)
}

// RemoveItem handles POST /order/remove/{itemId}
func (h *StorefrontHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, parseErr := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)

	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to remove item", err)
		return
	}
	defer sess.Unlock()

	// an id that cannot match any line is a no-op, like an unknown one
	if parseErr == nil {
		if err := sess.Manager.RemoveItem(itemID); err != nil {
			h.fail(w, "failed to remove item", err)
			return
		}
	}

	h.redirectHome(w, r)
}

// Checkout handles POST /checkout
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, err := lockSession(r)
	if err != nil {
		h.fail(w, "failed to check out", err)
		return
	}
	defer sess.Unlock()

	receipt, err := sess.Manager.Checkout()
	if err != nil {
		h.handleActionError(w, r, sess, "failed to check out", err)
		return
	}

	h.log.Info("order placed", "session_id", sess.ID, "receipt_id", receipt.ID, "total", receipt.Total.StringFixed(2))
	sess.Notify(view.NotificationInfo, h.renderer.ConfirmationMessage(receipt))
	h.redirectHome(w, r)
}

// handleActionError shows validation errors to the shopper and fails the request otherwise
func (h *StorefrontHandler) handleActionError(w http.ResponseWriter, r *http.Request, sess *session.Session, msg string, err error) {
	if text, ok := validationMessage(err); ok {
		h.log.Info(msg, "session_id", sess.ID, "error", err)
		sess.Notify(view.NotificationError, text)
		h.redirectHome(w, r)
		return
	}
	h.fail(w, msg, err)
}

func (h *StorefrontHandler) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *StorefrontHandler) fail(w http.ResponseWriter, msg string, err error) {
	h.log.Error(msg, "error", err)
	http.Error(w, msgInternal, http.StatusInternalServerError)
}
