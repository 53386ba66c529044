package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/session"
)

// Messages shown to shoppers
const (
	msgEmptyOrder    = "Please add items to your order first!"
	msgPizzaNotFound = "Pizza not found"
	msgInternal      = "Internal server error"
)

var errNoSession = errors.New("no session in request context")

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// validationMessage turns a validation error into text for the shopper
func validationMessage(err error) (string, bool) {
	if errors.Is(err, service.ErrEmptyOrder) {
		return msgEmptyOrder, true
	}
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return "", false
	}
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:], true
}

// lockSession returns the request's session locked for the caller, who must unlock it
func lockSession(r *http.Request) (*session.Session, error) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return nil, errNoSession
	}
	sess.Lock()
	return sess, nil
}
