package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/session"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/view"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps are the collaborators the HTTP routes need
type RouterDeps struct {
	Menu           *service.MenuService
	Renderer       *view.Renderer
	Sessions       *session.Store
	Logger         *slog.Logger
	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter wires every storefront route
func NewRouter(d RouterDeps) http.Handler {
	healthHandler := NewHealthHandler(d.Sessions, d.Logger)
	menuHandler := NewMenuHandler(d.Menu, d.Logger)
	orderHandler := NewOrderHandler(d.Menu, d.Renderer, d.Logger)
	storefrontHandler := NewStorefrontHandler(d.Menu, d.Renderer, d.Logger)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	// Session-free catalog endpoints
	r.Get("/api/menu", menuHandler.ListMenu)
	r.Get("/api/menu/{menuId}", menuHandler.GetMenuEntry)
	r.Get("/api/pricing", menuHandler.GetPricing)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Sessions(d.Sessions, d.SecureCookies, d.Logger))

		// HTML storefront
		r.Get("/", storefrontHandler.Page)
		r.Post("/order/items/{menuId}", storefrontHandler.AddItem)
		r.Post("/order/remove/{itemId}", storefrontHandler.RemoveItem)
		r.Post("/order/custom", storefrontHandler.AddCustom)
		r.Post("/checkout", storefrontHandler.Checkout)

		// JSON order API
		r.Get("/api/order", orderHandler.GetOrder)
		r.Post("/api/order/items", orderHandler.AddItem)
		r.Post("/api/order/custom", orderHandler.AddCustom)
		r.Delete("/api/order/items/{itemId}", orderHandler.RemoveItem)
		r.Post("/api/checkout", orderHandler.Checkout)
	})

	return r
}
