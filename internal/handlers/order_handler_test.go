package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
	return order
}

func TestOrderHandler_AddItem(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.menu, env.renderer, env.log)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(*testing.T, models.Order)
	}{
		{
			name:           "menu pizza",
			requestBody:    AddItemRequest{MenuID: 1},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, order models.Order) {
				require.Len(t, order.Items, 1)
				assert.Equal(t, "Margherita", order.Items[0].Name)
				assert.Equal(t, 1, order.Items[0].Quantity)
				assert.True(t, decimal.RequireFromString("10.99").Equal(order.Total))
			},
		},
		{
			name:           "menu pizza with quantity",
			requestBody:    AddItemRequest{MenuID: 2, Quantity: 3},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, order models.Order) {
				require.Len(t, order.Items, 1)
				assert.True(t, decimal.RequireFromString("38.97").Equal(order.Total))
			},
		},
		{
			name:           "unknown pizza",
			requestBody:    AddItemRequest{MenuID: 99999},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req, _ := env.newSessionRequest(t, http.MethodPost, "/api/order/items", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.AddItem(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, decodeOrder(t, w))
			}
		})
	}
}

func TestOrderHandler_AddCustom(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.menu, env.renderer, env.log)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "medium with two toppings",
			body:           `{"size":"medium","toppings":["mushroom","olive"],"quantity":2}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing size",
			body:           `{"toppings":[],"quantity":1}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "Size: a size must be selected",
		},
		{
			name:           "missing quantity",
			body:           `{"size":"small"}`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "unknown topping",
			body:           `{"size":"small","toppings":["glue"],"quantity":1}`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid JSON",
			body:           `{"size":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, sess := env.newSessionRequest(t, http.MethodPost, "/api/order/custom", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.AddCustom(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.Empty(t, sess.Manager.Order().Items)
				if tt.expectedError != "" {
					var resp map[string]string
					require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
					assert.Equal(t, tt.expectedError, resp["error"])
				}
				return
			}

			order := decodeOrder(t, w)
			require.Len(t, order.Items, 1)
			item := order.Items[0]
			assert.Equal(t, "Custom Medium Pizza", item.Name)
			assert.True(t, decimal.NewFromInt(14).Equal(item.Price), "unit price %s", item.Price)
			assert.True(t, decimal.NewFromInt(28).Equal(order.Total), "total %s", order.Total)
		})
	}
}

func TestOrderHandler_RemoveItem(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.menu, env.renderer, env.log)

	r := chi.NewRouter()
	r.Delete("/api/order/items/{itemId}", handler.RemoveItem)

	t.Run("removes every line with the id", func(t *testing.T) {
		req, sess := env.newSessionRequest(t, http.MethodDelete, "/api/order/items/1", nil)
		margherita, err := env.menu.GetMenuEntry(req.Context(), 1)
		require.NoError(t, err)
		pepperoni, err := env.menu.GetMenuEntry(req.Context(), 2)
		require.NoError(t, err)
		require.NoError(t, sess.Manager.AddCatalogItem(*margherita, 1, nil))
		require.NoError(t, sess.Manager.AddCatalogItem(*pepperoni, 1, nil))
		require.NoError(t, sess.Manager.AddCatalogItem(*margherita, 1, nil))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		order := decodeOrder(t, w)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Pepperoni", order.Items[0].Name)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		req, sess := env.newSessionRequest(t, http.MethodDelete, "/api/order/items/999", nil)
		margherita, err := env.menu.GetMenuEntry(req.Context(), 1)
		require.NoError(t, err)
		require.NoError(t, sess.Manager.AddCatalogItem(*margherita, 1, nil))
		before := sess.Manager.Order()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, before, sess.Manager.Order())
	})

	t.Run("invalid id", func(t *testing.T) {
		req, _ := env.newSessionRequest(t, http.MethodDelete, "/api/order/items/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_Checkout(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.menu, env.renderer, env.log)

	req, sess := env.newSessionRequest(t, http.MethodPost, "/api/checkout", nil)

	// empty order is rejected
	w := httptest.NewRecorder()
	handler.Checkout(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var errResp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Equal(t, "Please add items to your order first!", errResp["error"])

	margherita, err := env.menu.GetMenuEntry(req.Context(), 1)
	require.NoError(t, err)
	require.NoError(t, sess.Manager.AddCatalogItem(*margherita, 1, nil))
	require.NoError(t, sess.Manager.AddCatalogItem(*margherita, 1, nil))

	w = httptest.NewRecorder()
	handler.Checkout(w, withSession(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), sess))
	require.Equal(t, http.StatusOK, w.Code)

	var resp CheckoutResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Receipt)
	assert.NotEmpty(t, resp.Receipt.ID)
	assert.Equal(t, 2, resp.Receipt.ItemCount)
	assert.True(t, decimal.RequireFromString("21.98").Equal(resp.Receipt.Total))
	assert.Equal(t, "Order placed! Total: $21.98\nThank you for your order!", resp.Message)
	assert.Empty(t, sess.Manager.Order().Items)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.menu, env.renderer, env.log)

	req, _ := env.newSessionRequest(t, http.MethodGet, "/api/order", nil)
	w := httptest.NewRecorder()
	handler.GetOrder(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	order := decodeOrder(t, w)
	assert.Empty(t, order.Items)
	assert.True(t, order.Total.IsZero())
}

func TestOrderHandler_NoSession(t *testing.T) {
	env := newTestEnv(t)
	handler := NewOrderHandler(env.menu, env.renderer, env.log)

	w := httptest.NewRecorder()
	handler.GetOrder(w, httptest.NewRequest(http.MethodGet, "/api/order", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
