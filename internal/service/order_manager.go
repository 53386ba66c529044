package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaxQuantity bounds the builder's quantity input
const DefaultMaxQuantity = 10

// SummaryRenderer draws the order summary and grand total
type SummaryRenderer interface {
	RenderSummary(order *models.Order) error
}

// CustomPizza is a custom pizza as submitted from the builder
type CustomPizza struct {
	Size     models.PizzaSize `json:"size"`
	Toppings []string         `json:"toppings"`
	Quantity int              `json:"quantity"`
}

// OrderManager owns the order and builder state of one shopping session.
// It is not safe for concurrent use; callers serialize access per session.
type OrderManager struct {
	pricing     models.Pricing
	maxQuantity int
	view        SummaryRenderer
	now         func() time.Time
	newID       func() string

	order        models.Order
	form         models.BuilderForm
	lastCustomID int64
}

// Option configures an OrderManager
type Option func(*OrderManager)

// WithMaxQuantity sets the largest quantity accepted for a custom pizza
func WithMaxQuantity(n int) Option {
	return func(m *OrderManager) {
		if n > 0 {
			m.maxQuantity = n
		}
	}
}

// WithClock replaces the clock used for custom item ids and receipts
func WithClock(now func() time.Time) Option {
	return func(m *OrderManager) {
		m.now = now
	}
}

// WithReceiptIDs replaces the receipt id generator
func WithReceiptIDs(newID func() string) Option {
	return func(m *OrderManager) {
		m.newID = newID
	}
}

// NewOrderManager creates an order manager with an empty order.
// A nil view disables rendering.
func NewOrderManager(pricing models.Pricing, view SummaryRenderer, opts ...Option) *OrderManager {
	m := &OrderManager{
		pricing:     pricing,
		maxQuantity: DefaultMaxQuantity,
		view:        view,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
		order:       models.Order{Items: []models.LineItem{}, Total: decimal.Zero},
		form:        models.DefaultBuilderForm(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Order returns a snapshot of the current order
func (m *OrderManager) Order() models.Order {
	return m.order.Clone()
}

// Form returns a snapshot of the builder form
func (m *OrderManager) Form() models.BuilderForm {
	form := m.form
	form.Toppings = append([]string{}, m.form.Toppings...)
	return form
}

// MaxQuantity returns the largest accepted custom pizza quantity
func (m *OrderManager) MaxQuantity() int {
	return m.maxQuantity
}

// AddCatalogItem appends a line cloned from a menu entry. The line keeps the
// entry's id, so repeated adds of one pizza share an id. A quantity below one
// counts as one.
func (m *OrderManager) AddCatalogItem(entry models.MenuEntry, quantity int, toppings []string) error {
	if quantity < 1 {
		quantity = 1
	}

	m.appendItem(models.LineItem{
		ID:          entry.ID,
		MenuID:      entry.ID,
		Name:        entry.Name,
		Description: entry.Description,
		Price:       entry.Price,
		Quantity:    quantity,
		Toppings:    append([]string{}, toppings...),
	})
	return m.RenderSummary()
}

// BuildCustomItem prices a custom pizza and appends it to the order.
// Price holds the unit price; the quantity is applied once, in the line total.
func (m *OrderManager) BuildCustomItem(p CustomPizza) (*models.LineItem, error) {
	if p.Size == "" {
		return nil, ErrMissingSize
	}
	base, ok := m.pricing.BasePrice(p.Size)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSize, p.Size)
	}
	if p.Quantity < 1 || p.Quantity > m.maxQuantity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, p.Quantity)
	}

	toppings := make([]string, 0, len(p.Toppings))
	seen := make(map[string]bool, len(p.Toppings))
	for _, t := range p.Toppings {
		if seen[t] {
			continue
		}
		if !m.pricing.HasTopping(t) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTopping, t)
		}
		seen[t] = true
		toppings = append(toppings, t)
	}

	surcharge := m.pricing.ToppingSurcharge.Mul(decimal.NewFromInt(int64(len(toppings))))
	item := models.LineItem{
		ID:          m.nextCustomID(),
		Name:        fmt.Sprintf("Custom %s Pizza", titleCase(string(p.Size))),
		Description: customDescription(p.Size, toppings),
		Price:       base.Add(surcharge),
		Quantity:    p.Quantity,
		Toppings:    toppings,
		Custom:      true,
	}

	m.form = models.BuilderForm{
		Size:     p.Size,
		Toppings: append([]string{}, toppings...),
		Quantity: p.Quantity,
	}
	m.appendItem(item)

	if err := m.RenderSummary(); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem drops every line with the given id. Unknown ids are a no-op.
func (m *OrderManager) RemoveItem(itemID int64) error {
	kept := m.order.Items[:0]
	for _, item := range m.order.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	m.order.Items = kept
	m.order.Recalculate()
	return m.RenderSummary()
}

// RenderSummary recomputes the total and redraws the summary view
func (m *OrderManager) RenderSummary() error {
	m.order.Recalculate()
	if m.view == nil {
		return nil
	}
	snapshot := m.order.Clone()
	return m.view.RenderSummary(&snapshot)
}

// Checkout places the order and resets the session: the order is emptied
// and the builder form returns to its defaults in the same step.
func (m *OrderManager) Checkout() (*models.Receipt, error) {
	if m.order.IsEmpty() {
		return nil, ErrEmptyOrder
	}

	m.order.Recalculate()
	receipt := &models.Receipt{
		ID:        m.newID(),
		Total:     m.order.Total,
		ItemCount: len(m.order.Items),
		PlacedAt:  m.now().UTC(),
	}

	m.order = models.Order{Items: []models.LineItem{}, Total: decimal.Zero}
	m.form = models.DefaultBuilderForm()

	if err := m.RenderSummary(); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (m *OrderManager) appendItem(item models.LineItem) {
	m.order.Items = append(m.order.Items, item)
	m.order.Recalculate()
}

// nextCustomID derives an id from the clock, bumped past the previous one
// when two custom pizzas are built within the same millisecond.
func (m *OrderManager) nextCustomID() int64 {
	id := m.now().UnixMilli()
	if id <= m.lastCustomID {
		id = m.lastCustomID + 1
	}
	m.lastCustomID = id
	return id
}

func customDescription(size models.PizzaSize, toppings []string) string {
	if len(toppings) == 0 {
		return fmt.Sprintf("%s pizza with no toppings", size)
	}
	return fmt.Sprintf("%s pizza with %s", size, strings.Join(toppings, ", "))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
