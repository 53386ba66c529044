package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Notification kinds
const (
	NotificationInfo  = "info"
	NotificationError = "error"
)

// Notification is the modal message shown on top of the page
type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Page holds everything the storefront page template needs
type Page struct {
	Doc          *Document
	Pricing      models.Pricing
	Form         models.BuilderForm
	MaxQuantity  int
	Notification *Notification
}

// Renderer turns storefront state into markup
type Renderer struct {
	currency string
	tmpl     *template.Template
}

// NewRenderer parses the storefront templates. Prices are prefixed with currency.
func NewRenderer(currency string) (*Renderer, error) {
	r := &Renderer{currency: currency}

	funcs := template.FuncMap{
		"price": r.FormatPrice,
		"join":  strings.Join,
		"title": title,
	}
	tmpl, err := template.New("storefront").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// FormatPrice formats an amount with two decimals and the currency prefix
func (r *Renderer) FormatPrice(amount decimal.Decimal) string {
	return r.currency + amount.StringFixed(2)
}

// RenderMenu replaces the menu container with one card per entry, in order.
func (r *Renderer) RenderMenu(doc *Document, entries []models.MenuEntry) error {
	target, err := doc.Target(MenuContainerID)
	if err != nil {
		return err
	}

	html, err := r.execute("menu", entries)
	if err != nil {
		return err
	}
	target.Replace(html)
	return nil
}

// RenderSummary replaces the order summary and the grand total.
func (r *Renderer) RenderSummary(doc *Document, order *models.Order) error {
	summary, err := doc.Target(OrderSummaryID)
	if err != nil {
		return err
	}
	total, err := doc.Target(TotalPriceID)
	if err != nil {
		return err
	}

	html, err := r.execute("summary", order)
	if err != nil {
		return err
	}
	summary.Replace(html)
	total.SetText(r.FormatPrice(order.Total))
	return nil
}

// RenderPage writes the full storefront page
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "page", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// ConfirmationMessage is shown after a successful checkout
func (r *Renderer) ConfirmationMessage(receipt *models.Receipt) string {
	return fmt.Sprintf("Order placed! Total: %s\nThank you for your order!", r.FormatPrice(receipt.Total))
}

// SummaryView binds the renderer to a document so an order manager can redraw it
func (r *Renderer) SummaryView(doc *Document) *SummaryView {
	return &SummaryView{renderer: r, doc: doc}
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// SummaryView renders order summaries into one document
type SummaryView struct {
	renderer *Renderer
	doc      *Document
}

// RenderSummary draws order into the bound document
func (v *SummaryView) RenderSummary(order *models.Order) error {
	return v.renderer.RenderSummary(v.doc, order)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
