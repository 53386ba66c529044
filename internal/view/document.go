package view

import (
	"errors"
	"fmt"
	"html/template"
)

// Target IDs of the storefront page
const (
	MenuContainerID = "menu-container"
	OrderSummaryID  = "order-summary"
	TotalPriceID    = "total-price"
)

// ErrTargetNotFound matches every NotFoundError
var ErrTargetNotFound = errors.New("render target not found")

// NotFoundError is returned when a render target is missing from the document
type NotFoundError struct {
	TargetID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("render target %q not found", e.TargetID)
}

// Is makes errors.Is(err, ErrTargetNotFound) hold for any NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrTargetNotFound
}

// Target is a named slot of a document whose content is replaced on render
type Target struct {
	id      string
	content template.HTML
}

// ID returns the target's identifier
func (t *Target) ID() string {
	return t.id
}

// Content returns the rendered markup
func (t *Target) Content() template.HTML {
	return t.content
}

// Replace swaps the target's content for markup
func (t *Target) Replace(content template.HTML) {
	t.content = content
}

// SetText swaps the target's content for escaped text
func (t *Target) SetText(text string) {
	t.content = template.HTML(template.HTMLEscapeString(text))
}

// Clear empties the target
func (t *Target) Clear() {
	t.content = ""
}

// Document is the set of render targets a page exposes
type Document struct {
	targets map[string]*Target
}

// NewDocument creates a document with empty targets for ids
func NewDocument(ids ...string) *Document {
	targets := make(map[string]*Target, len(ids))
	for _, id := range ids {
		targets[id] = &Target{id: id}
	}
	return &Document{targets: targets}
}

// NewStorefrontDocument creates a document with the storefront page's targets
func NewStorefrontDocument() *Document {
	return NewDocument(MenuContainerID, OrderSummaryID, TotalPriceID)
}

// Target looks up a target by id
func (d *Document) Target(id string) (*Target, error) {
	t, ok := d.targets[id]
	if !ok {
		return nil, &NotFoundError{TargetID: id}
	}
	return t, nil
}

// Content returns a target's markup, or nothing when the target is missing
func (d *Document) Content(id string) template.HTML {
	if t, ok := d.targets[id]; ok {
		return t.content
	}
	return ""
}
