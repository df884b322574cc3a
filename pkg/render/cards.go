package render

import (
	"encoding/base64"
	"html/template"
	"strings"

	"github.com/rubiojr/seek/pkg/index"
)

// CardRenderer turns a document into the markup of one result card.
type CardRenderer interface {
	Render(doc index.Document) template.HTML
	CanRender(doc index.Document) bool
	Name() string
}

type cardData struct {
	Title   string
	URL     string
	Image   string
	Project string
	Date    string
	Text    string
	Tooltip string
}

func newCardData(doc index.Document, tooltip bool) cardData {
	d := cardData{
		Title:   doc.Title(),
		URL:     doc.String("url"),
		Image:   doc.String("image"),
		Project: doc.String("project"),
		Date:    doc.String("date"),
		Text:    doc.String("text"),
	}
	if tooltip && d.Text != "" {
		d.Tooltip = Truncate(d.Text, 160)
	}
	return d
}

// templateCard renders a document through a named template.
type templateCard struct {
	name    string
	tmpl    string
	tooltip bool
}

func (c *templateCard) Render(doc index.Document) template.HTML {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, c.tmpl, newCardData(doc, c.tooltip)); err != nil {
		return template.HTML("<!-- card renderer error -->")
	}
	return template.HTML(buf.String())
}

func (c *templateCard) CanRender(index.Document) bool { return true }

func (c *templateCard) Name() string { return c.name }

// NewGridCard renders an image card, or a coloured placeholder with the
// title's initial when the document has no image.
func NewGridCard(tooltip bool) CardRenderer {
	return &templateCard{name: "grid", tmpl: "grid_card", tooltip: tooltip}
}

// NewListCard renders a text card with project, date and an optional image
// column.
func NewListCard(tooltip bool) CardRenderer {
	return &templateCard{name: "list", tmpl: "list_card", tooltip: tooltip}
}

// PrecomputedCard uses the base64 encoded markup produced when the index was
// built, stored in the document's card field.
type PrecomputedCard struct{}

func (PrecomputedCard) Name() string { return "precomputed" }

func (PrecomputedCard) CanRender(doc index.Document) bool {
	_, ok := decodeCard(doc)
	return ok
}

func (PrecomputedCard) Render(doc index.Document) template.HTML {
	markup, ok := decodeCard(doc)
	if !ok {
		return template.HTML("<!-- invalid precomputed card -->")
	}
	return template.HTML(markup)
}

func decodeCard(doc index.Document) (string, bool) {
	raw := strings.TrimSpace(doc.String("card"))
	if raw == "" {
		return "", false
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}
