package render

import (
	"html/template"
	"sync"

	"github.com/rubiojr/seek/pkg/index"
)

// CardRegistry holds card renderers in priority order plus a fallback used
// when none of them can render a document.
type CardRegistry struct {
	mu        sync.RWMutex
	renderers []CardRenderer
	fallback  CardRenderer
}

// NewCardRegistry creates an empty registry with the given fallback.
func NewCardRegistry(fallback CardRenderer) *CardRegistry {
	return &CardRegistry{fallback: fallback}
}

// Register adds a renderer after the existing ones.
func (r *CardRegistry) Register(renderer CardRenderer) {
	if renderer == nil {
		return
	}
	r.mu.Lock()
	r.renderers = append(r.renderers, renderer)
	r.mu.Unlock()
}

// Render uses the first renderer able to render doc, or the fallback.
func (r *CardRegistry) Render(doc index.Document) template.HTML {
	if renderer := r.Renderer(doc); renderer != nil {
		return renderer.Render(doc)
	}
	return template.HTML("<!-- no card renderer available -->")
}

// Renderer returns the renderer Render would use.
func (r *CardRegistry) Renderer(doc index.Document) CardRenderer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, renderer := range r.renderers {
		if renderer.CanRender(doc) {
			return renderer
		}
	}
	return r.fallback
}

// Names lists the registered renderers followed by the fallback.
func (r *CardRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.renderers)+1)
	for _, renderer := range r.renderers {
		out = append(out, renderer.Name())
	}
	if r.fallback != nil {
		out = append(out, r.fallback.Name())
	}
	return out
}
