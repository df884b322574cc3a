package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/render"
	"github.com/rubiojr/seek/pkg/search"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	facetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("#6C7086"))
)

// formatNumber formats a number with K/M suffixes for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// formatTime formats a time relative to now or as an absolute date
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < 24*time.Hour {
		if diff < time.Hour {
			minutes := int(diff.Minutes())
			if minutes < 1 {
				return "just now"
			}
			return fmt.Sprintf("%d minutes ago", minutes)
		}
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	}

	if diff < 7*24*time.Hour {
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	}

	if t.Year() == now.Year() {
		return t.Format("Jan 2, 15:04")
	}
	return t.Format("Jan 2, 2006")
}

// formatDocument renders one result for terminal output.
func formatDocument(n int, doc index.Document, facetField string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s", n, titleStyle.Render(doc.Title()))
	if facets := doc.Facets(facetField); len(facets) > 0 {
		b.WriteString("  ")
		b.WriteString(facetStyle.Render("[" + strings.Join(facets, ", ") + "]"))
	}
	if u := doc.String("url"); u != "" {
		b.WriteString("\n   ")
		b.WriteString(mutedStyle.Render(u))
	}
	if text := doc.String("text"); text != "" {
		b.WriteString("\n   ")
		b.WriteString(render.Truncate(strings.Join(strings.Fields(text), " "), 100))
	}
	return b.String()
}

// formatView prints a search page.
func formatView(v search.View) {
	if v.Empty() {
		fmt.Println("No results found")
		return
	}

	start := (v.State.Page-1)*v.PerPage + 1
	for i, doc := range v.Items {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(formatDocument(start+i, doc, v.FacetField))
	}

	fmt.Println()
	summary := fmt.Sprintf("%s results", formatNumber(v.Total))
	if v.HasPagination() {
		summary += fmt.Sprintf(", page %d of %d", v.State.Page, v.TotalPages)
	}
	fmt.Println(mutedStyle.Render(summary))

	if len(v.Available) > 0 {
		facets := make([]string, 0, len(v.Available))
		for _, f := range v.Available {
			facets = append(facets, fmt.Sprintf("%s (%d)", f.Value, f.Count))
		}
		fmt.Println(mutedStyle.Render("Filters: ") + facetStyle.Render(strings.Join(facets, ", ")))
	}
}

// formatField prints a "label value" line.
func formatField(label, value string) {
	fmt.Println(labelStyle.Render(label) + value)
}
