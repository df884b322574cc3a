package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders index dates as "Jan 2, 2006". Values that are not
// recognised dates are returned unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// Hue derives a stable hue in [0, 360) from the code points of s.
func Hue(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum % 360
}

// Initial returns the upper-cased first letter of s, or "?" for an empty s.
func Initial(s string) string {
	s = strings.TrimSpace(s)
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// Truncate shortens s to at most length runes, ending in "...".
func Truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= 3 {
		return string(runes[:length])
	}
	return string(runes[:length-3]) + "..."
}

func GetTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": FormatDate,
		"hue":        Hue,
		"initial":    Initial,
		"truncate":   Truncate,
		"hsl": func(h int) string {
			return fmt.Sprintf("hsl(%d, 50%%, 30%%)", h)
		},

		"default": func(def, val interface{}) interface{} {
			if val == nil {
				return def
			}
			if v, ok := val.(string); ok && v == "" {
				return def
			}
			return val
		},
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return singular
			}
			return plural
		},

		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": cases.Title(language.English).String,
		"trim":  strings.TrimSpace,
		"join":  strings.Join,
	}
}
