package components

import (
	"fmt"

	"github.com/rubiojr/seek/cmd/web/components/types"
)

// Summary describes the result count of a page, e.g. "23 results, page 2 of 3".
func Summary(data types.PageData) string {
	if data.Empty {
		return ""
	}
	noun := "results"
	if data.Total == 1 {
		noun = "result"
	}
	if data.TotalPages <= 1 {
		return fmt.Sprintf("%d %s", data.Total, noun)
	}
	return fmt.Sprintf("%d %s, page %d of %d", data.Total, noun, data.Page, data.TotalPages)
}

// FormAction returns the path the search form submits to.
func FormAction(data types.PageData) string {
	if data.BasePath == "" {
		return "/search"
	}
	return data.BasePath
}
