package search

import (
	"encoding/json"
	"strconv"
)

// EllipsisLabel marks a gap in the page strip
const EllipsisLabel = "..."

const maxVisiblePages = 5

// PageMarker is one entry of the page strip, a page number or an ellipsis
type PageMarker struct {
	Number   int
	Ellipsis bool
}

func pageMarker(n int) PageMarker { return PageMarker{Number: n} }

var ellipsis = PageMarker{Ellipsis: true}

// String returns the label shown for the marker
func (p PageMarker) String() string {
	if p.Ellipsis {
		return EllipsisLabel
	}
	return strconv.Itoa(p.Number)
}

// MarshalJSON renders numbers as numbers and the ellipsis as "..."
func (p PageMarker) MarshalJSON() ([]byte, error) {
	if p.Ellipsis {
		return json.Marshal(EllipsisLabel)
	}
	return json.Marshal(p.Number)
}

// PageNumbers builds the compact page strip for totalPages and current.
// Up to five pages are listed in full; longer ranges keep the first and last
// page and a window around current, separated by ellipses.
func PageNumbers(totalPages, current int) []PageMarker {
	if totalPages <= 0 {
		return []PageMarker{}
	}

	var pages []PageMarker
	switch {
	case totalPages <= maxVisiblePages:
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, pageMarker(i))
		}
	case current <= 3:
		for i := 1; i <= 4; i++ {
			pages = append(pages, pageMarker(i))
		}
		pages = append(pages, ellipsis, pageMarker(totalPages))
	case current >= totalPages-2:
		pages = append(pages, pageMarker(1), ellipsis)
		for i := totalPages - 3; i <= totalPages; i++ {
			pages = append(pages, pageMarker(i))
		}
	default:
		pages = append(pages, pageMarker(1), ellipsis)
		for i := current - 1; i <= current+1; i++ {
			pages = append(pages, pageMarker(i))
		}
		pages = append(pages, ellipsis, pageMarker(totalPages))
	}
	return pages
}
