package search

import "github.com/firmsite/site-api/internal/services/cms"

// TotalPages returns ceil(count/pageSize), zero for an empty set
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, max(totalPages,1)]
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	upper := max(totalPages, 1)
	if page > upper {
		return upper
	}
	return page
}

// window returns items[(page-1)*size : page*size], empty when out of range
func window[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if page < 1 || size <= 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// Paginate computes the visible slice for a tab. For the all tab services
// precede team members in one combined sequence, and the page slice is split
// back into typed lists keeping relative order.
func Paginate(set FilteredSet, tab Tab, page, pageSize int) PageView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	requested := max(page, 1)

	view := PageView{
		Tab:           tab,
		RequestedPage: requested,
		Services:      []cms.Service{},
		Team:          []cms.TeamMember{},
	}

	switch tab {
	case TabServices:
		view.TotalResults = len(set.Services)
		view.Services = window(set.Services, requested, pageSize)
	case TabTeam:
		view.TotalResults = len(set.Team)
		view.Team = window(set.Team, requested, pageSize)
	default:
		view.Tab = TabAll
		combined := Combine(set)
		view.TotalResults = len(combined)
		view.Combined = window(combined, requested, pageSize)
		for _, item := range view.Combined {
			switch item.Type {
			case ItemService:
				view.Services = append(view.Services, *item.Service)
			case ItemTeam:
				view.Team = append(view.Team, *item.Member)
			}
		}
	}

	view.TotalPages = TotalPages(view.TotalResults, pageSize)
	view.Page = ClampPage(requested, view.TotalPages)
	return view
}

// Combine tags services then team members into one ordered sequence
func Combine(set FilteredSet) []CombinedItem {
	combined := make([]CombinedItem, 0, len(set.Services)+len(set.Team))
	for i := range set.Services {
		combined = append(combined, CombinedItem{Type: ItemService, Service: &set.Services[i]})
	}
	for i := range set.Team {
		combined = append(combined, CombinedItem{Type: ItemTeam, Member: &set.Team[i]})
	}
	return combined
}
