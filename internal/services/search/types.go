// Package search implements the site search: fetch the service and team
// collections, filter them by a substring query and paginate per tab.
package search

import (
	"encoding/json"

	"github.com/firmsite/site-api/internal/services/cms"
)

// DefaultPageSize is the number of results shown per page
const DefaultPageSize = 5

// Tab selects which result category is shown
type Tab string

const (
	TabAll      Tab = "all"
	TabServices Tab = "services"
	TabTeam     Tab = "team"
)

// Tabs lists the tabs in display order
var Tabs = []Tab{TabAll, TabTeam, TabServices}

// ParseTab maps a raw tab parameter to a Tab, defaulting to all
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabServices:
		return TabServices
	case TabTeam:
		return TabTeam
	default:
		return TabAll
	}
}

// QueryState is everything needed to rebuild a search view
type QueryState struct {
	Query string `json:"query"`
	Tab   Tab    `json:"tab"`
	Page  int    `json:"page"`
}

// Collections is an unfiltered snapshot of both searchable collections
type Collections struct {
	Services []cms.Service    `json:"services"`
	Team     []cms.TeamMember `json:"team"`
}

// FilteredSet holds the entries matching a query, in source order
type FilteredSet struct {
	Services []cms.Service
	Team     []cms.TeamMember
}

// Counts reports match counts per tab
type Counts struct {
	All      int `json:"all"`
	Services int `json:"services"`
	Team     int `json:"team"`
}

// Counts returns the per-tab match counts
func (f FilteredSet) Counts() Counts {
	return Counts{
		All:      len(f.Services) + len(f.Team),
		Services: len(f.Services),
		Team:     len(f.Team),
	}
}

// ItemType tags a combined item with its origin collection
type ItemType string

const (
	ItemService ItemType = "service"
	ItemTeam    ItemType = "team"
)

// CombinedItem is a filtered entry tagged with its origin, used by the all tab
type CombinedItem struct {
	Type    ItemType
	Service *cms.Service
	Member  *cms.TeamMember
}

// MarshalJSON renders {"type": ..., "item": ...}
func (c CombinedItem) MarshalJSON() ([]byte, error) {
	var item any = c.Service
	if c.Type == ItemTeam {
		item = c.Member
	}
	return json.Marshal(struct {
		Type ItemType `json:"type"`
		Item any      `json:"item"`
	}{c.Type, item})
}

// PageView is the visible window for one tab and page
type PageView struct {
	Tab Tab `json:"tab"`
	// Page is the requested page clamped to [1, max(TotalPages,1)]
	Page int `json:"page"`
	// RequestedPage is the page that was asked for; when it lies past the
	// last page the slices below are empty
	RequestedPage int              `json:"requestedPage"`
	TotalPages    int              `json:"totalPages"`
	TotalResults  int              `json:"totalResults"`
	Services      []cms.Service    `json:"services"`
	Team          []cms.TeamMember `json:"team"`
	Combined      []CombinedItem   `json:"combined,omitempty"`
}

// State describes the outcome shown to the visitor
type State string

const (
	StateEmptyQuery State = "empty_query"
	StateResults    State = "results"
	StateNoResults  State = "no_results"
	StateFailed     State = "failed"
)
