package search

import (
	"strings"

	"github.com/firmsite/site-api/internal/services/cms"
)

// NormalizeQuery lower-cases a query for matching. Whitespace is kept, so
// only the empty string means no search.
func NormalizeQuery(q string) string {
	return strings.ToLower(q)
}

// Filter keeps services whose title and members whose name contain the
// query, case-insensitively, preserving source order. An empty query
// matches nothing.
func Filter(c Collections, query string) FilteredSet {
	q := NormalizeQuery(query)
	set := FilteredSet{
		Services: []cms.Service{},
		Team:     []cms.TeamMember{},
	}
	if q == "" {
		return set
	}

	for _, s := range c.Services {
		if strings.Contains(strings.ToLower(s.Title), q) {
			set.Services = append(set.Services, s)
		}
	}
	for _, m := range c.Team {
		if strings.Contains(strings.ToLower(m.Name), q) {
			set.Team = append(set.Team, m)
		}
	}
	return set
}
