// Package filter evaluates faceted filter selections and free-text search
// over study collections.
package filter

import (
	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/naming"
	"github.com/platformbuilds/studygraph/internal/quarter"
)

// Selection holds the seven facets. An empty set leaves its facet inactive.
type Selection struct {
	Types        Set `json:"types"`
	Quarters     Set `json:"quarters"`
	Years        Set `json:"years"`
	Verticals    Set `json:"verticals"`
	Responsibles Set `json:"responsibles"`
	Techniques   Set `json:"techniques"`
	Levels       Set `json:"levels"`
}

func (sel Selection) Clone() Selection {
	return Selection{
		Types:        sel.Types.Clone(),
		Quarters:     sel.Quarters.Clone(),
		Years:        sel.Years.Clone(),
		Verticals:    sel.Verticals.Clone(),
		Responsibles: sel.Responsibles.Clone(),
		Techniques:   sel.Techniques.Clone(),
		Levels:       sel.Levels.Clone(),
	}
}

// ActiveCount is the number of selected values across all facets.
func (sel Selection) ActiveCount() int {
	return len(sel.Types) + len(sel.Quarters) + len(sel.Years) + len(sel.Verticals) +
		len(sel.Responsibles) + len(sel.Techniques) + len(sel.Levels)
}

func (sel Selection) Empty() bool {
	return sel.ActiveCount() == 0
}

// Passes reports whether s satisfies every active facet.
func Passes(s *models.Study, sel Selection) bool {
	if sel.Types.Active() && !sel.Types.Has(s.InitiativeTypeLabel) {
		return false
	}
	if sel.Quarters.Active() && !sel.Quarters.Has(s.Quarter) {
		return false
	}
	if sel.Years.Active() {
		y := quarter.YearString(s.Quarter)
		if y == "" || !sel.Years.Has(y) {
			return false
		}
	}
	if sel.Verticals.Active() && !sel.Verticals.Has(s.VerticalCode) {
		return false
	}
	if sel.Responsibles.Active() && !sel.Responsibles.Has(s.Responsible) {
		return false
	}
	if sel.Techniques.Active() {
		hit := false
		for _, t := range s.Techniques {
			if sel.Techniques.Has(t) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if sel.Levels.Active() && !sel.Levels.Has(s.LevelKey) {
		return false
	}
	return true
}

// Apply keeps, in input order, the studies passing sel and matching query.
func Apply(cat *catalog.Catalog, studies []models.Study, query string, sel Selection) []models.Study {
	q := naming.NormalizeQuery(query)
	out := make([]models.Study, 0, len(studies))
	for i := range studies {
		s := &studies[i]
		if !Passes(s, sel) {
			continue
		}
		if q != "" && !naming.Matches(cat, s, q) {
			continue
		}
		out = append(out, *s)
	}
	return out
}
