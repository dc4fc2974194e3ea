package filter

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/quarter"
)

// Options are the data-driven facet values present in a collection.
// Type, vertical, responsible and level options come from the catalog.
type Options struct {
	Quarters   []string `json:"quarters"`
	Years      []string `json:"years"`
	Techniques []string `json:"techniques"`
}

// CollectOptions gathers distinct quarters, years and techniques, sorted
// with Spanish collation.
func CollectOptions(studies []models.Study) Options {
	quarters := NewSet()
	years := NewSet()
	techniques := NewSet()
	for _, s := range studies {
		if s.Quarter != "" {
			quarters[s.Quarter] = struct{}{}
		}
		if y := quarter.YearString(s.Quarter); y != "" {
			years[y] = struct{}{}
		}
		for _, t := range s.Techniques {
			if t != "" {
				techniques[t] = struct{}{}
			}
		}
	}
	return Options{
		Quarters:   collated(quarters),
		Years:      collated(years),
		Techniques: collated(techniques),
	}
}

func collated(s Set) []string {
	out := s.Values()
	collate.New(language.Spanish).SortStrings(out)
	return out
}

// Suggest ranks candidates by fuzzy match against term, best first.
// An empty term returns the candidates unchanged.
func Suggest(term string, candidates []string, limit int) []string {
	if term == "" {
		return truncate(append([]string(nil), candidates...), limit)
	}
	ranks := fuzzy.RankFindNormalizedFold(term, candidates)
	sort.Stable(ranks)
	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	return truncate(out, limit)
}

func truncate(v []string, limit int) []string {
	if limit > 0 && len(v) > limit {
		return v[:limit]
	}
	return v
}
