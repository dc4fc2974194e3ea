package services

import (
	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/filter"
	"github.com/platformbuilds/studygraph/internal/graph"
	"github.com/platformbuilds/studygraph/internal/ids"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/naming"
)

const (
	GlobalResultsLimit = 50
	SuggestionLimit    = 8
)

// ResultGroup holds the matches of one product.
type ResultGroup struct {
	ProductID   string         `json:"productId"`
	ProductName string         `json:"productName"`
	Color       string         `json:"color"`
	Studies     []models.Study `json:"studies"`
}

// GlobalResults is the capped cross-product result list.
type GlobalResults struct {
	Total     int           `json:"total"`
	Truncated bool          `json:"truncated"`
	Groups    []ResultGroup `json:"groups"`
}

// Details is a study with its neighbours in the unfiltered scope.
type Details struct {
	Study       models.Study   `json:"study"`
	DisplayName string         `json:"displayName"`
	Parent      *models.Study  `json:"parent"`
	Children    []models.Study `json:"children"`
}

// Facets lists every value a filter facet can take plus suggestions.
type Facets struct {
	InitiativeTypes []catalog.InitiativeType `json:"initiativeTypes"`
	Verticals       []catalog.Vertical       `json:"verticals"`
	Responsibles    []catalog.Responsible    `json:"responsibles"`
	Levels          []catalog.Level          `json:"levels"`
	filter.Options
	Suggestions []string `json:"suggestions"`
	ActiveCount int      `json:"activeCount"`
}

// Search applies search and filters to the whole collection.
func (s *StudyService) Search(q graph.Query) []models.Study {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneStudies(filter.Apply(s.catalog, s.studies, q.Search, q.Filters))
}

// GlobalResults returns at most GlobalResultsLimit matches grouped by
// product in first-seen order.
func (s *StudyService) GlobalResults(q graph.Query) GlobalResults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat := s.catalog
	matched := filter.Apply(cat, s.studies, q.Search, q.Filters)

	out := GlobalResults{Total: len(matched), Groups: []ResultGroup{}}
	if len(matched) > GlobalResultsLimit {
		matched = matched[:GlobalResultsLimit]
		out.Truncated = true
	}

	b := s.builder(cat)
	index := make(map[string]int)
	for i := range matched {
		pid := b.ProductOf(&matched[i])
		if pid == "" {
			pid = graph.UnknownProductID
		}
		gi, ok := index[pid]
		if !ok {
			g := ResultGroup{ProductID: pid, ProductName: graph.UnknownProductName, Color: graph.UnknownColor}
			if p, ok := cat.Product(pid); ok {
				g.ProductName, g.Color = p.Name, p.Color
			}
			gi = len(out.Groups)
			index[pid] = gi
			out.Groups = append(out.Groups, g)
		}
		out.Groups[gi].Studies = append(out.Groups[gi].Studies, matched[i].Clone())
	}
	return out
}

// Details resolves a study, its parent and its children inside the scope of
// productID (the whole collection when empty). Search and filters never
// apply here, so a matching child can always reach its parent.
func (s *StudyService) Details(id, productID string) (*Details, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat := s.catalog
	b := s.builder(cat)

	scope := s.studies
	if productID != "" {
		scope = make([]models.Study, 0, len(s.studies))
		for i := range s.studies {
			if b.ProductOf(&s.studies[i]) == productID {
				scope = append(scope, s.studies[i])
			}
		}
	}

	i := indexOf(scope, id)
	if i < 0 {
		return nil, ErrStudyNotFound
	}
	st := scope[i]
	d := &Details{
		Study:       st.Clone(),
		DisplayName: naming.DisplayName(cat, &st),
		Children:    []models.Study{},
	}
	if st.ParentID != "" && st.ParentID != st.ID {
		if pi := indexOf(scope, st.ParentID); pi >= 0 {
			parent := scope[pi].Clone()
			d.Parent = &parent
		}
	}
	for j := range scope {
		if j != i && scope[j].ParentID == st.ID && scope[j].ID != st.ID {
			d.Children = append(d.Children, scope[j].Clone())
		}
	}
	return d, nil
}

// Facets gathers facet values from the catalog and the collection. term, when
// set, ranks technique suggestions; sel is only counted.
func (s *StudyService) Facets(term string, sel filter.Selection) Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat := s.catalog

	opts := filter.CollectOptions(s.studies)
	f := Facets{
		InitiativeTypes: cat.InitiativeTypes(),
		Verticals:       cat.Verticals(),
		Responsibles:    cat.Responsibles(),
		Levels:          cat.Levels(),
		Options:         opts,
		Suggestions:     []string{},
		ActiveCount:     sel.ActiveCount(),
	}
	if term != "" {
		if sug := filter.Suggest(term, opts.Techniques, SuggestionLimit); sug != nil {
			f.Suggestions = sug
		}
	}
	return f
}

// NextID previews the id Create would allocate for typeCode right now.
func (s *StudyService) NextID(typeCode string) string {
	if typeCode == "" {
		typeCode = naming.DefaultTypeCode
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ids.NextID(s.studies, typeCode)
}
