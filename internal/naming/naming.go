// Package naming builds display names, previews and search text for studies.
package naming

import (
	"strings"
	"unicode/utf8"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/quarter"
)

const (
	DefaultTypeCode = "A_0.001"
	DefaultVertical = "CRO"
	UntitledTitle   = "(sin título)"
	PreviewLength   = 120
)

// TechniqueToken contracts a technique list for display. Empty entries are ignored.
func TechniqueToken(techniques []string) string {
	clean := make([]string, 0, len(techniques))
	for _, t := range techniques {
		if t != "" {
			clean = append(clean, t)
		}
	}
	switch len(clean) {
	case 0:
		return "(técnica)"
	case 1:
		return "(" + clean[0] + ")"
	case 2:
		return "(" + clean[0] + " + " + clean[1] + ")"
	default:
		return "(mix)"
	}
}

// DisplayName renders "<type> (<quarter>) <vertical> <title> <techniques> — <level>".
func DisplayName(cat *catalog.Catalog, s *models.Study) string {
	return strings.Join([]string{
		orDefault(s.InitiativeTypeCode, DefaultTypeCode),
		"(" + orDefault(s.Quarter, quarter.Placeholder) + ")",
		orDefault(s.VerticalCode, DefaultVertical),
		orDefault(s.TitleShort, UntitledTitle),
		TechniqueToken(s.Techniques),
		"—",
		cat.LevelLabel(s.LevelKey),
	}, " ")
}

// SearchText is the lower-cased blob matched by free-text search.
func SearchText(cat *catalog.Catalog, s *models.Study) string {
	parts := []string{
		s.ID,
		DisplayName(cat, s),
		s.InitiativeTypeLabel,
		s.Quarter,
		quarter.YearString(s.Quarter),
		s.VerticalCode,
		cat.VerticalLabel(s.VerticalCode),
		s.TitleShort,
		cat.ProductName(s.ProductID),
		s.SubproductName,
		s.Status,
		s.Type,
		s.Responsible,
		cat.ResponsibleLabel(s.Responsible),
		s.LevelKey,
		cat.LevelLabel(s.LevelKey),
	}
	parts = append(parts, s.Insights...)
	parts = append(parts, s.Tools...)
	parts = append(parts, s.Techniques...)
	for _, l := range s.Links {
		parts = append(parts, l.Label+" "+l.URL)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// NormalizeQuery trims and lower-cases a search query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Matches is a plain substring test; an empty query matches everything.
func Matches(cat *catalog.Catalog, s *models.Study, query string) bool {
	q := NormalizeQuery(query)
	if q == "" {
		return true
	}
	return strings.Contains(SearchText(cat, s), q)
}

// Preview is the first insight, else the notes, clamped to PreviewLength runes.
func Preview(s *models.Study) string {
	text := s.Notes
	if len(s.Insights) > 0 && s.Insights[0] != "" {
		text = s.Insights[0]
	}
	return Clamp(text, PreviewLength)
}

// Clamp cuts s to n runes, replacing the last one with an ellipsis.
func Clamp(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
