package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/models"
)

func sample() models.Study {
	return models.Study{
		ID:                  "M-6-001",
		InitiativeTypeCode:  "A_6.001",
		InitiativeTypeLabel: "Seguimiento",
		Quarter:             "Q2.24",
		VerticalCode:        "FLW",
		ProductID:           "flow",
		TitleShort:          "Home",
		Techniques:          []string{"Encuesta continua", "Tracking"},
		LevelKey:            "tactico",
		Responsible:         "K",
	}
}

func TestSingleFacetFlips(t *testing.T) {
	cases := []struct {
		name   string
		sel    Selection
		mutate func(*models.Study)
	}{
		{"type", Selection{Types: NewSet("Seguimiento")}, func(s *models.Study) { s.InitiativeTypeLabel = "Discovery" }},
		{"quarter", Selection{Quarters: NewSet("Q2.24")}, func(s *models.Study) { s.Quarter = "Q3.24" }},
		{"year", Selection{Years: NewSet("2024")}, func(s *models.Study) { s.Quarter = "Q2.25" }},
		{"year unparsable", Selection{Years: NewSet("2024")}, func(s *models.Study) { s.Quarter = "garbage" }},
		{"vertical", Selection{Verticals: NewSet("FLW")}, func(s *models.Study) { s.VerticalCode = "APP" }},
		{"responsible", Selection{Responsibles: NewSet("K")}, func(s *models.Study) { s.Responsible = "" }},
		{"technique", Selection{Techniques: NewSet("Tracking", "Otra")}, func(s *models.Study) { s.Techniques = []string{"Entrevistas"} }},
		{"level", Selection{Levels: NewSet("tactico")}, func(s *models.Study) { s.LevelKey = "estrategico" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sample()
			assert.True(t, Passes(&s, tc.sel))
			tc.mutate(&s)
			assert.False(t, Passes(&s, tc.sel))
		})
	}
}

func TestEmptySelectionPassesEmptyRecord(t *testing.T) {
	assert.True(t, Passes(&models.Study{}, Selection{}))
	assert.False(t, Passes(&models.Study{}, Selection{Techniques: NewSet("x")}))
}

func TestApplyComposesSearchAndFilters(t *testing.T) {
	cat := catalog.Default()
	a := sample()
	b := sample()
	b.ID = "M-0-009"
	b.TitleShort = "Music"
	b.Responsible = "M"

	studies := []models.Study{a, b}

	assert.Len(t, Apply(cat, studies, "", Selection{}), 2)
	got := Apply(cat, studies, "music", Selection{})
	require.Len(t, got, 1)
	assert.Equal(t, "M-0-009", got[0].ID)

	assert.Empty(t, Apply(cat, studies, "music", Selection{Responsibles: NewSet("K")}))
	got = Apply(cat, studies, "  ", Selection{Responsibles: NewSet("K")})
	require.Len(t, got, 1)
	assert.Equal(t, "M-6-001", got[0].ID)
}

func TestSelectionCountAndJSON(t *testing.T) {
	sel := Selection{Types: NewSet("Discovery"), Quarters: NewSet("Q1.25", "Q2.25")}
	assert.Equal(t, 3, sel.ActiveCount())
	sel.Quarters.Toggle("Q1.25")
	assert.Equal(t, 2, sel.ActiveCount())

	raw, err := json.Marshal(Selection{Levels: NewSet("b", "a")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"levels":["a","b"]`)

	var back Selection
	require.NoError(t, json.Unmarshal([]byte(`{"verticals":["FLW","FLW"]}`), &back))
	assert.Equal(t, 1, back.ActiveCount())

	cp := back.Clone()
	cp.Verticals.Toggle("APP")
	assert.Equal(t, 1, back.ActiveCount())
}

func TestCollectOptions(t *testing.T) {
	a := sample()
	b := sample()
	b.Quarter = "Q1.25"
	b.Techniques = []string{"Árbol de tareas", "Entrevistas", ""}
	c := models.Study{Quarter: "nope"}

	opts := CollectOptions([]models.Study{a, b, c})
	assert.Equal(t, []string{"nope", "Q1.25", "Q2.24"}, opts.Quarters)
	assert.Equal(t, []string{"2024", "2025"}, opts.Years)
	assert.Equal(t, []string{"Árbol de tareas", "Encuesta continua", "Entrevistas", "Tracking"}, opts.Techniques)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"Entrevistas", "Encuesta", "Tracking", "Test de usabilidad"}
	got := Suggest("enc", candidates, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "Encuesta", got[0])
	assert.NotContains(t, got, "Tracking")

	assert.Equal(t, candidates[:2], Suggest("", candidates, 2))
}
