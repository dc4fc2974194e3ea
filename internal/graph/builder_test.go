package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/filter"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

func newBuilder() *Builder {
	return NewBuilder(catalog.Default(), DefaultLayout(), logger.NewNop())
}

func study(id, parent, vertical, sub string) models.Study {
	return models.Study{
		ID:                  id,
		ParentID:            parent,
		InitiativeTypeCode:  "A_0.001",
		InitiativeTypeLabel: "Investigación",
		Quarter:             "Q1.25",
		VerticalCode:        vertical,
		SubproductID:        sub,
		TitleShort:          "Estudio " + id,
	}
}

func nodeByID(g *models.Graph, id string) (models.Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Node{}, false
}

func edgeByID(g *models.Graph, id string) (models.Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return models.Edge{}, false
}

func countKind(g *models.Graph, kind models.NodeKind) int {
	n := 0
	for _, node := range g.Nodes {
		if node.Type == kind {
			n++
		}
	}
	return n
}

func TestScopedForestDepthsAndPositions(t *testing.T) {
	studies := []models.Study{
		study("A", "", "FLW", "s1"),
		study("B", "A", "FLW", "s1"),
		study("C", "B", "FLW", "s1"),
	}
	g, err := newBuilder().BuildScoped(studies, "flow", Query{})
	require.NoError(t, err)

	l := DefaultLayout()
	var prev models.Node
	for depth, id := range []string{"A", "B", "C"} {
		n, ok := nodeByID(g, "study:"+id)
		require.True(t, ok, id)
		assert.Equal(t, depth, n.Data.Study.Depth)
		assert.Equal(t, float64(depth)*l.DepthStep, n.Position.X)
		assert.Equal(t, l.StudyBaseY+float64(depth)*l.RowStep, n.Position.Y)
		if depth > 0 {
			assert.Greater(t, n.Position.Y, prev.Position.Y)
			assert.Greater(t, n.Position.X, prev.Position.X)
		}
		prev = n
	}

	root, ok := edgeByID(g, "e:sub:flow:FLW:s1->study:A")
	require.True(t, ok)
	assert.False(t, root.Derived)
	derived, ok := edgeByID(g, "e:study:A->study:B")
	require.True(t, ok)
	assert.True(t, derived.Derived)
	_, ok = edgeByID(g, "e:study:B->study:C")
	assert.True(t, ok)

	product, ok := nodeByID(g, "product:flow")
	require.True(t, ok)
	assert.Equal(t, models.Position{X: 0, Y: 0}, product.Position)
	assert.Equal(t, "Flow", g.Title)
	assert.Equal(t, models.GraphScoped, g.Mode)
}

func TestPreOrderStacksSubtreesInOneColumn(t *testing.T) {
	studies := []models.Study{
		study("R1", "", "FLW", "s1"),
		study("R2", "", "FLW", "s1"),
		study("C1", "R1", "FLW", "s1"),
	}
	g, err := newBuilder().BuildScoped(studies, "flow", Query{})
	require.NoError(t, err)

	l := DefaultLayout()
	c1, _ := nodeByID(g, "study:C1")
	r2, _ := nodeByID(g, "study:R2")
	assert.Equal(t, l.StudyBaseY+l.RowStep, c1.Position.Y)
	assert.Equal(t, l.StudyBaseY+2*l.RowStep, r2.Position.Y)
	assert.Equal(t, 0.0, r2.Position.X)
}

func TestScopedBuildIsIdempotent(t *testing.T) {
	studies := []models.Study{
		study("A", "", "FLW", "s1"),
		study("B", "A", "FLW", "s2"),
		study("C", "A", "FLW", "s1"),
		study("D", "", "APP", "x"),
	}
	b := newBuilder()
	q := Query{Search: "estudio", Filters: filter.Selection{Quarters: filter.NewSet("Q1.25")}}

	first, err := b.BuildScoped(studies, "flow", q)
	require.NoError(t, err)
	second, err := b.BuildScoped(studies, "flow", q)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	g1 := b.BuildGlobal(studies, q)
	g2 := b.BuildGlobal(studies, q)
	assert.Equal(t, g1, g2)
}

func TestScopedVerticalsCentredUnderProduct(t *testing.T) {
	g, err := newBuilder().BuildScoped(nil, "linea-movil", Query{})
	require.NoError(t, err)

	want := map[string]float64{"PER": -840, "PRE": -420, "ABN": 0, "POR": 420, "ROA": 840}
	for code, x := range want {
		n, ok := nodeByID(g, "vertical:linea-movil:"+code)
		require.True(t, ok, code)
		assert.Equal(t, x, n.Position.X, code)
		assert.Equal(t, DefaultLayout().VerticalY, n.Position.Y)
	}
	assert.Equal(t, 5, countKind(g, models.NodeVertical))
	assert.Equal(t, 0, countKind(g, models.NodeStudy))
	assert.Empty(t, g.FilteredStudies)
}

func TestSubproductsCentredUnderVertical(t *testing.T) {
	studies := []models.Study{
		study("A", "", "FLW", "s1"),
		study("B", "", "FLW", "s2"),
	}
	g, err := newBuilder().BuildScoped(studies, "flow", Query{})
	require.NoError(t, err)

	s1, _ := nodeByID(g, "sub:flow:FLW:s1")
	s2, _ := nodeByID(g, "sub:flow:FLW:s2")
	assert.Equal(t, -160.0, s1.Position.X)
	assert.Equal(t, 160.0, s2.Position.X)
	b, _ := nodeByID(g, "study:B")
	assert.Equal(t, 160.0, b.Position.X)
}

func TestParentReachableThroughStudiesInScope(t *testing.T) {
	parent := study("M-6-001", "", "FLW", "flow-home")
	parent.TitleShort = "Home"
	child := study("M-0-009", "M-6-001", "FLW", "flow-home")
	child.TitleShort = "Music"

	g, err := newBuilder().BuildScoped([]models.Study{parent, child}, "flow", Query{Search: "music"})
	require.NoError(t, err)

	require.Len(t, g.FilteredStudies, 1)
	assert.Equal(t, "M-0-009", g.FilteredStudies[0].ID)
	require.Len(t, g.StudiesInScope, 2)

	var found bool
	for _, s := range g.StudiesInScope {
		if s.ID == g.FilteredStudies[0].ParentID {
			found = true
		}
	}
	assert.True(t, found)

	n, ok := nodeByID(g, "study:M-0-009")
	require.True(t, ok)
	assert.Equal(t, 0, n.Data.Study.Depth)
	_, ok = edgeByID(g, "e:sub:flow:FLW:flow-home->study:M-0-009")
	assert.True(t, ok)
}

func TestCrossSubproductParentIsRoot(t *testing.T) {
	studies := []models.Study{
		study("P", "", "FLW", "flow-home"),
		study("C", "P", "FLW", "flow-music"),
	}
	g, err := newBuilder().BuildScoped(studies, "flow", Query{})
	require.NoError(t, err)

	for _, e := range g.Edges {
		assert.False(t, e.Derived, e.ID)
	}
	n, _ := nodeByID(g, "study:C")
	assert.Equal(t, 0, n.Data.Study.Depth)
}

func TestCyclesAndSelfParentsDoNotLoop(t *testing.T) {
	studies := []models.Study{
		study("A", "B", "FLW", "s1"),
		study("B", "A", "FLW", "s1"),
		study("S", "S", "FLW", "s1"),
	}
	g, err := newBuilder().BuildScoped(studies, "flow", Query{})
	require.NoError(t, err)
	assert.Equal(t, 3, countKind(g, models.NodeStudy))

	s, _ := nodeByID(g, "study:S")
	a, _ := nodeByID(g, "study:A")
	b, _ := nodeByID(g, "study:B")
	assert.Equal(t, 0, s.Data.Study.Depth)
	assert.Equal(t, 0, a.Data.Study.Depth)
	assert.Equal(t, 1, b.Data.Study.Depth)
	_, ok := edgeByID(g, "e:study:A->study:B")
	assert.True(t, ok)
}

func TestDuplicateIDsGetUniqueNodes(t *testing.T) {
	studies := []models.Study{
		study("X", "", "FLW", "s1"),
		study("X", "", "FLW", "s1"),
		study("Y", "X", "FLW", "s1"),
	}
	g, err := newBuilder().BuildScoped(studies, "flow", Query{})
	require.NoError(t, err)

	_, ok := nodeByID(g, "study:X")
	assert.True(t, ok)
	_, ok = nodeByID(g, "study:X~2")
	assert.True(t, ok)
	_, ok = edgeByID(g, "e:study:X->study:Y")
	assert.True(t, ok)

	seen := map[string]bool{}
	for _, n := range g.Nodes {
		assert.False(t, seen[n.ID], n.ID)
		seen[n.ID] = true
	}
}

func TestDerivedSubproductKey(t *testing.T) {
	s := models.Study{VerticalCode: "FLW", SubproductName: "Home Música"}
	assert.Equal(t, "FLW-home-musica", SubproductKey(&s))
	s.SubproductName = ""
	assert.Equal(t, "FLW-sin-subproducto", SubproductKey(&s))
	s.SubproductID = "flow-home"
	assert.Equal(t, "flow-home", SubproductKey(&s))
}

func TestCustomGroupKey(t *testing.T) {
	studies := []models.Study{
		study("A", "", "FLW", "s1"),
		study("B", "", "FLW", "s2"),
	}
	b := newBuilder().WithGroupKey(func(s *models.Study) string { return "all" })
	g, err := b.BuildScoped(studies, "flow", Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, countKind(g, models.NodeSubproduct))
}

func TestUnknownScopedProduct(t *testing.T) {
	_, err := newBuilder().BuildScoped(nil, "nope", Query{})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestScopeFallsBackToVerticalOwner(t *testing.T) {
	s := study("A", "", "FLW", "s1")
	g, err := newBuilder().BuildScoped([]models.Study{s}, "flow", Query{})
	require.NoError(t, err)
	assert.Len(t, g.StudiesInScope, 1)
}

func TestGlobalEmptyCollectionHasEmptyLists(t *testing.T) {
	g := newBuilder().BuildGlobal(nil, Query{})
	require.NotNil(t, g.StudiesInScope)
	require.NotNil(t, g.FilteredStudies)
	assert.Empty(t, g.StudiesInScope)
	assert.Empty(t, g.Nodes)
}

func TestGlobalBandsDoNotOverlap(t *testing.T) {
	studies := []models.Study{
		study("F1", "", "FLW", "a"),
		study("F2", "", "FLW", "b"),
		study("F3", "F2", "FLW", "b"),
		study("P1", "", "APP", "x"),
		study("P2", "", "APW", "y"),
		study("S1", "", "CRO", "z"),
	}
	studies[0].ProductID = "flow"

	b := newBuilder()
	g := b.BuildGlobal(studies, Query{})
	assert.Equal(t, models.GraphGlobal, g.Mode)
	assert.Equal(t, GlobalTitle, g.Title)
	assert.Len(t, g.StudiesInScope, len(studies))

	var products []string
	for _, n := range g.Nodes {
		if n.Type == models.NodeProduct {
			products = append(products, n.Data.Code)
		}
	}
	assert.Equal(t, []string{"flow", "app", "sfe"}, products)

	// sfe only shows the CRO vertical that has matches
	_, ok := nodeByID(g, "vertical:sfe:CRO")
	assert.True(t, ok)
	_, ok = nodeByID(g, "vertical:sfe:UXR")
	assert.False(t, ok)

	extent := map[string][2]float64{}
	owner := func(id string) string {
		for _, p := range products {
			if id == "product:"+p || hasPrefix(id, "vertical:"+p+":") || hasPrefix(id, "sub:"+p+":") {
				return p
			}
		}
		return ""
	}
	for _, n := range g.Nodes {
		p := owner(n.ID)
		if n.Type == models.NodeStudy {
			p = b.ProductOf(&n.Data.Study.Study)
		}
		require.NotEmpty(t, p, n.ID)
		e, ok := extent[p]
		if !ok {
			e = [2]float64{n.Position.X, n.Position.X}
		}
		if n.Position.X < e[0] {
			e[0] = n.Position.X
		}
		if n.Position.X > e[1] {
			e[1] = n.Position.X
		}
		extent[p] = e
	}
	w := DefaultLayout().NodeWidth
	for i := 1; i < len(products); i++ {
		left, right := extent[products[i-1]], extent[products[i]]
		assert.Less(t, left[1]+w, right[0], "%s overlaps %s", products[i-1], products[i])
	}
}

func TestGlobalAppliesSearchAcrossProducts(t *testing.T) {
	studies := []models.Study{
		study("F1", "", "FLW", "a"),
		study("P1", "", "APP", "x"),
	}
	studies[1].TitleShort = "Checkout"
	g := newBuilder().BuildGlobal(studies, Query{Search: "checkout"})
	require.Len(t, g.FilteredStudies, 1)
	assert.Equal(t, 1, countKind(g, models.NodeProduct))
	assert.Len(t, g.StudiesInScope, 2)

	empty := newBuilder().BuildGlobal(studies, Query{Search: "nada"})
	assert.Empty(t, empty.Nodes)
	assert.Empty(t, empty.Edges)
}

func TestGlobalUnknownProductBand(t *testing.T) {
	s := study("Q1", "", "ZZZ", "")
	g := newBuilder().BuildGlobal([]models.Study{s}, Query{})
	n, ok := nodeByID(g, "product:"+UnknownProductID)
	require.True(t, ok)
	assert.Equal(t, UnknownProductName, n.Data.Name)
	_, ok = nodeByID(g, "sub:"+UnknownProductID+":ZZZ:ZZZ-sin-subproducto")
	assert.True(t, ok)
}

func TestStudyNodePayload(t *testing.T) {
	s := study("A", "", "FLW", "s1")
	s.Insights = []string{"hallazgo"}
	s.LevelKey = "tactico"
	g, err := newBuilder().BuildScoped([]models.Study{s}, "flow", Query{})
	require.NoError(t, err)

	n, _ := nodeByID(g, "study:A")
	require.NotNil(t, n.Data.Study)
	assert.Equal(t, "hallazgo", n.Data.Study.Preview)
	assert.Equal(t, "#21D3A2", n.Data.Study.Color)
	assert.Equal(t, "A_0.001 (Q1.25) FLW Estudio A (técnica) — Táctico", n.Data.Study.DisplayName)
}

func hasPrefix(s, p string) bool {
	return len(s) >= len(p) && s[:len(p)] == p
}
