// Package graph lays out studies as a product → vertical → subproduct →
// study tree with deterministic positions.
package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/filter"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/naming"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

const (
	GlobalTitle        = "Resultados globales"
	NoSubproductName   = "Sin subproducto"
	UnknownProductID   = "sin-producto"
	UnknownProductName = "Sin producto"
	UnknownColor       = "#E5E7EB"
)

var ErrUnknownProduct = errors.New("unknown product")

// Query is the search and filter state applied after scoping.
type Query struct {
	Search  string
	Filters filter.Selection
}

// GroupKey assigns a study to a subproduct bucket inside its vertical.
type GroupKey func(s *models.Study) string

// SubproductKey is the study's subproductId, else
// <verticalCode>-<slug(subproductName or "Sin subproducto")>.
func SubproductKey(s *models.Study) string {
	if s.SubproductID != "" {
		return s.SubproductID
	}
	name := s.SubproductName
	if name == "" {
		name = NoSubproductName
	}
	return s.VerticalCode + "-" + catalog.Slug(name)
}

// band is one product column: the product and the vertical codes shown under it.
type band struct {
	product   catalog.Product
	verticals []string
}

// scope decides which studies a view starts from and how they are banded.
type scope struct {
	mode    models.GraphMode
	title   string
	resolve func(studies []models.Study) []models.Study
	bands   func(matched []models.Study) []band
	// spread lays bands side by side; a single scoped band stays at the origin.
	spread bool
}

type Builder struct {
	catalog  *catalog.Catalog
	layout   Layout
	groupKey GroupKey
	logger   logger.Logger
}

func NewBuilder(cat *catalog.Catalog, layout Layout, logger logger.Logger) *Builder {
	return &Builder{
		catalog:  cat,
		layout:   layout,
		groupKey: SubproductKey,
		logger:   logger,
	}
}

// WithGroupKey returns a copy of the builder bucketing studies with key.
func (b *Builder) WithGroupKey(key GroupKey) *Builder {
	cp := *b
	cp.groupKey = key
	return &cp
}

// ProductOf returns the study's productId, falling back to the catalog
// owner of its vertical.
func (b *Builder) ProductOf(s *models.Study) string {
	if s.ProductID != "" {
		return s.ProductID
	}
	id, _ := b.catalog.ProductForVertical(s.VerticalCode)
	return id
}

// BuildScoped builds the tree for one product. Every catalog vertical of the
// product is shown, even without matches.
func (b *Builder) BuildScoped(studies []models.Study, productID string, q Query) (*models.Graph, error) {
	p, ok := b.catalog.Product(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	sc := scope{
		mode:  models.GraphScoped,
		title: p.Name,
		resolve: func(all []models.Study) []models.Study {
			out := make([]models.Study, 0, len(all))
			for i := range all {
				if b.ProductOf(&all[i]) == productID {
					out = append(out, all[i])
				}
			}
			return out
		},
		bands: func(matched []models.Study) []band {
			return []band{{product: p, verticals: appendStray(p.Verticals, matched)}}
		},
	}
	return b.build(studies, sc, q), nil
}

// BuildGlobal builds one band per product present in the matched studies,
// in first-seen order, each holding only verticals with matches.
func (b *Builder) BuildGlobal(studies []models.Study, q Query) *models.Graph {
	sc := scope{
		mode:  models.GraphGlobal,
		title: GlobalTitle,
		resolve: func(all []models.Study) []models.Study {
			return append(make([]models.Study, 0, len(all)), all...)
		},
		bands:  b.globalBands,
		spread: true,
	}
	return b.build(studies, sc, q)
}

func (b *Builder) globalBands(matched []models.Study) []band {
	var order []string
	byProduct := make(map[string][]models.Study)
	for i := range matched {
		id := b.ProductOf(&matched[i])
		if id == "" {
			id = UnknownProductID
		}
		if _, ok := byProduct[id]; !ok {
			order = append(order, id)
		}
		byProduct[id] = append(byProduct[id], matched[i])
	}

	bands := make([]band, 0, len(order))
	for _, id := range order {
		p, ok := b.catalog.Product(id)
		if !ok {
			name := id
			if id == UnknownProductID {
				name = UnknownProductName
			}
			p = catalog.Product{ID: id, Name: name, Color: UnknownColor}
		}
		present := make(map[string]bool)
		for _, s := range byProduct[id] {
			present[s.VerticalCode] = true
		}
		var verticals []string
		for _, code := range p.Verticals {
			if present[code] {
				verticals = append(verticals, code)
			}
		}
		bands = append(bands, band{product: p, verticals: appendStray(verticals, byProduct[id])})
	}
	return bands
}

// appendStray adds vertical codes used by studies but missing from declared,
// in first-seen order.
func appendStray(declared []string, studies []models.Study) []string {
	out := append([]string(nil), declared...)
	known := make(map[string]bool, len(declared))
	for _, code := range declared {
		known[code] = true
	}
	for i := range studies {
		code := studies[i].VerticalCode
		if !known[code] {
			known[code] = true
			out = append(out, code)
		}
	}
	return out
}

func (b *Builder) build(studies []models.Study, sc scope, q Query) *models.Graph {
	inScope := sc.resolve(studies)
	matched := filter.Apply(b.catalog, inScope, q.Search, q.Filters)

	g := &models.Graph{
		Mode:            sc.mode,
		Title:           sc.title,
		Nodes:           []models.Node{},
		Edges:           []models.Edge{},
		FilteredStudies: matched,
		StudiesInScope:  inScope,
	}

	ids := newNodeIDs()
	cursor := 0.0
	for _, bd := range sc.bands(matched) {
		start := len(g.Nodes)
		minX, maxX := b.layoutBand(g, bd, matched, ids)
		if sc.spread {
			offset := cursor - minX
			shift(g.Nodes[start:], offset)
			cursor = offset + maxX + b.layout.BandGap
		}
	}
	if sc.spread && len(g.Nodes) > 0 {
		// centre the row of bands on x=0
		width := cursor - b.layout.BandGap
		shift(g.Nodes, -width/2)
	}

	b.logger.Debug("graph built", "mode", sc.mode, "in_scope", len(inScope), "matched", len(matched), "nodes", len(g.Nodes), "edges", len(g.Edges))
	return g
}

// layoutBand appends one product band centred on x=0 and returns its
// horizontal extent, node width included.
func (b *Builder) layoutBand(g *models.Graph, bd band, matched []models.Study, ids *nodeIDs) (float64, float64) {
	l := b.layout
	p := bd.product
	productNode := "product:" + p.ID

	g.Nodes = append(g.Nodes, models.Node{
		ID:       productNode,
		Type:     models.NodeProduct,
		Position: models.Position{X: 0, Y: 0},
		Data: models.NodeData{
			Name:     p.Name,
			Subtitle: fmt.Sprintf("%d verticales", len(bd.verticals)),
			Code:     p.ID,
			Color:    p.Color,
		},
	})
	minX, maxX := 0.0, 0.0
	extend := func(x float64) {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}

	for vi, code := range bd.verticals {
		vx := rowX(0, vi, len(bd.verticals), l.VerticalGap)
		extend(vx)
		verticalNode := "vertical:" + p.ID + ":" + code

		var inVertical []models.Study
		for i := range matched {
			if matched[i].VerticalCode == code && b.productOrUnknown(&matched[i]) == p.ID {
				inVertical = append(inVertical, matched[i])
			}
		}

		name := b.catalog.VerticalLabel(code)
		if name == "" {
			name = code
		}
		g.Nodes = append(g.Nodes, models.Node{
			ID:       verticalNode,
			Type:     models.NodeVertical,
			Position: models.Position{X: vx, Y: l.VerticalY},
			Data: models.NodeData{
				Name:     name,
				Subtitle: fmt.Sprintf("%d iniciativas", len(inVertical)),
				Code:     code,
				Color:    p.Color,
			},
		})
		g.Edges = append(g.Edges, edge(productNode, verticalNode, false))

		keys, groups := b.partition(inVertical)
		for si, key := range keys {
			group := groups[key]
			sx := rowX(vx, si, len(keys), l.SubproductGap)
			extend(sx)
			subNode := "sub:" + p.ID + ":" + code + ":" + key

			g.Nodes = append(g.Nodes, models.Node{
				ID:       subNode,
				Type:     models.NodeSubproduct,
				Position: models.Position{X: sx, Y: l.SubproductY},
				Data: models.NodeData{
					Name:     subproductLabel(group),
					Subtitle: fmt.Sprintf("%d iniciativas", len(group)),
					Code:     key,
					Color:    p.Color,
				},
			})
			g.Edges = append(g.Edges, edge(verticalNode, subNode, false))

			nodeIDs := make([]string, len(group))
			for row, v := range buildForest(group) {
				s := group[v.index]
				x := sx + float64(v.depth)*l.DepthStep
				extend(x)
				nodeIDs[v.index] = ids.study(s.ID)

				g.Nodes = append(g.Nodes, models.Node{
					ID:       nodeIDs[v.index],
					Type:     models.NodeStudy,
					Position: models.Position{X: x, Y: l.StudyBaseY + float64(row)*l.RowStep},
					Data: models.NodeData{
						Study: &models.StudyNode{
							Study:       s.Clone(),
							DisplayName: naming.DisplayName(b.catalog, &s),
							Preview:     naming.Preview(&s),
							Color:       p.Color,
							Depth:       v.depth,
						},
					},
				})
				if v.parent < 0 {
					g.Edges = append(g.Edges, edge(subNode, nodeIDs[v.index], false))
				} else {
					g.Edges = append(g.Edges, edge(nodeIDs[v.parent], nodeIDs[v.index], true))
				}
			}
		}
	}
	return minX, maxX + l.NodeWidth
}

func (b *Builder) productOrUnknown(s *models.Study) string {
	if id := b.ProductOf(s); id != "" {
		return id
	}
	return UnknownProductID
}

// partition buckets studies by group key, keys in first-seen order.
func (b *Builder) partition(studies []models.Study) ([]string, map[string][]models.Study) {
	var keys []string
	groups := make(map[string][]models.Study)
	for i := range studies {
		k := b.groupKey(&studies[i])
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], studies[i])
	}
	return keys, groups
}

func subproductLabel(group []models.Study) string {
	for _, s := range group {
		if s.SubproductName != "" {
			return s.SubproductName
		}
	}
	for _, s := range group {
		if s.SubproductID != "" {
			return s.SubproductID
		}
	}
	return NoSubproductName
}

func edge(source, target string, derived bool) models.Edge {
	return models.Edge{
		ID:      "e:" + source + "->" + target,
		Source:  source,
		Target:  target,
		Derived: derived,
	}
}

func shift(nodes []models.Node, dx float64) {
	for i := range nodes {
		nodes[i].Position.X += dx
	}
}

// nodeIDs hands out study node ids, suffixing repeated study ids with ~n so
// node ids stay unique within a graph.
type nodeIDs struct {
	seen map[string]int
}

func newNodeIDs() *nodeIDs {
	return &nodeIDs{seen: make(map[string]int)}
}

func (n *nodeIDs) study(id string) string {
	n.seen[id]++
	if c := n.seen[id]; c > 1 {
		return fmt.Sprintf("study:%s~%d", id, c)
	}
	return "study:" + id
}
