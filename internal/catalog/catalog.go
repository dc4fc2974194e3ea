package catalog

import "fmt"

const (
	// Placeholder shown for missing level/responsible labels.
	EmptyLabel = "—"
)

// VerticalConflict records a vertical code declared by more than one product.
// The index keeps the last declaration (Winner).
type VerticalConflict struct {
	Vertical string `json:"vertical"`
	Previous string `json:"previous"`
	Winner   string `json:"winner"`
}

func (c VerticalConflict) String() string {
	return fmt.Sprintf("vertical %s declared by %s and %s, using %s", c.Vertical, c.Previous, c.Winner, c.Winner)
}

// Catalog is an immutable view over Tables plus the lookup indices derived
// from them. Build one with New and share it; nothing mutates it afterwards.
type Catalog struct {
	tables Tables

	typeByDigit       map[string]InitiativeType
	typeByCode        map[string]InitiativeType
	verticalByCode    map[string]Vertical
	verticalToProduct map[string]string
	productByID       map[string]Product
	responsibleByCode map[string]Responsible
	levelByKey        map[string]Level
	levelKeyByLabel   map[string]string

	conflicts []VerticalConflict
}

// New copies t and derives the lookup indices.
func New(t Tables) *Catalog {
	c := &Catalog{
		tables:            cloneTables(t),
		typeByDigit:       make(map[string]InitiativeType, len(t.InitiativeTypes)),
		typeByCode:        make(map[string]InitiativeType, len(t.InitiativeTypes)),
		verticalByCode:    make(map[string]Vertical, len(t.Verticals)),
		verticalToProduct: make(map[string]string),
		productByID:       make(map[string]Product, len(t.Products)),
		responsibleByCode: make(map[string]Responsible, len(t.Responsibles)),
		levelByKey:        make(map[string]Level, len(t.Levels)),
		levelKeyByLabel:   make(map[string]string, len(t.Levels)),
	}

	for _, it := range c.tables.InitiativeTypes {
		c.typeByCode[it.Code] = it
		if d, ok := TypeDigit(it.Code); ok {
			c.typeByDigit[d] = it
		}
	}
	for _, v := range c.tables.Verticals {
		c.verticalByCode[v.Code] = v
	}
	for _, r := range c.tables.Responsibles {
		c.responsibleByCode[r.Code] = r
	}
	for _, l := range c.tables.Levels {
		c.levelByKey[l.Key] = l
		c.levelKeyByLabel[Normalize(l.Label)] = l.Key
	}
	for _, p := range c.tables.Products {
		c.productByID[p.ID] = p
		for _, code := range p.Verticals {
			if prev, ok := c.verticalToProduct[code]; ok && prev != p.ID {
				c.conflicts = append(c.conflicts, VerticalConflict{Vertical: code, Previous: prev, Winner: p.ID})
			}
			c.verticalToProduct[code] = p.ID
		}
	}

	return c
}

// Default returns a catalog over DefaultTables.
func Default() *Catalog {
	return New(DefaultTables())
}

// Tables returns a copy of the declaration-ordered tables.
func (c *Catalog) Tables() Tables {
	return cloneTables(c.tables)
}

func (c *Catalog) InitiativeTypes() []InitiativeType {
	return append([]InitiativeType(nil), c.tables.InitiativeTypes...)
}

func (c *Catalog) Verticals() []Vertical {
	return append([]Vertical(nil), c.tables.Verticals...)
}

func (c *Catalog) Responsibles() []Responsible {
	return append([]Responsible(nil), c.tables.Responsibles...)
}

func (c *Catalog) Levels() []Level {
	return cloneTables(Tables{Levels: c.tables.Levels}).Levels
}

func (c *Catalog) Products() []Product {
	return cloneTables(Tables{Products: c.tables.Products}).Products
}

// Conflicts lists vertical codes claimed by more than one product, in
// declaration order.
func (c *Catalog) Conflicts() []VerticalConflict {
	return append([]VerticalConflict(nil), c.conflicts...)
}

func (c *Catalog) TypeByDigit(digit string) (InitiativeType, bool) {
	it, ok := c.typeByDigit[digit]
	return it, ok
}

func (c *Catalog) TypeByCode(code string) (InitiativeType, bool) {
	it, ok := c.typeByCode[code]
	return it, ok
}

// TypeLabel returns the catalog label for code, or "" when unknown.
func (c *Catalog) TypeLabel(code string) string {
	return c.typeByCode[code].Label
}

func (c *Catalog) Vertical(code string) (Vertical, bool) {
	v, ok := c.verticalByCode[code]
	return v, ok
}

func (c *Catalog) HasVertical(code string) bool {
	_, ok := c.verticalByCode[code]
	return ok
}

// VerticalLabel returns the label for code, or "" when unknown.
func (c *Catalog) VerticalLabel(code string) string {
	return c.verticalByCode[code].Label
}

// ProductForVertical returns the id of the product owning code.
func (c *Catalog) ProductForVertical(code string) (string, bool) {
	id, ok := c.verticalToProduct[code]
	return id, ok
}

func (c *Catalog) Product(id string) (Product, bool) {
	p, ok := c.productByID[id]
	if !ok {
		return Product{}, false
	}
	p.Verticals = append([]string(nil), p.Verticals...)
	return p, true
}

// ProductName returns the product's display name, or "" when unknown.
func (c *Catalog) ProductName(id string) string {
	return c.productByID[id].Name
}

func (c *Catalog) HasResponsible(code string) bool {
	_, ok := c.responsibleByCode[code]
	return ok
}

// ResponsibleLabel renders "K — Kau", or EmptyLabel for unknown codes.
func (c *Catalog) ResponsibleLabel(code string) string {
	r, ok := c.responsibleByCode[code]
	if !ok {
		return EmptyLabel
	}
	return r.Code + " — " + r.Name
}

func (c *Catalog) Level(key string) (Level, bool) {
	l, ok := c.levelByKey[key]
	return l, ok
}

// LevelLabel returns the label for key, or EmptyLabel when unknown.
func (c *Catalog) LevelLabel(key string) string {
	l, ok := c.levelByKey[key]
	if !ok {
		return EmptyLabel
	}
	return l.Label
}

// LevelKeyForLabel resolves a human label ("Táctico", "tactico ") to its key.
func (c *Catalog) LevelKeyForLabel(label string) (string, bool) {
	key, ok := c.levelKeyByLabel[Normalize(label)]
	return key, ok
}

func cloneTables(t Tables) Tables {
	out := Tables{
		InitiativeTypes: append([]InitiativeType(nil), t.InitiativeTypes...),
		Verticals:       append([]Vertical(nil), t.Verticals...),
		Responsibles:    append([]Responsible(nil), t.Responsibles...),
	}
	for _, l := range t.Levels {
		l.AllowedTypes = append([]string(nil), l.AllowedTypes...)
		out.Levels = append(out.Levels, l)
	}
	for _, p := range t.Products {
		p.Verticals = append([]string(nil), p.Verticals...)
		out.Products = append(out.Products, p)
	}
	return out
}
