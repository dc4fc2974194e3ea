package catalog

// InitiativeType is a kind of research initiative, e.g. A_6.001 "Seguimiento".
type InitiativeType struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

type Vertical struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

type Responsible struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Level groups initiatives by scope. AllowedTypes lists initiative type
// labels that usually belong to the level; it is advisory only.
type Level struct {
	Key          string   `json:"key" yaml:"key"`
	Label        string   `json:"label" yaml:"label"`
	Description  string   `json:"description" yaml:"description"`
	AllowedTypes []string `json:"allowedTypes" yaml:"allowed_types"`
}

// Allows reports whether typeLabel is one of the level's advisory types.
func (l Level) Allows(typeLabel string) bool {
	for _, t := range l.AllowedTypes {
		if t == typeLabel {
			return true
		}
	}
	return false
}

// Product owns a set of vertical codes and carries the display color
// inherited by every node beneath it.
type Product struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Color     string   `json:"color" yaml:"color"`
	Verticals []string `json:"verticals" yaml:"verticals"`
}

// Tables is the raw, declaration-ordered content of a catalog. Order matters:
// graph layout and option lists follow it.
type Tables struct {
	InitiativeTypes []InitiativeType `json:"initiativeTypes" yaml:"initiative_types"`
	Verticals       []Vertical       `json:"verticals" yaml:"verticals"`
	Responsibles    []Responsible    `json:"responsibles" yaml:"responsibles"`
	Levels          []Level          `json:"levels" yaml:"levels"`
	Products        []Product        `json:"products" yaml:"products"`
}
