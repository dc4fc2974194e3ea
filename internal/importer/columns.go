package importer

import "github.com/platformbuilds/studygraph/internal/catalog"

// Column is a logical CSV column the importer needs.
type Column string

const (
	ColResponsible Column = "Responsable"
	ColInitiative  Column = "Iniciativa"
	ColOrder       Column = "Orden"
	ColQuarter     Column = "Quarter"
	ColVertical    Column = "Vertical"
	ColTitle       Column = "Título"
	ColTechnique   Column = "Método"
	ColLevel       Column = "Nivel"
)

// RequiredColumns in reporting order.
var RequiredColumns = []Column{
	ColResponsible, ColInitiative, ColOrder, ColQuarter,
	ColVertical, ColTitle, ColTechnique, ColLevel,
}

// headerSpellings are the accepted header texts per column, compared after
// catalog.Normalize.
var headerSpellings = map[Column][]string{
	ColResponsible: {"Responsable", "Resp", "Responsable UXR", "Responsible", "Owner"},
	ColInitiative:  {"Iniciativa", "Tipo de iniciativa", "Tipo", "Código iniciativa", "Initiative", "Initiative type"},
	ColOrder:       {"Orden", "Nro", "Nro.", "Número", "N°", "Nº", "#", "Order", "Nro orden"},
	ColQuarter:     {"Quarter", "Q", "Trimestre"},
	ColVertical:    {"Vertical", "Código vertical", "Cod vertical", "Vertical code"},
	ColTitle:       {"Título", "Titulo corto", "Nombre", "Title"},
	ColTechnique:   {"Método", "Metodo", "Técnica", "Técnicas", "Metodología", "Method", "Technique"},
	ColLevel:       {"Nivel", "Level"},
}

// resolveHeader maps each required column to its index in header.
// The first matching header cell wins.
func resolveHeader(header []string) (map[Column]int, []Column) {
	lookup := make(map[string]Column)
	for col, spellings := range headerSpellings {
		for _, s := range spellings {
			lookup[catalog.Normalize(s)] = col
		}
	}

	idx := make(map[Column]int, len(RequiredColumns))
	for i, cell := range header {
		col, ok := lookup[catalog.Normalize(cell)]
		if !ok {
			continue
		}
		if _, seen := idx[col]; !seen {
			idx[col] = i
		}
	}

	var missing []Column
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return idx, missing
}
