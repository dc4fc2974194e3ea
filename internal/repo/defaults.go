package repo

import "github.com/platformbuilds/studygraph/internal/models"

// DefaultStudies is the sample collection used when nothing usable is stored:
// a tracking survey and an investigation derived from it.
func DefaultStudies() []models.Study {
	return []models.Study{
		{
			ID:                  "M-6-001",
			InitiativeTypeCode:  "A_6.001",
			InitiativeTypeLabel: "Seguimiento",
			Quarter:             "Q2.24",
			VerticalCode:        "FLW",
			ProductID:           "flow",
			SubproductID:        "flow-home",
			TitleShort:          "Home — motivo de visita y encontrabilidad",
			Techniques:          []string{"Encuesta continua", "Tracking"},
			LevelKey:            "tactico",
			Responsible:         "K",
			Status:              "🟢 Implementado",
			Type:                "Encuesta permanente",
			Tools:               []string{"(tool) Encuestas", "(tool) Dashboard"},
			Roles: models.Roles{
				UXR:     []string{"UXR Vertical TV"},
				Product: []string{"PM Flow"},
				Design:  []string{"UX/UI Flow"},
				Data:    []string{"BI"},
				Vendor:  []string{},
			},
			Insights: []string{
				"Se observa fricción de encontrabilidad en accesos a secciones específicas desde Home.",
				"Motivos de visita se agrupan en: ver en vivo, retomar VOD, gestionar suscripción.",
			},
			Notes: "Encuesta always-on para capturar cambios a lo largo del tiempo.",
			Links: []models.Link{
				{Label: "Deck/Doc", URL: "#"},
				{Label: "Dashboard", URL: "#"},
			},
		},
		{
			ID:                  "M-0-009",
			InitiativeTypeCode:  "A_0.001",
			InitiativeTypeLabel: "Investigación",
			Quarter:             "Q3.25",
			VerticalCode:        "FLW",
			ProductID:           "flow",
			SubproductID:        "flow-music",
			TitleShort:          "Music — motivo de visita y encontrabilidad",
			Techniques:          []string{"Encuesta"},
			LevelKey:            "tactico",
			Responsible:         "M",
			ParentID:            "M-6-001",
			Status:              "🟡 Parcial",
			Type:                "Encuesta (derivada)",
			Tools:               []string{"(tool) Encuestas"},
			Roles: models.Roles{
				UXR:     []string{"UXR Vertical TV"},
				Product: []string{"PM Música"},
				Design:  []string{"UX/UI Música"},
				Data:    []string{"BI"},
				Vendor:  []string{},
			},
			Insights: []string{
				"Mayor proporción de visitas orientadas a exploración (no a búsqueda directa).",
				"Encontrabilidad de categorías musicales depende de etiquetas y jerarquía.",
			},
			Notes: "Investigación de 2do nivel derivada del estudio de Home/landings.",
			Links: []models.Link{{Label: "Doc", URL: "#"}},
		},
	}
}
