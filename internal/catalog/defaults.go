package catalog

// DefaultTables returns the built-in reference tables.
func DefaultTables() Tables {
	return Tables{
		InitiativeTypes: []InitiativeType{
			{Code: "A_0.001", Label: "Investigación"},
			{Code: "A_2.001", Label: "Discovery"},
			{Code: "A_4.001", Label: "Proyecto"},
			{Code: "A_6.001", Label: "Seguimiento"},
			{Code: "A_8.001", Label: "Gestión"},
			{Code: "A_9.001", Label: "Exposición"},
		},
		Verticals: []Vertical{
			{Code: "APP", Label: "App"},
			{Code: "APW", Label: "App Web"},
			{Code: "B2B", Label: "B2B"},
			{Code: "CDG", Label: "Canal Digital"},
			{Code: "CRO", Label: "Cross"},
			{Code: "FLW", Label: "Flow"},
			{Code: "PER", Label: "Personal"},
			{Code: "PRE", Label: "Prepago"},
			{Code: "ABN", Label: "Abono"},
			{Code: "NET", Label: "Internet"},
			{Code: "POR", Label: "Portabilidad"},
			{Code: "ROA", Label: "Roaming"},
			{Code: "SOL", Label: "Soluciones Conversacionales"},
			{Code: "TDA", Label: "Tienda"},
			{Code: "PAR", Label: "Paraguay"},
			{Code: "UYP", Label: "Uruguay Personal"},
			{Code: "UYF", Label: "Uruguay Flow"},
			{Code: "PPAY", Label: "Personal Pay"},
			{Code: "UXR", Label: "UX Research"},
			{Code: "SMH", Label: "Smarthome"},
			{Code: "DSY", Label: "Design System"},
		},
		Responsibles: []Responsible{
			{Code: "K", Name: "Kau"},
			{Code: "M", Name: "Martín"},
			{Code: "C", Name: "Cami"},
			{Code: "P", Name: "Pili"},
			{Code: "Y", Name: "Yami"},
			{Code: "S", Name: "Seri"},
		},
		Levels: []Level{
			{
				Key:          "estrategico",
				Label:        "Estratégico",
				Description:  "Objetivos a largo plazo, alto impacto dentro y fuera del ecosistema digital.",
				AllowedTypes: []string{"Investigación", "Discovery", "Proyecto"},
			},
			{
				Key:          "tactico",
				Label:        "Táctico",
				Description:  "Objetivos a corto plazo, resultados puntuales dentro del ecosistema digital.",
				AllowedTypes: []string{"Investigación", "Seguimiento", "Gestión"},
			},
			{
				Key:          "proceso-interno",
				Label:        "Proceso interno",
				Description:  "Optimiza estructura/flujo de trabajo para habilitar lo táctico y estratégico.",
				AllowedTypes: []string{"Investigación", "Exposición", "Gestión"},
			},
		},
		Products: []Product{
			{ID: "flow", Name: "Flow", Color: "#21D3A2", Verticals: []string{"FLW"}},
			{ID: "linea-movil", Name: "Línea móvil", Color: "#1EB2F5", Verticals: []string{"PER", "PRE", "ABN", "POR", "ROA"}},
			{ID: "internet-fibra", Name: "Internet hogar (Fibra)", Color: "#1EB2F5", Verticals: []string{"NET"}},
			{ID: "ppay", Name: "PPay", Color: "#5A50F9", Verticals: []string{"PPAY"}},
			{ID: "tienda-personal", Name: "Tienda Personal", Color: "#1EB2F5", Verticals: []string{"TDA"}},
			{ID: "smarthome", Name: "Smarthome", Color: "#052C50", Verticals: []string{"SMH"}},
			{ID: "personal-tech", Name: "Personal Tech", Color: "#1EB2F5", Verticals: []string{"B2B"}},
			{ID: "app", Name: "APP", Color: "#4F46E5", Verticals: []string{"APP", "APW"}},
			{ID: "sfe", Name: "SFE", Color: "#0EA5E9", Verticals: []string{"CDG", "CRO", "SOL", "UXR", "DSY"}},
			{ID: "ext", Name: "EXT", Color: "#F97316", Verticals: []string{"PAR", "UYP", "UYF"}},
		},
	}
}
