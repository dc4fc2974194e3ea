package models

// Roles lists the people involved in a study by discipline.
type Roles struct {
	UXR     []string `json:"uxr"`
	Product []string `json:"product"`
	Design  []string `json:"design"`
	Data    []string `json:"data"`
	Vendor  []string `json:"vendor"`
}

type Link struct {
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required"`
}

// Study is a single research initiative. Optional references (ParentID,
// Responsible, LevelKey, SubproductID, SubproductName) use "" for absent.
type Study struct {
	ID                  string   `json:"id" validate:"required,studyid"`
	InitiativeTypeCode  string   `json:"initiativeTypeCode" validate:"required"`
	InitiativeTypeLabel string   `json:"initiativeTypeLabel"`
	Quarter             string   `json:"quarter" validate:"required,quarter"`
	VerticalCode        string   `json:"verticalCode" validate:"required"`
	ProductID           string   `json:"productId"`
	SubproductID        string   `json:"subproductId,omitempty"`
	SubproductName      string   `json:"subproductName,omitempty"`
	TitleShort          string   `json:"titleShort" validate:"required,max=240"`
	Techniques          []string `json:"techniques" validate:"dive,required"`
	LevelKey            string   `json:"levelKey,omitempty"`
	Responsible         string   `json:"responsible,omitempty"`
	ParentID            string   `json:"parentId,omitempty"`

	Status   string   `json:"status"`
	Type     string   `json:"type"`
	Tools    []string `json:"tools"`
	Roles    Roles    `json:"roles"`
	Insights []string `json:"insights"`
	Notes    string   `json:"notes"`
	Links    []Link   `json:"links" validate:"dive"`
}

// EnsureCollections replaces nil slices with empty ones so the record
// serialises with [] instead of null.
func (s *Study) EnsureCollections() {
	fill := func(v *[]string) {
		if *v == nil {
			*v = []string{}
		}
	}
	fill(&s.Techniques)
	fill(&s.Tools)
	fill(&s.Insights)
	fill(&s.Roles.UXR)
	fill(&s.Roles.Product)
	fill(&s.Roles.Design)
	fill(&s.Roles.Data)
	fill(&s.Roles.Vendor)
	if s.Links == nil {
		s.Links = []Link{}
	}
}

// Clone returns a deep copy.
func (s Study) Clone() Study {
	cp := func(v []string) []string {
		if v == nil {
			return nil
		}
		return append([]string{}, v...)
	}
	out := s
	out.Techniques = cp(s.Techniques)
	out.Tools = cp(s.Tools)
	out.Insights = cp(s.Insights)
	out.Roles = Roles{
		UXR:     cp(s.Roles.UXR),
		Product: cp(s.Roles.Product),
		Design:  cp(s.Roles.Design),
		Data:    cp(s.Roles.Data),
		Vendor:  cp(s.Roles.Vendor),
	}
	if s.Links != nil {
		out.Links = append([]Link{}, s.Links...)
	}
	return out
}

// CloneStudies deep-copies a collection.
func CloneStudies(in []Study) []Study {
	if in == nil {
		return nil
	}
	out := make([]Study, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
