package models

type NodeKind string

const (
	NodeProduct    NodeKind = "product"
	NodeVertical   NodeKind = "vertical"
	NodeSubproduct NodeKind = "subproduct"
	NodeStudy      NodeKind = "study"
)

type GraphMode string

const (
	GraphScoped GraphMode = "scoped"
	GraphGlobal GraphMode = "global"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StudyNode is the payload of a study node: the record plus values the
// renderer shows without recomputing them.
type StudyNode struct {
	Study
	DisplayName string `json:"displayName"`
	Preview     string `json:"preview"`
	Color       string `json:"color"`
	Depth       int    `json:"depth"`
}

// NodeData is the kind-specific payload. Structural nodes use Name,
// Subtitle, Code and Color; study nodes carry Study.
type NodeData struct {
	Name     string     `json:"name,omitempty"`
	Subtitle string     `json:"subtitle,omitempty"`
	Code     string     `json:"code,omitempty"`
	Color    string     `json:"color,omitempty"`
	Study    *StudyNode `json:"study,omitempty"`
}

type Node struct {
	ID       string   `json:"id"`
	Type     NodeKind `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Edge links two node ids. Derived edges join a study to its parent study;
// the rest are containment edges from structural nodes.
type Edge struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Target  string `json:"target"`
	Derived bool   `json:"derived"`
}

// Graph is the output of a build. StudiesInScope is the scope before search
// and filters, used to resolve parent/child links of matched studies.
type Graph struct {
	Mode            GraphMode `json:"mode"`
	Title           string    `json:"title"`
	Nodes           []Node    `json:"nodes"`
	Edges           []Edge    `json:"edges"`
	FilteredStudies []Study   `json:"filteredStudies"`
	StudiesInScope  []Study   `json:"studiesInScope"`
}
