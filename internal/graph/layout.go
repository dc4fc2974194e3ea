package graph

// Layout holds the fixed spacing of the tree. Y values are absolute rows;
// gaps are horizontal distances between sibling centres.
type Layout struct {
	VerticalGap   float64 `mapstructure:"vertical_gap" yaml:"vertical_gap"`
	SubproductGap float64 `mapstructure:"subproduct_gap" yaml:"subproduct_gap"`
	DepthStep     float64 `mapstructure:"depth_step" yaml:"depth_step"`
	RowStep       float64 `mapstructure:"row_step" yaml:"row_step"`
	BandGap       float64 `mapstructure:"band_gap" yaml:"band_gap"`
	NodeWidth     float64 `mapstructure:"node_width" yaml:"node_width"`
	VerticalY     float64 `mapstructure:"vertical_y" yaml:"vertical_y"`
	SubproductY   float64 `mapstructure:"subproduct_y" yaml:"subproduct_y"`
	StudyBaseY    float64 `mapstructure:"study_base_y" yaml:"study_base_y"`
}

func DefaultLayout() Layout {
	return Layout{
		VerticalGap:   420,
		SubproductGap: 320,
		DepthStep:     120,
		RowStep:       140,
		BandGap:       520,
		NodeWidth:     260,
		VerticalY:     180,
		SubproductY:   360,
		StudyBaseY:    540,
	}
}

// rowX centres n siblings spaced by gap under parentX and returns the i-th.
func rowX(parentX float64, i, n int, gap float64) float64 {
	return parentX + float64(i)*gap - float64(n-1)*gap/2
}
