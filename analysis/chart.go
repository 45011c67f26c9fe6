package analysis

// Chart describes a chart to be drawn by the caller. Nothing is rendered here.
type Chart struct {
	ChartType  string   `json:"chart_type"`
	Title      string   `json:"title"`
	XAxis      string   `json:"x_axis,omitempty"`
	YAxis      string   `json:"y_axis,omitempty"`
	Series     []Series `json:"series"`
	Colors     []string `json:"colors,omitempty"`
	ShowLegend bool     `json:"show_legend"`
	ShowGrid   bool     `json:"show_grid"`
}

// Series is a named set of points drawn in a single style
type Series struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Points []Point `json:"points"`
	Color  string  `json:"color,omitempty"`
}

// Point is a single x/y data point
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// Chart and series kinds
const (
	ChartLine    = "line"
	ChartScatter = "scatter"

	KindLine    = "line"
	KindScatter = "scatter"
)

var defaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

func assignColors(series []Series) []string {
	colors := make([]string, len(series))
	for i := range series {
		c := defaultColors[i%len(defaultColors)]
		series[i].Color = c
		colors[i] = c
	}
	return colors
}
