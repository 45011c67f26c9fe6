package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ONSdigital/dp-arms-api/arms"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/montanaflynn/stats"
)

var (
	// ErrNoRows is returned when a filter selects no rows of the table
	ErrNoRows = errors.New("no rows match the filter")
	// ErrInsufficientData is returned when the selected rows cannot support a fit
	ErrInsufficientData = errors.New("not enough usable observations")
)

// minObservations is the smallest sample with a residual degree of freedom
const minObservations = 3

// Regression is an ordinary least squares fit of estimate on year
type Regression struct {
	VariableID      string  `json:"variable_id"`
	State           string  `json:"state"`
	CategoryValue   string  `json:"category_value"`
	Observations    int     `json:"observations"`
	DFResid         int     `json:"df_resid"`
	Intercept       float64 `json:"intercept"`
	Slope           float64 `json:"slope"`
	StdErrIntercept float64 `json:"std_err_intercept"`
	StdErrSlope     float64 `json:"std_err_slope"`
	TIntercept      float64 `json:"t_intercept"`
	TSlope          float64 `json:"t_slope"`
	RSquared        float64 `json:"r_squared"`
	AdjRSquared     float64 `json:"adj_r_squared"`
	Points          []Point `json:"points"`
}

// TimeSeriesRegression fits estimate ~ year over the rows of t matching the
// variable, state and category value. Rows whose year or estimate is not a
// number (suppressed estimates) are left out of the fit.
func TimeSeriesRegression(t *arms.Table, variableID, state, categoryValue string) (*Regression, error) {
	logData := log.Data{
		"variable_id":    variableID,
		"state":          state,
		"category_value": categoryValue,
	}

	sub := t.Select(map[string]string{
		arms.ColVariableID:    variableID,
		arms.ColState:         state,
		arms.ColCategoryValue: categoryValue,
	})
	if sub.Len() == 0 {
		return nil, arms.NewError(arms.KindInput, ErrNoRows, logData)
	}

	points := observations(sub)
	logData["observations"] = len(points)
	if len(points) < minObservations {
		return nil, arms.NewError(arms.KindInput, ErrInsufficientData, logData)
	}

	r, ok := fit(points)
	if !ok {
		return nil, arms.NewError(arms.KindInput, fmt.Errorf("%w: every observation is for the same year", ErrInsufficientData), logData)
	}

	r.VariableID = variableID
	r.State = state
	r.CategoryValue = categoryValue
	return r, nil
}

// observations returns the usable (year, estimate) points of t sorted by year
func observations(t *arms.Table) []Point {
	points := make([]Point, 0, t.Len())
	for _, row := range t.Rows {
		x, ok := row.Float(arms.ColYear)
		if !ok {
			continue
		}
		y, ok := row.Float(arms.ColEstimate)
		if !ok {
			continue
		}
		points = append(points, Point{X: x, Y: y, Label: row.String(arms.ColYear)})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].X < points[j].X
	})
	return points
}

// fit computes the least squares line through points. It fails when the
// x values have no spread.
func fit(points []Point) (*Regression, bool) {
	n := float64(len(points))

	xs := make(stats.Float64Data, len(points))
	ys := make(stats.Float64Data, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}

	meanX, err := xs.Mean()
	if err != nil {
		return nil, false
	}
	meanY, err := ys.Mean()
	if err != nil {
		return nil, false
	}

	var sxx, sxy, sst float64
	for _, p := range points {
		dx, dy := p.X-meanX, p.Y-meanY
		sxx += dx * dx
		sxy += dx * dy
		sst += dy * dy
	}
	if sxx == 0 {
		return nil, false
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	var ssr float64
	for _, p := range points {
		e := p.Y - (intercept + slope*p.X)
		ssr += e * e
	}

	df := len(points) - 2
	r := &Regression{
		Observations: len(points),
		DFResid:      df,
		Intercept:    intercept,
		Slope:        slope,
		RSquared:     1,
		Points:       points,
	}
	if sst > 0 {
		r.RSquared = 1 - ssr/sst
	}
	r.AdjRSquared = 1 - (1-r.RSquared)*(n-1)/float64(df)

	sigma2 := ssr / float64(df)
	r.StdErrSlope = math.Sqrt(sigma2 / sxx)
	r.StdErrIntercept = math.Sqrt(sigma2 * (1/n + meanX*meanX/sxx))

	// t values stay at zero for an exact fit
	if r.StdErrSlope > 0 {
		r.TSlope = slope / r.StdErrSlope
	}
	if r.StdErrIntercept > 0 {
		r.TIntercept = intercept / r.StdErrIntercept
	}
	return r, true
}

// Predict returns the fitted estimate for year
func (r *Regression) Predict(year float64) float64 {
	return r.Intercept + r.Slope*year
}

// Chart returns a scatter of the observations with the fitted line over them
func (r *Regression) Chart() *Chart {
	first, last := r.Points[0], r.Points[len(r.Points)-1]
	series := []Series{
		{
			Name:   "observed",
			Kind:   KindScatter,
			Points: r.Points,
		},
		{
			Name: "fitted",
			Kind: KindLine,
			Points: []Point{
				{X: first.X, Y: r.Predict(first.X), Label: first.Label},
				{X: last.X, Y: r.Predict(last.X), Label: last.Label},
			},
		},
	}

	return &Chart{
		ChartType:  ChartScatter,
		Title:      fmt.Sprintf("%s, %s, %s", r.VariableID, r.State, r.CategoryValue),
		XAxis:      arms.ColYear,
		YAxis:      arms.ColEstimate,
		Series:     series,
		Colors:     assignColors(series),
		ShowLegend: true,
		ShowGrid:   true,
	}
}

const rule = "=============================================================================="

// Summary formats the fit as a plain text report dated at
func (r *Regression) Summary(at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", centre("OLS Regression Results", len(rule)))
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "%-16s%22s   %-18s%17.3f\n", "Dep. Variable:", arms.ColEstimate, "R-squared:", r.RSquared)
	fmt.Fprintf(&b, "%-16s%22s   %-18s%17.3f\n", "Model:", "OLS", "Adj. R-squared:", r.AdjRSquared)
	fmt.Fprintf(&b, "%-16s%22s   %-18s%17d\n", "Date:", at.Format("Mon, 02 Jan 2006"), "No. Observations:", r.Observations)
	fmt.Fprintf(&b, "%-16s%22s   %-18s%17d\n", "Time:", at.Format("15:04:05"), "Df Residuals:", r.DFResid)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "%-12s%14s%14s%14s\n", "", "coef", "std err", "t")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", len(rule)))
	fmt.Fprintf(&b, "%-12s%14.4f%14.4f%14.3f\n", "Intercept", r.Intercept, r.StdErrIntercept, r.TIntercept)
	fmt.Fprintf(&b, "%-12s%14.4f%14.4f%14.3f\n", arms.ColYear, r.Slope, r.StdErrSlope, r.TSlope)
	fmt.Fprintf(&b, "%s\n", rule)
	return b.String()
}

func centre(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
