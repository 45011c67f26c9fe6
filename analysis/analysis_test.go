package analysis_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ONSdigital/dp-arms-api/analysis"
	"github.com/ONSdigital/dp-arms-api/arms"
	. "github.com/smartystreets/goconvey/convey"
)

func row(variable, state, category, year string, estimate interface{}) arms.Row {
	return arms.Row{
		arms.ColVariableID:    variable,
		arms.ColState:         state,
		arms.ColCategoryValue: category,
		arms.ColYear:          json.Number(year),
		arms.ColEstimate:      estimate,
	}
}

func testTable() *arms.Table {
	return &arms.Table{
		Columns: []string{arms.ColVariableID, arms.ColState, arms.ColCategoryValue, arms.ColYear, arms.ColEstimate},
		Rows: []arms.Row{
			row("kount", "Florida", "age", "2003", json.Number("2")),
			row("kount", "Florida", "age", "2001", "1"),
			row("kount", "Florida", "age", "2002", json.Number("2")),
			row("kount", "Florida", "age", "2004", "(D)"),
			row("kount", "Florida", "sal", "2001", json.Number("5")),
			row("kount", "Florida", "sal", "2002", json.Number("7")),
			row("kount", "Georgia", "age", "2001", json.Number("9")),
			row("crop", "Florida", "age", "2001", json.Number("4")),
		},
	}
}

func TestTimeSeriesRegression(t *testing.T) {
	Convey("Given a survey table", t, func() {
		tbl := testTable()

		Convey("When a regression is fitted for a matching triple", func() {
			r, err := analysis.TimeSeriesRegression(tbl, "kount", "Florida", "age")

			Convey("Then the suppressed estimate is dropped and the fit is returned", func() {
				So(err, ShouldBeNil)
				So(r.Observations, ShouldEqual, 3)
				So(r.DFResid, ShouldEqual, 1)
				So(r.Slope, ShouldAlmostEqual, 0.5, 1e-9)
				So(r.Intercept, ShouldAlmostEqual, 5.0/3-0.5*2002, 1e-6)
				So(r.RSquared, ShouldAlmostEqual, 0.75, 1e-9)
				So(r.AdjRSquared, ShouldAlmostEqual, 0.5, 1e-9)
				So(r.StdErrSlope, ShouldAlmostEqual, 0.288675, 1e-6)
				So(r.TSlope, ShouldAlmostEqual, 1.732051, 1e-6)
			})

			Convey("Then the observations are sorted by year", func() {
				So(r.Points[0].X, ShouldEqual, 2001)
				So(r.Points[2].X, ShouldEqual, 2003)
			})

			Convey("Then the chart holds the observations and the fitted line", func() {
				c := r.Chart()
				So(c.ChartType, ShouldEqual, analysis.ChartScatter)
				So(c.ShowGrid, ShouldBeTrue)
				So(c.Series, ShouldHaveLength, 2)
				So(c.Series[0].Points, ShouldHaveLength, 3)
				So(c.Series[1].Kind, ShouldEqual, analysis.KindLine)
				So(c.Series[1].Points[0].Y, ShouldAlmostEqual, r.Predict(2001), 1e-9)
				So(c.Colors, ShouldHaveLength, 2)
			})

			Convey("Then the summary reports the fit", func() {
				s := r.Summary(time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC))
				So(s, ShouldContainSubstring, "OLS Regression Results")
				So(s, ShouldContainSubstring, "16 Oct 2026")
				So(s, ShouldContainSubstring, "09:30:00")
				So(s, ShouldContainSubstring, "0.750")
			})
		})

		Convey("When the triple matches no rows", func() {
			r, err := analysis.TimeSeriesRegression(tbl, "kount", "Georgia", "sal")

			Convey("Then an input error is returned and nothing is fitted", func() {
				So(r, ShouldBeNil)
				So(errors.Is(err, analysis.ErrNoRows), ShouldBeTrue)
				So(arms.IsInput(err), ShouldBeTrue)
			})
		})

		Convey("When the triple matches too few usable rows", func() {
			_, err := analysis.TimeSeriesRegression(tbl, "kount", "Florida", "sal")

			Convey("Then an insufficient data error is returned", func() {
				So(errors.Is(err, analysis.ErrInsufficientData), ShouldBeTrue)
				So(arms.IsInput(err), ShouldBeTrue)
			})
		})
	})

	Convey("Given no table", t, func() {
		Convey("Then there are no rows to fit", func() {
			r, err := analysis.TimeSeriesRegression(nil, "kount", "Florida", "age")
			So(r, ShouldBeNil)
			So(errors.Is(err, analysis.ErrNoRows), ShouldBeTrue)
		})
	})

	Convey("Given observations that all fall in one year", t, func() {
		tbl := &arms.Table{Rows: []arms.Row{
			row("kount", "Florida", "age", "2001", json.Number("1")),
			row("kount", "Florida", "age", "2001", json.Number("2")),
			row("kount", "Florida", "age", "2001", json.Number("3")),
		}}

		Convey("Then the fit is refused", func() {
			_, err := analysis.TimeSeriesRegression(tbl, "kount", "Florida", "age")
			So(errors.Is(err, analysis.ErrInsufficientData), ShouldBeTrue)
		})
	})

	Convey("Given observations on an exact line", t, func() {
		tbl := &arms.Table{Rows: []arms.Row{
			row("kount", "Florida", "age", "2000", json.Number("1")),
			row("kount", "Florida", "age", "2001", json.Number("3")),
			row("kount", "Florida", "age", "2002", json.Number("5")),
		}}

		Convey("Then the fit is perfect and the t values stay at zero", func() {
			r, err := analysis.TimeSeriesRegression(tbl, "kount", "Florida", "age")
			So(err, ShouldBeNil)
			So(r.Slope, ShouldAlmostEqual, 2, 1e-9)
			So(r.RSquared, ShouldAlmostEqual, 1, 1e-9)
			So(r.StdErrSlope, ShouldAlmostEqual, 0, 1e-9)
			So(r.TSlope, ShouldEqual, 0)
		})
	})
}

func TestPlotSeriesByCategory(t *testing.T) {
	Convey("Given a survey table", t, func() {
		tbl := testTable()

		Convey("When the series for a variable and state are plotted", func() {
			c, err := analysis.PlotSeriesByCategory(tbl, "kount", "Florida")

			Convey("Then there is one line per category value, sorted", func() {
				So(err, ShouldBeNil)
				So(c.ChartType, ShouldEqual, analysis.ChartLine)
				So(c.Series, ShouldHaveLength, 2)
				So(c.Series[0].Name, ShouldEqual, "age")
				So(c.Series[1].Name, ShouldEqual, "sal")
				So(c.Series[0].Color, ShouldNotEqual, c.Series[1].Color)
			})

			Convey("Then each line runs in year order", func() {
				pts := c.Series[0].Points
				So(pts, ShouldHaveLength, 3)
				So(pts[0].Label, ShouldEqual, "2001")
				So(pts[1].Label, ShouldEqual, "2002")
				So(pts[2].Label, ShouldEqual, "2003")
			})
		})

		Convey("When nothing matches the variable and state", func() {
			c, err := analysis.PlotSeriesByCategory(tbl, "crop", "Georgia")

			Convey("Then an input error is returned and no chart is built", func() {
				So(c, ShouldBeNil)
				So(errors.Is(err, analysis.ErrNoRows), ShouldBeTrue)
			})
		})
	})

	Convey("Given no table", t, func() {
		Convey("Then there are no rows to plot", func() {
			c, err := analysis.PlotSeriesByCategory(nil, "kount", "Florida")
			So(c, ShouldBeNil)
			So(errors.Is(err, analysis.ErrNoRows), ShouldBeTrue)
			So(arms.IsInput(err), ShouldBeTrue)
		})
	})
}
