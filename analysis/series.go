package analysis

import (
	"fmt"

	"github.com/ONSdigital/dp-arms-api/arms"
	"github.com/ONSdigital/log.go/v2/log"
)

// PlotSeriesByCategory describes a line chart of a variable over time in a
// state, with one series per category value
func PlotSeriesByCategory(t *arms.Table, variableID, state string) (*Chart, error) {
	logData := log.Data{
		"variable_id": variableID,
		"state":       state,
	}

	sub := t.Select(map[string]string{
		arms.ColVariableID: variableID,
		arms.ColState:      state,
	})
	if sub.Len() == 0 {
		return nil, arms.NewError(arms.KindInput, ErrNoRows, logData)
	}

	keys, groups := sub.GroupBy(arms.ColCategoryValue)
	series := make([]Series, 0, len(keys))
	for _, k := range keys {
		points := observations(groups[k])
		if len(points) == 0 {
			continue
		}
		series = append(series, Series{
			Name:   k,
			Kind:   KindLine,
			Points: points,
		})
	}
	if len(series) == 0 {
		return nil, arms.NewError(arms.KindInput, ErrInsufficientData, logData)
	}

	return &Chart{
		ChartType:  ChartLine,
		Title:      fmt.Sprintf("%s, %s", variableID, state),
		XAxis:      arms.ColYear,
		YAxis:      arms.ColEstimate,
		Series:     series,
		Colors:     assignColors(series),
		ShowLegend: true,
		ShowGrid:   true,
	}, nil
}
