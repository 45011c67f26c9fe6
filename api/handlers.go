package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ONSdigital/dp-arms-api/analysis"
	"github.com/ONSdigital/dp-arms-api/arms"
	"github.com/ONSdigital/log.go/v2/log"
)

const (
	formatRaw  = "raw"
	formatCSV  = "csv"
	formatText = "text"

	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv"
	contentTypeText = "text/plain"
)

// ErrorResponse is the body written for a failed request
type ErrorResponse struct {
	Errors []string `json:"errors"`
}

// RegressionResponse is the body written by GET /surveydata/regression
type RegressionResponse struct {
	Regression *analysis.Regression `json:"regression"`
	Summary    string               `json:"summary"`
	Chart      *analysis.Chart      `json:"chart"`
}

func (api *API) getSurveyData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := api.queryParameters(r.URL.Query())

	if r.URL.Query().Get("format") == formatRaw {
		resp, err := api.arms.SurveyData(ctx, params)
		if err != nil {
			api.handleError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, resp)
		return
	}

	t, err := api.arms.SurveyTable(ctx, params)
	if err != nil {
		api.handleError(ctx, w, err)
		return
	}
	writeTable(ctx, w, r, t)
}

func (api *API) getRegression(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	t, err := api.arms.SurveyTable(ctx, api.queryParameters(q))
	if err != nil {
		api.handleError(ctx, w, err)
		return
	}

	reg, err := analysis.TimeSeriesRegression(t, q.Get("variable_id"), q.Get("state_name"), q.Get("category_value"))
	if err != nil {
		api.handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, RegressionResponse{
		Regression: reg,
		Summary:    reg.Summary(api.generator.Timestamp()),
		Chart:      reg.Chart(),
	})
}

func (api *API) getSeries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	t, err := api.arms.SurveyTable(ctx, api.queryParameters(q))
	if err != nil {
		api.handleError(ctx, w, err)
		return
	}

	chart, err := analysis.PlotSeriesByCategory(t, q.Get("variable_id"), q.Get("state_name"))
	if err != nil {
		api.handleError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, chart)
}

func (api *API) getStates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := api.arms.States(ctx, api.apiKey)
	if err != nil {
		api.handleError(ctx, w, err)
		return
	}
	writeTable(ctx, w, r, t)
}

func (api *API) getFarmTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := api.arms.FarmTypes(ctx, api.apiKey)
	if err != nil {
		api.handleError(ctx, w, err)
		return
	}
	writeTable(ctx, w, r, t)
}

// queryParameters maps the request query onto ARMS filters, adding the
// service api key
func (api *API) queryParameters(q url.Values) arms.QueryParameters {
	return arms.QueryParameters{
		APIKey:      api.apiKey,
		Variables:   arms.SplitList(q.Get("variable")),
		Years:       arms.SplitList(q.Get("year")),
		StateCodes:  arms.SplitList(q.Get("state")),
		ReportCodes: arms.SplitList(q.Get("report")),
		Categories:  arms.SplitList(q.Get("category")),
		FarmType:    strings.TrimSpace(q.Get("farmtype")),
	}
}

// handleError logs err and writes the matching status. Input errors are the
// caller's to fix; anything that went wrong talking to ARMS is a bad gateway.
func (api *API) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	logData := log.Data{}

	var armsErr *arms.Error
	if errors.As(err, &armsErr) {
		for k, v := range armsErr.LogData() {
			logData[k] = v
		}
		logData["kind"] = armsErr.Kind().String()

		switch armsErr.Kind() {
		case arms.KindInput:
			status = http.StatusBadRequest
			msg = "check your inputs: " + err.Error()
		case arms.KindNetwork:
			status = http.StatusBadGateway
			msg = "failed to reach the ARMS API"
			if c := armsErr.Code(); c == http.StatusUnauthorized || c == http.StatusForbidden {
				msg = "check your key: the ARMS API rejected it"
			}
		case arms.KindDecode:
			status = http.StatusBadGateway
			msg = "unexpected response from the ARMS API"
		}
	}

	logData["response_status"] = status
	log.Error(ctx, "request failed", err, logData)
	writeJSON(ctx, w, status, ErrorResponse{Errors: []string{msg}})
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == formatCSV ||
		strings.Contains(r.Header.Get("Accept"), contentTypeCSV)
}

// wantsText only honours an Accept header led by text/plain, since clients
// commonly list it after their preferred type
func wantsText(r *http.Request) bool {
	return r.URL.Query().Get("format") == formatText ||
		strings.HasPrefix(r.Header.Get("Accept"), contentTypeText)
}

// writeTable writes t as CSV, as a plain text table or, by default, as JSON
func writeTable(ctx context.Context, w http.ResponseWriter, r *http.Request, t *arms.Table) {
	switch {
	case wantsCSV(r):
		w.Header().Set("Content-Type", contentTypeCSV)
		w.WriteHeader(http.StatusOK)
		if err := t.WriteCSV(w); err != nil {
			log.Error(ctx, "failed to write csv response", err)
		}
	case wantsText(r):
		w.Header().Set("Content-Type", contentTypeText)
		w.WriteHeader(http.StatusOK)
		t.Render(w)
	default:
		writeJSON(ctx, w, http.StatusOK, t)
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error(ctx, "failed to marshal response", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		log.Error(ctx, "failed to write response", err)
	}
}
