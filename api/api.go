package api

import (
	"context"
	"net/http"

	"github.com/ONSdigital/log.go/v2/log"
	"github.com/gorilla/mux"
)

// API provides the HTTP surface over the ARMS client. The ARMS api key is
// held by the service; callers never send it.
type API struct {
	Router    *mux.Router
	arms      ARMSClient
	apiKey    string
	generator Generator
}

// Setup creates the API and registers its routes on r
func Setup(ctx context.Context, r *mux.Router, c ARMSClient, apiKey string, g Generator) *API {
	api := &API{
		Router:    r,
		arms:      c,
		apiKey:    apiKey,
		generator: g,
	}

	if apiKey == "" {
		log.Warn(ctx, "no ARMS api key configured, every ARMS request will be rejected")
	}

	r.HandleFunc("/surveydata", api.getSurveyData).Methods(http.MethodGet)
	r.HandleFunc("/surveydata/regression", api.getRegression).Methods(http.MethodGet)
	r.HandleFunc("/surveydata/series", api.getSeries).Methods(http.MethodGet)
	r.HandleFunc("/states", api.getStates).Methods(http.MethodGet)
	r.HandleFunc("/farmtypes", api.getFarmTypes).Methods(http.MethodGet)
	return api
}
