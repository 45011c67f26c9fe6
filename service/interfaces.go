package service

import (
	"context"
	"net/http"

	"github.com/ONSdigital/dp-arms-api/api"
	"github.com/ONSdigital/dp-healthcheck/healthcheck"
)

//go:generate moq -out mock/server.go -pkg mock . HTTPServer
//go:generate moq -out mock/health_check.go -pkg mock . HealthChecker
//go:generate moq -out mock/arms_client.go -pkg mock . ARMSClient

// HTTPServer defines the required methods from the HTTP server
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HealthChecker defines the required methods from Healthcheck
type HealthChecker interface {
	Handler(w http.ResponseWriter, req *http.Request)
	Start(ctx context.Context)
	Stop()
	AddCheck(name string, checker healthcheck.Checker) (err error)
}

// ARMSClient is the ARMS client as used by the API, plus its health checker
type ARMSClient interface {
	api.ARMSClient
	Checker(apiKey string) healthcheck.Checker
}
