package api

import (
	"context"
	"time"

	"github.com/ONSdigital/dp-arms-api/arms"
)

//go:generate moq -out mock/arms_client.go -pkg mock . ARMSClient
//go:generate moq -out mock/generator.go -pkg mock . Generator

// ARMSClient contains the required methods for the ARMS API Client
type ARMSClient interface {
	SurveyData(ctx context.Context, params arms.QueryParameters) (arms.Response, error)
	SurveyTable(ctx context.Context, params arms.QueryParameters) (*arms.Table, error)
	States(ctx context.Context, apiKey string) (*arms.Table, error)
	FarmTypes(ctx context.Context, apiKey string) (*arms.Table, error)
}

// Generator contains methods for dynamically required values
type Generator interface {
	Timestamp() time.Time
}
