package arms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	dphttp "github.com/ONSdigital/dp-net/v2/http"
	"github.com/ONSdigital/log.go/v2/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultURL is the base of the public ARMS data API
const DefaultURL = "https://api.ers.usda.gov/data/arms"

// Service is the name reported by the ARMS health checker
const Service = "ARMS API"

const (
	pathSurveyData = "/surveydata"
	pathState      = "/state"
	pathFarmType   = "/farmtype"
)

// Response is a decoded ARMS response envelope. Numbers are kept as json.Number.
type Response map[string]interface{}

// Data returns the data member of the envelope
func (r Response) Data() interface{} {
	return r["data"]
}

// Client issues requests against the ARMS data API. Every call is a single
// request: there are no retries and nothing is cached.
type Client struct {
	cli dphttp.Clienter
	url string
}

// NewClient creates a Client for the API at armsURL. The timeout bounds each request.
func NewClient(armsURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(armsURL, &dphttp.Client{
		MaxRetries: 0,
		RetryTime:  20 * time.Millisecond,
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	})
}

// NewWithHTTPClient creates a Client using the provided http client
func NewWithHTTPClient(armsURL string, cli dphttp.Clienter) *Client {
	return &Client{
		cli: cli,
		url: strings.TrimRight(armsURL, "/"),
	}
}

// SurveyData queries the surveydata endpoint and returns the decoded response
func (c *Client) SurveyData(ctx context.Context, params QueryParameters) (Response, error) {
	body, err := c.surveyData(ctx, params)
	if err != nil {
		return nil, err
	}
	if _, err := extractData(body); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var resp Response
	if err := dec.Decode(&resp); err != nil {
		return nil, NewError(KindDecode, fmt.Errorf("failed to decode response: %w", err), nil)
	}
	return resp, nil
}

// SurveyTable queries the surveydata endpoint and projects the data array
// into a Table
func (c *Client) SurveyTable(ctx context.Context, params QueryParameters) (*Table, error) {
	body, err := c.surveyData(ctx, params)
	if err != nil {
		return nil, err
	}

	data, err := extractData(body)
	if err != nil {
		return nil, err
	}

	t, err := newTable(data)
	if err != nil {
		return nil, NewError(KindDecode, err, log.Data{"query": params.Redacted()})
	}

	log.Info(ctx, "survey data table built", log.Data{"rows": t.Len(), "columns": t.Columns})
	return t, nil
}

// States lists the states for which ARMS data is available, with columns
// id, code and name
func (c *Client) States(ctx context.Context, apiKey string) (*Table, error) {
	return c.lookup(ctx, pathState, apiKey, stateColumns)
}

// FarmTypes lists the ARMS farm types, with columns id, name, desc and is_invalid
func (c *Client) FarmTypes(ctx context.Context, apiKey string) (*Table, error) {
	return c.lookup(ctx, pathFarmType, apiKey, farmTypeColumns)
}

// Checker returns a health checker that probes the state endpoint with apiKey
func (c *Client) Checker(apiKey string) healthcheck.Checker {
	return func(ctx context.Context, state *healthcheck.CheckState) error {
		if apiKey == "" {
			return state.Update(healthcheck.StatusWarning, "no api key configured for "+Service, 0)
		}

		if _, err := c.get(ctx, pathState, keyQuery(apiKey), keyQuery(redactedKey)); err != nil {
			code := 0
			var armsErr *Error
			if errors.As(err, &armsErr) {
				code = armsErr.Code()
			}
			return state.Update(healthcheck.StatusCritical, err.Error(), code)
		}

		return state.Update(healthcheck.StatusOK, Service+" is ok", http.StatusOK)
	}
}

func (c *Client) surveyData(ctx context.Context, params QueryParameters) ([]byte, error) {
	query, err := params.Encode()
	if err != nil {
		return nil, err
	}
	return c.get(ctx, pathSurveyData, query, params.Redacted())
}

func (c *Client) lookup(ctx context.Context, path, apiKey string, columns []string) (*Table, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, NewError(KindInput, errors.New("missing api key"), log.Data{"path": path})
	}

	body, err := c.get(ctx, path, keyQuery(apiKey), keyQuery(redactedKey))
	if err != nil {
		return nil, err
	}

	data, err := extractData(body)
	if err != nil {
		return nil, err
	}

	t, err := newTable(data, columns...)
	if err != nil {
		return nil, NewError(KindDecode, err, log.Data{"path": path})
	}
	return t, nil
}

// get performs a single GET against path. The query may contain the api key,
// so only the redacted form is ever logged or returned in errors.
func (c *Client) get(ctx context.Context, path, query, redacted string) ([]byte, error) {
	logData := log.Data{
		"path":  path,
		"query": redacted,
	}
	log.Info(ctx, "calling ARMS API", logData)

	resp, err := c.cli.Get(ctx, c.url+path+"?"+query)
	if err != nil {
		return nil, NewError(KindNetwork,
			fmt.Errorf("failed to call ARMS API: %w", redactURLError(err, c.url+path+"?"+redacted)),
			logData,
		)
	}
	defer closeResponseBody(ctx, resp)

	logData["status_code"] = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code from ARMS API: %d", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			err = fmt.Errorf("ARMS API rejected the api key: %d", resp.StatusCode)
		}
		return nil, NewError(KindNetwork, err, logData).WithCode(resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(KindNetwork, fmt.Errorf("failed to read ARMS API response body: %w", err), logData).WithCode(resp.StatusCode)
	}
	return b, nil
}

// extractData returns the data member of a response envelope
func extractData(body []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, NewError(KindDecode, fmt.Errorf("failed to decode response: %w", err), nil)
	}

	data, ok := envelope["data"]
	if !ok {
		return nil, NewError(KindDecode, errors.New("response has no data member"), nil)
	}
	return data, nil
}

func keyQuery(apiKey string) string {
	return "api_key=" + url.QueryEscape(apiKey)
}

// redactURLError swaps the url held by a *url.Error for its redacted form
func redactURLError(err error, redacted string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: redacted, Err: urlErr.Err}
	}
	return err
}

// closeResponseBody closes the response body and logs an error if unsuccessful
func closeResponseBody(ctx context.Context, resp *http.Response) {
	if resp.Body != nil {
		if err := resp.Body.Close(); err != nil {
			log.Error(ctx, "error closing http response body", err)
		}
	}
}
