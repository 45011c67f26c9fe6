package arms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ONSdigital/log.go/v2/log"
)

// Farm types understood by the surveydata endpoint
const (
	FarmTypeAllFarms           = "all farms"
	FarmTypeFarmBusinesses     = "farm businesses"
	FarmTypeOperatorHouseholds = "farm operator households"
)

const redactedKey = "REDACTED"

// QueryParameters holds the filters for a surveydata request. Sequence
// fields are sent comma-joined, in the order given.
type QueryParameters struct {
	APIKey      string   `json:"-"`
	Years       []string `json:"years"`
	Variables   []string `json:"variables"`
	StateCodes  []string `json:"state_codes,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	ReportCodes []string `json:"report_codes,omitempty"`
	FarmType    string   `json:"farm_type,omitempty"`
}

// Validate checks the parameters can be turned into a surveydata query
func (p QueryParameters) Validate() error {
	if strings.TrimSpace(p.APIKey) == "" {
		return NewError(KindInput, errors.New("missing api key"), nil)
	}
	if len(p.Years) == 0 {
		return NewError(KindInput, errors.New("at least one year is required"), nil)
	}
	if len(p.Variables) == 0 {
		return NewError(KindInput, errors.New("at least one variable is required"), nil)
	}

	fields := []struct {
		name   string
		values []string
	}{
		{"year", p.Years},
		{"variable", p.Variables},
		{"state", p.StateCodes},
		{"report", p.ReportCodes},
		{"category", p.Categories},
	}
	for _, f := range fields {
		for i, v := range f.values {
			if strings.TrimSpace(v) == "" {
				return NewError(KindInput,
					fmt.Errorf("blank value in %s list", f.name),
					log.Data{"field": f.name, "position": i},
				)
			}
		}
	}
	return nil
}

// Encode validates the parameters and returns the raw surveydata query string.
// Parameters appear as api_key, variable, year, state, report, category,
// farmtype; empty optional values are left out.
func (p QueryParameters) Encode() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p.encode(url.QueryEscape(p.APIKey)), nil
}

// Redacted returns the query string with the api key masked, for logging
func (p QueryParameters) Redacted() string {
	return p.encode(redactedKey)
}

func (p QueryParameters) encode(key string) string {
	var b strings.Builder
	b.WriteString("api_key=")
	b.WriteString(key)

	add := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString("&")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(value)
	}

	add("variable", joinValues(p.Variables))
	add("year", joinValues(p.Years))
	add("state", joinValues(p.StateCodes))
	add("report", joinValues(p.ReportCodes))
	add("category", joinValues(p.Categories))
	add("farmtype", FormatFarmType(p.FarmType))

	return b.String()
}

// FormatFarmType replaces every space in a farm type with '+'. Each word is
// query escaped on its own, leaving any '+' already present as a separator.
func FormatFarmType(farmType string) string {
	if farmType == "" {
		return ""
	}
	words := strings.Split(farmType, " ")
	for i, w := range words {
		words[i] = strings.ReplaceAll(url.QueryEscape(w), "%2B", "+")
	}
	return strings.Join(words, "+")
}

// joinValues query escapes each value and joins them with literal commas
func joinValues(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.QueryEscape(v)
	}
	return strings.Join(escaped, ",")
}

// SplitList parses a comma separated list as sent by API callers, dropping
// surrounding whitespace. An empty string yields nil.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
