package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"flightwatch/internal/constants"
	"flightwatch/internal/models/dtos"
	"flightwatch/internal/models/entities"
)

// LiveAPIProvider implements FlightDataProvider against a REST flight data API
type LiveAPIProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// Ensure LiveAPIProvider implements FlightDataProvider
var _ FlightDataProvider = (*LiveAPIProvider)(nil)

// NewLiveAPIProvider creates a new flight data API provider
func NewLiveAPIProvider(baseURL, apiKey string, timeout time.Duration) *LiveAPIProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LiveAPIProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *LiveAPIProvider) GetProviderType() string {
	return "flight_data_api"
}

// ============================================================================
// Flight Data Methods
// ============================================================================

// FetchFlightByNumber fetches a flight by its flight number
func (p *LiveAPIProvider) FetchFlightByNumber(ctx context.Context, flightNumber string) (*entities.Flight, error) {
	number, err := requireCode("flight number", flightNumber)
	if err != nil {
		return nil, err
	}

	var raw dtos.APIFlight
	if err := p.doGET(ctx, "/flights", url.Values{"flight_number": {number}}, &raw); err != nil {
		return nil, err
	}
	return decodeFlight(raw)
}

// FetchFlightsByAirport fetches flights touching an airport
func (p *LiveAPIProvider) FetchFlightsByAirport(ctx context.Context, airportCode string) ([]entities.Flight, error) {
	code, err := requireCode("airport code", airportCode)
	if err != nil {
		return nil, err
	}

	var raw []dtos.APIFlight
	if err := p.doGET(ctx, "/flights", url.Values{"airport": {code}}, &raw); err != nil {
		return nil, err
	}
	return decodeFlights(raw)
}

// FetchAirportByCode fetches static airport data
func (p *LiveAPIProvider) FetchAirportByCode(ctx context.Context, code string) (*entities.Airport, error) {
	normalized, err := requireCode("airport code", code)
	if err != nil {
		return nil, err
	}

	var raw dtos.APIAirport
	if err := p.doGET(ctx, "/airports/"+url.PathEscape(normalized), nil, &raw); err != nil {
		return nil, err
	}
	return raw.ToEntity(), nil
}

// FetchFlightPosition fetches the latest position sample for a flight
func (p *LiveAPIProvider) FetchFlightPosition(ctx context.Context, flightID string) (*entities.Telemetry, error) {
	id, err := requireCode("flight id", flightID)
	if err != nil {
		return nil, err
	}

	var raw dtos.APIPosition
	if err := p.doGET(ctx, "/flights/"+url.PathEscape(id)+"/position", nil, &raw); err != nil {
		return nil, err
	}
	tel := raw.ToTelemetry()
	return &tel, nil
}

// FetchConnectingFlights fetches onward connections for a flight
func (p *LiveAPIProvider) FetchConnectingFlights(ctx context.Context, flightID string) ([]entities.Flight, error) {
	id, err := requireCode("flight id", flightID)
	if err != nil {
		return nil, err
	}

	var raw []dtos.APIFlight
	if err := p.doGET(ctx, "/flights/"+url.PathEscape(id)+"/connections", nil, &raw); err != nil {
		return nil, err
	}
	return decodeFlights(raw)
}

func decodeFlight(raw dtos.APIFlight) (*entities.Flight, error) {
	flight, err := raw.ToEntity()
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Malformed flight record",
			Err:     err,
		}
	}
	return flight, nil
}

func decodeFlights(raw []dtos.APIFlight) ([]entities.Flight, error) {
	flights := make([]entities.Flight, 0, len(raw))
	for _, r := range raw {
		flight, err := decodeFlight(r)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *flight)
	}
	return flights, nil
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

// doGET performs a GET request with the access key and decodes JSON into result
func (p *LiveAPIProvider) doGET(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	// Validate API key
	if p.APIKey == "" {
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: "FLIGHT_API_KEY environment variable is not set",
		}
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("access_key", p.APIKey)

	// Build request
	reqURL := p.BaseURL + endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return NewNetworkError(err, "Failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	// Execute request
	resp, err := p.Client.Do(req)
	if err != nil {
		return NewNetworkError(err, "%s", constants.GetErrorMessage(constants.ErrCodeNetworkError))
	}
	defer resp.Body.Close()

	// Handle HTTP errors
	if err := p.handleHTTPError(resp, endpoint); err != nil {
		return err
	}

	// Parse response
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(err, "Failed to read response body")
	}
	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}

	return nil
}

// handleHTTPError converts HTTP errors to ProviderError
func (p *LiveAPIProvider) handleHTTPError(resp *http.Response, endpoint string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(resp.Body)
	return p.buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
}

// buildHTTPError creates appropriate error based on status code
func (p *LiveAPIProvider) buildHTTPError(statusCode int, endpoint string, body string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: fmt.Sprintf("Authentication failed for endpoint %s", endpoint),
			Details: body,
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeNotFound,
			Message: fmt.Sprintf("Resource not found: %s", endpoint),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	case http.StatusBadRequest:
		return &ProviderError{
			Code:    constants.ErrCodeValidationError,
			Message: fmt.Sprintf("Bad request to %s", endpoint),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from %s", statusCode, endpoint),
			Details: body,
		}
	}
}
