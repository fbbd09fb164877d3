package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"satpix/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const DefaultEndpoint = "https://geocode.search.hereapi.com/v1/geocode"

const msgNoMatch = "We could not geocode your location. Is it correct?"

// DefaultCountryCodes returns the ISO 3166-1 alpha-2 to alpha-3 codes translated out of the box.
func DefaultCountryCodes() map[string]string {
	return map[string]string{
		"FR": "FRA",
		"US": "USA",
		"GB": "GBR",
		"DE": "DEU",
		"IT": "ITA",
		"ES": "ESP",
		"CA": "CAN",
		"AU": "AUS",
		"JP": "JPN",
		"CN": "CHN",
	}
}

// HERE provides a wrapper for the HERE geocoding API.
type HERE struct {
	apiKey       string
	endpoint     string
	countryCodes map[string]string
	client       *http.Client
}

// NewHERE copies countryCodes, so later changes to the map do not affect the geocoder.
func NewHERE(endpoint, apiKey string, countryCodes map[string]string, client *http.Client) *HERE {
	codes := make(map[string]string, len(countryCodes))
	for k, v := range countryCodes {
		codes[k] = v
	}

	if client == nil {
		client = &http.Client{}
	}

	return &HERE{
		apiKey:       apiKey,
		endpoint:     endpoint,
		countryCodes: codes,
		client:       client,
	}
}

type geocodeResponse struct {
	Items []struct {
		Position struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"position"`
	} `json:"items"`
}

func (h *HERE) Geocode(ctx context.Context, location, countryCode string) (domain.Coordinates, error) {
	country := h.countryCode(countryCode)

	params := url.Values{}
	params.Set("q", location)
	params.Set("in", "countryCode:"+country)
	params.Set("apiKey", h.apiKey)

	body, err := h.get(ctx, params)
	if err != nil {
		return domain.Coordinates{}, domain.NewUpstreamError("geocoding request failed", err)
	}

	var result geocodeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Coordinates{}, domain.NewUpstreamError("geocoding request failed",
			fmt.Errorf("error unmarshalling HERE response: %w", err))
	}

	log.Debug().Int("items", len(result.Items)).Str("country", country).Msg("HERE geocode response")

	if len(result.Items) == 0 {
		return domain.Coordinates{}, domain.NewNotFoundError(msgNoMatch)
	}

	position := result.Items[0].Position

	return domain.Coordinates{Latitude: position.Lat, Longitude: position.Lng}, nil
}

// countryCode falls back to the given code when the table has no alpha-3 translation for it.
func (h *HERE) countryCode(code string) string {
	if iso, ok := h.countryCodes[code]; ok {
		return iso
	}

	log.Debug().Str("country", code).Msg("no alpha-3 country code, passing through")
	return code
}

func (h *HERE) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating HERE request: %w", err)
	}

	res, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing HERE request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading HERE response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code from HERE: %d", res.StatusCode)
	}

	return body, nil
}
