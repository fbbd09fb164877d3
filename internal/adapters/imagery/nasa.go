package imagery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"satpix/internal/core/domain"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultEndpoint  = "https://api.nasa.gov/planetary/earth/assets"
	DefaultDimension = 0.15
)

const msgNoImage = "No satellite image is available for the specified date and time."

var errNotFound = errors.New("no imagery asset found")

// NASA provides a wrapper for the NASA Earth imagery assets API.
type NASA struct {
	apiKey    string
	endpoint  string
	dimension float64
	client    *http.Client
	now       func() time.Time
}

type Option func(*NASA)

// WithClock sets the clock used to pick today's date when a request has none.
func WithClock(now func() time.Time) Option {
	return func(n *NASA) {
		n.now = now
	}
}

// WithDimension sets the width and height of the requested image in degrees.
func WithDimension(dim float64) Option {
	return func(n *NASA) {
		if dim > 0 {
			n.dimension = dim
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(n *NASA) {
		if client != nil {
			n.client = client
		}
	}
}

func NewNASA(endpoint, apiKey string, opts ...Option) *NASA {
	n := &NASA{
		apiKey:    apiKey,
		endpoint:  endpoint,
		dimension: DefaultDimension,
		client:    &http.Client{},
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

type assetResponse struct {
	URL string `json:"url"`
}

func (n *NASA) FetchImage(ctx context.Context, coords domain.Coordinates, date *time.Time) (domain.ImageResult, error) {
	day := n.now()
	if date != nil {
		day = *date
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("date", day.Format(time.DateOnly))
	params.Set("dim", strconv.FormatFloat(n.dimension, 'f', -1, 64))
	params.Set("api_key", n.apiKey)

	body, err := n.get(ctx, params)
	if errors.Is(err, errNotFound) {
		return domain.ImageResult{}, domain.NewNotFoundError(msgNoImage)
	}
	if err != nil {
		return domain.ImageResult{}, domain.NewUpstreamError("imagery request failed", err)
	}

	var result assetResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.ImageResult{}, domain.NewUpstreamError("imagery request failed",
			fmt.Errorf("error unmarshalling NASA response: %w", err))
	}

	if result.URL == "" {
		return domain.ImageResult{}, domain.NewUpstreamError("imagery request failed",
			errors.New("no url in NASA response"))
	}

	log.Debug().Str("url", result.URL).Str("date", params.Get("date")).Msg("NASA asset response")

	return domain.ImageResult{URL: result.URL}, nil
}

func (n *NASA) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating NASA request: %w", err)
	}

	res, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing NASA request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading NASA response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code from NASA: %d", res.StatusCode)
	}

	return body, nil
}
