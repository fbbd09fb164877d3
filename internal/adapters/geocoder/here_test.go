package geocoder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"satpix/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHERE_Geocode(t *testing.T) {
	tests := []struct {
		name           string
		responseBody   interface{}
		responseStatus int
		want           domain.Coordinates
		wantKind       domain.ErrorKind
	}{
		{
			name: "first item wins",
			responseBody: map[string]interface{}{
				"items": []interface{}{
					map[string]interface{}{"position": map[string]interface{}{"lat": 48.8566, "lng": 2.3522}},
					map[string]interface{}{"position": map[string]interface{}{"lat": 33.6609, "lng": -95.5555}},
				},
			},
			responseStatus: http.StatusOK,
			want:           domain.Coordinates{Latitude: 48.8566, Longitude: 2.3522},
		},
		{
			name:           "no items",
			responseBody:   map[string]interface{}{"items": []interface{}{}},
			responseStatus: http.StatusOK,
			wantKind:       domain.KindNotFound,
		},
		{
			name:           "items missing",
			responseBody:   map[string]interface{}{},
			responseStatus: http.StatusOK,
			wantKind:       domain.KindNotFound,
		},
		{
			name:           "api error",
			responseBody:   "unauthorized",
			responseStatus: http.StatusUnauthorized,
			wantKind:       domain.KindUpstream,
		},
		{
			name:           "server error",
			responseBody:   "boom",
			responseStatus: http.StatusInternalServerError,
			wantKind:       domain.KindUpstream,
		},
		{
			name:           "malformed JSON",
			responseBody:   "{not_json}",
			responseStatus: http.StatusOK,
			wantKind:       domain.KindUpstream,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.responseStatus)
				switch b := tc.responseBody.(type) {
				case string:
					w.Write([]byte(b))
				default:
					json.NewEncoder(w).Encode(b)
				}
			}))
			defer srv.Close()

			g := NewHERE(srv.URL, "test-api-key", DefaultCountryCodes(), srv.Client())

			got, err := g.Geocode(t.Context(), "Paris", "FR")
			if tc.wantKind != domain.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, tc.wantKind, domain.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHERE_Geocode_NotFoundMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	g := NewHERE(srv.URL, "test-api-key", DefaultCountryCodes(), srv.Client())

	_, err := g.Geocode(t.Context(), "Atlantis", "GR")
	require.Error(t, err)
	assert.Equal(t, "We could not geocode your location. Is it correct?", domain.UserMessage(err))
}

func TestHERE_Geocode_QueryParameters(t *testing.T) {
	tests := []struct {
		name        string
		countryCode string
		codes       map[string]string
		wantIn      string
	}{
		{
			name:        "translated to alpha-3",
			countryCode: "FR",
			codes:       DefaultCountryCodes(),
			wantIn:      "countryCode:FRA",
		},
		{
			name:        "unknown code passes through",
			countryCode: "NZ",
			codes:       DefaultCountryCodes(),
			wantIn:      "countryCode:NZ",
		},
		{
			name:        "injected table",
			countryCode: "NZ",
			codes:       map[string]string{"NZ": "NZL"},
			wantIn:      "countryCode:NZL",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var query url.Values
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				query = r.URL.Query()
				w.Write([]byte(`{"items":[{"position":{"lat":1.5,"lng":2.5}}]}`))
			}))
			defer srv.Close()

			g := NewHERE(srv.URL, "test-api-key", tc.codes, srv.Client())

			_, err := g.Geocode(t.Context(), "Some Town", tc.countryCode)
			require.NoError(t, err)

			assert.Equal(t, "Some Town", query.Get("q"))
			assert.Equal(t, tc.wantIn, query.Get("in"))
			assert.Equal(t, "test-api-key", query.Get("apiKey"))
		})
	}
}

func TestNewHERE_CopiesCountryCodes(t *testing.T) {
	codes := map[string]string{"FR": "FRA"}
	g := NewHERE(DefaultEndpoint, "key", codes, nil)

	codes["FR"] = "XXX"

	assert.Equal(t, "FRA", g.countryCode("FR"))
	assert.NotNil(t, g.client)
}

func TestHERE_Geocode_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	g := NewHERE(endpoint, "key", DefaultCountryCodes(), nil)

	_, err := g.Geocode(t.Context(), "Paris", "FR")
	require.Error(t, err)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
}
