package port

import (
	"context"
	"satpix/internal/core/domain"
	"time"
)

type Geocoder interface {
	// Geocode resolves a place name within a country, given as an ISO 3166-1 alpha-2 code, to coordinates.
	Geocode(ctx context.Context, location, countryCode string) (domain.Coordinates, error)
}

type ImageryProvider interface {
	// FetchImage returns a satellite image of the given coordinates. A nil date means today.
	FetchImage(ctx context.Context, coords domain.Coordinates, date *time.Time) (domain.ImageResult, error)
}
