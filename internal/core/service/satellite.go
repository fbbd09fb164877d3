package service

import (
	"context"
	"satpix/internal/core/domain"
	"satpix/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Satellite answers location requests with a satellite image of the location.
type Satellite struct {
	geocoder port.Geocoder
	imagery  port.ImageryProvider
}

func NewSatellite(geocoder port.Geocoder, imagery port.ImageryProvider) *Satellite {
	return &Satellite{geocoder: geocoder, imagery: imagery}
}

// Respond never fails: every error is turned into a text reply for the sender.
func (s *Satellite) Respond(ctx context.Context, message domain.Message) domain.Reply {
	l := log.With().
		Str("requestId", message.ID).
		Str("from", message.From).
		Logger()

	if !message.HasText {
		l.Info().Msg("no message body")
		return domain.NewReply(domain.MsgMalformed, "")
	}

	l.Info().Str("text", message.Text).Msg("handling request")

	imageURL, stage, err := s.fetch(ctx, l, message.Text)
	if err != nil {
		return errorReply(l, stage, err)
	}

	l.Info().Str("imageURL", imageURL).Msg("sending satellite image")

	return domain.NewReply(domain.MsgImageReady, imageURL)
}

func (s *Satellite) fetch(ctx context.Context, l zerolog.Logger, text string) (string, string, error) {
	req, err := domain.ParseImageRequest(text)
	if err != nil {
		return "", "parse", err
	}

	l.Debug().
		Str("location", req.Location).
		Str("country", req.CountryCode).
		Bool("hasDate", req.Date != nil).
		Msg("parsed request")

	coords, err := s.geocoder.Geocode(ctx, req.Location, req.CountryCode)
	if err != nil {
		return "", "geocode", err
	}

	l.Debug().Float64("lat", coords.Latitude).Float64("lng", coords.Longitude).Msg("geocoded location")

	image, err := s.imagery.FetchImage(ctx, coords, req.Date)
	if err != nil {
		return "", "imagery", err
	}

	return image.URL, "", nil
}

func errorReply(l zerolog.Logger, stage string, err error) domain.Reply {
	kind := domain.KindOf(err)

	switch kind {
	case domain.KindFormat, domain.KindNotFound:
		l.Info().Str("stage", stage).Stringer("kind", kind).Err(err).Msg("request rejected")
		return domain.NewReply(domain.UserMessage(err), "")
	case domain.KindUpstream:
		l.Error().Str("stage", stage).Err(err).Msg("provider call failed")
		return domain.NewReply(domain.MsgGenericError, "")
	case domain.KindUnknown:
		l.Error().Str("stage", stage).Err(err).Msg("unexpected error")
		return domain.NewReply(domain.MsgGenericError, "")
	default:
		l.Error().Str("stage", stage).Err(err).Msg("unhandled error kind")
		return domain.NewReply(domain.MsgGenericError, "")
	}
}
