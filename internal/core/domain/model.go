package domain

import "time"

// Message is an inbound text message, independent of the channel it arrived on.
type Message struct {
	ID      string
	From    string
	Text    string
	HasText bool
}

// ImageRequest is a parsed location request.
type ImageRequest struct {
	Location    string
	CountryCode string
	// Date is nil when the sender did not ask for a specific day.
	Date *time.Time
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

type ImageResult struct {
	URL string
}

// Reply is the outbound message handed to a transport for delivery.
type Reply struct {
	Body     string
	MediaURL string
}

func (r Reply) HasMedia() bool {
	return r.MediaURL != ""
}

type Action string

const SendingPhoto Action = "sending_photo"
