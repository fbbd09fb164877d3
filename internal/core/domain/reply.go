package domain

const (
	MsgImageReady   = "Your satellite image:"
	MsgMalformed    = "The location was malformed. Please try again."
	MsgGenericError = "An error occurred"
	MsgUnauthorized = "You are not authorized to use this service."
)

// NewReply builds a reply; an empty mediaURL means a text-only message.
func NewReply(body, mediaURL string) Reply {
	return Reply{Body: body, MediaURL: mediaURL}
}
