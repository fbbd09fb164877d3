package handler

import (
	"context"
	"net/http"
	"satpix/internal/core/domain"
	"satpix/internal/core/port"
	"satpix/internal/core/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go/client"
	"github.com/twilio/twilio-go/twiml"
)

const signatureHeader = "X-Twilio-Signature"

type TwilioConfig struct {
	// Path is the webhook route, "/sms" when empty.
	Path string
	// AuthToken enables request signature validation when set.
	AuthToken string
	// WebhookURL is the public URL Twilio posts to. When empty it is rebuilt from the request,
	// which only works if proxies preserve the host and protocol.
	WebhookURL string
	Timeout    time.Duration
}

// Twilio answers Twilio messaging webhooks with TwiML.
type Twilio struct {
	responder  port.Responder
	auth       service.Authorizer
	validator  *client.RequestValidator
	webhookURL string
	timeout    time.Duration
}

func NewTwilio(cfg TwilioConfig, responder port.Responder, auth service.Authorizer) *Twilio {
	t := &Twilio{
		responder:  responder,
		auth:       auth,
		webhookURL: cfg.WebhookURL,
		timeout:    cfg.Timeout,
	}

	if cfg.AuthToken != "" {
		v := client.NewRequestValidator(cfg.AuthToken)
		t.validator = &v
	}

	return t
}

// NewRouter serves the Twilio webhook and a health check.
func NewRouter(cfg TwilioConfig, tw *Twilio) *gin.Engine {
	path := cfg.Path
	if path == "" {
		path = "/sms"
	}

	r := gin.New()
	r.Use(requestID(), accessLog())

	r.GET("/health", healthCheck)
	r.POST(path, recoverWithReply(), tw.Handle)

	return r
}

// Handle acknowledges every authentic webhook with HTTP 200. Failures are told to the sender in the reply.
func (t *Twilio) Handle(c *gin.Context) {
	requestID := c.GetString(requestIDKey)
	l := log.With().Str("requestId", requestID).Logger()

	if err := c.Request.ParseForm(); err != nil {
		l.Warn().Err(err).Msg("could not parse webhook form")
	}

	if !t.validSignature(c) {
		l.Warn().Str("ip", c.ClientIP()).Msg("invalid twilio signature")
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	body, hasBody := formValue(c, "Body")
	from, _ := formValue(c, "From")

	if !t.auth.IsAuthorized(from) {
		writeTwiML(c, domain.NewReply(domain.MsgUnauthorized, ""))
		return
	}

	ctx := c.Request.Context()
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	reply := t.responder.Respond(ctx, domain.Message{
		ID:      requestID,
		From:    from,
		Text:    body,
		HasText: hasBody,
	})

	writeTwiML(c, reply)
}

func (t *Twilio) validSignature(c *gin.Context) bool {
	if t.validator == nil {
		return true
	}

	signature := c.GetHeader(signatureHeader)
	if signature == "" {
		return false
	}

	params := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}

	return t.validator.Validate(t.publicURL(c), params, signature)
}

func (t *Twilio) publicURL(c *gin.Context) string {
	if t.webhookURL != "" {
		return t.webhookURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
}

// formValue looks in the POST form first, then the query string.
func formValue(c *gin.Context, key string) (string, bool) {
	if v, ok := c.GetPostForm(key); ok {
		return v, true
	}

	return c.GetQuery(key)
}

func writeTwiML(c *gin.Context, reply domain.Reply) {
	doc, err := renderTwiML(reply)
	if err != nil {
		log.Error().Err(err).Str("requestId", c.GetString(requestIDKey)).Msg("could not render TwiML")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(doc))
}

func renderTwiML(reply domain.Reply) (string, error) {
	elements := []twiml.Element{&twiml.MessagingBody{Message: reply.Body}}
	if reply.HasMedia() {
		elements = append(elements, &twiml.MessagingMedia{Url: reply.MediaURL})
	}

	return twiml.Messages([]twiml.Element{
		&twiml.MessagingMessage{InnerElements: elements},
	})
}

// recoverWithReply turns a panic into the generic error reply, so Twilio still gets an acknowledgment.
func recoverWithReply() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().
			Str("requestId", c.GetString(requestIDKey)).
			Interface("panic", recovered).
			Msg("recovered from panic in webhook")
		writeTwiML(c, domain.NewReply(domain.MsgGenericError, ""))
		c.Abort()
	})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "available",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
