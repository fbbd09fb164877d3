package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"satpix/internal/adapters/geocoder"
	"satpix/internal/adapters/handler"
	"satpix/internal/adapters/imagery"
	"satpix/internal/adapters/sender"
	"satpix/internal/config"
	"satpix/internal/core/domain/command"
	"satpix/internal/core/service"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.Info().Msg("starting satpix...")

	configPath := os.Getenv("SATPIX_CONFIG")
	if configPath == "" {
		configPath = "."
	}

	log.Info().Str("path", configPath).Msg("reading config...")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	zerolog.SetGlobalLevel(cfg.Log.Level)
	if cfg.Log.Level > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.HERE.APIKey == "" || cfg.NASA.APIKey == "" {
		log.Warn().Msg("HERE or NASA api key missing, provider calls will fail")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	countryCodes := geocoder.DefaultCountryCodes()
	for alpha2, alpha3 := range cfg.Geocoder.CountryCodes {
		countryCodes[alpha2] = alpha3
	}

	here := geocoder.NewHERE(cfg.HERE.Endpoint, cfg.HERE.APIKey, countryCodes, httpClient)
	nasa := imagery.NewNASA(cfg.NASA.Endpoint, cfg.NASA.APIKey,
		imagery.WithHTTPClient(httpClient),
		imagery.WithDimension(cfg.NASA.Dimension))

	satellite := service.NewSatellite(here, nasa)
	allowlist := service.NewAllowlist(cfg.Auth.AllowedSenders)

	if cfg.Twilio.AuthToken == "" {
		log.Warn().Msg("twilio auth token not set, webhook signatures are not validated")
	}

	twilioCfg := handler.TwilioConfig{
		Path:       cfg.Twilio.Path,
		AuthToken:  cfg.Twilio.AuthToken,
		WebhookURL: cfg.Twilio.WebhookURL,
		Timeout:    cfg.HandlerTimeout,
	}
	router := handler.NewRouter(twilioCfg, handler.NewTwilio(twilioCfg, satellite, allowlist))

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("path", cfg.Twilio.Path).Msg("webhook listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("webhook server failed")
		}
	}()

	if cfg.Telegram.Enabled() {
		go startTelegram(ctx, cfg, satellite, allowlist)
	}

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func startTelegram(ctx context.Context, cfg *config.Config, satellite *service.Satellite, auth service.Authorizer) {
	b, err := bot.New(cfg.Telegram.BotToken)
	if err != nil {
		log.Error().Err(err).Msg("failed initializing telegram bot, continuing without it")
		return
	}

	s := sender.NewTelegram(b)

	registry := &command.Registry{}
	registry.Register(command.NewHelp(registry, s, "/start"))
	registry.Register(command.NewHelp(registry, s, "/help"))

	tgHandler := handler.NewTelegram(registry, command.NewSatellite(satellite, s, auth, "satellite"), cfg.HandlerTimeout)

	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, tgHandler.Handle)

	log.Info().Msg("telegram bot listening")
	b.Start(ctx)
}
