package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Log      Log
	HERE     Provider
	NASA     NASA
	Geocoder Geocoder
	Twilio   Twilio
	Telegram Telegram
	Auth     Auth

	HandlerTimeout time.Duration
	HTTPTimeout    time.Duration
}

type Server struct {
	Host string
	Port int
}

func (s Server) Address() string {
	return net.JoinHostPort(strings.TrimSpace(s.Host), strconv.Itoa(s.Port))
}

type Log struct {
	Level zerolog.Level
}

type Provider struct {
	APIKey   string
	Endpoint string
}

type NASA struct {
	Provider
	Dimension float64
}

type Geocoder struct {
	// CountryCodes adds to or overrides the built-in alpha-2 to alpha-3 table.
	CountryCodes map[string]string
}

type Twilio struct {
	Path       string
	AuthToken  string
	WebhookURL string
}

type Telegram struct {
	BotToken string
}

func (t Telegram) Enabled() bool {
	return t.BotToken != ""
}

type Auth struct {
	AllowedSenders []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("handler.timeout", "30s")
	v.SetDefault("http.timeout", "15s")
	v.SetDefault("log.level", "info")
	v.SetDefault("here.api_key", "")
	v.SetDefault("here.endpoint", "https://geocode.search.hereapi.com/v1/geocode")
	v.SetDefault("nasa.api_key", "")
	v.SetDefault("nasa.endpoint", "https://api.nasa.gov/planetary/earth/assets")
	v.SetDefault("nasa.dimension", 0.15)
	v.SetDefault("twilio.path", "/sms")
	v.SetDefault("twilio.auth_token", "")
	v.SetDefault("twilio.webhook_url", "")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("auth.allowed_senders", []string{})
}

// Load reads config.toml from path (a file or a directory to search), then applies environment
// overrides such as HERE_API_KEY for here.api_key. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if strings.HasSuffix(path, ".toml") {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(path)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	handlerTimeout, err := time.ParseDuration(v.GetString("handler.timeout"))
	if err != nil || handlerTimeout <= 0 {
		return nil, fmt.Errorf("invalid handler.timeout: %q", v.GetString("handler.timeout"))
	}

	httpTimeout, err := time.ParseDuration(v.GetString("http.timeout"))
	if err != nil || httpTimeout <= 0 {
		return nil, fmt.Errorf("invalid http.timeout: %q", v.GetString("http.timeout"))
	}

	port := v.GetInt("server.port")
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid server.port: %d", port)
	}

	level, err := zerolog.ParseLevel(v.GetString("log.level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	countryCodes := make(map[string]string)
	for k, code := range v.GetStringMapString("geocoder.country_codes") {
		countryCodes[strings.ToUpper(k)] = strings.ToUpper(code)
	}

	return &Config{
		Server: Server{
			Host: v.GetString("server.host"),
			Port: port,
		},
		Log: Log{Level: level},
		HERE: Provider{
			APIKey:   v.GetString("here.api_key"),
			Endpoint: v.GetString("here.endpoint"),
		},
		NASA: NASA{
			Provider: Provider{
				APIKey:   v.GetString("nasa.api_key"),
				Endpoint: v.GetString("nasa.endpoint"),
			},
			Dimension: v.GetFloat64("nasa.dimension"),
		},
		Geocoder: Geocoder{CountryCodes: countryCodes},
		Twilio: Twilio{
			Path:       v.GetString("twilio.path"),
			AuthToken:  v.GetString("twilio.auth_token"),
			WebhookURL: v.GetString("twilio.webhook_url"),
		},
		Telegram: Telegram{BotToken: v.GetString("telegram.bot_token")},
		Auth:     Auth{AllowedSenders: stringList(v, "auth.allowed_senders")},

		HandlerTimeout: handlerTimeout,
		HTTPTimeout:    httpTimeout,
	}, nil
}

// stringList reads a TOML array, or a comma-separated string as set through the environment.
func stringList(v *viper.Viper, key string) []string {
	var raw []string
	if s, ok := v.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = v.GetStringSlice(key)
	}

	list := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}

	return list
}
