package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// QueryMode selects which Open Charge Map query shape is issued.
type QueryMode string

const (
	// QueryByCoordinate searches a radius around the map centre.
	QueryByCoordinate QueryMode = "coordinate"
	// QueryByTown searches by country code and town name.
	QueryByTown QueryMode = "town"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration
	ListenAddr  string
	MetricsAddr string
	OCM         OpenChargeMap
	Map         MapSettings
	Views       ViewConfig
}

// OpenChargeMap holds the directory query. Nothing here comes from requests.
type OpenChargeMap struct {
	BaseURL     string    `toml:"base_url"`
	APIKey      string    `toml:"api_key"`
	QueryMode   QueryMode `toml:"query_mode"`
	Latitude    float64   `toml:"latitude"`
	Longitude   float64   `toml:"longitude"`
	DistanceKM  float64   `toml:"distance_km"`
	MaxResults  int       `toml:"max_results"`
	CountryCode string    `toml:"country_code"`
	Town        string    `toml:"town"`
}

// MapSettings describes the rendered map canvas.
type MapSettings struct {
	Title              string `toml:"title"`
	Zoom               int    `toml:"zoom"`
	TileURL            string `toml:"tile_url"`
	TileAttribution    string `toml:"tile_attribution"`
	AvailableIconURL   string `toml:"available_icon_url"`
	UnavailableIconURL string `toml:"unavailable_icon_url"`
	ShadowURL          string `toml:"shadow_url"`
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

func WithListenAddr(addr string) Option {
	return func(c *Config) {
		c.ListenAddr = addr
	}
}

func WithMetricsAddr(addr string) Option {
	return func(c *Config) {
		c.MetricsAddr = addr
	}
}

// WithAPIKey sets the Open Charge Map access key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.OCM.APIKey = key
	}
}

func WithQueryMode(mode QueryMode) Option {
	return func(c *Config) {
		c.OCM.QueryMode = mode
	}
}

// WithCenter moves both the search centre and the map centre.
func WithCenter(lat, lon float64) Option {
	return func(c *Config) {
		c.OCM.Latitude = lat
		c.OCM.Longitude = lon
	}
}

func WithOpenChargeMap(ocm OpenChargeMap) Option {
	return func(c *Config) {
		c.OCM = ocm
	}
}

func WithViews(views ViewConfig) Option {
	return func(c *Config) {
		c.Views = views
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment: "production",
		LogLevel:    zerolog.InfoLevel,
		HTTPTimeout: 10 * time.Second,
		ListenAddr:  ":8080",
		MetricsAddr: ":9090",
		OCM: OpenChargeMap{
			BaseURL:     "https://api.openchargemap.io",
			QueryMode:   QueryByCoordinate,
			Latitude:    12.9716,
			Longitude:   77.5946,
			DistanceKM:  10,
			MaxResults:  50,
			CountryCode: "IN",
			Town:        "Bengaluru",
		},
		Map: MapSettings{
			Title:              "Bengaluru EV Tracker (Live)",
			Zoom:               12,
			TileURL:            "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			TileAttribution:    `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
			AvailableIconURL:   "https://raw.githubusercontent.com/pointhi/leaflet-color-markers/master/img/marker-icon-2x-green.png",
			UnavailableIconURL: "https://raw.githubusercontent.com/pointhi/leaflet-color-markers/master/img/marker-icon-2x-red.png",
			ShadowURL:          "https://unpkg.com/leaflet@1.9.4/dist/images/marker-shadow.png",
		},
		Views: defaultViewConfig(),
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Validate rejects configurations that cannot produce a working query.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OCM.APIKey) == "" {
		return fmt.Errorf("open charge map api key is required (set OCM_API_KEY)")
	}
	if c.OCM.Latitude < -90 || c.OCM.Latitude > 90 || c.OCM.Longitude < -180 || c.OCM.Longitude > 180 {
		return &InvalidCoordinatesError{Latitude: c.OCM.Latitude, Longitude: c.OCM.Longitude}
	}
	switch c.OCM.QueryMode {
	case QueryByCoordinate:
		if c.OCM.DistanceKM <= 0 {
			return fmt.Errorf("distance must be positive, got %v", c.OCM.DistanceKM)
		}
	case QueryByTown:
		if c.OCM.Town == "" || c.OCM.CountryCode == "" {
			return fmt.Errorf("town query needs both town and country code")
		}
	default:
		return fmt.Errorf("unknown query mode %q", c.OCM.QueryMode)
	}
	if c.OCM.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive, got %d", c.OCM.MaxResults)
	}
	if c.Map.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %d", c.Map.Zoom)
	}
	return c.Views.validate()
}

type InvalidCoordinatesError struct {
	Latitude  float64
	Longitude float64
}

func (e *InvalidCoordinatesError) Error() string {
	return fmt.Sprintf("invalid coordinates: %v,%v", e.Latitude, e.Longitude)
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	defaults := New()
	ocm := defaults.OCM
	ocm.BaseURL = getEnvOrDefault("OCM_BASE_URL", ocm.BaseURL)
	ocm.APIKey = getEnvOrDefault("OCM_API_KEY", "")
	ocm.QueryMode = QueryMode(getEnvOrDefault("OCM_QUERY_MODE", string(ocm.QueryMode)))
	ocm.Latitude = getFloatEnvOrDefault("OCM_LATITUDE", ocm.Latitude)
	ocm.Longitude = getFloatEnvOrDefault("OCM_LONGITUDE", ocm.Longitude)
	ocm.DistanceKM = getFloatEnvOrDefault("OCM_DISTANCE_KM", ocm.DistanceKM)
	ocm.MaxResults = getEnvInt("OCM_MAX_RESULTS", ocm.MaxResults)
	ocm.CountryCode = getEnvOrDefault("OCM_COUNTRY_CODE", ocm.CountryCode)
	ocm.Town = getEnvOrDefault("OCM_TOWN", ocm.Town)

	cfg := New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithListenAddr(getEnvOrDefault("LISTEN_ADDR", defaults.ListenAddr)),
		WithMetricsAddr(getEnvOrDefault("METRICS_ADDR", defaults.MetricsAddr)),
		WithOpenChargeMap(ocm),
	)

	// the view loader logs, so the level has to be in place first
	zerolog.SetGlobalLevel(cfg.LogLevel)
	cfg.Views = GetViewConfig()

	cfg.Map.Title = getEnvOrDefault("MAP_TITLE", cfg.Map.Title)
	cfg.Map.Zoom = getEnvInt("MAP_ZOOM", cfg.Map.Zoom)
	cfg.Map.TileURL = getEnvOrDefault("MAP_TILE_URL", cfg.Map.TileURL)
	cfg.Map.AvailableIconURL = getEnvOrDefault("MAP_ICON_AVAILABLE_URL", cfg.Map.AvailableIconURL)
	cfg.Map.UnavailableIconURL = getEnvOrDefault("MAP_ICON_UNAVAILABLE_URL", cfg.Map.UnavailableIconURL)

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Warn().Str("key", key).Msg("Invalid float value in environment variable, using default")
	}
	return defaultValue
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}
