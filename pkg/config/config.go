package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/trainboard/pkg/ctdf"
	"github.com/travigo/trainboard/pkg/util"
	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

var ErrMissingConfiguration = errors.New("missing required configuration")

type Config struct {
	CTAAPIKey string `validate:"required"`
	FeedURL   string `validate:"required,url"`

	// Empty when loaded read-only
	GeckoboardAPIKey string

	Stations []ctdf.Station `validate:"min=1,dive"`
	Routes   []string       `validate:"min=1,dive,required"`
	Lines    []ctdf.Line    `validate:"min=1,dive"`

	Location         *time.Location `validate:"required"`
	RefreshInterval  time.Duration  `validate:"gt=0"`
	FetchConcurrency int            `validate:"gte=1"`
}

// LinesFile is the deploy-time override of the stations & lines shown on the dashboard
type LinesFile struct {
	Stations []ctdf.Station `yaml:"stations"`
	Routes   []string       `yaml:"routes"`
	Lines    []ctdf.Line    `yaml:"lines"`
}

func (c *Config) GetLine(code string) (ctdf.Line, bool) {
	for _, line := range c.Lines {
		if strings.EqualFold(line.Code, code) {
			return line, true
		}
	}

	return ctdf.Line{}, false
}

func WidgetEnvironmentVariable(lineCode string) string {
	return fmt.Sprintf("TRAVIGO_GECKOBOARD_WIDGET_%s", strings.ToUpper(lineCode))
}

// Load builds the Config from environment variables, failing with every missing variable named
func Load(env map[string]string) (*Config, error) {
	return load(env, true)
}

// LoadReadOnly is Load for commands that only read the feed. The Geckoboard key and widget
// URLs are optional, though any widget URL given must still be valid.
func LoadReadOnly(env map[string]string) (*Config, error) {
	return load(env, false)
}

func load(env map[string]string, publishing bool) (*Config, error) {
	var missing []string
	required := func(key string) string {
		value := strings.TrimSpace(env[key])
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}
	publishRequired := func(key string) string {
		if publishing {
			return required(key)
		}
		return strings.TrimSpace(env[key])
	}

	config := &Config{
		CTAAPIKey:        required("TRAVIGO_CTA_API_KEY"),
		GeckoboardAPIKey: publishRequired("TRAVIGO_GECKOBOARD_API_KEY"),
		FeedURL:          util.GetEnvironmentVariableOrDefault(env, "TRAVIGO_CTA_FEED_URL", DefaultFeedURL),
	}

	linesFile := LinesFile{
		Stations: DefaultStations,
		Lines:    DefaultLines,
	}
	if path := env["TRAVIGO_CTA_LINES_FILE"]; path != "" {
		fileContents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading lines file: %w", err)
		}

		linesFile, err = ParseLinesFile(fileContents)
		if err != nil {
			return nil, err
		}
	}

	config.Stations = linesFile.Stations
	config.Routes = linesFile.Routes
	if len(config.Routes) == 0 {
		for _, line := range linesFile.Lines {
			config.Routes = append(config.Routes, line.Code)
		}
	}

	for _, line := range linesFile.Lines {
		if line.WidgetURL == "" {
			line.WidgetURL = publishRequired(WidgetEnvironmentVariable(line.Code))
		}
		config.Lines = append(config.Lines, line)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: environment variables %s not set", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	location, err := time.LoadLocation(util.GetEnvironmentVariableOrDefault(env, "TRAVIGO_CTA_TIMEZONE", DefaultTimezone))
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	config.Location = location

	config.RefreshInterval, err = ParseInterval(util.GetEnvironmentVariableOrDefault(env, "TRAVIGO_CTA_REFRESH_INTERVAL", DefaultRefreshInterval))
	if err != nil {
		return nil, err
	}

	config.FetchConcurrency = 1
	if concurrency := env["TRAVIGO_CTA_FETCH_CONCURRENCY"]; concurrency != "" {
		config.FetchConcurrency, err = strconv.Atoi(concurrency)
		if err != nil {
			return nil, fmt.Errorf("parsing TRAVIGO_CTA_FETCH_CONCURRENCY: %w", err)
		}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func ParseLinesFile(contents []byte) (LinesFile, error) {
	var linesFile LinesFile
	if err := yaml.Unmarshal(contents, &linesFile); err != nil {
		return linesFile, fmt.Errorf("parsing lines file: %w", err)
	}

	if len(linesFile.Stations) == 0 || len(linesFile.Lines) == 0 {
		return linesFile, fmt.Errorf("%w: lines file must list stations and lines", ErrMissingConfiguration)
	}

	return linesFile, nil
}

// ParseInterval reads an ISO 8601 duration (eg. PT30S) as a time.Duration
func ParseInterval(value string) (time.Duration, error) {
	interval, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, fmt.Errorf("parsing refresh interval %q: %w", value, err)
	}

	now := time.Now()
	return interval.Shift(now).Sub(now), nil
}
