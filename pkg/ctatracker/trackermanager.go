package ctatracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
	"github.com/travigo/trainboard/pkg/config"
	"github.com/travigo/trainboard/pkg/ctdf"
	"github.com/travigo/trainboard/pkg/geckoboard"
)

type ArrivalsFeed interface {
	GetArrivals(ctx context.Context, mapID string, routes []string) ([]byte, error)
}

type WidgetPublisher interface {
	Push(ctx context.Context, widgetURL string, html string) error
}

type TrackerManager struct {
	Config *config.Config

	Feed      ArrivalsFeed
	Publisher WidgetPublisher
}

func NewTrackerManager(cfg *config.Config) *TrackerManager {
	return &TrackerManager{
		Config:    cfg,
		Feed:      NewFeedClient(cfg.FeedURL, cfg.CTAAPIKey),
		Publisher: geckoboard.NewClient(cfg.GeckoboardAPIKey),
	}
}

type RunSummary struct {
	RunID string

	StationsFetched int
	StationsFailed  int

	ArrivalsReceived int
	ArrivalsUnique   int

	LinesPublished int
	LinesFailed    int
}

// Failed is true when any line failed to publish or no station could be read at all
func (s RunSummary) Failed() bool {
	return s.LinesFailed > 0 || (s.StationsFetched == 0 && s.StationsFailed > 0)
}

type stationResult struct {
	arrivals []*ctdf.Arrival
	err      error
}

// Run does a single pass: fetch every station, dedupe, then render and publish every line
func (t *TrackerManager) Run(ctx context.Context) RunSummary {
	summary := RunSummary{RunID: uuid.NewString()}
	logger := log.With().Str("run", summary.RunID).Logger()
	startTime := time.Now()

	arrivals := t.collectArrivals(ctx, logger, &summary)

	for _, line := range t.Config.Lines {
		lineLogger := logger.With().Str("line", line.Code).Logger()

		if err := t.publishLine(ctx, line, arrivals); err != nil {
			lineLogger.Error().Err(err).Msgf("Error pushing to %s widget", line.Name)
			summary.LinesFailed++
			continue
		}

		lineLogger.Info().Msgf("Data successfully pushed to %s widget", line.Name)
		summary.LinesPublished++
	}

	logger.Info().
		Int("stations", summary.StationsFetched).
		Int("failedstations", summary.StationsFailed).
		Int("arrivals", summary.ArrivalsReceived).
		Int("uniquearrivals", summary.ArrivalsUnique).
		Int("published", summary.LinesPublished).
		Int("failedlines", summary.LinesFailed).
		Str("length", time.Since(startTime).String()).
		Msg("Completed arrivals run")

	return summary
}

// Board returns the deduplicated arrivals across all stations without publishing anything
func (t *TrackerManager) Board(ctx context.Context) []*ctdf.Arrival {
	summary := RunSummary{RunID: uuid.NewString()}
	logger := log.With().Str("run", summary.RunID).Logger()

	return t.collectArrivals(ctx, logger, &summary)
}

// Watch repeats Run every interval until the context is cancelled
func (t *TrackerManager) Watch(ctx context.Context, interval time.Duration) {
	log.Info().Dur("refresh", interval).Int("lines", len(t.Config.Lines)).Msg("Starting CTA arrivals tracker")

	for {
		startTime := time.Now()

		t.Run(ctx)

		waitTime := interval - time.Since(startTime)
		if waitTime < 0 {
			waitTime = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(waitTime):
		}
	}
}

// Stations are fetched up to FetchConcurrency at a time but results keep the configured station
// order, so the first-seen record for a duplicate train is always from the earliest station
func (t *TrackerManager) collectArrivals(ctx context.Context, logger zerolog.Logger, summary *RunSummary) []*ctdf.Arrival {
	mapper := iter.Mapper[ctdf.Station, stationResult]{
		MaxGoroutines: t.Config.FetchConcurrency,
	}

	results := mapper.Map(t.Config.Stations, func(station *ctdf.Station) stationResult {
		logger.Info().Str("station", station.Name).Str("mapid", station.MapID).Msg("Fetching arrivals")

		arrivals, err := t.stationArrivals(ctx, *station, summary.RunID)
		return stationResult{arrivals: arrivals, err: err}
	})

	var allArrivals []*ctdf.Arrival
	for i, result := range results {
		station := t.Config.Stations[i]

		if result.err != nil {
			// Feed failures are already logged by the client
			if !errors.Is(result.err, ErrFeedUnavailable) {
				logger.Error().Err(result.err).Str("station", station.Name).Str("mapid", station.MapID).Msg("Failed to parse station arrivals")
			}

			summary.StationsFailed++
			continue
		}

		summary.StationsFetched++
		allArrivals = append(allArrivals, result.arrivals...)
	}

	summary.ArrivalsReceived = len(allArrivals)
	allArrivals = ctdf.RemoveDuplicateArrivals(allArrivals)
	summary.ArrivalsUnique = len(allArrivals)

	return allArrivals
}

func (t *TrackerManager) stationArrivals(ctx context.Context, station ctdf.Station, runID string) ([]*ctdf.Arrival, error) {
	body, err := t.Feed.GetArrivals(ctx, station.MapID, t.Config.Routes)
	if err != nil {
		return nil, err
	}

	arrivals, err := ParseArrivals(bytes.NewReader(body), t.Config.Location)
	if err != nil {
		return nil, err
	}

	datasource := &ctdf.DataSource{
		OriginalFormat: "cta-xml",
		Provider:       "CTA",
		Dataset:        fmt.Sprintf("cta-train-tracker/%s/arrivals", station.MapID),
		Identifier:     runID,
	}
	for _, arrival := range arrivals {
		arrival.DataSource = datasource
	}

	return arrivals, nil
}

func (t *TrackerManager) publishLine(ctx context.Context, line ctdf.Line, arrivals []*ctdf.Arrival) error {
	grouped := ctdf.GroupArrivalsByDirection(arrivals, line.Code)

	html, err := geckoboard.RenderLine(line, grouped)
	if err != nil {
		return fmt.Errorf("rendering line: %w", err)
	}

	return t.Publisher.Push(ctx, line.WidgetURL, html)
}
