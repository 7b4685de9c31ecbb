package tmdb

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/amaumene/moviedeck/internal/config"
	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/amaumene/moviedeck/internal/models"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// PlaceholderImage is served for movies without artwork
	PlaceholderImage = "/placeholder-movie.svg"
	// DefaultImageSize is the poster width used when none is requested
	DefaultImageSize = "w500"

	tracerName = "github.com/amaumene/moviedeck/internal/services/tmdb"
)

// Result carries gateway data along with the path that produced it
type Result[T any] struct {
	Source models.Source `json:"source"`
	Data   T             `json:"data"`
}

// Gateway answers catalog queries from the live TMDB API, falling back to
// the local dataset when no key is configured or a live call fails
type Gateway struct {
	client       *Client // nil without a valid API key
	fallback     *Fallback
	imageBaseURL string
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	logger       *logrus.Logger

	healthMu   sync.Mutex
	lastHealth *HealthStatus
}

// HealthStatus is the outcome of the last upstream health check
type HealthStatus struct {
	CheckedAt time.Time `json:"checked_at"`
	Up        bool      `json:"up"`
	Error     string    `json:"error,omitempty"`
}

// NewGateway creates a gateway. Live calls are only made when cfg carries a
// usable API key.
func NewGateway(cfg *config.Config, fallback *Fallback, m *metrics.Metrics, tp trace.TracerProvider, logger *logrus.Logger) *Gateway {
	g := &Gateway{
		fallback:     fallback,
		imageBaseURL: cfg.TMDBImageBaseURL,
		metrics:      m,
		tracer:       tp.Tracer(tracerName),
		logger:       logger,
	}
	if cfg.HasValidAPIKey() {
		g.client = NewClient(cfg, logger)
	}
	return g
}

// Live reports whether live calls are attempted
func (g *Gateway) Live() bool {
	return g.client != nil
}

// ListPopular returns a page of popular movies
func (g *Gateway) ListPopular(ctx context.Context, page int) (Result[models.PageResult], error) {
	if page < 1 {
		return Result[models.PageResult]{}, ErrInvalidPage
	}

	ctx, span := g.tracer.Start(ctx, "tmdb.ListPopular", trace.WithAttributes(attribute.Int("page", page)))
	defer span.End()

	if g.client != nil {
		result, err := g.client.Popular(ctx, page)
		if err == nil {
			g.record("popular", models.SourceLive, span)
			return newResult(models.SourceLive, withResults(*result)), nil
		}
		g.logger.WithError(err).WithField("page", page).Error("Error fetching popular movies, using fallback data")
		span.RecordError(err)
	}

	g.record("popular", models.SourceFallback, span)
	return newResult(models.SourceFallback, g.fallback.Popular(page)), nil
}

// Search returns a page of movies matching query. Blank queries are the
// caller's concern: the fallback matches everything for them.
func (g *Gateway) Search(ctx context.Context, query string, page int) (Result[models.PageResult], error) {
	if page < 1 {
		return Result[models.PageResult]{}, ErrInvalidPage
	}

	ctx, span := g.tracer.Start(ctx, "tmdb.Search", trace.WithAttributes(
		attribute.String("query", query),
		attribute.Int("page", page),
	))
	defer span.End()

	if g.client != nil {
		result, err := g.client.Search(ctx, query, page)
		if err == nil {
			g.record("search", models.SourceLive, span)
			return newResult(models.SourceLive, withResults(*result)), nil
		}
		g.logger.WithError(err).WithFields(logrus.Fields{
			"query": query,
			"page":  page,
		}).Error("Error searching movies, using fallback data")
		span.RecordError(err)
	}

	g.record("search", models.SourceFallback, span)
	return newResult(models.SourceFallback, g.fallback.Search(query, page)), nil
}

// GetDetails returns the full record for id.
// Unknown ids yield ErrNotFound. A transient live failure is served from the
// fallback dataset when it holds the id, otherwise the live error is returned.
func (g *Gateway) GetDetails(ctx context.Context, id int) (Result[models.MovieDetails], error) {
	ctx, span := g.tracer.Start(ctx, "tmdb.GetDetails", trace.WithAttributes(attribute.Int("movie_id", id)))
	defer span.End()

	if g.client == nil {
		details, err := g.fallback.Details(id)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return Result[models.MovieDetails]{}, err
		}
		g.record("details", models.SourceFallback, span)
		return newResult(models.SourceFallback, details), nil
	}

	details, err := g.client.Details(ctx, id)
	if err == nil {
		g.record("details", models.SourceLive, span)
		return newResult(models.SourceLive, *details), nil
	}

	g.logger.WithError(err).WithField("movie_id", id).Error("Error fetching movie details")
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return Result[models.MovieDetails]{}, errors.Join(ErrNotFound, err)
	}

	if local, ferr := g.fallback.Details(id); ferr == nil {
		g.record("details", models.SourceFallback, span)
		return newResult(models.SourceFallback, local), nil
	}
	return Result[models.MovieDetails]{}, err
}

// ImageURL builds the CDN URL for an image path. Missing paths map to the
// local placeholder.
func (g *Gateway) ImageURL(path *string, size string) string {
	return BuildImageURL(g.imageBaseURL, path, size)
}

// BuildImageURL is ImageURL without a gateway
func BuildImageURL(base string, path *string, size string) string {
	if path == nil || *path == "" {
		return PlaceholderImage
	}
	if size == "" {
		size = DefaultImageSize
	}
	p := *path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + "/" + size + p
}

// Suggest returns fallback titles close to query
func (g *Gateway) Suggest(query string, limit int) []Suggestion {
	return g.fallback.Suggest(query, limit)
}

// CheckHealth checks that the live API answers. It returns nil in fallback mode.
func (g *Gateway) CheckHealth(ctx context.Context) error {
	if g.client == nil {
		return nil
	}

	ctx, span := g.tracer.Start(ctx, "tmdb.CheckHealth")
	defer span.End()

	status := HealthStatus{CheckedAt: time.Now(), Up: true}
	_, err := g.client.Popular(ctx, 1)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		status.Up = false
		status.Error = err.Error()
		g.metrics.UpstreamUp.Set(0)
	} else {
		g.metrics.UpstreamUp.Set(1)
	}

	g.healthMu.Lock()
	g.lastHealth = &status
	g.healthMu.Unlock()
	return err
}

// LastHealthCheck returns the last health check outcome, nil before the first one
func (g *Gateway) LastHealthCheck() *HealthStatus {
	g.healthMu.Lock()
	defer g.healthMu.Unlock()
	if g.lastHealth == nil {
		return nil
	}
	status := *g.lastHealth
	return &status
}

func newResult[T any](source models.Source, data T) Result[T] {
	return Result[T]{Source: source, Data: data}
}

func withResults(page models.PageResult) models.PageResult {
	if page.Results == nil {
		page.Results = []models.Movie{}
	}
	return page
}

func (g *Gateway) record(operation string, source models.Source, span trace.Span) {
	span.SetAttributes(attribute.String("source", string(source)))
	g.metrics.GatewayCalls.WithLabelValues(operation, string(source)).Inc()
}
