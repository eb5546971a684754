// Package places talks to the Google Maps web services that supply venue
// candidates, venue details, travel times and city coordinates.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/outing/internal/domain"
	"golang.org/x/time/rate"
)

// TravelMode is a Distance Matrix travel mode.
type TravelMode string

const (
	ModeWalking TravelMode = "walking"
	ModeTransit TravelMode = "transit"
	ModeDriving TravelMode = "driving"
)

// ModeFor picks the travel mode that matches a walking tolerance.
func ModeFor(w domain.WalkingTolerance) TravelMode {
	switch w {
	case domain.WalkingHigh:
		return ModeWalking
	case domain.WalkingLow:
		return ModeDriving
	default:
		return ModeTransit
	}
}

// MaxMatrixElements is the per-request element ceiling of the Distance
// Matrix API (origins x destinations).
const MaxMatrixElements = 100

// detailsFields is the field mask requested from Place Details.
const detailsFields = "place_id,name,geometry,rating,user_ratings_total,price_level," +
	"formatted_address,types,business_status,opening_hours,url,website,formatted_phone_number"

type ClientConfig struct {
	BaseURL string
	APIKey  string
	// RPS caps outgoing requests per second across the client.
	RPS      float64
	Timeout  time.Duration
	Language string
}

// Client is a thin Google Maps web service client. It is safe for
// concurrent use.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://maps.googleapis.com/maps/api"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		logger:  logger,
	}
}

// TextSearch runs a Places Text Search. near biases results towards a
// point when non-nil. ZERO_RESULTS yields an empty slice.
func (c *Client) TextSearch(ctx context.Context, query string, near *domain.Location, radiusM int) ([]PlaceResult, error) {
	params := url.Values{"query": {query}}
	if near != nil {
		params.Set("location", latLng(*near))
		if radiusM > 0 {
			params.Set("radius", strconv.Itoa(radiusM))
		}
	}
	var resp textSearchResponse
	if err := c.get(ctx, "/place/textsearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status == "ZERO_RESULTS" {
		return []PlaceResult{}, nil
	}
	if err := statusError("textsearch", resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Details fetches Place Details for one place id.
func (c *Client) Details(ctx context.Context, placeID string) (*PlaceResult, error) {
	params := url.Values{"place_id": {placeID}, "fields": {detailsFields}}
	var resp detailsResponse
	if err := c.get(ctx, "/place/details/json", params, &resp); err != nil {
		return nil, err
	}
	if err := statusError("details", resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// DistanceMatrix returns travel minutes for every origin/destination pair,
// indexed [origin][destination]. Unroutable pairs are -1.
func (c *Client) DistanceMatrix(ctx context.Context, origins, destinations []domain.Location, mode TravelMode) ([][]int, error) {
	if len(origins) == 0 || len(destinations) == 0 {
		return nil, nil
	}
	if len(origins)*len(destinations) > MaxMatrixElements {
		return nil, fmt.Errorf("distance matrix of %dx%d exceeds %d elements", len(origins), len(destinations), MaxMatrixElements)
	}
	params := url.Values{
		"origins":      {joinLatLng(origins)},
		"destinations": {joinLatLng(destinations)},
		"mode":         {string(mode)},
	}
	var resp distanceMatrixResponse
	if err := c.get(ctx, "/distancematrix/json", params, &resp); err != nil {
		return nil, err
	}
	if err := statusError("distancematrix", resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	out := make([][]int, len(origins))
	for i := range out {
		out[i] = make([]int, len(destinations))
		for j := range out[i] {
			out[i][j] = -1
			if i >= len(resp.Rows) || j >= len(resp.Rows[i].Elements) {
				continue
			}
			el := resp.Rows[i].Elements[j]
			if el.Status == "OK" {
				out[i][j] = int(math.Ceil(float64(el.Duration.Value) / 60))
			}
		}
	}
	return out, nil
}

// Geocode resolves an address or city name to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Location, error) {
	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", url.Values{"address": {address}}, &resp); err != nil {
		return domain.Location{}, err
	}
	if err := statusError("geocode", resp.Status, resp.ErrorMessage); err != nil {
		return domain.Location{}, err
	}
	if len(resp.Results) == 0 {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", address, ErrNotFound)
	}
	loc := resp.Results[0].Geometry.Location
	return domain.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.cfg.APIKey == "" {
		return fmt.Errorf("%s: %w (no api key configured)", path, ErrRequestDenied)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: waiting for rate limiter: %w", path, err)
	}

	params.Set("key", c.cfg.APIKey)
	if c.cfg.Language != "" {
		params.Set("language", c.cfg.Language)
	}
	endpoint := c.cfg.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", path, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "places_call", "path", path, "error", err)
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: reading response: %w", path, err)
	}
	c.logger.DebugContext(ctx, "places_call",
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %w: http %d: %s", path, ErrUpstream, resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", path, errors.Join(ErrUpstream, err))
	}
	return nil
}

func latLng(l domain.Location) string {
	return strconv.FormatFloat(l.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(l.Lng, 'f', 6, 64)
}

func joinLatLng(locs []domain.Location) string {
	parts := make([]string, len(locs))
	for i, l := range locs {
		parts[i] = latLng(l)
	}
	return strings.Join(parts, "|")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
