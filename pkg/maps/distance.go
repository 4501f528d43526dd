package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	pkgerrors "github.com/caribeway/caribeway-backend/pkg/errors"
)

const (
	routesBaseURL          = "https://routes.googleapis.com/directions/v2:computeRoutes"
	routeFieldMask         = "routes.distanceMeters,routes.duration"
	distanceRetryAttempts  = 3
	distanceRetryBaseDelay = 250 * time.Millisecond
	earthRadiusKM          = 6371.0
)

// RouteEstimate reports the driving distance and duration between two points.
// StraightLine is set when the figure came from the haversine fallback rather
// than the Routes API.
type RouteEstimate struct {
	DistanceKM   float64
	Duration     time.Duration
	StraightLine bool
}

// WithRoutesURL overrides the Routes API endpoint, used by tests.
func WithRoutesURL(routesURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(routesURL)
		if trimmed != "" {
			c.routesURL = trimmed
		}
	}
}

// DrivingEstimate computes the driving route between two coordinates,
// retrying transient failures. When every attempt fails it falls back to the
// straight-line distance so quote flows still get a usable figure.
func (c *Client) DrivingEstimate(ctx context.Context, origin, destination LatLng) (*RouteEstimate, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "google maps client not configured")
	}

	var estimate *RouteEstimate
	backoff := retry.WithMaxRetries(distanceRetryAttempts, retry.NewExponential(distanceRetryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, callErr := c.computeRoute(ctx, origin, destination)
		if callErr != nil {
			return retry.RetryableError(callErr)
		}
		estimate = result
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "route computation cancelled")
		}
		return &RouteEstimate{
			DistanceKM:   HaversineKM(origin, destination),
			StraightLine: true,
		}, nil
	}
	return estimate, nil
}

func (c *Client) computeRoute(ctx context.Context, origin, destination LatLng) (*RouteEstimate, error) {
	type waypoint struct {
		Location struct {
			LatLng struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"latLng"`
		} `json:"location"`
	}
	var body struct {
		Origin      waypoint `json:"origin"`
		Destination waypoint `json:"destination"`
		TravelMode  string   `json:"travelMode"`
	}
	body.Origin.Location.LatLng.Latitude = origin.Latitude
	body.Origin.Location.LatLng.Longitude = origin.Longitude
	body.Destination.Location.LatLng.Latitude = destination.Latitude
	body.Destination.Location.LatLng.Longitude = destination.Longitude
	body.TravelMode = "DRIVE"

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal route request: %w", err)
	}

	endpoint := c.routesURL
	if endpoint == "" {
		endpoint = routesBaseURL
	}

	var apiResp struct {
		Routes []struct {
			DistanceMeters int    `json:"distanceMeters"`
			Duration       string `json:"duration"`
		} `json:"routes"`
	}
	if err := c.doJSON(ctx, http.MethodPost, endpoint, routeFieldMask, payload, &apiResp); err != nil {
		return nil, fmt.Errorf("route request: %w", err)
	}
	if len(apiResp.Routes) == 0 {
		return nil, fmt.Errorf("route response contained no routes")
	}

	route := apiResp.Routes[0]
	duration, _ := time.ParseDuration(route.Duration)
	return &RouteEstimate{
		DistanceKM: float64(route.DistanceMeters) / 1000,
		Duration:   duration,
	}, nil
}

// HaversineKM returns the great-circle distance between two coordinates.
func HaversineKM(a, b LatLng) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
